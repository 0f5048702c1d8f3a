package routing

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/i18nrouter/pkg/i18n"
	"github.com/dmitrymomot/i18nrouter/pkg/logger"
	"github.com/dmitrymomot/i18nrouter/pkg/manifest"
)

// Observer is notified of every decision made by the middleware.
type Observer func(Decision)

// Option configures the middleware.
type Option func(*config)

type config struct {
	cookieName string
	logger     *slog.Logger
	observers  []Observer
}

// WithCookieName overrides the locale cookie name (default i18n.LocaleCookie).
func WithCookieName(name string) Option {
	return func(c *config) {
		if name == "" {
			return
		}
		c.cookieName = name
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers a callback invoked with each decision, e.g. for metrics.
func WithObserver(obs Observer) Option {
	return func(c *config) {
		if obs != nil {
			c.observers = append(c.observers, obs)
		}
	}
}

// NewRequest extracts the pipeline input from r.
func NewRequest(r *http.Request, basePath, cookieName string) Request {
	req := Request{
		Host:           r.Host,
		Path:           r.URL.EscapedPath(),
		BasePath:       basePath,
		AcceptLanguage: r.Header.Get("Accept-Language"),
	}
	if r.URL.RawQuery != "" {
		req.Path += "?" + r.URL.RawQuery
	}
	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil {
			req.CookieLocale = strings.TrimSpace(cookie.Value)
		}
	}
	return req
}

// Middleware routes every request against the current snapshot in store and
// passes the decision down through the request context. When the store is
// empty the request passes through unrouted.
func Middleware(store *manifest.Store, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cookieName: i18n.LocaleCookie,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := store.Load()
			if m == nil {
				cfg.logger.WarnContext(r.Context(), "no routing manifest loaded", logger.Path(r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}

			d := Route(NewRequest(r, m.BasePath(), cfg.cookieName), m)
			for _, obs := range cfg.observers {
				obs(d)
			}

			cfg.logger.DebugContext(r.Context(), "request routed",
				logger.Path(d.Pathname),
				logger.Locale(d.Locale),
				logger.LocaleSource(string(d.LocaleSource)),
				slog.String("outcome", string(d.Outcome)),
			)

			ctx := WithDecision(r.Context(), d)
			if d.Locale != "" {
				ctx = i18n.SetLocale(ctx, d.Locale)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
