package routing_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18nrouter/pkg/i18n"
	"github.com/dmitrymomot/i18nrouter/pkg/manifest"
	"github.com/dmitrymomot/i18nrouter/pkg/routing"
)

func TestNewRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "http://example.com/docs/nl?x=1", nil)
	r.Header.Set("Accept-Language", "fr;q=0.8")
	r.AddCookie(&http.Cookie{Name: i18n.LocaleCookie, Value: "go-BE"})

	req := routing.NewRequest(r, "/docs", i18n.LocaleCookie)
	assert.Equal(t, routing.Request{
		Host:           "example.com",
		Path:           "/docs/nl?x=1",
		BasePath:       "/docs",
		CookieLocale:   "go-BE",
		AcceptLanguage: "fr;q=0.8",
	}, req)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	store := manifest.NewStore(siteManifest(t, "/docs", true))

	var observed []routing.Decision
	logs := &bytes.Buffer{}
	log := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var got routing.Decision
	var gotLocale string
	handler := routing.Middleware(store,
		routing.WithLogger(log),
		routing.WithObserver(func(d routing.Decision) { observed = append(observed, d) }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, ok := routing.FromContext(r.Context())
		require.True(t, ok)
		got = d
		gotLocale = i18n.GetLocale(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "http://example.com/docs/about", nil)
	r.AddCookie(&http.Cookie{Name: i18n.LocaleCookie, Value: "go-BE"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go-BE", got.Locale)
	assert.Equal(t, i18n.SourceCookie, got.LocaleSource)
	assert.Equal(t, "/docs/about", got.Pathname)
	assert.Equal(t, "go-BE", gotLocale)
	require.Len(t, observed, 1)
	assert.Equal(t, got, observed[0])
	assert.Contains(t, logs.String(), `"locale_source":"cookie"`)
}

func TestMiddlewareCustomCookie(t *testing.T) {
	t.Parallel()

	store := manifest.NewStore(siteManifest(t, "", true))

	var got routing.Decision
	handler := routing.Middleware(store, routing.WithCookieName("lang"))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = routing.FromContext(r.Context())
		}),
	)

	r := httptest.NewRequest(http.MethodGet, "http://example.do/", nil)
	r.AddCookie(&http.Cookie{Name: "lang", Value: "do-BE"})
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "do-BE", got.Locale)
}

func TestMiddlewareWithoutSnapshot(t *testing.T) {
	t.Parallel()

	called := false
	handler := routing.Middleware(manifest.NewStore(nil))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			_, ok := routing.FromContext(r.Context())
			assert.False(t, ok)
		}),
	)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestMiddlewareSeesSwappedSnapshot(t *testing.T) {
	t.Parallel()

	store := manifest.NewStore(siteManifest(t, "", true))

	var got routing.Decision
	handler := routing.Middleware(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = routing.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
	r.Header.Set("Accept-Language", "fr")
	handler.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "fr", got.Locale)

	_, err := store.Swap(siteManifest(t, "", false))
	require.NoError(t, err)

	handler.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "en-US", got.Locale)
}

func TestFromContextEmpty(t *testing.T) {
	t.Parallel()

	_, ok := routing.FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
