package routing

import (
	"strings"

	"github.com/dmitrymomot/i18nrouter/pkg/i18n"
	"github.com/dmitrymomot/i18nrouter/pkg/manifest"
	"github.com/dmitrymomot/i18nrouter/pkg/rewrite"
)

// Outcome classifies a routing decision.
type Outcome string

const (
	// OutcomeRouted means the pipeline produced a pathname for the app.
	OutcomeRouted Outcome = "routed"
	// OutcomeOutsideBasePath means the path is not under the base path; the caller
	// decides what to do with such requests.
	OutcomeOutsideBasePath Outcome = "outside-base-path"
)

// Request is the per-request input of the pipeline.
type Request struct {
	Host string
	// Path is the request path as received, optionally with a query string.
	Path           string
	BasePath       string
	CookieLocale   string
	AcceptLanguage string
}

// Rewrite describes the beforeFiles rule applied to a request.
type Rewrite struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	External    bool   `json:"external"`
}

// Decision is the router state handed to the rendering layer.
type Decision struct {
	Outcome       Outcome     `json:"outcome"`
	Pathname      string      `json:"pathname"`
	AsPath        string      `json:"asPath"`
	Locale        string      `json:"locale,omitempty"`
	Locales       []string    `json:"locales,omitempty"`
	DefaultLocale string      `json:"defaultLocale,omitempty"`
	LocaleSource  i18n.Source `json:"localeSource,omitempty"`
	Domain        string      `json:"domain,omitempty"`
	Rewrite       *Rewrite    `json:"rewrite,omitempty"`
}

// Route runs the routing pipeline for req against m. A nil manifest routes the
// path as-is with no rewrites and no locale.
func Route(req Request, m *manifest.Manifest) Decision {
	path, query := splitQuery(req.Path)

	rel, ok := stripBasePath(path, req.BasePath)
	if !ok {
		return Decision{
			Outcome:  OutcomeOutsideBasePath,
			Pathname: path,
			AsPath:   path + query,
		}
	}

	d := Decision{Outcome: OutcomeRouted}
	routed := rel

	var table *i18n.Table
	if m != nil {
		table = m.Table()
		if res, matched := m.Matcher().Match(rewrite.PhaseBeforeFiles, rel); matched {
			d.Rewrite = &Rewrite{
				Source:      res.Rule.Source,
				Destination: res.Path,
				External:    res.External,
			}
			if !res.External {
				routed, _ = splitQuery(res.Path)
			}
		}
	}

	loc := i18n.Resolve(table, i18n.Signals{
		Host:           req.Host,
		Path:           routed,
		CookieLocale:   req.CookieLocale,
		AcceptLanguage: req.AcceptLanguage,
	})

	d.Pathname = joinBasePath(req.BasePath, loc.Pathname)
	d.AsPath = joinBasePath(req.BasePath, rel) + query
	d.Locale = loc.Locale
	d.Locales = loc.Locales
	d.DefaultLocale = loc.DefaultLocale
	d.LocaleSource = loc.Source
	d.Domain = loc.Domain

	return d
}

// splitQuery separates the query string, keeping its leading "?".
func splitQuery(raw string) (string, string) {
	path, query, found := strings.Cut(raw, "?")
	if path == "" {
		path = "/"
	}
	if found {
		return path, "?" + query
	}
	return path, ""
}

// stripBasePath removes base from path on a segment boundary.
func stripBasePath(path, base string) (string, bool) {
	if base == "" {
		return path, true
	}
	if path == base {
		return "/", true
	}
	if strings.HasPrefix(path, base+"/") {
		return path[len(base):], true
	}
	return "", false
}

func joinBasePath(base, path string) string {
	if base == "" {
		return path
	}
	if path == "/" {
		return base
	}
	return base + path
}
