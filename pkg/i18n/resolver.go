package i18n

import "strings"

// LocaleCookie is the cookie a client uses to pin its preferred locale.
const LocaleCookie = "NEXT_LOCALE"

// Source tells which signal decided the locale.
type Source string

const (
	SourcePath          Source = "path"
	SourceDomainDefault Source = "domain-default"
	SourceCookie        Source = "cookie"
	SourceHeader        Source = "header-negotiation"
	SourceGlobalDefault Source = "global-default"
)

// Signals are the request inputs locale resolution looks at. Path must already be
// stripped of any base path.
type Signals struct {
	Host           string
	Path           string
	CookieLocale   string
	AcceptLanguage string
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Locale string
	Source Source
	// Pathname is Path without the locale segment when Source is SourcePath,
	// Path unchanged otherwise.
	Pathname string
	// Domain is the matched domain binding hostname, empty when none matched.
	Domain        string
	DefaultLocale string
	Locales       []string
}

// step yields a locale and its source, or ok == false to defer to the next step.
type step func(t *Table, sig Signals, sc scope) (locale string, src Source, ok bool)

// chain is evaluated in order; the first step that succeeds decides.
var chain = []step{
	fromPath,
	whenDetectionDisabled,
	fromCookie,
	fromAcceptLanguage,
	fromDefault,
}

// Resolve determines the effective locale for a request. A nil table resolves
// nothing and returns the path untouched.
func Resolve(t *Table, sig Signals) Resolution {
	res := Resolution{Pathname: sig.Path}
	if t == nil {
		return res
	}

	sc := t.scope(sig.Host)
	res.DefaultLocale = sc.defaultLocale
	res.Locales = cloneStrings(sc.allowed)
	if sc.domain != nil {
		res.Domain = sc.domain.Domain
	}

	for _, s := range chain {
		locale, src, ok := s(t, sig, sc)
		if !ok {
			continue
		}
		res.Locale, res.Source = locale, src
		if src == SourcePath {
			_, res.Pathname, _ = splitLocaleSegment(t, sig.Path)
		}
		return res
	}

	return res
}

func fromPath(t *Table, sig Signals, _ scope) (string, Source, bool) {
	locale, _, ok := splitLocaleSegment(t, sig.Path)
	return locale, SourcePath, ok
}

func whenDetectionDisabled(t *Table, _ Signals, sc scope) (string, Source, bool) {
	if t.Detection() {
		return "", "", false
	}
	return fromDefault(t, Signals{}, sc)
}

func fromCookie(_ *Table, sig Signals, sc scope) (string, Source, bool) {
	if sc.domain == nil {
		return "", "", false
	}
	cookie := fold(sig.CookieLocale)
	if cookie == "" || len(cookie) > maxLangCodeLength {
		return "", "", false
	}
	for _, allowed := range sc.allowed {
		if fold(allowed) == cookie {
			return allowed, SourceCookie, true
		}
	}
	return "", "", false
}

func fromAcceptLanguage(t *Table, sig Signals, sc scope) (string, Source, bool) {
	locale, ok := t.negotiate(sc, sig.AcceptLanguage)
	return locale, SourceHeader, ok
}

func fromDefault(_ *Table, _ Signals, sc scope) (string, Source, bool) {
	if sc.domain != nil {
		return sc.defaultLocale, SourceDomainDefault, true
	}
	return sc.defaultLocale, SourceGlobalDefault, true
}

// splitLocaleSegment reports whether the first segment of path is a configured
// locale and returns the canonical locale with the remaining path.
func splitLocaleSegment(t *Table, path string) (string, string, bool) {
	seg, rest, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	locale, ok := t.Canonical(seg)
	if !ok {
		return "", path, false
	}
	return locale, "/" + rest, true
}
