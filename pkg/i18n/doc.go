// Package i18n holds the locale table of a routed application and resolves the
// effective locale of an incoming request.
//
// A Table is built once from a Config and is immutable afterwards; any number of
// goroutines may share it. It answers three questions:
// which domain binding (if any) serves a host, whether a string is a configured
// locale, and which locales are allowed for a given host.
//
// Locale tags are compared case-insensitively everywhere (path segments, cookies,
// Accept-Language entries, configuration), while the configured casing is what gets
// reported back, so a request for /EN-US/docs resolves to "en-US".
//
// # Resolution order
//
// Resolve walks a fixed chain of steps and stops at the first one that yields a
// locale. Each step tags the result with its Source:
//
//  1. path: the first path segment is a configured locale.
//  2. domain-default / global-default: locale detection is disabled.
//  3. cookie: the host has a domain binding and the NEXT_LOCALE cookie names a
//     locale allowed on that domain.
//  4. header-negotiation: the Accept-Language header matches an allowed locale.
//  5. domain-default / global-default: nothing else matched.
//
// WithNegotiationCache adds a bounded memo of Accept-Language negotiation results
// keyed by host scope and raw header. It never changes what Resolve returns.
// The memo is off unless requested; a table without it holds no mutable state.
//
// # Usage
//
//	table, err := i18n.NewTable(i18n.Config{
//		Locales:         []string{"en-US", "nl-NL", "nl", "fr"},
//		DefaultLocale:   "en-US",
//		LocaleDetection: true,
//	})
//	if err != nil {
//		log.Fatalf("invalid i18n config: %v", err)
//	}
//
//	res := i18n.Resolve(table, i18n.Signals{
//		Host:           "example.com",
//		Path:           "/nl-NL/about",
//		AcceptLanguage: "fr;q=0.9",
//	})
//	// res.Locale == "nl-NL", res.Source == i18n.SourcePath, res.Pathname == "/about"
//
// # Error Handling
//
// NewTable reports configuration problems with errors wrapping the package
// sentinels, e.g.:
//
//	if errors.Is(err, i18n.ErrUnknownLocale) {
//	    // a domain lists a locale missing from Locales
//	}
//
// Resolve never fails; every request ends up with some locale.
package i18n
