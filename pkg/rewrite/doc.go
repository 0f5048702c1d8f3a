// Package rewrite compiles rewrite rules and matches request paths against them.
//
// Rules are grouped by phase (beforeFiles, afterFiles, fallback) and evaluated in the
// order they were configured. The first rule whose source pattern matches wins; later
// rules are never consulted for that path.
//
// # Patterns
//
// A source pattern is a slash separated path whose segments are either literals or
// named parameters:
//
//	/docs/about          literal segments only
//	/blog/:slug          exactly one segment
//	/blog/:slug?         optional trailing segment
//	/files/:path*        zero or more segments
//	/files/:path+        one or more segments
//	/posts/:id(\d+)      one segment constrained by a regular expression
//
// Matching is case-insensitive and tolerates a single trailing slash. Destinations
// reference captured parameters with the same :name syntax:
//
//	m, err := rewrite.Compile(rewrite.RuleSet{
//		BeforeFiles: []rewrite.Rule{
//			{Source: "/photos/:path*", Destination: "/en/photos/:path*"},
//		},
//	})
//	if err != nil {
//		log.Fatal(err) // configuration errors are fatal
//	}
//
//	res, ok := m.Match(rewrite.PhaseBeforeFiles, "/photos/2024/june")
//	// ok == true, res.Path == "/en/photos/2024/june"
//
// A destination may also be an absolute http(s) URL; such results are flagged as
// external so callers can proxy instead of rendering.
//
// # Locale-aware rules
//
// A rule with HasLocale set is written without a locale prefix. When the matcher is
// given a locale lookup (see WithLocaleLookup), such a rule also matches paths that
// start with a known locale segment and carries that segment over to the destination.
//
// # Error Handling
//
// Compile reports every configuration problem as an error wrapping one of the package
// sentinel errors (ErrInvalidSource, ErrUnknownParam, ...). A path that matches no rule
// is not an error: Match returns ok == false and the caller keeps the original path.
package rewrite
