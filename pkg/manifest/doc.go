// Package manifest builds the routing manifest: the validated, immutable snapshot
// of locale configuration and rewrite rules that request routing reads from.
//
// Build is the only way to obtain a Manifest. It compiles the rewrite rules and the
// locale table and refuses to return anything when the configuration is
// inconsistent, so a server never starts with a half-valid table.
//
//	m, err := manifest.Build(manifest.Input{
//		BasePath: "/docs",
//		I18n: &i18n.Config{
//			Locales:         []string{"en-US", "fr"},
//			DefaultLocale:   "en-US",
//			LocaleDetection: true,
//		},
//		Rewrites: rewrite.RuleSet{
//			BeforeFiles: []rewrite.Rule{{Source: "/foo", Destination: "/en/foo"}},
//		},
//	})
//	if err != nil {
//		log.Fatal(err) // errors.Is(err, manifest.ErrInvalidConfig)
//	}
//
// # Serialization
//
// Encode writes the manifest as JSON. The output is deterministic: locales,
// domains and rules keep their configured order, and localeDetection is always
// present, so external tools can diff two builds byte by byte. Parse and
// FromDocument read such a document back.
//
// # Snapshots
//
// Store keeps the current Manifest behind an atomic pointer. Reloading replaces the
// whole snapshot at once; in-flight requests keep the snapshot they started with.
package manifest
