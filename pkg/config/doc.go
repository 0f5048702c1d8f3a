// Package config loads the router's configuration.
//
// Process settings come from the environment. Load parses any struct tagged
// for github.com/caarlos0/env/v11 and caches the result per type; a .env file
// in the working directory is read first through github.com/joho/godotenv, and
// LoadEnv reads explicit files instead.
//
//	var s config.Settings
//	if err := config.Load(&s); err != nil {
//		return err
//	}
//
// The routing document holds the base path, the i18n section and the rewrites.
// It is YAML or JSON depending on the file extension:
//
//	basePath: /docs
//	i18n:
//	  locales: [en-US, nl-NL, fr]
//	  defaultLocale: en-US
//	  domains:
//	    - domain: example.nl
//	      defaultLocale: nl-NL
//	rewrites:
//	  beforeFiles:
//	    - source: /old/:slug
//	      destination: /new/:slug
//
// localeDetection defaults to true when omitted. rewrites may also be a bare
// list, which is treated as afterFiles.
//
//	m, err := config.LoadManifest(s.ConfigFile)
//
// Errors wrap the sentinels declared in errors.go and can be tested with
// errors.Is.
package config
