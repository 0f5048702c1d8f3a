// Package logger builds the *slog.Logger used across the router.
//
// New assembles a JSON or text handler from functional options and wraps it with
// a decorator that pulls request-scoped attributes (such as the request id) out
// of the context on every record:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "i18nrouter"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "manifest reloaded", logger.ConfigFile(path))
//
// Attribute helpers in attr.go keep key names consistent: Path, Host, Locale,
// LocaleSource, Error and friends. Helpers that take an error or a possibly
// empty value return an empty slog.Attr, which slog drops, so they can be passed
// unconditionally.
//
// WithFormat panics on an unknown format so misconfiguration fails at startup.
// ParseLevel and ParseFormat convert settings read from the environment.
package logger
