package i18n

import "errors"

// Configuration errors are returned by NewTable and are always fatal: a Table is
// never built from an inconsistent configuration.
var (
	ErrNoLocales            = errors.New("at least one locale must be configured")
	ErrInvalidLocale        = errors.New("invalid locale tag")
	ErrDuplicateLocale      = errors.New("duplicate locale tag")
	ErrUnknownDefaultLocale = errors.New("default locale is not in the configured locales")
	ErrUnknownLocale        = errors.New("domain references a locale that is not configured")
	ErrInvalidDomain        = errors.New("invalid domain")
	ErrDuplicateDomain      = errors.New("duplicate domain")
)
