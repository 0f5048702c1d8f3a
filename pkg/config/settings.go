package config

import "time"

// Settings holds the process-level options of the router binary. Every field
// can be set from the environment or a .env file. HTTP listener settings live
// in httpserver.Config.
type Settings struct {
	ConfigFile     string        `env:"I18NROUTER_CONFIG" envDefault:"routes.yaml"`
	Environment    string        `env:"APP_ENV" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFormat      string        `env:"LOG_FORMAT"`
	Watch          bool          `env:"I18NROUTER_WATCH" envDefault:"true"`
	StripPort      bool          `env:"I18NROUTER_STRIP_PORT" envDefault:"false"`
	ReloadDebounce time.Duration `env:"I18NROUTER_RELOAD_DEBOUNCE" envDefault:"100ms"`
	// NegotiationCache is the number of distinct Accept-Language headers whose
	// negotiation result is memoized. Zero, the default, keeps routing free of
	// shared per-request state.
	NegotiationCache int `env:"I18NROUTER_NEGOTIATION_CACHE" envDefault:"0"`
}
