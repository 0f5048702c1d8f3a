package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Path records a request path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Host records a request host under the key "host".
func Host(h string) slog.Attr {
	if h == "" {
		return slog.Attr{}
	}
	return slog.String("host", h)
}

// Locale records a resolved locale under the key "locale".
func Locale(tag string) slog.Attr {
	if tag == "" {
		return slog.Attr{}
	}
	return slog.String("locale", tag)
}

// LocaleSource records which signal decided the locale.
func LocaleSource(src string) slog.Attr {
	if src == "" {
		return slog.Attr{}
	}
	return slog.String("locale_source", src)
}

// ConfigFile records a configuration file path under the key "config_file".
func ConfigFile(path string) slog.Attr {
	return slog.String("config_file", path)
}
