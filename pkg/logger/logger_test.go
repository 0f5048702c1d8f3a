package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18nrouter/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "router")))
		log.Info("hello")
		assert.Equal(t, "router", decode(t, buf)["svc"])
	})

	t.Run("context extractors", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				v, ok := ctx.Value(ctxKey{}).(string)
				return slog.String("trace", v), ok
			}),
		)
		log.With("a", 1).WithGroup("g").InfoContext(context.WithValue(context.Background(), ctxKey{}, "t-1"), "hello")
		assert.Contains(t, buf.String(), `"t-1"`)
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       string
		wantEnv   string
		wantDebug bool
	}{
		{env: "production", wantEnv: logger.Production},
		{env: "prod", wantEnv: logger.Production},
		{env: "stage", wantEnv: logger.Staging},
		{env: "", wantEnv: logger.Development, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.wantEnv+"/"+tt.env, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			log := logger.New(
				logger.WithEnvironment(tt.env, "i18nrouter"),
				logger.WithOutput(buf),
				logger.WithFormat(logger.FormatJSON),
			)
			log.Debug("sample")
			if !tt.wantDebug {
				assert.Empty(t, buf.String())
				log.Info("sample")
			}
			entry := decode(t, buf)
			assert.Equal(t, tt.wantEnv, entry["env"])
			assert.Equal(t, "i18nrouter", entry["service"])
		})
	}
}

func TestWithFormatPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestParseLevelAndFormat(t *testing.T) {
	t.Parallel()

	l, err := logger.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = logger.ParseLevel("loud")
	assert.Error(t, err)

	f, err := logger.ParseFormat("TEXT")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatText, f)

	_, err = logger.ParseFormat("xml")
	assert.Error(t, err)
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	assert.Equal(t, "errors", logger.Errors(nil, errors.New("x")).Key)
	assert.Equal(t, slog.Attr{}, logger.Locale(""))
	assert.Equal(t, slog.String("locale", "en-US"), logger.Locale("en-US"))
	assert.Equal(t, slog.String("locale_source", "path"), logger.LocaleSource("path"))
	assert.Equal(t, slog.String("path", "/docs"), logger.Path("/docs"))
	assert.Equal(t, slog.Attr{}, logger.Host(""))
	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
	assert.Equal(t, "g", logger.Group("g", slog.Int("a", 1)).Key)
}
