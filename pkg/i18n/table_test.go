package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18nrouter/pkg/i18n"
)

// fixtureConfig mirrors the configuration of a site served under two domains.
func fixtureConfig(detection bool) i18n.Config {
	return i18n.Config{
		Locales: []string{
			"en-US", "nl-NL", "nl-BE", "nl", "fr-BE", "fr", "en", "go", "go-BE", "do", "do-BE",
		},
		DefaultLocale: "en-US",
		Domains: []i18n.Domain{
			{Domain: "example.do", DefaultLocale: "do", Locales: []string{"do-BE"}, HTTP: true},
			{Domain: "example.com", DefaultLocale: "go", Locales: []string{"go-BE"}},
		},
		LocaleDetection: detection,
	}
}

func mustTable(t testing.TB, cfg i18n.Config, opts ...i18n.TableOption) *i18n.Table {
	t.Helper()
	table, err := i18n.NewTable(cfg, opts...)
	require.NoError(t, err)
	return table
}

func TestNewTableErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  i18n.Config
		err  error
	}{
		{
			name: "no locales",
			cfg:  i18n.Config{DefaultLocale: "en"},
			err:  i18n.ErrNoLocales,
		},
		{
			name: "empty locale",
			cfg:  i18n.Config{Locales: []string{"en", ""}, DefaultLocale: "en"},
			err:  i18n.ErrInvalidLocale,
		},
		{
			name: "malformed locale",
			cfg:  i18n.Config{Locales: []string{"en", "notalanguagetag"}, DefaultLocale: "en"},
			err:  i18n.ErrInvalidLocale,
		},
		{
			name: "duplicate locale ignoring case",
			cfg:  i18n.Config{Locales: []string{"en-US", "EN-us"}, DefaultLocale: "en-US"},
			err:  i18n.ErrDuplicateLocale,
		},
		{
			name: "unknown default locale",
			cfg:  i18n.Config{Locales: []string{"en"}, DefaultLocale: "fr"},
			err:  i18n.ErrUnknownDefaultLocale,
		},
		{
			name: "domain default not configured",
			cfg: i18n.Config{
				Locales:       []string{"en"},
				DefaultLocale: "en",
				Domains:       []i18n.Domain{{Domain: "example.fr", DefaultLocale: "fr"}},
			},
			err: i18n.ErrUnknownLocale,
		},
		{
			name: "domain locale not configured",
			cfg: i18n.Config{
				Locales:       []string{"en"},
				DefaultLocale: "en",
				Domains:       []i18n.Domain{{Domain: "example.com", DefaultLocale: "en", Locales: []string{"de"}}},
			},
			err: i18n.ErrUnknownLocale,
		},
		{
			name: "domain with scheme",
			cfg: i18n.Config{
				Locales:       []string{"en"},
				DefaultLocale: "en",
				Domains:       []i18n.Domain{{Domain: "https://example.com", DefaultLocale: "en"}},
			},
			err: i18n.ErrInvalidDomain,
		},
		{
			name: "duplicate domain",
			cfg: i18n.Config{
				Locales:       []string{"en", "fr"},
				DefaultLocale: "en",
				Domains: []i18n.Domain{
					{Domain: "example.com", DefaultLocale: "en"},
					{Domain: "example.com", DefaultLocale: "fr"},
				},
			},
			err: i18n.ErrDuplicateDomain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			table, err := i18n.NewTable(tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, table)
		})
	}
}

func TestNewTableAcceptsUnregisteredSubtags(t *testing.T) {
	t.Parallel()

	table := mustTable(t, fixtureConfig(true))
	assert.True(t, table.IsKnownLocale("go"))
	assert.True(t, table.IsKnownLocale("do-BE"))
}

func TestTableLookupDomain(t *testing.T) {
	t.Parallel()

	table := mustTable(t, fixtureConfig(true))

	d, ok := table.LookupDomain("example.do")
	require.True(t, ok)
	assert.Equal(t, "do", d.DefaultLocale)
	assert.True(t, d.HTTP)

	d, ok = table.LookupDomain("example.com")
	require.True(t, ok)
	assert.Equal(t, "go", d.DefaultLocale)

	_, ok = table.LookupDomain("www.example.com")
	assert.False(t, ok, "no wildcard or suffix matching")

	_, ok = table.LookupDomain("example.com:3000")
	assert.False(t, ok, "ports are significant unless stripping is enabled")

	_, ok = table.LookupDomain("")
	assert.False(t, ok)
}

func TestTableLookupDomainWithPortStripping(t *testing.T) {
	t.Parallel()

	table := mustTable(t, fixtureConfig(true), i18n.WithPortStripping())

	d, ok := table.LookupDomain("example.com:3000")
	require.True(t, ok)
	assert.Equal(t, "example.com", d.Domain)
}

func TestTableAllowedLocales(t *testing.T) {
	t.Parallel()

	table := mustTable(t, fixtureConfig(true))

	assert.Equal(t, []string{"do", "do-BE"}, table.AllowedLocales("example.do"))
	assert.Equal(t, []string{"go", "go-BE"}, table.AllowedLocales("example.com"))
	assert.Equal(t, fixtureConfig(true).Locales, table.AllowedLocales("localhost"))
}

func TestTableCanonical(t *testing.T) {
	t.Parallel()

	table := mustTable(t, fixtureConfig(true))

	canon, ok := table.Canonical("EN-us")
	require.True(t, ok)
	assert.Equal(t, "en-US", canon)

	_, ok = table.Canonical("de")
	assert.False(t, ok)
	assert.False(t, table.IsKnownLocale(""))
	assert.False(t, table.IsKnownLocale(" en-US"))
	assert.False(t, table.IsKnownLocale("nl\t"))
}

func TestTableIsImmutable(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(true)
	table := mustTable(t, cfg)

	cfg.Locales[0] = "xx"
	cfg.Domains[0].Locales[0] = "yy"

	all := table.AllLocales()
	all[1] = "zz"

	assert.Equal(t, "en-US", table.AllLocales()[0])
	assert.Equal(t, "nl-NL", table.AllLocales()[1])
	d, _ := table.LookupDomain("example.do")
	assert.Equal(t, []string{"do-BE"}, d.Locales)
	assert.Equal(t, fixtureConfig(true), table.Config())
}

func TestNilTable(t *testing.T) {
	t.Parallel()

	var table *i18n.Table
	assert.False(t, table.IsKnownLocale("en"))
	assert.False(t, table.Detection())
	assert.Empty(t, table.AllLocales())
	assert.Empty(t, table.DefaultLocale())
	_, ok := table.LookupDomain("example.com")
	assert.False(t, ok)
}
