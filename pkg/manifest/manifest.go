package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/i18nrouter/pkg/i18n"
	"github.com/dmitrymomot/i18nrouter/pkg/rewrite"
)

// Input is the configuration a manifest is built from.
type Input struct {
	BasePath string
	// I18n is nil when the application is not localized.
	I18n     *i18n.Config
	Rewrites rewrite.RuleSet
}

// Manifest is an immutable, validated routing snapshot. All accessors are safe
// for concurrent use.
type Manifest struct {
	basePath string
	i18nCfg  *i18n.Config
	table    *i18n.Table
	matcher  *rewrite.Matcher
	rules    rewrite.RuleSet
}

// Build validates in and compiles it into a Manifest. Table options apply to the
// locale table when in.I18n is set.
func Build(in Input, opts ...i18n.TableOption) (*Manifest, error) {
	if err := checkBasePath(in.BasePath); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	m := &Manifest{
		basePath: in.BasePath,
		rules:    in.Rewrites.Clone(),
	}

	var matcherOpts []rewrite.Option
	if in.I18n != nil {
		table, err := i18n.NewTable(*in.I18n, opts...)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("i18n: %w", err))
		}
		cfg := table.Config()
		m.i18nCfg = &cfg
		m.table = table
		matcherOpts = append(matcherOpts, rewrite.WithLocaleLookup(table.Canonical))
	}

	matcher, err := rewrite.Compile(m.rules, matcherOpts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("rewrites: %w", err))
	}
	m.matcher = matcher

	return m, nil
}

// BasePath returns the configured base path, empty when the app is mounted at /.
func (m *Manifest) BasePath() string { return m.basePath }

// Table returns the locale table, or nil when i18n is not configured.
func (m *Manifest) Table() *i18n.Table { return m.table }

// Matcher returns the compiled rewrite rules.
func (m *Manifest) Matcher() *rewrite.Matcher { return m.matcher }

// Input returns a copy of the configuration the manifest was built from.
func (m *Manifest) Input() Input {
	in := Input{BasePath: m.basePath, Rewrites: m.rules.Clone()}
	if m.i18nCfg != nil {
		cfg := m.i18nCfg.Clone()
		in.I18n = &cfg
	}
	return in
}

func checkBasePath(p string) error {
	if p == "" {
		return nil
	}
	if !strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") || strings.ContainsAny(p, "?#") {
		return fmt.Errorf("%w: %q", ErrInvalidBasePath, p)
	}
	return nil
}
