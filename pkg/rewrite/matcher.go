package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// LocaleLookup reports whether a path segment is a configured locale.
type LocaleLookup func(segment string) (locale string, ok bool)

// Option configures a Matcher.
type Option func(*Matcher)

// WithLocaleLookup enables locale-aware matching for rules with HasLocale set.
func WithLocaleLookup(fn LocaleLookup) Option {
	return func(m *Matcher) {
		if fn != nil {
			m.lookup = fn
		}
	}
}

// Compiled is a rule together with the expression its source compiled to.
type Compiled struct {
	Rule
	Regex string
}

// Result describes a successful match.
type Result struct {
	// Path is the rewritten path, or an absolute URL when External is set.
	Path     string
	Rule     Rule
	Params   map[string]string
	External bool
}

type compiledRule struct {
	rule     Rule
	re       *regexp.Regexp
	dest     []destPart
	external bool
}

// Matcher holds compiled rules per phase. It is immutable after Compile and safe
// for concurrent use.
type Matcher struct {
	phases map[Phase][]compiledRule
	lookup LocaleLookup
}

// Compile validates and compiles every rule in set. Any invalid rule aborts
// compilation; a Matcher is never returned partially built.
func Compile(set RuleSet, opts ...Option) (*Matcher, error) {
	m := &Matcher{phases: make(map[Phase][]compiledRule, len(Phases))}
	for _, opt := range opts {
		opt(m)
	}

	for _, phase := range Phases {
		rules := set.Phase(phase)
		compiled := make([]compiledRule, 0, len(rules))
		for i, r := range rules {
			cr, err := compileRule(r)
			if err != nil {
				return nil, fmt.Errorf("%s rewrite #%d (%s -> %s): %w", phase, i, r.Source, r.Destination, err)
			}
			compiled = append(compiled, cr)
		}
		m.phases[phase] = compiled
	}

	return m, nil
}

func compileRule(r Rule) (compiledRule, error) {
	tokens, err := parseSource(r.Source)
	if err != nil {
		return compiledRule{}, err
	}

	re, err := regexp.Compile(buildRegex(tokens))
	if err != nil {
		return compiledRule{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	dest, external, err := parseDestination(r.Destination)
	if err != nil {
		return compiledRule{}, err
	}

	captured := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t.isParam() {
			captured[t.name] = struct{}{}
		}
	}
	for _, p := range dest {
		if p.param == "" {
			continue
		}
		if _, ok := captured[p.param]; !ok {
			return compiledRule{}, fmt.Errorf("%w: %q", ErrUnknownParam, p.param)
		}
	}

	return compiledRule{rule: r, re: re, dest: dest, external: external}, nil
}

// Match returns the first rule of phase whose source matches path. When nothing
// matches, ok is false and res.Path holds path unchanged.
func (m *Matcher) Match(phase Phase, path string) (res Result, ok bool) {
	if m == nil {
		return Result{Path: path}, false
	}

	prefix, bare := "", path
	if m.lookup != nil {
		prefix, bare = m.splitLocale(path)
	}

	for _, cr := range m.phases[phase] {
		candidate, localePrefix := path, ""
		if cr.rule.HasLocale && prefix != "" {
			candidate, localePrefix = bare, prefix
		}

		params, matched := cr.match(candidate)
		if !matched {
			continue
		}

		out := render(cr.dest, params)
		if localePrefix != "" && !cr.external {
			if out == "/" {
				out = localePrefix
			} else {
				out = localePrefix + out
			}
		}

		return Result{
			Path:     out,
			Rule:     cr.rule,
			Params:   params,
			External: cr.external,
		}, true
	}

	return Result{Path: path}, false
}

// Rules returns the compiled rules of phase in configured order.
func (m *Matcher) Rules(phase Phase) []Compiled {
	if m == nil {
		return nil
	}
	rules := m.phases[phase]
	out := make([]Compiled, len(rules))
	for i, cr := range rules {
		out[i] = Compiled{Rule: cr.rule, Regex: cr.re.String()}
	}
	return out
}

// splitLocale separates a leading locale segment from path. The prefix keeps the
// segment as typed by the client.
func (m *Matcher) splitLocale(path string) (string, string) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, rest, _ := strings.Cut(trimmed, "/")
	if seg == "" {
		return "", path
	}
	if _, ok := m.lookup(seg); !ok {
		return "", path
	}
	return "/" + seg, "/" + rest
}

func (cr compiledRule) match(path string) (map[string]string, bool) {
	sub := cr.re.FindStringSubmatch(path)
	if sub == nil {
		return nil, false
	}
	params := make(map[string]string, len(sub))
	for i, name := range cr.re.SubexpNames() {
		if name != "" {
			params[name] = sub[i]
		}
	}
	return params, true
}
