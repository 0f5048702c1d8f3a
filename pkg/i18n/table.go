package i18n

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/i18nrouter/pkg/cache"
)

// maxLangCodeLength is the maximum allowed length for a language code
const maxLangCodeLength = 35 // RFC 5646 recommends 35 characters max

// TableOption configures a Table.
type TableOption func(*Table)

// WithPortStripping makes domain lookups ignore a ":port" suffix on the host.
// By default hosts are compared verbatim.
func WithPortStripping() TableOption {
	return func(t *Table) { t.stripPort = true }
}

// WithNegotiationCache memoizes Accept-Language negotiation for up to size
// distinct headers per table. Non-positive sizes disable the cache.
func WithNegotiationCache(size int) TableOption {
	return func(t *Table) {
		if size > 0 {
			t.negotiated = cache.NewLRUCache[negotiationKey, negotiation](size)
		}
	}
}

// Table is the immutable lookup structure built from a Config. The optional
// negotiation cache is internal and does not change results.
type Table struct {
	cfg        Config
	canonical  map[string]string
	domains    map[string]int
	allowed    [][]string
	stripPort  bool
	negotiated *cache.LRUCache[negotiationKey, negotiation]
}

// scope is the locale universe a request is resolved in: a domain binding or the
// global configuration.
type scope struct {
	// index is the domain position, or -1 for the global scope.
	index         int
	domain        *Domain
	allowed       []string
	defaultLocale string
}

type negotiationKey struct {
	scope  int
	header string
}

type negotiation struct {
	locale string
	ok     bool
}

// NewTable validates cfg and builds a Table from it.
func NewTable(cfg Config, opts ...TableOption) (*Table, error) {
	cfg = cfg.Clone()

	if len(cfg.Locales) == 0 {
		return nil, ErrNoLocales
	}

	t := &Table{
		cfg:       cfg,
		canonical: make(map[string]string, len(cfg.Locales)),
		domains:   make(map[string]int, len(cfg.Domains)),
		allowed:   make([][]string, len(cfg.Domains)),
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, tag := range cfg.Locales {
		if err := checkTag(tag); err != nil {
			return nil, err
		}
		key := fold(tag)
		if prev, dup := t.canonical[key]; dup {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateLocale, prev, tag)
		}
		t.canonical[key] = tag
	}

	if _, ok := t.canonical[fold(cfg.DefaultLocale)]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefaultLocale, cfg.DefaultLocale)
	}
	t.cfg.DefaultLocale = t.canonical[fold(cfg.DefaultLocale)]

	for i, d := range cfg.Domains {
		if err := checkDomain(d.Domain); err != nil {
			return nil, err
		}
		if _, dup := t.domains[d.Domain]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDomain, d.Domain)
		}
		t.domains[d.Domain] = i

		allowed, err := t.domainLocales(d)
		if err != nil {
			return nil, err
		}
		t.allowed[i] = allowed
	}

	return t, nil
}

// domainLocales returns the allowed set of d: its default first, then its listed
// locales in configured order, duplicates removed.
func (t *Table) domainLocales(d Domain) ([]string, error) {
	tags := append([]string{d.DefaultLocale}, d.Locales...)
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		canon, ok := t.canonical[fold(tag)]
		if !ok {
			return nil, fmt.Errorf("%w: domain %q lists %q", ErrUnknownLocale, d.Domain, tag)
		}
		if _, dup := seen[fold(canon)]; dup {
			continue
		}
		seen[fold(canon)] = struct{}{}
		out = append(out, canon)
	}
	return out, nil
}

// LookupDomain returns the domain binding for host, matched by exact hostname.
func (t *Table) LookupDomain(host string) (Domain, bool) {
	if t == nil {
		return Domain{}, false
	}
	idx, ok := t.domainIndex(host)
	if !ok {
		return Domain{}, false
	}
	d := t.cfg.Domains[idx]
	d.Locales = cloneStrings(d.Locales)
	return d, true
}

// IsKnownLocale reports whether tag is configured, ignoring case.
func (t *Table) IsKnownLocale(tag string) bool {
	_, ok := t.Canonical(tag)
	return ok
}

// Canonical returns tag in its configured casing. The match ignores case only;
// surrounding whitespace makes tag unknown.
func (t *Table) Canonical(tag string) (string, bool) {
	if t == nil || tag == "" || len(tag) > maxLangCodeLength {
		return "", false
	}
	canon, ok := t.canonical[strings.ToLower(tag)]
	return canon, ok
}

// AllLocales returns the configured locales in configured order.
func (t *Table) AllLocales() []string {
	if t == nil {
		return nil
	}
	return cloneStrings(t.cfg.Locales)
}

// DefaultLocale returns the global default locale.
func (t *Table) DefaultLocale() string {
	if t == nil {
		return ""
	}
	return t.cfg.DefaultLocale
}

// Detection reports whether cookie and Accept-Language detection is enabled.
func (t *Table) Detection() bool {
	return t != nil && t.cfg.LocaleDetection
}

// AllowedLocales returns the locales allowed for host: the domain's set when the
// host has a binding, all configured locales otherwise.
func (t *Table) AllowedLocales(host string) []string {
	if t == nil {
		return nil
	}
	return cloneStrings(t.scope(host).allowed)
}

// Config returns a copy of the configuration the table was built from.
func (t *Table) Config() Config {
	if t == nil {
		return Config{}
	}
	return t.cfg.Clone()
}

func (t *Table) scope(host string) scope {
	if idx, ok := t.domainIndex(host); ok {
		d := t.cfg.Domains[idx]
		return scope{index: idx, domain: &d, allowed: t.allowed[idx], defaultLocale: t.allowed[idx][0]}
	}
	return scope{index: -1, allowed: t.cfg.Locales, defaultLocale: t.cfg.DefaultLocale}
}

// negotiate runs Negotiate against the scope's allowed set, through the cache
// when one is configured.
func (t *Table) negotiate(sc scope, header string) (string, bool) {
	if t.negotiated == nil || header == "" || len(header) > maxAcceptLanguageLength {
		return Negotiate(header, sc.allowed)
	}
	n := t.negotiated.GetOrCompute(negotiationKey{scope: sc.index, header: header}, func() negotiation {
		locale, ok := Negotiate(header, sc.allowed)
		return negotiation{locale: locale, ok: ok}
	})
	return n.locale, n.ok
}

// NegotiationStats reports negotiation cache hits and misses. It is zero when
// the table has no cache.
func (t *Table) NegotiationStats() cache.Stats {
	if t == nil || t.negotiated == nil {
		return cache.Stats{}
	}
	return t.negotiated.Stats()
}

func (t *Table) domainIndex(host string) (int, bool) {
	if host == "" || len(t.domains) == 0 {
		return 0, false
	}
	if t.stripPort {
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
	}
	idx, ok := t.domains[host]
	return idx, ok
}

// checkTag rejects empty, oversized and syntactically malformed BCP 47 tags.
// Well-formed tags with unregistered subtags ("go", "do-BE") are accepted.
func checkTag(tag string) error {
	if tag == "" || len(tag) > maxLangCodeLength {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, tag)
	}
	if _, err := language.Parse(tag); err != nil {
		var unknown language.ValueError
		if !errors.As(err, &unknown) {
			return fmt.Errorf("%w: %q: %v", ErrInvalidLocale, tag, err)
		}
	}
	return nil
}

func checkDomain(host string) error {
	if host == "" || strings.ContainsAny(host, "/ ") || strings.Contains(host, "://") {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, host)
	}
	return nil
}

// fold normalizes a tag for comparison.
func fold(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
