package i18n

// Domain binds a hostname to a default locale and the locales served under it.
// The domain's own DefaultLocale is always allowed even when Locales omits it.
type Domain struct {
	Domain        string   `json:"domain" yaml:"domain"`
	DefaultLocale string   `json:"defaultLocale" yaml:"defaultLocale"`
	Locales       []string `json:"locales,omitempty" yaml:"locales,omitempty"`
	HTTP          bool     `json:"http,omitempty" yaml:"http,omitempty"`
}

// Config is the i18n section of the routing configuration. Slice order is
// significant and preserved everywhere it is reported.
type Config struct {
	Locales         []string `json:"locales"`
	DefaultLocale   string   `json:"defaultLocale"`
	Domains         []Domain `json:"domains,omitempty"`
	LocaleDetection bool     `json:"localeDetection"`
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Locales = cloneStrings(c.Locales)
	if c.Domains != nil {
		out.Domains = make([]Domain, len(c.Domains))
		for i, d := range c.Domains {
			d.Locales = cloneStrings(d.Locales)
			out.Domains[i] = d
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
