package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength caps how much of an Accept-Language header is parsed.
const maxAcceptLanguageLength = 4096

// langWithQ represents a language tag with its quality value
type langWithQ struct {
	lang string
	q    float64
}

// parseAcceptLanguageHeader parses Accept-Language headers according to RFC 7231.
// Entries with q=0 are not acceptable and the "*" wildcard carries no tag, so both
// are dropped. The result is ordered by quality; equal qualities keep header order.
func parseAcceptLanguageHeader(header string) []langWithQ {
	if header == "" {
		return nil
	}

	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var languages []langWithQ

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		langAndQ := strings.Split(part, ";")
		lang := fold(langAndQ[0])
		q := 1.0

		if len(langAndQ) > 1 {
			qPart := strings.ToLower(strings.TrimSpace(langAndQ[1]))
			if strings.HasPrefix(qPart, "q=") {
				if qVal, err := strconv.ParseFloat(strings.TrimSpace(qPart[2:]), 64); err == nil && qVal >= 0 && qVal <= 1 {
					q = qVal
				}
			}
		}

		if lang == "" || lang == "*" || q == 0 || len(lang) > maxLangCodeLength {
			continue
		}
		languages = append(languages, langWithQ{lang: lang, q: q})
	}

	slices.SortStableFunc(languages, func(a, b langWithQ) int {
		return cmp.Compare(b.q, a.q)
	})

	return languages
}

// matchLevels are tried in order within one quality tier.
var matchLevels = []func(pref, allowed string) bool{
	// exact: en-US == en-US
	func(pref, allowed string) bool { return pref == allowed },
	// region dropped: fr-CA -> fr
	func(pref, allowed string) bool {
		base := baseLanguage(pref)
		return base != pref && base == allowed
	},
	// same language: nl -> nl-NL
	func(pref, allowed string) bool { return baseLanguage(pref) == baseLanguage(allowed) },
}

// Negotiate picks the best locale from allowed for an Accept-Language header.
//
// Preferences are grouped into tiers of equal quality, highest first. Within a
// tier an exact match beats a region-stripped match, which beats a same-language
// match; among candidates of the same kind the one listed first in allowed wins.
// The returned tag uses the casing from allowed.
func Negotiate(header string, allowed []string) (string, bool) {
	prefs := parseAcceptLanguageHeader(header)
	if len(prefs) == 0 || len(allowed) == 0 {
		return "", false
	}

	folded := make([]string, len(allowed))
	for i, a := range allowed {
		folded[i] = fold(a)
	}

	for start := 0; start < len(prefs); {
		end := start
		for end < len(prefs) && prefs[end].q == prefs[start].q {
			end++
		}
		tier := prefs[start:end]

		for _, level := range matchLevels {
			best := -1
			for _, p := range tier {
				for i, a := range folded {
					if level(p.lang, a) {
						if best < 0 || i < best {
							best = i
						}
						break
					}
				}
			}
			if best >= 0 {
				return allowed[best], true
			}
		}

		start = end
	}

	return "", false
}

// baseLanguage returns the primary language subtag of a folded tag.
func baseLanguage(tag string) string {
	if idx := strings.IndexByte(tag, '-'); idx > 0 {
		return tag[:idx]
	}
	return tag
}
