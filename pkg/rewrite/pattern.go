package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultSegment matches a single path segment.
const defaultSegment = `[^/]+`

type token struct {
	literal    string
	name       string
	modifier   byte
	constraint string
}

func (t token) isParam() bool { return t.name != "" }

// parseSource splits a source pattern into literal and parameter tokens.
func parseSource(src string) ([]token, error) {
	if !strings.HasPrefix(src, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidSource, src)
	}

	trimmed := strings.TrimSuffix(src[1:], "/")
	if trimmed == "" {
		return nil, nil
	}

	segments := strings.Split(trimmed, "/")
	tokens := make([]token, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))

	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: %q contains an empty segment", ErrInvalidSource, src)
		}
		if seg[0] != ':' {
			tokens = append(tokens, token{literal: seg})
			continue
		}

		tok, err := parseParam(seg)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[tok.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParam, tok.name)
		}
		seen[tok.name] = struct{}{}
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// parseParam parses ":name", ":name?", ":name*", ":name+" and ":name(regex)" forms.
func parseParam(seg string) (token, error) {
	name, rest := scanName(seg[1:])
	if name == "" {
		return token{}, fmt.Errorf("%w: %q has no parameter name", ErrInvalidSource, seg)
	}

	tok := token{name: name}

	if strings.HasPrefix(rest, "(") {
		end := strings.LastIndexByte(rest, ')')
		if end <= 1 {
			return token{}, fmt.Errorf("%w: %q", ErrInvalidPattern, seg)
		}
		tok.constraint = rest[1:end]
		if _, err := regexp.Compile(tok.constraint); err != nil {
			return token{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, seg, err)
		}
		rest = rest[end+1:]
	}

	switch rest {
	case "":
	case "?", "*", "+":
		tok.modifier = rest[0]
	default:
		return token{}, fmt.Errorf("%w: unexpected %q after parameter %q", ErrInvalidSource, rest, name)
	}

	return tok, nil
}

// scanName returns the leading identifier of s and the remainder.
func scanName(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		isLetter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if isLetter || (isDigit && i > 0) {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

// buildRegex converts tokens into an anchored, case-insensitive expression.
func buildRegex(tokens []token) string {
	var b strings.Builder
	b.WriteString("(?i)^")

	for _, t := range tokens {
		if !t.isParam() {
			b.WriteString("/")
			b.WriteString(regexp.QuoteMeta(t.literal))
			continue
		}

		seg := defaultSegment
		if t.constraint != "" {
			seg = "(?:" + t.constraint + ")"
		}
		group := "(?P<" + t.name + ">"

		switch t.modifier {
		case '?':
			b.WriteString("(?:/" + group + seg + "))?")
		case '*':
			b.WriteString("(?:/" + group + seg + "(?:/" + seg + ")*))?")
		case '+':
			b.WriteString("/" + group + seg + "(?:/" + seg + ")*)")
		default:
			b.WriteString("/" + group + seg + ")")
		}
	}

	b.WriteString("/?$")
	return b.String()
}

// destPart is either a literal chunk or a parameter reference of a destination.
type destPart struct {
	literal string
	param   string
	query   bool
}

// parseDestination splits a destination template into literal and parameter parts.
// For absolute URLs the scheme and authority are kept literal so ports are never
// mistaken for parameters. Modifiers are only read in the path; the first "?"
// that is not a parameter modifier starts the query.
func parseDestination(dest string) ([]destPart, bool, error) {
	external := strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://")
	if !external && !strings.HasPrefix(dest, "/") {
		return nil, false, fmt.Errorf("%w: %q must be a path or an absolute http(s) URL", ErrInvalidDestination, dest)
	}

	var parts []destPart
	body := dest
	if external {
		schemeEnd := strings.Index(dest, "://") + 3
		pathStart := strings.IndexAny(dest[schemeEnd:], "/?")
		if pathStart < 0 {
			return []destPart{{literal: dest}}, true, nil
		}
		parts = append(parts, destPart{literal: dest[:schemeEnd+pathStart]})
		body = dest[schemeEnd+pathStart:]
	}

	path, query := splitDestQuery(body)
	parts = append(parts, tokenizeDest(path, false)...)
	if query != "" {
		parts = append(parts, tokenizeDest(query, true)...)
	}

	return parts, external, nil
}

// splitDestQuery separates the path of a destination from its query, which keeps
// its leading "?". A "?" directly after a parameter is a modifier only when the
// segment ends there.
func splitDestQuery(body string) (string, string) {
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '?':
			return body[:i], body[i:]
		case ':':
			name, rest := scanName(body[i+1:])
			if name == "" {
				continue
			}
			i += len(name)
			if rest == "" {
				continue
			}
			switch {
			case rest[0] == '*' || rest[0] == '+':
				i++
			case rest[0] == '?' && (len(rest) == 1 || rest[1] == '/'):
				i++
			}
		}
	}
	return body, ""
}

// tokenizeDest splits s into literal and parameter parts. Outside the query a
// modifier after a parameter name is consumed.
func tokenizeDest(s string, query bool) []destPart {
	var parts []destPart
	var lit strings.Builder
	for i := 0; i < len(s); {
		if s[i] != ':' {
			lit.WriteByte(s[i])
			i++
			continue
		}
		name, rest := scanName(s[i+1:])
		if name == "" {
			lit.WriteByte(s[i])
			i++
			continue
		}
		if lit.Len() > 0 {
			parts = append(parts, destPart{literal: lit.String(), query: query})
			lit.Reset()
		}
		parts = append(parts, destPart{param: name, query: query})
		i += 1 + len(name)
		if !query && rest != "" && strings.IndexByte("?*+", rest[0]) >= 0 {
			i++
		}
	}
	if lit.Len() > 0 {
		parts = append(parts, destPart{literal: lit.String(), query: query})
	}
	return parts
}

// render substitutes params into the destination parts. An empty path parameter
// drops the slash that precedes it.
func render(parts []destPart, params map[string]string) string {
	var b strings.Builder
	for _, p := range parts {
		if p.param == "" {
			b.WriteString(p.literal)
			continue
		}
		v := params[p.param]
		if v == "" && !p.query {
			s := strings.TrimSuffix(b.String(), "/")
			b.Reset()
			b.WriteString(s)
			continue
		}
		b.WriteString(v)
	}
	out := b.String()
	if out == "" || out[0] == '?' {
		return "/" + out
	}
	return out
}
