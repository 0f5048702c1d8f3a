package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrymomot/i18nrouter/pkg/i18n"
	"github.com/dmitrymomot/i18nrouter/pkg/rewrite"
)

// Version is the manifest document format version.
const Version = 1

// Route is the serialized form of a rewrite rule.
type Route struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Regex       string `json:"regex"`
	HasLocale   bool   `json:"hasLocale"`
}

// Rewrites lists serialized rules per phase. Lists are never null.
type Rewrites struct {
	BeforeFiles []Route `json:"beforeFiles"`
	AfterFiles  []Route `json:"afterFiles"`
	Fallback    []Route `json:"fallback"`
}

// Document is the serialized routing manifest.
type Document struct {
	Version  int          `json:"version"`
	BasePath string       `json:"basePath"`
	I18n     *i18n.Config `json:"i18n,omitempty"`
	Rewrites Rewrites     `json:"rewrites"`
}

// Document returns the serializable form of m.
func (m *Manifest) Document() Document {
	doc := Document{
		Version:  Version,
		BasePath: m.basePath,
		Rewrites: Rewrites{
			BeforeFiles: routes(m.matcher, rewrite.PhaseBeforeFiles),
			AfterFiles:  routes(m.matcher, rewrite.PhaseAfterFiles),
			Fallback:    routes(m.matcher, rewrite.PhaseFallback),
		},
	}
	if m.i18nCfg != nil {
		cfg := m.i18nCfg.Clone()
		doc.I18n = &cfg
	}
	return doc
}

func routes(m *rewrite.Matcher, phase rewrite.Phase) []Route {
	compiled := m.Rules(phase)
	out := make([]Route, len(compiled))
	for i, c := range compiled {
		out[i] = Route{
			Source:      c.Source,
			Destination: c.Destination,
			Regex:       c.Regex,
			HasLocale:   c.HasLocale,
		}
	}
	return out
}

// Encode writes the manifest as indented JSON followed by a newline. The same
// manifest always produces the same bytes.
func (m *Manifest) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m.Document()); err != nil {
		return errors.Join(ErrFailedToEncode, err)
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the Encode format.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Parse decodes a manifest document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Join(ErrFailedToParseManifest, err)
	}
	if doc.Version != Version {
		return Document{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	return doc, nil
}

// Input converts a document back into build input. Compiled regexes are dropped;
// they are derived from the sources again on build.
func (d Document) Input() Input {
	in := Input{
		BasePath: d.BasePath,
		Rewrites: rewrite.RuleSet{
			BeforeFiles: rules(d.Rewrites.BeforeFiles),
			AfterFiles:  rules(d.Rewrites.AfterFiles),
			Fallback:    rules(d.Rewrites.Fallback),
		},
	}
	if d.I18n != nil {
		cfg := d.I18n.Clone()
		in.I18n = &cfg
	}
	return in
}

func rules(routes []Route) []rewrite.Rule {
	if len(routes) == 0 {
		return nil
	}
	out := make([]rewrite.Rule, len(routes))
	for i, r := range routes {
		out[i] = rewrite.Rule{Source: r.Source, Destination: r.Destination, HasLocale: r.HasLocale}
	}
	return out
}

// FromDocument rebuilds a Manifest from a parsed document.
func FromDocument(doc Document, opts ...i18n.TableOption) (*Manifest, error) {
	return Build(doc.Input(), opts...)
}
