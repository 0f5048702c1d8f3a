package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/i18nrouter/pkg/i18n"
	"github.com/dmitrymomot/i18nrouter/pkg/manifest"
	"github.com/dmitrymomot/i18nrouter/pkg/rewrite"
)

// Format is the encoding of a routing document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the document format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Document is the user-authored routing configuration.
type Document struct {
	BasePath string   `json:"basePath" yaml:"basePath"`
	I18n     *I18n    `json:"i18n,omitempty" yaml:"i18n,omitempty"`
	Rewrites Rewrites `json:"rewrites" yaml:"rewrites"`
}

// I18n mirrors i18n.Config with an optional LocaleDetection that defaults to
// true when omitted.
type I18n struct {
	Locales         []string      `json:"locales" yaml:"locales"`
	DefaultLocale   string        `json:"defaultLocale" yaml:"defaultLocale"`
	Domains         []i18n.Domain `json:"domains,omitempty" yaml:"domains,omitempty"`
	LocaleDetection *bool         `json:"localeDetection,omitempty" yaml:"localeDetection,omitempty"`
}

// Config converts the section into an i18n.Config.
func (c I18n) Config() i18n.Config {
	detection := true
	if c.LocaleDetection != nil {
		detection = *c.LocaleDetection
	}
	cfg := i18n.Config{
		Locales:         c.Locales,
		DefaultLocale:   c.DefaultLocale,
		Domains:         c.Domains,
		LocaleDetection: detection,
	}
	return cfg.Clone()
}

// Rewrites accepts either the phased object form or a bare list of rules.
// A bare list is treated as afterFiles.
type Rewrites rewrite.RuleSet

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rewrites) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rules []rewrite.Rule
		if err := json.Unmarshal(trimmed, &rules); err != nil {
			return err
		}
		*r = Rewrites{AfterFiles: rules}
		return nil
	}
	return json.Unmarshal(trimmed, (*rewrite.RuleSet)(r))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Rewrites) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var rules []rewrite.Rule
		if err := node.Decode(&rules); err != nil {
			return err
		}
		*r = Rewrites{AfterFiles: rules}
		return nil
	}
	return node.Decode((*rewrite.RuleSet)(r))
}

// Decode parses a routing document. Empty input yields an empty document.
func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, errors.Join(ErrDecodingDocument, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, errors.Join(ErrDecodingDocument, err)
		}
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return doc, nil
}

// ReadFile reads and decodes the routing document at path. The format follows
// the file extension.
func ReadFile(path string) (Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.Join(ErrReadingDocument, err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Input converts the document into manifest builder input.
func (d Document) Input() manifest.Input {
	in := manifest.Input{
		BasePath: d.BasePath,
		Rewrites: rewrite.RuleSet(d.Rewrites).Clone(),
	}
	if d.I18n != nil {
		cfg := d.I18n.Config()
		in.I18n = &cfg
	}
	return in
}

// LoadManifest reads the routing document at path and builds a manifest from it.
func LoadManifest(path string, opts ...i18n.TableOption) (*manifest.Manifest, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return manifest.Build(doc.Input(), opts...)
}
