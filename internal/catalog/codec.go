package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a catalog file encoding.
type Format string

// Supported catalog encodings.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat maps a user-supplied name ("toml", "yaml", "yml", "json") to a
// Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Decode reads a Definition encoded as f. Unknown fields are rejected so
// that typos in a catalog file surface instead of being silently dropped.
// An empty document decodes to an empty Definition.
func Decode(r io.Reader, f Format) (*Definition, error) {
	var def Definition
	var err error
	switch f {
	case FormatTOML:
		err = toml.NewDecoder(r).DisallowUnknownFields().Decode(&def)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&def)
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&def)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s catalog: %w", f, err)
	}
	return &def, nil
}

// Encode writes def to w encoded as f.
func Encode(w io.Writer, def *Definition, f Format) error {
	switch f {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(def); err != nil {
			return fmt.Errorf("encoding toml catalog: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(def); err != nil {
			return fmt.Errorf("encoding yaml catalog: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml catalog: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(def); err != nil {
			return fmt.Errorf("encoding json catalog: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return nil
}
