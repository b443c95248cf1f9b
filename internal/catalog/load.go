package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed builtin.toml
var builtinTOML []byte

// BuiltinDefinition returns a fresh copy of the embedded default catalog.
func BuiltinDefinition() (*Definition, error) {
	def, err := Decode(bytes.NewReader(builtinTOML), FormatTOML)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return def, nil
}

// Builtin builds the embedded default catalog.
func Builtin(opts ...Option) (*Catalog, error) {
	def, err := BuiltinDefinition()
	if err != nil {
		return nil, err
	}
	return Build(def, opts...)
}

// Load reads a catalog definition from path, inferring the encoding from
// the file extension. An empty path or a file that does not exist yields
// the built-in definition, allowing callers to run without a catalog file.
func Load(path string) (*Definition, error) {
	if path == "" {
		return BuiltinDefinition()
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return BuiltinDefinition()
		}
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	def, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Open loads and builds the catalog at path.
func Open(path string, opts ...Option) (*Catalog, error) {
	def, err := Load(path)
	if err != nil {
		return nil, err
	}
	c, err := Build(def, opts...)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", displayPath(path), err)
	}
	return c, nil
}

// Save writes def to path in the encoding implied by its extension,
// creating parent directories as needed.
func Save(path string, def *Definition) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, def, format); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing catalog %s: %w", path, err)
	}
	return nil
}

func displayPath(path string) string {
	if path == "" {
		return "(built-in)"
	}
	return path
}
