package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// MaxFileSize is the largest manifest Load accepts.
const MaxFileSize = 1024 * 1024 // 1MB

// Format is a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("manifest: unsupported file extension %q", filepath.Ext(path))
	}
}

// Load reads and parses the manifest at path. The format is chosen by
// extension. Load does not validate the manifest.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("manifest: %s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("manifest: %s exceeds %d bytes", path, MaxFileSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to read %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("manifest: %s exceeds %d bytes", path, MaxFileSize)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return m, nil
}

// Parse decodes a manifest in the given format.
func Parse(data []byte, format Format) (*Manifest, error) {
	var parser koanf.Parser
	switch format {
	case FormatJSON:
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("manifest: invalid JSON: %w", err)
		}
		return &m, nil
	case FormatYAML:
		parser = yaml.Parser()
	case FormatTOML:
		parser = tomlParser{}
	default:
		return nil, fmt.Errorf("manifest: unsupported format %q", format)
	}

	// YAML and TOML are loaded through koanf and re-read through the JSON
	// model so that all formats share the lossless decoding.
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("manifest: invalid %s: %w", strings.ToUpper(string(format)), err)
	}
	raw, err := json.Marshal(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("manifest: invalid %s document: %w", strings.ToUpper(string(format)), err)
	}
	return &m, nil
}

// tomlParser adapts BurntSushi/toml to koanf.Parser.
type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(m map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
