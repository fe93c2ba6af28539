// FILE: lixenwraith/confchain/codec/format.go
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/clbanning/mxj/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding
type Format string

const (
	// FormatJSON is encoded with encoding/json
	FormatJSON Format = "json"
	// FormatYAML is encoded with gopkg.in/yaml.v3
	FormatYAML Format = "yaml"
	// FormatTOML is encoded with github.com/BurntSushi/toml
	FormatTOML Format = "toml"
	// FormatXML is parsed with github.com/clbanning/mxj/v2
	FormatXML Format = "xml"
)

// Formats lists the supported formats
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatXML}

// ParseFormat accepts a format name or common alias ("yml", "tml")
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml", "tml":
		return FormatTOML, nil
	case "xml":
		return FormatXML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatForPath determines format from file extension, empty when unknown
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".xml":
		return FormatXML
	default:
		// .conf, .config and friends need content detection
		return ""
	}
}

// DetectFormat attempts to detect format by parsing, empty when nothing parses
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ""
	}

	if trimmed[0] == '<' {
		if _, err := mxj.NewMapXml(trimmed); err == nil {
			return FormatXML
		}
		return ""
	}

	// JSON first (strict), then TOML, then YAML which accepts almost any text
	var parsed any
	if json.Unmarshal(trimmed, &parsed) == nil {
		return FormatJSON
	}

	var table map[string]any
	if toml.Unmarshal(trimmed, &table) == nil {
		return FormatTOML
	}

	var doc map[string]any
	if yaml.Unmarshal(trimmed, &doc) == nil && len(doc) > 0 {
		return FormatYAML
	}

	return ""
}

// Resolve picks the format for a document: the path extension first,
// then content detection
func Resolve(path string, data []byte) (Format, error) {
	if f := FormatForPath(path); f != "" {
		return f, nil
	}
	if f := DetectFormat(data); f != "" {
		return f, nil
	}
	return "", fmt.Errorf("%w: unable to determine format of '%s'", ErrUnsupportedFormat, path)
}
