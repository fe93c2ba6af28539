// FILE: lixenwraith/confchain/loader.go
package confchain

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/confchain/codec"
	"github.com/lixenwraith/confchain/internal/tree"
)

// LoadArgs defines properties from command-line style arguments and returns the
// arguments that are not property definitions.
//
// Accepted forms: -Dkey=value, --key=value, and bare -Dflag or --flag (set to "true").
// A value is never taken from the following argument, so "--verbose file" sets
// verbose and returns file.
// A bare "--" ends property parsing; everything after it is returned untouched.
func (p *Properties) LoadArgs(args []string) ([]string, error) {
	parsed, rest, err := parseArgs(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
	}

	for key, value := range parsed {
		p.Set(key, value)
	}
	return rest, nil
}

// LoadFile defines properties from a TOML, YAML or JSON document.
// Nested tables are flattened to dot-notation keys; list values are joined with ", ".
func (p *Properties) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read properties file '%s': %w", path, err)
	}

	format, err := codec.Resolve(path, data)
	if err != nil {
		return err
	}
	c, err := codec.New(format)
	if err != nil {
		return err
	}

	doc, err := c.Parse(data)
	if err != nil {
		return fmt.Errorf("properties file '%s': %w", path, err)
	}

	table, ok := doc.(map[string]any)
	if !ok {
		return fmt.Errorf("properties file '%s' must hold a table, got %T", path, doc)
	}

	flat := tree.Flatten(table, "")
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, value := range flat {
		p.values[key] = stringify(value)
	}
	return nil
}

// parseArgs splits property definitions from other arguments
func parseArgs(args []string) (map[string]string, []string, error) {
	result := make(map[string]string)
	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		var key, value string
		switch {
		case arg == "--":
			rest = append(rest, args[i+1:]...)
			return result, rest, nil

		case strings.HasPrefix(arg, "-D"):
			definition := strings.TrimPrefix(arg, "-D")
			k, v, found := strings.Cut(definition, "=")
			if !found {
				v = "true"
			}
			key, value = k, v

		case strings.HasPrefix(arg, "--"):
			content := strings.TrimPrefix(arg, "--")
			k, v, found := strings.Cut(content, "=")
			if !found {
				v = "true"
			}
			key, value = k, v

		default:
			rest = append(rest, arg)
			continue
		}

		if !tree.ValidPath(key) {
			return nil, nil, fmt.Errorf("invalid property key %q in argument %q", key, arg)
		}
		result[key] = value
	}

	return result, rest, nil
}

// stringify renders a parsed document scalar as property text
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
