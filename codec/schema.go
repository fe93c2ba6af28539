// FILE: lixenwraith/confchain/codec/schema.go
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const inlineSchemaURL = "inline://schema.json"

// compileSchema compiles JSON schema text
func compileSchema(schema string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(inlineSchemaURL, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(inlineSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}

// validate checks a parsed document against the configured schema
func (c *Codec) validate(doc any) error {
	if c.schema == nil {
		return nil
	}

	// Round-trip through JSON so YAML and TOML trees use JSON value types
	instance, err := jsonTree(doc)
	if err != nil {
		return fmt.Errorf("prepare document for validation: %w", err)
	}

	if err := c.schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
		}
		var causes []error
		collectSchemaErrors(ve, &causes)
		return fmt.Errorf("%w: %w", ErrSchemaViolation, errors.Join(causes...))
	}
	return nil
}

// collectSchemaErrors gathers the leaf causes of a validation failure
func collectSchemaErrors(err *jsonschema.ValidationError, result *[]error) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*result = append(*result, fmt.Errorf("at '%s': %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}

func jsonTree(doc any) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var tree any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// plain replaces json.Number values with int64 or float64
func plain(doc any) any {
	switch v := doc.(type) {
	case map[string]any:
		for key, value := range v {
			v[key] = plain(value)
		}
		return v
	case []any:
		for i, value := range v {
			v[i] = plain(value)
		}
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	}
	return doc
}
