// FILE: lixenwraith/confchain/codec/codec.go
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/confchain/reflection"
)

var (
	// ErrUnsupportedFormat is returned for unknown or undetectable formats
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrSchemaViolation is returned when a document fails schema validation
	ErrSchemaViolation = errors.New("schema violation")
	// ErrInvalidTarget is returned when a decode target is not a non-nil pointer
	ErrInvalidTarget = errors.New("invalid decode target")
)

// InjectTag marks struct fields that receive registered dependencies after decoding
const InjectTag = "inject"

// Codec serializes values to and deserializes documents from one format.
// Documents are parsed into a generic tree, optionally validated against a JSON
// schema, then decoded into the target with mapstructure.
type Codec struct {
	format  Format
	tagName string
	strict  bool
	pretty  bool
	hooks   []mapstructure.DecodeHookFunc
	schema  *jsonschema.Schema
	deps    *reflection.Context
	depsSet bool
	err     error
}

// Option configures a Codec
type Option func(*Codec)

// New creates a codec for format
func New(format Format, opts ...Option) (*Codec, error) {
	switch format {
	case FormatJSON, FormatYAML, FormatTOML, FormatXML:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	c := &Codec{
		format:  format,
		tagName: string(format),
		deps:    reflection.NewContext(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// JSON creates a JSON codec
func JSON(opts ...Option) *Codec {
	c, _ := New(FormatJSON, opts...)
	return c
}

// YAML creates a YAML codec
func YAML(opts ...Option) *Codec {
	c, _ := New(FormatYAML, opts...)
	return c
}

// TOML creates a TOML codec
func TOML(opts ...Option) *Codec {
	c, _ := New(FormatTOML, opts...)
	return c
}

// XML creates an XML codec
func XML(opts ...Option) *Codec {
	c, _ := New(FormatXML, opts...)
	return c
}

// WithTagName sets the struct tag consulted when decoding (default: the format name)
func WithTagName(tag string) Option {
	return func(c *Codec) {
		c.tagName = tag
	}
}

// Strict makes decoding fail on document keys with no matching target field.
// Unknown keys are ignored by default.
func Strict() Option {
	return func(c *Codec) {
		c.strict = true
	}
}

// Pretty indents JSON and XML output
func Pretty() Option {
	return func(c *Codec) {
		c.pretty = true
	}
}

// WithDecodeHook adds a mapstructure hook run before the built-in hooks
func WithDecodeHook(hook mapstructure.DecodeHookFunc) Option {
	return func(c *Codec) {
		c.hooks = append(c.hooks, hook)
	}
}

// WithSchema validates every document against the given JSON schema text
func WithSchema(schema string) Option {
	return func(c *Codec) {
		if c.err != nil {
			return
		}
		compiled, err := compileSchema(schema)
		if err != nil {
			c.err = err
			return
		}
		c.schema = compiled
	}
}

// WithSchemaFile validates every document against a JSON schema file
func WithSchemaFile(path string) Option {
	return func(c *Codec) {
		if c.err != nil {
			return
		}
		compiler := jsonschema.NewCompiler()
		compiled, err := compiler.Compile(path)
		if err != nil {
			c.err = fmt.Errorf("compile schema '%s': %w", path, err)
			return
		}
		c.schema = compiled
	}
}

// WithDependency injects v into zero-valued fields tagged `inject` whose type
// accepts it
func WithDependency(v any) Option {
	return func(c *Codec) {
		c.deps.When(reflection.And(reflection.Tagged(InjectTag), reflection.Accepts(reflect.TypeOf(v))), v)
		c.depsSet = true
	}
}

// WithNamedDependency injects v into zero-valued fields tagged `inject:"name"`
func WithNamedDependency(name string, v any) Option {
	return func(c *Codec) {
		c.deps.When(reflection.TaggedWith(InjectTag, name), v)
		c.depsSet = true
	}
}

// Format returns the codec's format
func (c *Codec) Format() Format {
	return c.format
}

// Err returns any error recorded while applying options
func (c *Codec) Err() error {
	return c.err
}

// Serialize encodes v as a string
func (c *Codec) Serialize(v any) (string, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Marshal encodes v
func (c *Codec) Marshal(v any) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}

	switch c.format {
	case FormatJSON:
		if c.pretty {
			return json.MarshalIndent(v, "", "  ")
		}
		return json.Marshal(v)
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode TOML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatXML:
		return marshalXML(v, c.pretty)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.format)
}

// Deserialize decodes a document string into target
func (c *Codec) Deserialize(s string, target any) error {
	return c.DeserializeBytes([]byte(s), target)
}

// DeserializeReader decodes a document read from r into target
func (c *Codec) DeserializeReader(r io.Reader, target any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read %s document: %w", c.format, err)
	}
	return c.DeserializeBytes(data, target)
}

// DeserializeFile decodes the file at path into target
func (c *Codec) DeserializeFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	if err := c.DeserializeBytes(data, target); err != nil {
		return fmt.Errorf("file '%s': %w", path, err)
	}
	return nil
}

// DeserializeBytes decodes a document into target, which must be a non-nil pointer
func (c *Codec) DeserializeBytes(data []byte, target any) error {
	if c.err != nil {
		return c.err
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: must be non-nil pointer, got %T", ErrInvalidTarget, target)
	}

	doc, err := c.Parse(data)
	if err != nil {
		return err
	}

	if err := c.validate(doc); err != nil {
		return err
	}

	if err := c.decode(doc, target); err != nil {
		return err
	}

	if c.depsSet && rv.Elem().Kind() == reflect.Struct {
		if err := c.deps.Fill(target, reflection.FieldTagged(InjectTag)); err != nil {
			return fmt.Errorf("dependency injection failed: %w", err)
		}
	}
	return nil
}

// Parse decodes a document into a generic tree of maps, slices and scalars
func (c *Codec) Parse(data []byte) (any, error) {
	switch c.format {
	case FormatJSON:
		var doc any
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return plain(doc), nil
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return doc, nil
	case FormatTOML:
		doc := make(map[string]any)
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		return doc, nil
	case FormatXML:
		return parseXML(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.format)
}

// decode maps the generic tree onto target
func (c *Codec) decode(doc any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          c.tagName,
		WeaklyTypedInput: true,
		ErrorUnused:      c.strict,
		DecodeHook:       c.decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("decode %s into %T failed: %w", c.format, target, err)
	}
	return nil
}

// Convert parses data in one format and re-encodes it in another
func Convert(data []byte, from, to *Codec) ([]byte, error) {
	doc, err := from.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := from.validate(doc); err != nil {
		return nil, err
	}
	return to.Marshal(doc)
}

// Decode is a typed shorthand for DeserializeBytes
func Decode[T any](c *Codec, data []byte) (T, error) {
	var v T
	err := c.DeserializeBytes(data, &v)
	return v, err
}
