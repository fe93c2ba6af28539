// FILE: lixenwraith/confchain/decode.go
package confchain

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/lixenwraith/confchain/codec"
)

var (
	chainType = reflect.TypeFor[Chain]()
	valueType = reflect.TypeFor[Value]()
	inputType = reflect.TypeFor[Input]()
)

// DecodeHook converts chain expressions found in decoded documents into
// *Chain, Chain, Value or Input fields. Strings without a kind prefix and
// scalar numbers or booleans are taken as literal values.
//
//	type Settings struct {
//	    Password *confchain.Chain `yaml:"password"` // "env:DB_PASS | file:/run/secrets/db"
//	}
//	c := codec.YAML(codec.WithDecodeHook(sources.DecodeHook()))
func (s *Sources) DecodeHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		switch f.Kind() {
		case reflect.String, reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
		default:
			return data, nil
		}

		isPtr := t.Kind() == reflect.Pointer
		target := t
		if isPtr {
			target = t.Elem()
		}
		if target != chainType && t != valueType && target != inputType {
			return data, nil
		}

		var (
			expr  string
			chain *Chain
		)
		if f.Kind() == reflect.String {
			expr = reflect.ValueOf(data).String()
			var err error
			if chain, err = s.decodeChain(expr); err != nil {
				return nil, err
			}
		} else {
			// Numbers and booleans are literals
			expr = fmt.Sprint(data)
			chain = s.New().Value(expr)
		}

		switch {
		case t == valueType:
			return chain, nil
		case target == inputType:
			in, err := chain.Input()
			if err != nil {
				return nil, fmt.Errorf("resolve %q: %w", expr, err)
			}
			if isPtr {
				return &in, nil
			}
			return in, nil
		case isPtr:
			return chain, nil
		default:
			return *chain, nil
		}
	}
}

// decodeChain parses expr when its first alternative has a kind prefix,
// otherwise wraps it as a literal
func (s *Sources) decodeChain(expr string) (*Chain, error) {
	first, _, _ := strings.Cut(expr, ChainSeparator)
	if !hasKindPrefix(first) {
		return s.New().Value(expr), nil
	}
	return s.ParseChain(expr)
}

func hasKindPrefix(expr string) bool {
	kind, _, found := strings.Cut(strings.TrimSpace(expr), ":")
	if !found {
		return false
	}
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindEnv, KindProperty, KindRaw, KindFile, KindResource, KindURL, "prop", "raw", "res":
		return true
	}
	return false
}

// DecodeValue deserializes the content of v into target with c
func DecodeValue(v Value, c *codec.Codec, target any) error {
	content, err := v.Get()
	if err != nil {
		return err
	}
	if err := c.Deserialize(content, target); err != nil {
		return fmt.Errorf("decode %s: %w", v, err)
	}
	return nil
}
