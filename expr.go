// FILE: lixenwraith/confchain/expr.go
package confchain

import (
	"fmt"
	"strings"
)

// ChainSeparator separates alternatives in a chain expression
const ChainSeparator = "|"

// Parse builds a Value from a "kind:argument" expression.
//
//	env:HOME            environment variable
//	property:app.name   property (alias: prop)
//	file:/etc/app.toml  local file
//	resource:app.toml   bundled resource (alias: res)
//	url:https://host/x  remote content
//	value:literal       literal (alias: raw)
//
// A single expression may contain "|"; only ParseChain splits on it.
func (s *Sources) Parse(expr string) (Value, error) {
	kind, arg, found := strings.Cut(strings.TrimSpace(expr), ":")
	if !found {
		return nil, fmt.Errorf("%w: expression %q lacks a kind prefix", ErrMalformedSource, expr)
	}

	name := strings.TrimSpace(arg)
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindEnv:
		return s.Env(name), nil
	case KindProperty, "prop":
		return s.Property(name), nil
	case KindRaw, "raw":
		// Literals keep whitespace after the colon
		return s.Raw(arg), nil
	case KindFile:
		return s.File(name), nil
	case KindResource, "res":
		return s.Resource(name), nil
	case KindURL:
		return s.URL(name)
	}
	return nil, fmt.Errorf("%w: unknown kind %q in expression %q", ErrMalformedSource, kind, expr)
}

// ParseChain builds a chain from expressions separated by "|", highest priority first:
//
//	env:DB_PASSWORD | file:/run/secrets/db | value:changeme
//
// Every "|" separates alternatives and there is no escape, so literals and URLs
// containing "|" must be built with Value or URL instead.
func (s *Sources) ParseChain(spec string) (*Chain, error) {
	chain := s.New()
	for _, expr := range strings.Split(spec, ChainSeparator) {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		v, err := s.Parse(expr)
		if err != nil {
			return nil, err
		}
		chain = chain.Or(v)
	}
	return chain, nil
}

// Parse builds a Value through the default Sources
func Parse(expr string) (Value, error) {
	return Default().Parse(expr)
}

// ParseChain builds a chain through the default Sources
func ParseChain(spec string) (*Chain, error) {
	return Default().ParseChain(spec)
}
