// FILE: lixenwraith/confchain/chain.go
package confchain

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Chain is an immutable, ordered list of Values. It resolves to the first Value
// that is set, scanning in order on every call; later Values are not consulted
// once one answers. An empty or fully unset chain resolves to NotSupplied.
//
// Builder methods never modify the receiver and return a new Chain. A malformed
// source (e.g. a bad URL) is recorded and reported by Err, Get and Resolve.
type Chain struct {
	sources *Sources
	values  []Value
	err     error
}

// Or returns a chain with v appended as the lowest priority fallback.
// A Chain argument contributes its own Values in order.
func (c *Chain) Or(v Value) *Chain {
	if other, ok := v.(*Chain); ok {
		next := c.with(other.values...)
		if next.err == nil {
			next.err = other.err
		}
		return next
	}
	return c.with(v)
}

// Env appends an environment variable fallback
func (c *Chain) Env(name string) *Chain {
	return c.with(c.src().Env(name))
}

// Property appends a property fallback
func (c *Chain) Property(name string) *Chain {
	return c.with(c.src().Property(name))
}

// Value appends a literal fallback, which is always set
func (c *Chain) Value(v string) *Chain {
	return c.with(c.src().Raw(v))
}

// File appends a file fallback
func (c *Chain) File(path string) *Chain {
	return c.with(c.src().File(path))
}

// Resource appends a bundled resource fallback
func (c *Chain) Resource(path string) *Chain {
	return c.with(c.src().Resource(path))
}

// URL appends a URL fallback; a malformed location is recorded as the chain error
func (c *Chain) URL(location string) *Chain {
	v, err := c.src().URL(location)
	if err != nil {
		next := c.with()
		if next.err == nil {
			next.err = err
		}
		return next
	}
	return c.with(v)
}

// IsSet reports whether any Value is set.
// A chain holding a construction error reports set so that Get surfaces it.
func (c *Chain) IsSet() bool {
	if c.err != nil {
		return true
	}
	for _, v := range c.values {
		if v.IsSet() {
			return true
		}
	}
	return false
}

// Get returns the value of the first set Value, or "" when none is set
func (c *Chain) Get() (string, error) {
	v, err := c.Resolve()
	if err != nil {
		return "", err
	}
	return v.Get()
}

// Read returns the content pointed to by the first set Value
func (c *Chain) Read() (string, error) {
	v, err := c.Resolve()
	if err != nil {
		return "", err
	}
	return Read(v)
}

// Resolve returns the first set Value, or NotSupplied
func (c *Chain) Resolve() (Value, error) {
	if c.err != nil {
		return nil, c.err
	}

	for i, v := range c.values {
		if v.IsSet() {
			c.logger().Debug("Configuration resolved",
				zap.String("source", v.String()),
				zap.Int("position", i),
			)
			return v, nil
		}
	}

	c.logger().Debug("Configuration not supplied", zap.String("chain", c.String()))
	return NotSupplied, nil
}

// IfSet calls action with the resolved Value when the chain is set
func (c *Chain) IfSet(action func(Value)) *Chain {
	if v, err := c.Resolve(); err == nil && v.IsSet() {
		action(v)
	}
	return c
}

// Input resolves the chain into a typed accessor
func (c *Chain) Input() (Input, error) {
	if c.err != nil {
		return Input{}, c.err
	}
	return ValueInput(c)
}

// Err returns the first construction error recorded while building the chain
func (c *Chain) Err() error {
	return c.err
}

// Values returns a copy of the chain entries in priority order
func (c *Chain) Values() []Value {
	return append([]Value(nil), c.values...)
}

// Len returns the number of entries
func (c *Chain) Len() int {
	return len(c.values)
}

func (c *Chain) Kind() Kind {
	return KindChain
}

// String lists the entries in priority order, e.g. "env:PORT | value:8080"
func (c *Chain) String() string {
	if len(c.values) == 0 {
		return string(KindNone)
	}

	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " | ")
}

// Explain reports the presence of every entry, marking the one that resolves.
// Unlike Get, every entry is evaluated.
func (c *Chain) Explain() string {
	var b strings.Builder

	if c.err != nil {
		fmt.Fprintf(&b, "error: %v\n", c.err)
	}

	resolved := false
	for i, v := range c.values {
		marker := " "
		state := "not set"
		if v.IsSet() {
			state = "set"
			if !resolved {
				marker = "*"
				resolved = true
			}
		}
		fmt.Fprintf(&b, "%s %d. %-40s %s\n", marker, i+1, v.String(), state)
	}

	if !resolved {
		b.WriteString("  -> not supplied\n")
	}
	return b.String()
}

// with returns a copy of the chain with vs appended
func (c *Chain) with(vs ...Value) *Chain {
	values := make([]Value, len(c.values), len(c.values)+len(vs))
	copy(values, c.values)
	return &Chain{
		sources: c.sources,
		values:  append(values, vs...),
		err:     c.err,
	}
}

func (c *Chain) src() *Sources {
	if c.sources == nil {
		return Default()
	}
	return c.sources
}

func (c *Chain) logger() *zap.Logger {
	return c.src().logger
}
