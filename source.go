// FILE: lixenwraith/confchain/source.go
package confchain

//go:generate mockgen -source=source.go -destination=internal/mock/source_mock.go -package=mock

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Kind identifies how a Value obtains its string
type Kind string

const (
	// KindNone is the kind of the NotSupplied sentinel
	KindNone Kind = "none"
	// KindEnv reads an environment variable
	KindEnv Kind = "env"
	// KindProperty reads a process property
	KindProperty Kind = "property"
	// KindRaw holds a literal value
	KindRaw Kind = "value"
	// KindFile reads a local file
	KindFile Kind = "file"
	// KindResource reads a bundled resource through a Locator
	KindResource Kind = "resource"
	// KindURL fetches remote content
	KindURL Kind = "url"
	// KindChain resolves the first set Value of a list
	KindChain Kind = "chain"
)

// Value is a single way of obtaining a configuration string.
// IsSet reports whether a value is available; Get returns it. Get on a Value
// that is not set returns an empty string and no error.
type Value interface {
	IsSet() bool
	Get() (string, error)
	Kind() Kind
	// String describes the source, e.g. "env:HOME"
	String() string
}

// Environment looks up environment variables
type Environment interface {
	LookupEnv(name string) (string, bool)
}

// Locator finds bundled resources by logical path.
// A missing resource is reported as (nil, false, nil), not as an error.
type Locator interface {
	Lookup(path string) ([]byte, bool, error)
}

// contentReader is implemented by Values whose content is not a path to dereference
type contentReader interface {
	Read() (string, error)
}

// NotSupplied is the Value that is never set. It terminates every empty chain.
var NotSupplied Value = notSupplied{}

type notSupplied struct{}

func (notSupplied) IsSet() bool { return false }
func (notSupplied) Get() (string, error) { return "", nil }
func (notSupplied) Read() (string, error) { return "", nil }
func (notSupplied) Kind() Kind { return KindNone }
func (notSupplied) String() string { return string(KindNone) }

// Read returns the content a Value points to.
// File, resource, URL and raw values yield their own content. Any other set
// value is treated as a path to a local file whose content is returned.
func Read(v Value) (string, error) {
	if r, ok := v.(contentReader); ok {
		return r.Read()
	}
	if !v.IsSet() {
		return "", nil
	}

	path, err := v.Get()
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("%w: %s holds an empty path", ErrSourceRead, v)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s -> '%s': %w", ErrSourceRead, v, path, err)
	}
	return string(data), nil
}

// ReadLines returns the content of Read split into lines without terminators
func ReadLines(v Value) ([]string, error) {
	content, err := Read(v)
	if err != nil {
		return nil, err
	}
	return splitLines(content), nil
}

func splitLines(content string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
