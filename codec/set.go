// FILE: lixenwraith/confchain/codec/set.go
package codec

import (
	"fmt"
	"os"
	"sync"
)

// Set lazily builds one codec per format, all sharing the same options
type Set struct {
	opts   []Option
	mu     sync.Mutex
	codecs map[Format]*Codec
}

// NewSet creates a codec set applying opts to every codec it builds
func NewSet(opts ...Option) *Set {
	return &Set{
		opts:   opts,
		codecs: make(map[Format]*Codec, len(Formats)),
	}
}

// JSON returns the set's JSON codec
func (s *Set) JSON() *Codec {
	c, _ := s.Get(FormatJSON)
	return c
}

// YAML returns the set's YAML codec
func (s *Set) YAML() *Codec {
	c, _ := s.Get(FormatYAML)
	return c
}

// TOML returns the set's TOML codec
func (s *Set) TOML() *Codec {
	c, _ := s.Get(FormatTOML)
	return c
}

// XML returns the set's XML codec
func (s *Set) XML() *Codec {
	c, _ := s.Get(FormatXML)
	return c
}

// Get returns the codec for format, creating it on first use
func (s *Set) Get(format Format) (*Codec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.codecs[format]; ok {
		return c, nil
	}

	c, err := New(format, s.opts...)
	if err != nil {
		return nil, err
	}
	s.codecs[format] = c
	return c, nil
}

// For returns the codec matching the file extension of path
func (s *Set) For(path string) (*Codec, error) {
	format := FormatForPath(path)
	if format == "" {
		return nil, fmt.Errorf("%w: no format for extension of '%s'", ErrUnsupportedFormat, path)
	}
	return s.Get(format)
}

// Detect returns the codec for a document, by path extension then content
func (s *Set) Detect(path string, data []byte) (*Codec, error) {
	format, err := Resolve(path, data)
	if err != nil {
		return nil, err
	}
	return s.Get(format)
}

// ReadFile decodes a file of any supported format into target
func (s *Set) ReadFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	c, err := s.Detect(path, data)
	if err != nil {
		return err
	}
	if err := c.DeserializeBytes(data, target); err != nil {
		return fmt.Errorf("file '%s': %w", path, err)
	}
	return nil
}
