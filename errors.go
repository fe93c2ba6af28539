// FILE: lixenwraith/confchain/errors.go
package confchain

import "errors"

var (
	// ErrSourceRead wraps I/O and network faults from a Value that is set
	ErrSourceRead = errors.New("failed to read configuration source")
	// ErrMalformedSource is returned when a Value cannot be constructed from its input
	ErrMalformedSource = errors.New("malformed configuration source")
	// ErrCLIParse is returned for invalid property arguments
	ErrCLIParse = errors.New("failed to parse property arguments")
)
