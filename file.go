// FILE: lixenwraith/confchain/file.go
package confchain

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// fileValue reads a local file fresh on every call
type fileValue struct {
	path   string
	logger *zap.Logger
}

// IsSet reports whether path is a regular file that can be opened for reading
func (v *fileValue) IsSet() bool {
	return readable(v.path)
}

func (v *fileValue) Get() (string, error) {
	if !v.IsSet() {
		return "", nil
	}

	data, err := os.ReadFile(v.path)
	if err != nil {
		v.logger.Warn("File read failed", zap.String("path", v.path), zap.Error(err))
		return "", fmt.Errorf("%w: file '%s': %w", ErrSourceRead, v.path, err)
	}
	return string(data), nil
}

func (v *fileValue) Read() (string, error) {
	return v.Get()
}

func (v *fileValue) Kind() Kind {
	return KindFile
}

func (v *fileValue) String() string {
	return string(KindFile) + ":" + v.path
}

// indirectFileValue reads the file whose path is held by another Value
type indirectFileValue struct {
	path   Value
	logger *zap.Logger
}

func (v *indirectFileValue) IsSet() bool {
	if !v.path.IsSet() {
		return false
	}
	path, err := v.path.Get()
	if err != nil {
		// Surface the fault from Get instead of hiding it as "not set"
		return true
	}
	return readable(path)
}

func (v *indirectFileValue) Get() (string, error) {
	if !v.IsSet() {
		return "", nil
	}

	path, err := v.path.Get()
	if err != nil {
		return "", err
	}
	return (&fileValue{path: path, logger: v.logger}).Get()
}

func (v *indirectFileValue) Read() (string, error) {
	return v.Get()
}

func (v *indirectFileValue) Kind() Kind {
	return KindFile
}

func (v *indirectFileValue) String() string {
	return string(KindFile) + ":$" + v.path.String()
}

func readable(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
