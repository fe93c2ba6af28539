// FILE: lixenwraith/confchain/resource.go
package confchain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FSLocator finds resources in a file system such as an embed.FS or os.DirFS
type FSLocator struct {
	FS fs.FS
}

// DirLocator finds resources under a local directory
func DirLocator(dir string) FSLocator {
	return FSLocator{FS: os.DirFS(dir)}
}

// Lookup implements Locator. Leading slashes are ignored.
func (l FSLocator) Lookup(path string) ([]byte, bool, error) {
	name := strings.TrimLeft(path, "/")
	if !fs.ValidPath(name) {
		return nil, false, nil
	}

	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isDirError(l.FS, name) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func isDirError(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

// MapLocator is a compiled-in resource table
type MapLocator map[string][]byte

// Lookup implements Locator
func (m MapLocator) Lookup(path string) ([]byte, bool, error) {
	data, ok := m[strings.TrimLeft(path, "/")]
	return data, ok, nil
}

// Locators searches several locators in order
type Locators []Locator

// Lookup returns the first match; a locator error stops the search
func (ls Locators) Lookup(path string) ([]byte, bool, error) {
	for _, l := range ls {
		data, ok, err := l.Lookup(path)
		if err != nil || ok {
			return data, ok, err
		}
	}
	return nil, false, nil
}

// resourceValue reads a bundled resource once and caches it
type resourceValue struct {
	path    string
	locator Locator
	logger  *zap.Logger

	mu      sync.Mutex
	loaded  bool
	content string
}

// IsSet reports whether the locator finds the resource.
// A locator fault counts as set so that Get reports it.
func (v *resourceValue) IsSet() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.loaded {
		return true
	}
	data, ok, err := v.lookup()
	if ok && err == nil {
		v.content = string(data)
		v.loaded = true
	}
	return ok || err != nil
}

func (v *resourceValue) Get() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.loaded {
		return v.content, nil
	}

	data, ok, err := v.lookup()
	if err != nil {
		v.logger.Warn("Resource lookup failed", zap.String("path", v.path), zap.Error(err))
		return "", fmt.Errorf("%w: resource '%s': %w", ErrSourceRead, v.path, err)
	}
	if !ok {
		return "", nil
	}

	v.content = string(data)
	v.loaded = true
	return v.content, nil
}

func (v *resourceValue) Read() (string, error) {
	return v.Get()
}

func (v *resourceValue) lookup() ([]byte, bool, error) {
	return v.locator.Lookup(v.path)
}

func (v *resourceValue) Kind() Kind {
	return KindResource
}

func (v *resourceValue) String() string {
	return string(KindResource) + ":" + v.path
}
