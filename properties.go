// FILE: lixenwraith/confchain/properties.go
package confchain

import (
	"slices"
	"sync"
)

var systemProperties = NewProperties()

// Properties is a concurrency-safe key/value table of process settings.
// Keys use dot notation, e.g. "server.port".
type Properties struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewProperties creates an empty table
func NewProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

// SystemProperties returns the process-wide table used by the default Sources
func SystemProperties() *Properties {
	return systemProperties
}

// Set defines or replaces a property
func (p *Properties) Set(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

// Lookup returns a property and whether it is defined
func (p *Properties) Lookup(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

// Delete removes a property
func (p *Properties) Delete(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.values, key)
}

// Keys returns the defined keys in sorted order
func (p *Properties) Keys() []string {
	p.mu.RLock()
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	p.mu.RUnlock()

	slices.Sort(keys)
	return keys
}

// Snapshot returns a copy of all properties
func (p *Properties) Snapshot() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snapshot := make(map[string]string, len(p.values))
	for k, v := range p.values {
		snapshot[k] = v
	}
	return snapshot
}

// propertyValue reads a property on every call
type propertyValue struct {
	name  string
	props *Properties
}

func (v *propertyValue) IsSet() bool {
	_, ok := v.props.Lookup(v.name)
	return ok
}

func (v *propertyValue) Get() (string, error) {
	value, _ := v.props.Lookup(v.name)
	return value, nil
}

func (v *propertyValue) Kind() Kind {
	return KindProperty
}

func (v *propertyValue) String() string {
	return string(KindProperty) + ":" + v.name
}
