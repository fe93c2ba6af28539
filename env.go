// FILE: lixenwraith/confchain/env.go
package confchain

import (
	"os"
	"sync"
)

// OSEnvironment reads the process environment
type OSEnvironment struct{}

// LookupEnv implements Environment with os.LookupEnv
func (OSEnvironment) LookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnvironment is an in-memory Environment, safe for concurrent use
type MapEnvironment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnvironment creates an Environment holding a copy of vars
func NewMapEnvironment(vars map[string]string) *MapEnvironment {
	m := &MapEnvironment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

// LookupEnv implements Environment
func (m *MapEnvironment) LookupEnv(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[name]
	return v, ok
}

// Setenv defines or replaces a variable
func (m *MapEnvironment) Setenv(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[name] = value
}

// Unsetenv removes a variable
func (m *MapEnvironment) Unsetenv(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vars, name)
}

// envValue reads an environment variable on every call
type envValue struct {
	name string
	env  Environment
}

func (v *envValue) IsSet() bool {
	_, ok := v.env.LookupEnv(v.name)
	return ok
}

func (v *envValue) Get() (string, error) {
	value, _ := v.env.LookupEnv(v.name)
	return value, nil
}

func (v *envValue) Kind() Kind {
	return KindEnv
}

func (v *envValue) String() string {
	return string(KindEnv) + ":" + v.name
}
