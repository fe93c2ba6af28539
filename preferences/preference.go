// FILE: lixenwraith/confchain/preferences/preference.go
package preferences

import (
	"fmt"
	"slices"
	"sync"

	"github.com/lixenwraith/confchain"
)

// Spec defines a preference. Default is user input converted by Type.
type Spec[E any] struct {
	ID          string
	Description string
	Type        Type[E]
	Default     string
}

// Entry is the type-erased view of a registered preference
type Entry interface {
	ID() string
	Description() string
	TypeName() string
	// Text returns the input that produced the current value
	Text() string
	Default() string
	Set(input string) error
	Reset() error
}

// Preference is a configuration value a user may change at runtime.
// Listeners are called synchronously, in registration order, on the goroutine
// that changed the value. No lock is held while they run.
type Preference[E any] struct {
	spec Spec[E]

	mu        sync.Mutex
	value     E
	input     string
	listeners []func(E)
}

func newPreference[E any](spec Spec[E]) (*Preference[E], error) {
	p := &Preference[E]{spec: spec}
	if err := p.Reset(); err != nil {
		return nil, fmt.Errorf("preference '%s' default: %w", spec.ID, err)
	}
	return p, nil
}

// Spec returns the preference definition
func (p *Preference[E]) Spec() Spec[E] {
	return p.spec
}

func (p *Preference[E]) ID() string {
	return p.spec.ID
}

func (p *Preference[E]) Description() string {
	return p.spec.Description
}

func (p *Preference[E]) TypeName() string {
	return p.spec.Type.Name
}

func (p *Preference[E]) Default() string {
	return p.spec.Default
}

// Value returns the current value
func (p *Preference[E]) Value() E {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Text returns the input that produced the current value
func (p *Preference[E]) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

// Input returns the current input as a typed accessor
func (p *Preference[E]) Input() confchain.Input {
	return confchain.InputOf(p.Text())
}

// Set converts input and, on success, stores it and notifies every listener.
// Invalid input leaves the preference unchanged.
func (p *Preference[E]) Set(input string) error {
	value, err := p.spec.Type.Convert(input)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.value = value
	p.input = input
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()

	for _, listener := range listeners {
		listener(value)
	}
	return nil
}

// Reset restores the default value
func (p *Preference[E]) Reset() error {
	return p.Set(p.spec.Default)
}

// Listen registers listener and calls it immediately with the current value
func (p *Preference[E]) Listen(listener func(E)) {
	p.mu.Lock()
	p.listeners = append(p.listeners, listener)
	value := p.value
	p.mu.Unlock()

	listener(value)
}
