// FILE: lixenwraith/confchain/preferences/registry.go
package preferences

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/lixenwraith/confchain/internal/tree"
)

var (
	// ErrNotRegistered is returned for ids with no registered preference
	ErrNotRegistered = errors.New("preference not registered")
	// ErrInvalidInput is returned when input cannot be converted by a preference type
	ErrInvalidInput = errors.New("invalid preference input")
	// ErrInvalidID is returned for malformed or conflicting preference ids
	ErrInvalidID = errors.New("invalid preference id")
	// ErrTypeMismatch is returned when an id is registered with a different value type
	ErrTypeMismatch = errors.New("preference type mismatch")
)

// Definition is a preference spec of any value type, accepted by RegisterAll
type Definition interface {
	register(r *Registry) (Entry, error)
}

// Registry manages the preferences of an application, keyed by id.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	logger  *zap.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]Entry),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds the preference defined by spec, initialized to its default.
// Registering an id again returns the existing preference.
func Register[E any](r *Registry, spec Spec[E]) (*Preference[E], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[spec.ID]; ok {
		return typed[E](entry)
	}

	if err := r.checkID(spec.ID); err != nil {
		return nil, err
	}

	p, err := newPreference(spec)
	if err != nil {
		return nil, err
	}
	r.entries[spec.ID] = p
	r.logger.Debug("Preference registered",
		zap.String("id", spec.ID),
		zap.String("type", spec.Type.Name),
		zap.String("default", spec.Default),
	)
	return p, nil
}

func (s Spec[E]) register(r *Registry) (Entry, error) {
	return Register(r, s)
}

// RegisterAll registers every definition, stopping at the first failure
func (r *Registry) RegisterAll(defs ...Definition) error {
	for _, def := range defs {
		if _, err := def.register(r); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the preference for spec, registering it when absent
func Get[E any](r *Registry, spec Spec[E]) (*Preference[E], error) {
	r.mu.RLock()
	entry, ok := r.entries[spec.ID]
	r.mu.RUnlock()

	if ok {
		return typed[E](entry)
	}
	return Register(r, spec)
}

// Find returns the preference registered under id
func (r *Registry) Find(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	return entry, ok
}

// List returns every registered preference ordered by id
func (r *Registry) List() []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return entries
}

// Set changes the preference registered under id from user input
func (r *Registry) Set(id, input string) error {
	entry, ok := r.Find(id)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrNotRegistered, id)
	}
	if err := entry.Set(input); err != nil {
		return fmt.Errorf("preference '%s': %w", id, err)
	}
	r.logger.Debug("Preference changed", zap.String("id", id), zap.String("input", input))
	return nil
}

// Reset restores the default of the preference registered under id
func (r *Registry) Reset(id string) error {
	entry, ok := r.Find(id)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrNotRegistered, id)
	}
	return entry.Reset()
}

// Snapshot returns the current input of every preference keyed by id
func (r *Registry) Snapshot() map[string]string {
	entries := r.List()
	snapshot := make(map[string]string, len(entries))
	for _, entry := range entries {
		snapshot[entry.ID()] = entry.Text()
	}
	return snapshot
}

// Apply sets every registered id found in values whose input differs from the
// current one, returning the changed ids in order. Unknown ids are skipped.
func (r *Registry) Apply(values map[string]string) ([]string, error) {
	var changed []string
	var errs []error

	for _, entry := range r.List() {
		input, ok := values[entry.ID()]
		if !ok || input == entry.Text() {
			continue
		}
		if err := entry.Set(input); err != nil {
			errs = append(errs, fmt.Errorf("preference '%s': %w", entry.ID(), err))
			continue
		}
		changed = append(changed, entry.ID())
	}

	for id := range values {
		if _, ok := r.Find(id); !ok {
			r.logger.Warn("Ignoring unknown preference", zap.String("id", id))
		}
	}

	return changed, errors.Join(errs...)
}

// Watch registers action as a listener of the preference for spec. action is
// called immediately with the current value.
func Watch[E any](r *Registry, spec Spec[E], action func(E)) error {
	p, err := Get(r, spec)
	if err != nil {
		return err
	}
	p.Listen(action)
	return nil
}

// Supplier returns a function reading the current value of the preference for spec
func Supplier[E any](r *Registry, spec Spec[E]) (func() E, error) {
	p, err := Get(r, spec)
	if err != nil {
		return nil, err
	}
	return p.Value, nil
}

// IsEnabled reports whether the flag preference holds true.
// An unusable spec reports false.
func IsEnabled(r *Registry, spec Spec[bool]) bool {
	p, err := Get(r, spec)
	if err != nil {
		return false
	}
	return p.Value()
}

// IsDisabled is the negation of IsEnabled
func IsDisabled(r *Registry, spec Spec[bool]) bool {
	return !IsEnabled(r, spec)
}

// checkID rejects malformed ids and ids that would nest inside another
// preference when saved. Caller holds r.mu.
func (r *Registry) checkID(id string) error {
	if !tree.ValidPath(id) {
		return fmt.Errorf("%w: '%s'", ErrInvalidID, id)
	}
	for existing := range r.entries {
		if strings.HasPrefix(existing, id+".") || strings.HasPrefix(id, existing+".") {
			return fmt.Errorf("%w: '%s' conflicts with '%s'", ErrInvalidID, id, existing)
		}
	}
	return nil
}

func typed[E any](entry Entry) (*Preference[E], error) {
	p, ok := entry.(*Preference[E])
	if !ok {
		var zero E
		return nil, fmt.Errorf("%w: '%s' holds %s, not %T", ErrTypeMismatch, entry.ID(), entry.TypeName(), zero)
	}
	return p, nil
}
