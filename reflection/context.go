// FILE: lixenwraith/confchain/reflection/context.go
package reflection

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNoConstructor is returned by Create when no constructor could be used
	ErrNoConstructor = errors.New("no usable constructor")
	// ErrInvocation wraps failures calling a function through reflection
	ErrInvocation = errors.New("invocation failed")
	// ErrArgumentType is returned when a resolved value does not fit its parameter
	ErrArgumentType = errors.New("argument type mismatch")
)

var errorType = reflect.TypeFor[error]()

// Resolver produces a value for a parameter
type Resolver func(Param) any

type rule struct {
	predicate Predicate
	resolve   Resolver
}

// Context resolves parameters from an ordered list of rules.
// The first rule whose predicate matches supplies the value; when none
// matches, the default resolver is used (nil unless configured).
type Context struct {
	rules    []rule
	fallback Resolver
}

// NewContext creates a context resolving unmatched parameters to nil
func NewContext() *Context {
	return &Context{fallback: func(Param) any { return nil }}
}

// Default sets the value used for unmatched parameters
func (c *Context) Default(v any) *Context {
	c.fallback = func(Param) any { return v }
	return c
}

// DefaultFunc sets the resolver used for unmatched parameters
func (c *Context) DefaultFunc(fn Resolver) *Context {
	c.fallback = fn
	return c
}

// When resolves parameters matching pred to v
func (c *Context) When(pred Predicate, v any) *Context {
	c.rules = append(c.rules, rule{predicate: pred, resolve: func(Param) any { return v }})
	return c
}

// WhenFunc resolves parameters matching pred through fn, called on every resolution
func (c *Context) WhenFunc(pred Predicate, fn Resolver) *Context {
	c.rules = append(c.rules, rule{predicate: pred, resolve: fn})
	return c
}

// Resolve returns the value for p. The boolean is false when the result is nil.
func (c *Context) Resolve(p Param) (any, bool) {
	for _, r := range c.rules {
		if r.predicate(p) {
			v := r.resolve(p)
			return v, v != nil
		}
	}
	if c.fallback == nil {
		return nil, false
	}
	v := c.fallback(p)
	return v, v != nil
}

// ResolveAll resolves each parameter in order; unresolved slots are nil
func (c *Context) ResolveAll(params []Param) []any {
	args := make([]any, len(params))
	for i, p := range params {
		args[i], _ = c.Resolve(p)
	}
	return args
}

// ResolveFunc resolves the arguments for every parameter of fn
func (c *Context) ResolveFunc(fn any) ([]any, error) {
	ft, err := funcType(fn)
	if err != nil {
		return nil, err
	}
	return c.ResolveAll(FuncParams(ft)), nil
}

// Call invokes fn with resolved arguments; nil arguments become zero values.
// A trailing non-nil error result is returned as the error.
func (c *Context) Call(fn any) ([]any, error) {
	args, err := c.ResolveFunc(fn)
	if err != nil {
		return nil, err
	}
	return invoke(reflect.ValueOf(fn), args)
}

// Fill assigns resolved values to exported, zero-valued fields of the struct
// pointed to by target. Only fields accepted by every filter are considered.
func (c *Context) Fill(target any, filters ...func(Field) bool) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: fill target must be non-nil struct pointer, got %T", ErrArgumentType, target)
	}

	filters = append([]func(Field) bool{Exported}, filters...)
	for _, field := range Reflect(target).Fields(filters...) {
		fv, ok := field.Value(rv)
		if !ok || !fv.CanSet() || !fv.IsZero() {
			continue
		}

		v, ok := c.Resolve(field.Param())
		if !ok {
			continue
		}

		arg, err := argValue(v, field.Type)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		fv.Set(arg)
	}
	return nil
}

// Create builds a T from the first usable constructor.
// A constructor is a function returning T or (T, error). With a single
// constructor, it is called with whatever resolves (nil becomes a zero value).
// With several, the first whose arguments all resolve to non-nil values wins.
func Create[T any](c *Context, constructors ...any) (T, error) {
	var zero T

	switch len(constructors) {
	case 0:
		return zero, fmt.Errorf("%w: no constructors for %s", ErrNoConstructor, reflect.TypeFor[T]())
	case 1:
		return construct[T](c, constructors[0])
	}

	for _, ctor := range constructors {
		args, err := c.ResolveFunc(ctor)
		if err != nil {
			return zero, err
		}
		if complete(args) {
			return construct[T](c, ctor)
		}
	}
	return zero, fmt.Errorf("%w: unable to create an instance of %s", ErrNoConstructor, reflect.TypeFor[T]())
}

// FuncParams lists the parameters of a function type
func FuncParams(ft reflect.Type) []Param {
	params := make([]Param, ft.NumIn())
	for i := range params {
		params[i] = Param{Index: i, Type: ft.In(i)}
	}
	return params
}

func construct[T any](c *Context, ctor any) (T, error) {
	var zero T

	ft, err := funcType(ctor)
	if err != nil {
		return zero, err
	}
	if ft.NumOut() == 0 || ft.Out(0) != reflect.TypeFor[T]() {
		return zero, fmt.Errorf("%w: constructor %s does not return %s", ErrNoConstructor, ft, reflect.TypeFor[T]())
	}

	results, err := c.Call(ctor)
	if err != nil {
		return zero, err
	}
	instance, _ := results[0].(T)
	return instance, nil
}

func complete(args []any) bool {
	for _, arg := range args {
		if arg == nil {
			return false
		}
	}
	return true
}

func funcType(fn any) (reflect.Type, error) {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: expected function, got %T", ErrInvocation, fn)
	}
	if ft.IsVariadic() {
		return nil, fmt.Errorf("%w: variadic functions are not supported", ErrInvocation)
	}
	return ft, nil
}

// invoke calls fn after converting args to its parameter types
func invoke(fn reflect.Value, args []any) ([]any, error) {
	ft := fn.Type()
	if len(args) != ft.NumIn() {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrInvocation, ft, ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := argValue(arg, ft.In(i))
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %w", ErrInvocation, i, err)
		}
		in[i] = v
	}

	out := fn.Call(in)
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}

	if n := len(out); n > 0 && ft.Out(n-1) == errorType && !out[n-1].IsNil() {
		return results, out[n-1].Interface().(error)
	}
	return results, nil
}

// argValue adapts a resolved value to parameter type t.
// Nil becomes the zero value; numeric kinds are converted.
func argValue(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrArgumentType, v.Type(), t)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
