// FILE: lixenwraith/confchain/reflection/mirror.go
package reflection

import (
	"fmt"
	"reflect"
)

// Mirror inspects a type together with its embedding chain.
// The embedding chain plays the role of an ancestor hierarchy: a struct's own
// members come first, then the members of each embedded struct, breadth first.
type Mirror struct {
	typ reflect.Type
}

// Field describes a struct field found somewhere in the embedding chain
type Field struct {
	reflect.StructField
	// Path is the index sequence from the root type, usable with FieldByIndex
	Path []int
	// Owner is the struct type that declares the field
	Owner reflect.Type
	// Depth is the embedding depth of Owner (0 = root type)
	Depth int
}

// Method describes a method available on the type or a pointer to it
type Method struct {
	reflect.Method
	// PointerReceiver reports whether the method requires an addressable receiver
	PointerReceiver bool
}

// Reflect returns a Mirror for the dynamic type of v.
// A reflect.Type argument is mirrored directly. Pointers are dereferenced.
func Reflect(v any) Mirror {
	if t, ok := v.(reflect.Type); ok {
		return ReflectType(t)
	}
	return ReflectType(reflect.TypeOf(v))
}

// ReflectType returns a Mirror for t, dereferencing pointer types
func ReflectType(t reflect.Type) Mirror {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return Mirror{typ: t}
}

// Type returns the mirrored (non-pointer) type
func (m Mirror) Type() reflect.Type {
	return m.typ
}

// Ancestors returns the type followed by every struct type it embeds, breadth first
func (m Mirror) Ancestors() []reflect.Type {
	if m.typ == nil {
		return nil
	}

	var result []reflect.Type
	m.walk(func(owner reflect.Type, _ []int, depth int) {
		result = append(result, owner)
	})
	return result
}

// Fields lists the fields of every struct in the embedding chain, nearest first.
// Shadowed fields are included. Only fields accepted by every filter are returned.
func (m Mirror) Fields(filters ...func(Field) bool) []Field {
	if m.typ == nil || m.typ.Kind() != reflect.Struct {
		return nil
	}

	var fields []Field
	m.walk(func(owner reflect.Type, prefix []int, depth int) {
		for i := 0; i < owner.NumField(); i++ {
			f := Field{
				StructField: owner.Field(i),
				Path:        append(append([]int(nil), prefix...), i),
				Owner:       owner,
				Depth:       depth,
			}
			if accept(f, filters) {
				fields = append(fields, f)
			}
		}
	})
	return fields
}

// Field returns the field with the given name closest to the root type
func (m Mirror) Field(name string) (Field, bool) {
	fields := m.Fields(FieldNamed(name))
	if len(fields) == 0 {
		return Field{}, false
	}
	return fields[0], true
}

// Methods lists the method set of a pointer to the type, which includes methods
// promoted from embedded types. Only methods accepted by every filter are returned.
func (m Mirror) Methods(filters ...func(Method) bool) []Method {
	if m.typ == nil {
		return nil
	}

	values := methodNames(m.typ)
	ptr := m.typ
	if ptr.Kind() != reflect.Interface {
		ptr = reflect.PointerTo(m.typ)
	}

	methods := make([]Method, 0, ptr.NumMethod())
	for i := 0; i < ptr.NumMethod(); i++ {
		method := Method{
			Method:          ptr.Method(i),
			PointerReceiver: ptr != m.typ && !values[ptr.Method(i).Name],
		}
		if accept(method, filters) {
			methods = append(methods, method)
		}
	}
	return methods
}

// Method returns the named method. When params are given, the method's parameter
// types (receiver excluded) must match them exactly.
func (m Mirror) Method(name string, params ...reflect.Type) (Method, bool) {
	for _, method := range m.Methods(MethodNamed(name)) {
		if len(params) == 0 || sameTypes(method.Params(), params) {
			return method, true
		}
	}
	return Method{}, false
}

// Value returns the field value within root, or false if an embedded pointer on
// the path is nil
func (f Field) Value(root reflect.Value) (reflect.Value, bool) {
	for root.Kind() == reflect.Pointer {
		if root.IsNil() {
			return reflect.Value{}, false
		}
		root = root.Elem()
	}
	v, err := root.FieldByIndexErr(f.Path)
	if err != nil {
		return reflect.Value{}, false
	}
	return v, true
}

// Param describes the field as a resolvable parameter
func (f Field) Param() Param {
	return Param{Index: -1, Type: f.Type, Name: f.Name, Tag: f.Tag}
}

// Params returns the method parameters, receiver excluded
func (m Method) Params() []reflect.Type {
	ft := m.Type
	params := make([]reflect.Type, 0, ft.NumIn())
	// Interface methods carry no receiver in their signature
	start := 0
	if m.Func.IsValid() {
		start = 1
	}
	for i := start; i < ft.NumIn(); i++ {
		params = append(params, ft.In(i))
	}
	return params
}

// Invoke calls the method on receiver with args converted to the parameter types
func (m Method) Invoke(receiver any, args ...any) ([]any, error) {
	rv := reflect.ValueOf(receiver)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil receiver for method %s", ErrInvocation, m.Name)
	}

	target := rv.MethodByName(m.Name)
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: method %s not callable on %T", ErrInvocation, m.Name, receiver)
	}
	return invoke(target, args)
}

// walk visits the root type and every embedded struct type breadth first
func (m Mirror) walk(visit func(owner reflect.Type, prefix []int, depth int)) {
	type node struct {
		typ    reflect.Type
		prefix []int
		depth  int
	}

	queue := []node{{typ: m.typ}}
	seen := make(map[reflect.Type]bool)

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if seen[n.typ] {
			continue
		}
		seen[n.typ] = true
		visit(n.typ, n.prefix, n.depth)

		if n.typ.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < n.typ.NumField(); i++ {
			f := n.typ.Field(i)
			if !f.Anonymous {
				continue
			}
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() != reflect.Struct {
				continue
			}
			queue = append(queue, node{
				typ:    ft,
				prefix: append(append([]int(nil), n.prefix...), i),
				depth:  n.depth + 1,
			})
		}
	}
}

func methodNames(t reflect.Type) map[string]bool {
	names := make(map[string]bool, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		names[t.Method(i).Name] = true
	}
	return names
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func accept[T any](v T, filters []func(T) bool) bool {
	for _, filter := range filters {
		if !filter(v) {
			return false
		}
	}
	return true
}
