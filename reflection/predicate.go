// FILE: lixenwraith/confchain/reflection/predicate.go
package reflection

import (
	"reflect"
	"strings"
)

// Param describes a value slot that a Context can fill: a function parameter
// (Index >= 0) or a struct field (Index == -1, Name and Tag set).
type Param struct {
	Index int
	Type  reflect.Type
	Name  string
	Tag   reflect.StructTag
}

// Predicate selects parameters
type Predicate func(Param) bool

// OfType matches parameters whose type equals T, or, for interface T, implements it
func OfType[T any]() Predicate {
	return TypeIs(reflect.TypeFor[T]())
}

// TypeIs matches parameters whose type equals t, or, for interface t, implements it
func TypeIs(t reflect.Type) Predicate {
	return func(p Param) bool {
		if p.Type == nil {
			return false
		}
		if p.Type == t {
			return true
		}
		return t.Kind() == reflect.Interface && p.Type.Implements(t)
	}
}

// Accepts matches parameters that can be assigned a value of type t
func Accepts(t reflect.Type) Predicate {
	return func(p Param) bool {
		return p.Type != nil && t != nil && t.AssignableTo(p.Type)
	}
}

// OfKind matches parameters of the given kind
func OfKind(kind reflect.Kind) Predicate {
	return func(p Param) bool {
		return p.Type != nil && p.Type.Kind() == kind
	}
}

// At matches the function parameter at position i
func At(i int) Predicate {
	return func(p Param) bool {
		return p.Index == i
	}
}

// Named matches struct-field parameters by name, case-insensitively
func Named(name string) Predicate {
	return func(p Param) bool {
		return strings.EqualFold(p.Name, name)
	}
}

// Tagged matches struct-field parameters carrying the tag key
func Tagged(key string) Predicate {
	return func(p Param) bool {
		_, ok := p.Tag.Lookup(key)
		return ok
	}
}

// TaggedWith matches struct-field parameters whose tag key has the given value
func TaggedWith(key, value string) Predicate {
	return func(p Param) bool {
		v, ok := p.Tag.Lookup(key)
		return ok && v == value
	}
}

// And matches when every predicate matches
func And(predicates ...Predicate) Predicate {
	return func(p Param) bool {
		for _, pred := range predicates {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches
func Or(predicates ...Predicate) Predicate {
	return func(p Param) bool {
		for _, pred := range predicates {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate
func Not(pred Predicate) Predicate {
	return func(p Param) bool {
		return !pred(p)
	}
}

// FieldNamed selects fields by exact name
func FieldNamed(name string) func(Field) bool {
	return func(f Field) bool {
		return f.Name == name
	}
}

// FieldTagged selects fields carrying the tag key
func FieldTagged(key string) func(Field) bool {
	return func(f Field) bool {
		_, ok := f.Tag.Lookup(key)
		return ok
	}
}

// Exported selects exported fields
func Exported(f Field) bool {
	return f.IsExported()
}

// MethodNamed selects methods by exact name
func MethodNamed(name string) func(Method) bool {
	return func(m Method) bool {
		return m.Name == name
	}
}
