// FILE: lixenwraith/confchain/reflection/mirror_test.go
package reflection

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type base struct {
	ID   string
	Name string
}

func (b base) Describe() string { return b.ID }

func (b *base) Rename(name string) { b.Name = name }

type audit struct {
	Created int64
}

type resource struct {
	base
	*audit
	Name  string `json:"name"`
	Owner string
}

func (r *resource) Transfer(owner string, force bool) error {
	r.Owner = owner
	return nil
}

func TestMirrorAncestors(t *testing.T) {
	ancestors := Reflect(&resource{}).Ancestors()
	require.Len(t, ancestors, 3)
	assert.Equal(t, reflect.TypeFor[resource](), ancestors[0])
	assert.Equal(t, reflect.TypeFor[base](), ancestors[1])
	assert.Equal(t, reflect.TypeFor[audit](), ancestors[2])
}

func TestMirrorFields(t *testing.T) {
	m := Reflect(resource{})

	t.Run("List", func(t *testing.T) {
		fields := m.Fields()
		// 4 own fields, 2 from base, 1 from audit
		assert.Len(t, fields, 7)
		assert.Equal(t, "base", fields[0].Name)
		assert.Equal(t, 0, fields[0].Depth)
	})

	t.Run("Nearest Wins", func(t *testing.T) {
		f, ok := m.Field("Name")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[resource](), f.Owner)
		assert.Equal(t, "name", f.Tag.Get("json"))

		f, ok = m.Field("ID")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[base](), f.Owner)
		assert.Equal(t, []int{0, 0}, f.Path)

		_, ok = m.Field("impossible_to_exist")
		assert.False(t, ok)
	})

	t.Run("Shadowed Fields Listed", func(t *testing.T) {
		names := m.Fields(FieldNamed("Name"))
		assert.Len(t, names, 2)
	})

	t.Run("Value", func(t *testing.T) {
		r := &resource{base: base{ID: "r1"}}

		f, _ := m.Field("ID")
		v, ok := f.Value(reflect.ValueOf(r))
		require.True(t, ok)
		assert.Equal(t, "r1", v.String())

		f, _ = m.Field("Created")
		_, ok = f.Value(reflect.ValueOf(r))
		assert.False(t, ok, "nil embedded pointer")
	})

	t.Run("Non Struct", func(t *testing.T) {
		assert.Empty(t, Reflect(42).Fields())
	})
}

func TestMirrorMethods(t *testing.T) {
	m := Reflect(reflect.TypeFor[resource]())

	names := make([]string, 0)
	for _, method := range m.Methods() {
		names = append(names, method.Name)
	}
	assert.ElementsMatch(t, []string{"Describe", "Rename", "Transfer"}, names)

	t.Run("Lookup", func(t *testing.T) {
		_, ok := m.Method("Describe")
		assert.True(t, ok)

		tr, ok := m.Method("Transfer", reflect.TypeFor[string](), reflect.TypeFor[bool]())
		require.True(t, ok)
		assert.True(t, tr.PointerReceiver)
		assert.Equal(t, []reflect.Type{reflect.TypeFor[string](), reflect.TypeFor[bool]()}, tr.Params())

		_, ok = m.Method("Transfer", reflect.TypeFor[string]())
		assert.False(t, ok)
		_, ok = m.Method("Missing")
		assert.False(t, ok)
	})

	t.Run("Invoke", func(t *testing.T) {
		r := &resource{}
		tr, _ := m.Method("Transfer")

		results, err := tr.Invoke(r, "alice", true)
		require.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "alice", r.Owner)

		rename, _ := m.Method("Rename")
		_, err = rename.Invoke(r, "renamed")
		require.NoError(t, err)
		assert.Equal(t, "renamed", r.base.Name)

		_, err = tr.Invoke(nil, "x", false)
		assert.ErrorIs(t, err, ErrInvocation)
	})

	t.Run("Invoke With Resolved Arguments", func(t *testing.T) {
		r := &resource{}
		tr, _ := m.Method("Transfer")

		params := make([]Param, 0)
		for i, p := range tr.Params() {
			params = append(params, Param{Index: i, Type: p})
		}
		args := NewContext().When(OfType[string](), "carol").ResolveAll(params)

		_, err := tr.Invoke(r, args...)
		require.NoError(t, err)
		assert.Equal(t, "carol", r.Owner)
	})
}
