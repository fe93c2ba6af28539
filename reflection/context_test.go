// FILE: lixenwraith/confchain/reflection/context_test.go
package reflection

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marker int

type greeter struct {
	Name   string
	Err    error
	Count  int
	Marker marker
}

func newGreeter(name string) *greeter {
	return &greeter{Name: name}
}

func newGreeterWithCount(name string, count int) *greeter {
	return &greeter{Name: name, Count: count}
}

func newGreeterWithErr(err error, m marker) *greeter {
	return &greeter{Err: err, Marker: m}
}

func failingGreeter(name string) (*greeter, error) {
	return nil, errors.New("boom: " + name)
}

func TestContextResolve(t *testing.T) {
	ctx := NewContext().
		When(OfType[string](), "foo").
		WhenFunc(OfType[error](), func(Param) any { return errors.New("made") }).
		When(OfKind(reflect.Int), 10)

	t.Run("Single Parameter", func(t *testing.T) {
		args, err := ctx.ResolveFunc(func(string) {})
		require.NoError(t, err)
		assert.Equal(t, []any{"foo"}, args)

		args, err = ctx.ResolveFunc(func(error) {})
		require.NoError(t, err)
		require.Len(t, args, 1)
		assert.EqualError(t, args[0].(error), "made")
	})

	t.Run("Multiple Parameters In Order", func(t *testing.T) {
		args, err := ctx.ResolveFunc(func(string, error, int) {})
		require.NoError(t, err)
		require.Len(t, args, 3)
		assert.Equal(t, "foo", args[0])
		assert.Implements(t, (*error)(nil), args[1])
		assert.Equal(t, 10, args[2])
	})

	t.Run("First Rule Wins", func(t *testing.T) {
		c := NewContext().
			When(At(0), "positional").
			When(OfType[string](), "typed")

		v, ok := c.Resolve(Param{Index: 0, Type: reflect.TypeFor[string]()})
		assert.True(t, ok)
		assert.Equal(t, "positional", v)

		v, ok = c.Resolve(Param{Index: 1, Type: reflect.TypeFor[string]()})
		assert.True(t, ok)
		assert.Equal(t, "typed", v)
	})

	t.Run("Default", func(t *testing.T) {
		v, ok := NewContext().Resolve(Param{Type: reflect.TypeFor[bool]()})
		assert.False(t, ok)
		assert.Nil(t, v)

		v, ok = NewContext().Default(true).Resolve(Param{Type: reflect.TypeFor[bool]()})
		assert.True(t, ok)
		assert.Equal(t, true, v)

		c := NewContext().DefaultFunc(func(p Param) any { return p.Type.String() })
		v, _ = c.Resolve(Param{Type: reflect.TypeFor[float64]()})
		assert.Equal(t, "float64", v)
	})

	t.Run("Not A Function", func(t *testing.T) {
		_, err := ctx.ResolveFunc("nope")
		assert.ErrorIs(t, err, ErrInvocation)
	})
}

func TestContextCall(t *testing.T) {
	ctx := NewContext().When(OfType[string](), "x").When(OfKind(reflect.Int64), 3)

	results, err := ctx.Call(func(s string, n int64) string {
		return s + "-" + string(rune('0'+n))
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"x-3"}, results)

	_, err = ctx.Call(func(s string) error { return errors.New("failed " + s) })
	assert.EqualError(t, err, "failed x")
}

func TestCreate(t *testing.T) {
	t.Run("Single Constructor Uses Zero Values", func(t *testing.T) {
		g, err := Create[*greeter](NewContext(), newGreeter)
		require.NoError(t, err)
		assert.Equal(t, "", g.Name)
	})

	t.Run("First Complete Constructor", func(t *testing.T) {
		ctx := NewContext().When(OfType[string](), "bob")

		g, err := Create[*greeter](ctx, newGreeterWithCount, newGreeter)
		require.NoError(t, err)
		assert.Equal(t, "bob", g.Name)
		assert.Equal(t, 0, g.Count)

		ctx.When(OfType[int](), 7)
		g, err = Create[*greeter](ctx, newGreeterWithCount, newGreeter)
		require.NoError(t, err)
		assert.Equal(t, 7, g.Count)
	})

	t.Run("Numeric Conversion", func(t *testing.T) {
		ctx := NewContext().
			When(OfType[error](), errors.New("e")).
			When(OfType[marker](), 5)

		g, err := Create[*greeter](ctx, newGreeterWithErr)
		require.NoError(t, err)
		assert.Equal(t, marker(5), g.Marker)
	})

	t.Run("No Usable Constructor", func(t *testing.T) {
		_, err := Create[*greeter](NewContext(), newGreeter, newGreeterWithCount)
		assert.ErrorIs(t, err, ErrNoConstructor)

		_, err = Create[*greeter](NewContext())
		assert.ErrorIs(t, err, ErrNoConstructor)
	})

	t.Run("Wrong Return Type", func(t *testing.T) {
		_, err := Create[*greeter](NewContext(), func() string { return "" })
		assert.ErrorIs(t, err, ErrNoConstructor)
	})

	t.Run("Constructor Error", func(t *testing.T) {
		_, err := Create[*greeter](NewContext().When(OfType[string](), "z"), failingGreeter)
		assert.EqualError(t, err, "boom: z")
	})
}

func TestFill(t *testing.T) {
	type deps struct {
		Name    string `inject:"name"`
		Count   int    `inject:""`
		Skipped string
		hidden  string `inject:""`
	}

	ctx := NewContext().
		When(TaggedWith("inject", "name"), "svc").
		When(And(Tagged("inject"), OfKind(reflect.Int)), 4).
		When(Named("skipped"), "never")

	d := &deps{}
	require.NoError(t, ctx.Fill(d, FieldTagged("inject")))
	assert.Equal(t, "svc", d.Name)
	assert.Equal(t, 4, d.Count)
	assert.Empty(t, d.Skipped)
	assert.Empty(t, d.hidden)

	t.Run("Keeps Set Fields", func(t *testing.T) {
		d := &deps{Name: "preset"}
		require.NoError(t, ctx.Fill(d))
		assert.Equal(t, "preset", d.Name)
		assert.Equal(t, "never", d.Skipped)
	})

	t.Run("Type Mismatch", func(t *testing.T) {
		bad := NewContext().When(Named("Count"), "four")
		assert.ErrorIs(t, bad.Fill(&deps{}), ErrArgumentType)
	})

	t.Run("Invalid Target", func(t *testing.T) {
		assert.ErrorIs(t, ctx.Fill(deps{}), ErrArgumentType)
	})
}
