package oracle_test

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/goextdefs/internal/oracle"
	"github.com/olehluchkiv/goextdefs/internal/oracle/oracletest"
)

const shapesSrc = `package shapes

type Shape interface{ Area() float64 }

type Circle struct{ R float64 }

func (c Circle) Area() float64 { return c.R * c.R * 3 }

type Box[A any] struct{ v A }

type Pred func(int) bool

func Scale(c *Circle, f float64) (*Circle, error) { return c, nil }

func Wrap[A any](a A) Box[A] { return Box[A]{v: a} }

func AreaOf[S Shape](s S) float64 { return s.Area() }

func Only[B interface{ Box[int] }](b B) {}

func Loose[T any](t T) {}

func Curried(n int) func(Circle) Circle { return nil }

var Default = Circle{R: 1}

var Check Pred

const Version = "1"

func unexported() {}
`

func loadShapes(t *testing.T) (*oracle.Program, *oracle.Module) {
	t.Helper()
	prog := oracletest.Single(t, "example.com/shapes", "/proj/shapes/shapes.go", shapesSrc)
	require.Len(t, prog.Modules(), 1)
	return prog, prog.Modules()[0]
}

func lookup(t *testing.T, prog *oracle.Program, m *oracle.Module, name string) types.Object {
	t.Helper()
	for _, e := range prog.Exports(m) {
		if e.Name == name {
			return e.Object
		}
	}
	t.Fatalf("export %s not found", name)
	return nil
}

func TestExports_OnlyExportedSorted(t *testing.T) {
	prog, m := loadShapes(t)

	var names []string
	for _, e := range prog.Exports(m) {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"AreaOf", "Box", "Check", "Circle", "Curried", "Default", "Loose", "Only", "Pred", "Scale", "Shape", "Version", "Wrap"}, names)
}

func TestCallSignaturesAndReturnType(t *testing.T) {
	prog, m := loadShapes(t)

	scale := lookup(t, prog, m, "Scale")
	sigs := prog.CallSignatures(prog.TypeOf(scale))
	require.Len(t, sigs, 1)

	params := prog.Params(sigs[0])
	require.Len(t, params, 2)
	assert.Equal(t, "c", params[0].Name)

	ret := prog.ReturnType(sigs[0])
	require.NotNil(t, ret)
	obj, ok := prog.DeclaringObject(ret)
	require.True(t, ok, "pointer results resolve through the element")
	assert.Equal(t, "Circle", obj.Name())

	assert.Empty(t, prog.CallSignatures(prog.TypeOf(lookup(t, prog, m, "Default"))))
	assert.Len(t, prog.CallSignatures(prog.TypeOf(lookup(t, prog, m, "Check"))), 1, "named func types are callable")

	only := prog.CallSignatures(prog.TypeOf(lookup(t, prog, m, "Only")))
	require.Len(t, only, 1)
	assert.Nil(t, prog.ReturnType(only[0]))
}

func TestDeclaringObject(t *testing.T) {
	prog, m := loadShapes(t)

	paramOf := func(name string) types.Type {
		sig := prog.CallSignatures(prog.TypeOf(lookup(t, prog, m, name)))[0]
		return prog.Params(sig)[0].Type
	}
	resultOf := func(name string) types.Type {
		sig := prog.CallSignatures(prog.TypeOf(lookup(t, prog, m, name)))[0]
		return prog.ReturnType(sig)
	}

	tests := []struct {
		name string
		typ  types.Type
		want string
	}{
		{name: "generic instance resolves to origin", typ: resultOf("Wrap"), want: "Box"},
		{name: "named constraint", typ: paramOf("AreaOf"), want: "Shape"},
		{name: "single term constraint", typ: paramOf("Only"), want: "Box"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := prog.DeclaringObject(tt.typ)
			require.True(t, ok)
			assert.Equal(t, tt.want, obj.Name())
		})
	}

	_, ok := prog.DeclaringObject(paramOf("Loose"))
	assert.False(t, ok, "unconstrained type parameters have no declaring type")
	_, ok = prog.DeclaringObject(paramOf("Curried"))
	assert.False(t, ok, "basic types have no declaring type")
}

func TestSourcePath(t *testing.T) {
	prog, m := loadShapes(t)

	path, ok := prog.SourcePath(lookup(t, prog, m, "Circle"))
	require.True(t, ok)
	assert.Equal(t, "/proj/shapes/shapes.go", path)

	_, ok = prog.SourcePath(types.Universe.Lookup("error"))
	assert.False(t, ok)
}
