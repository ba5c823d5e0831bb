package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
	"github.com/olehluchkiv/goextdefs/internal/namespace"
)

func TestCollect(t *testing.T) {
	prog, opts := boxProgram(t, `package box

type Box[A any] struct{ v A }

type Reader interface{ Read() int }

type ID = string

type Count int

const Max = 10

var Default = Box[int]{}

func Get[A any](self Box[A]) A { return self.v }

func hidden() {}
`)
	namer := namespace.NewNamer(namespace.NewResolver(opts), prog)

	decls, unresolvable := Collect(prog, namer, testLogger())
	require.Zero(t, unresolvable)

	kinds := make(map[string]catalogue.DeclKind)
	typeNames := make(map[string]string)
	for _, d := range decls {
		assert.Equal(t, "mylib/box", d.Module)
		assert.Equal(t, "Box", d.Namespace)
		kinds[d.Name] = d.Kind
		typeNames[d.Name] = d.TypeName
	}

	assert.Equal(t, map[string]catalogue.DeclKind{
		"Box":     catalogue.DeclClass,
		"Reader":  catalogue.DeclInterface,
		"ID":      catalogue.DeclType,
		"Count":   catalogue.DeclType,
		"Max":     catalogue.DeclConst,
		"Default": catalogue.DeclConst,
		"Get":     catalogue.DeclFunction,
	}, kinds)
	assert.Equal(t, "Box", typeNames["Box"])
	assert.Equal(t, "Box.Get", typeNames["Get"])
}
