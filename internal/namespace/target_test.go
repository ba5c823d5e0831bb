package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetName(t *testing.T) {
	tests := []struct {
		name   string
		ns     string
		symbol string
		want   string
	}{
		{name: "standard library is global", ns: "std/context", symbol: "Context", want: "Context"},
		{name: "symbol is the base name", ns: "Foo/Bar", symbol: "Bar", want: "Foo/Bar"},
		{name: "base name folds case", ns: "mylib/box", symbol: "Box", want: "mylib/box"},
		{name: "base name prefix", ns: "mylib/box", symbol: "BoxOps", want: "mylib/box.Ops"},
		{name: "flattened suffix", ns: "my/list", symbol: "MyList", want: "my/list"},
		{name: "suffix inside a segment", ns: "mylib/set", symbol: "T", want: "mylib/set.T"},
		{name: "suffix across a partial segment", ns: "ab/cd", symbol: "Bcd", want: "ab/cd.Bcd"},
		{name: "plain member", ns: "mylib/box", symbol: "Pair", want: "mylib/box.Pair"},
		{name: "aliased namespace", ns: "Box", symbol: "Box", want: "Box"},
		{name: "empty namespace", ns: "", symbol: "Pair", want: "Pair"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetName(tt.ns, tt.symbol))
		})
	}
}

func TestBaseNameAndTopLevel(t *testing.T) {
	assert.Equal(t, "Bar", BaseName("Foo/Bar"))
	assert.Equal(t, "Foo", BaseName("Foo"))
	assert.Equal(t, "mylib", TopLevel("mylib/box"))
	assert.Equal(t, "Box", TopLevel("Box.Ops"))
}
