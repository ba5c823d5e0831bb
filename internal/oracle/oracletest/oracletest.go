// Package oracletest type-checks in-memory Go sources into an oracle.Program.
package oracletest

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/goextdefs/internal/oracle"
)

// Package is one in-memory package: its import path and files keyed by
// absolute file name.
type Package struct {
	Path  string
	Files map[string]string
}

type chainImporter struct {
	checked  map[string]*types.Package
	fallback types.Importer
}

func (c chainImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := c.checked[path]; ok {
		return pkg, nil
	}
	return c.fallback.Import(path)
}

// Check type-checks pkgs in order; later packages may import earlier ones.
func Check(t testing.TB, pkgs ...Package) *oracle.Program {
	t.Helper()
	fset := token.NewFileSet()
	imp := chainImporter{checked: make(map[string]*types.Package), fallback: importer.Default()}

	var out []*types.Package
	for _, p := range pkgs {
		names := make([]string, 0, len(p.Files))
		for name := range p.Files {
			names = append(names, name)
		}
		sort.Strings(names)

		var files []*ast.File
		for _, name := range names {
			f, err := parser.ParseFile(fset, filepath.FromSlash(name), p.Files[name], parser.ParseComments)
			require.NoError(t, err, "parsing %s", name)
			files = append(files, f)
		}
		conf := types.Config{Importer: imp}
		pkg, err := conf.Check(p.Path, fset, files, nil)
		require.NoError(t, err, fmt.Sprintf("type-checking %s", p.Path))
		imp.checked[p.Path] = pkg
		out = append(out, pkg)
	}
	return oracle.NewProgram(fset, out)
}

// Single type-checks one package made of a single file.
func Single(t testing.TB, path, file, src string) *oracle.Program {
	t.Helper()
	return Check(t, Package{Path: path, Files: map[string]string{file: src}})
}
