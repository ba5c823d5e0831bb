// Package oracle answers the type questions the classifier asks about a
// loaded, type-checked Go program.
package oracle

import (
	"errors"
	"go/token"
	"go/types"
)

// ErrOracleSetup reports that no program could be built from the project.
var ErrOracleSetup = errors.New("oracle setup failed")

// Module is one type-checked package of the analysed program.
type Module struct {
	Path  string // import path
	Name  string // package name
	Types *types.Package
}

// Export is an exported package-level object.
type Export struct {
	Name   string
	Object types.Object
}

// Param is one parameter of a call signature.
type Param struct {
	Name string
	Type types.Type
}

// LoadOptions controls which packages Load brings into the program.
type LoadOptions struct {
	Patterns     []string // package patterns, default ./...
	Include      []string // doublestar globs on module-relative file paths
	Exclude      []string // gitignore-style patterns on module-relative file paths
	IncludeTests bool
}

// Oracle answers the symbol, type and signature questions the classifier asks.
type Oracle interface {
	Modules() []*Module
	Exports(m *Module) []Export
	TypeOf(obj types.Object) types.Type
	CallSignatures(t types.Type) []*types.Signature
	Params(sig *types.Signature) []Param
	ReturnType(sig *types.Signature) types.Type
	SourcePath(obj types.Object) (string, bool)
	DeclaringObject(t types.Type) (*types.TypeName, bool)
}

var _ Oracle = (*Program)(nil)

// Program is an Oracle over an already type-checked set of packages.
type Program struct {
	fset       *token.FileSet
	modules    []*Module
	ModulePath string // module path from go.mod, empty when unknown
	ModuleDir  string // module root directory, empty when unknown
}
