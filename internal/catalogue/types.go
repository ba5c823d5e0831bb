// Package catalogue holds the extension catalogue model: definitions,
// overrides and the builder, merge and normalisation steps over them.
package catalogue

// Kind names the role an extension plays for its target type.
type Kind string

const (
	KindFluent    Kind = "fluent"
	KindGetter    Kind = "getter"
	KindPipeable  Kind = "pipeable"
	KindStatic    Kind = "static"
	KindType      Kind = "type"
	KindCompanion Kind = "companion"
)

// Valid reports whether k is one of the known extension kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFluent, KindGetter, KindPipeable, KindStatic, KindType, KindCompanion:
		return true
	}
	return false
}

// Extension is one classified role of a declaration with respect to a target type.
type Extension struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	TypeName string `json:"typeName" yaml:"typeName"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// DeclKind is the syntactic kind of an exported declaration.
type DeclKind string

const (
	DeclConst     DeclKind = "const"
	DeclFunction  DeclKind = "function"
	DeclInterface DeclKind = "interface"
	DeclClass     DeclKind = "class"
	DeclType      DeclKind = "type"
)

// Definition groups every extension produced for one exported declaration.
type Definition struct {
	Name       string      `json:"declarationName" yaml:"declarationName"`
	Kind       DeclKind    `json:"declarationKind" yaml:"declarationKind"`
	Extensions []Extension `json:"extensions" yaml:"extensions"`
}

// Catalogue maps an output module path to its definitions.
type Catalogue map[string][]Definition

// Len returns the number of definitions across all modules.
func (c Catalogue) Len() int {
	n := 0
	for _, defs := range c {
		n += len(defs)
	}
	return n
}
