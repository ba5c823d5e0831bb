// Package classify decides which structural category each exported callable
// belongs to: getter, fluent, pipeable or static.
package classify

import (
	"go/types"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
)

// MaxUnwindDepth bounds how many curried result layers are followed.
const MaxUnwindDepth = 16

// Declaration is one exported declaration of the analysed program.
type Declaration struct {
	Module    string // import path of the declaring package
	Name      string
	Kind      catalogue.DeclKind
	Object    types.Object
	Namespace string
	TypeName  string // the declaration's own target type name
}

// Key identifies a declaration within a run.
func (d *Declaration) Key() string {
	return d.Module + "#" + d.Name + "#" + string(d.Kind)
}

// Result is the primary category assigned to one callable declaration.
type Result struct {
	Decl    *Declaration
	Kind    catalogue.Kind
	Subject string // type name the extension attaches to
	Output  string // type name of the unwound final return, empty when unresolvable
	ByName  bool   // static by configured name prefix
}

// Stats counts primary categories for one classification pass.
type Stats struct {
	Callables int
	ByName    int
	Getters   int
	Fluents   int
	Pipeables int
	Statics   int
}
