package oracle

import (
	"go/ast"
	"go/token"
	"go/types"
)

// maxDeclDepth bounds pointer and constraint chasing in DeclaringObject.
const maxDeclDepth = 8

// NewProgram builds a Program over pkgs, whose positions live in fset.
func NewProgram(fset *token.FileSet, pkgs []*types.Package) *Program {
	p := &Program{fset: fset}
	for _, pkg := range pkgs {
		if pkg == nil {
			continue
		}
		p.modules = append(p.modules, &Module{Path: pkg.Path(), Name: pkg.Name(), Types: pkg})
	}
	return p
}

// Fset returns the file set positions are reported against.
func (p *Program) Fset() *token.FileSet {
	return p.fset
}

// Modules returns the program's packages in load order.
func (p *Program) Modules() []*Module {
	return p.modules
}

// Exports returns the exported package-level objects of m, sorted by name.
func (p *Program) Exports(m *Module) []Export {
	if m == nil || m.Types == nil {
		return nil
	}
	scope := m.Types.Scope()
	var out []Export
	for _, name := range scope.Names() {
		if !ast.IsExported(name) {
			continue
		}
		out = append(out, Export{Name: name, Object: scope.Lookup(name)})
	}
	return out
}

// TypeOf returns the declared type of obj.
func (p *Program) TypeOf(obj types.Object) types.Type {
	if obj == nil {
		return nil
	}
	return obj.Type()
}

// CallSignatures returns the signatures a value of type t can be called with.
func (p *Program) CallSignatures(t types.Type) []*types.Signature {
	if t == nil {
		return nil
	}
	if sig, ok := t.Underlying().(*types.Signature); ok {
		return []*types.Signature{sig}
	}
	return nil
}

// Params lists the parameters of sig.
func (p *Program) Params(sig *types.Signature) []Param {
	params := sig.Params()
	out := make([]Param, params.Len())
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		out[i] = Param{Name: v.Name(), Type: v.Type()}
	}
	return out
}

// ReturnType returns the first result of sig, or nil when it has none.
// Trailing results such as errors do not take part in classification.
func (p *Program) ReturnType(sig *types.Signature) types.Type {
	if sig.Results().Len() == 0 {
		return nil
	}
	return sig.Results().At(0).Type()
}

// SourcePath returns the file obj is declared in.
func (p *Program) SourcePath(obj types.Object) (string, bool) {
	if p.fset == nil || obj == nil || !obj.Pos().IsValid() {
		return "", false
	}
	pos := p.fset.Position(obj.Pos())
	if !pos.IsValid() || pos.Filename == "" {
		return "", false
	}
	return pos.Filename, true
}

// DeclaringObject returns the type name that declares t. Pointers are
// dereferenced, generic instances resolve to their origin and type
// parameters resolve through their constraint.
func (p *Program) DeclaringObject(t types.Type) (*types.TypeName, bool) {
	return declaringObject(t, 0)
}

func declaringObject(t types.Type, depth int) (*types.TypeName, bool) {
	if t == nil || depth > maxDeclDepth {
		return nil, false
	}
	switch tt := t.(type) {
	case *types.Alias:
		return tt.Origin().Obj(), true
	case *types.Named:
		return tt.Origin().Obj(), true
	case *types.Pointer:
		return declaringObject(tt.Elem(), depth+1)
	case *types.TypeParam:
		return constraintObject(tt, depth+1)
	}
	return nil, false
}

// constraintObject resolves a type parameter to a named constraint, or to
// the single named type its constraint admits.
func constraintObject(tp *types.TypeParam, depth int) (*types.TypeName, bool) {
	c := tp.Constraint()
	if named, ok := c.(*types.Named); ok && named.Obj().Pkg() != nil {
		return named.Origin().Obj(), true
	}
	iface, ok := c.Underlying().(*types.Interface)
	if !ok {
		return nil, false
	}
	var found *types.TypeName
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		e := iface.EmbeddedType(i)
		if u, ok := e.(*types.Union); ok {
			if u.Len() != 1 || u.Term(0).Tilde() {
				return nil, false
			}
			e = u.Term(0).Type()
		}
		obj, ok := declaringObject(e, depth+1)
		if !ok {
			continue
		}
		if found != nil && found != obj {
			return nil, false
		}
		found = obj
	}
	return found, found != nil
}
