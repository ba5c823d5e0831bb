// Package pipeline runs one catalogue generation: it collects exported
// declarations, classifies them, applies namespace policy and folds all
// definition streams into a single catalogue.
package pipeline

import (
	"go/types"
	"log/slog"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
	"github.com/olehluchkiv/goextdefs/internal/classify"
	"github.com/olehluchkiv/goextdefs/internal/namespace"
	"github.com/olehluchkiv/goextdefs/internal/oracle"
)

// Collect enumerates the exported declarations of every module, once per
// (module, name, kind). Declarations that cannot be traced to a source
// location are dropped and counted.
func Collect(o oracle.Oracle, namer *namespace.Namer, logger *slog.Logger) ([]*classify.Declaration, int) {
	var decls []*classify.Declaration
	seen := make(map[string]bool)
	unresolvable := 0
	for _, m := range o.Modules() {
		for _, e := range o.Exports(m) {
			kind, ok := declKind(e.Object)
			if !ok {
				continue
			}
			ns, ok := namer.Namespace(e.Object)
			if !ok {
				unresolvable++
				logger.Debug("unresolvable declaration", "module", m.Path, "name", e.Name)
				continue
			}
			d := &classify.Declaration{
				Module:    m.Path,
				Name:      e.Name,
				Kind:      kind,
				Object:    e.Object,
				Namespace: ns,
				TypeName:  namespace.TargetName(ns, e.Name),
			}
			if seen[d.Key()] {
				continue
			}
			seen[d.Key()] = true
			decls = append(decls, d)
		}
	}
	return decls, unresolvable
}

func declKind(obj types.Object) (catalogue.DeclKind, bool) {
	switch o := obj.(type) {
	case *types.Func:
		return catalogue.DeclFunction, true
	case *types.Var, *types.Const:
		return catalogue.DeclConst, true
	case *types.TypeName:
		if o.IsAlias() {
			return catalogue.DeclType, true
		}
		switch o.Type().Underlying().(type) {
		case *types.Interface:
			return catalogue.DeclInterface, true
		case *types.Struct:
			return catalogue.DeclClass, true
		}
		return catalogue.DeclType, true
	}
	return "", false
}

func isTypeDecl(k catalogue.DeclKind) bool {
	return k == catalogue.DeclInterface || k == catalogue.DeclClass || k == catalogue.DeclType
}
