package policy

import (
	"strconv"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
)

// Input is one classified declaration handed to the engine.
type Input struct {
	Kind         catalogue.Kind // primary category
	DeclName     string
	Module       string // import path of the declaring package
	TypeName     string // subject type name the extension attaches to
	DeclTypeName string // the declaration's own type name
	OutputType   string // type name of the unwound final return, may be empty
}

// Engine applies namespace policy and manual overrides.
type Engine struct {
	table     *Table
	overrides catalogue.Overrides
}

// NewEngine returns an Engine over table. overrides may be nil.
func NewEngine(table *Table, overrides catalogue.Overrides) *Engine {
	return &Engine{table: table, overrides: overrides}
}

// Table returns the engine's namespace table.
func (e *Engine) Table() *Table {
	return e.table
}

// Apply returns the extensions in contributes to the catalogue. Manual
// overrides are appended after the computed extensions, except that an
// excluded declaration also loses overrides of its own category; an
// override of another category still attaches.
func (e *Engine) Apply(in Input) []catalogue.Extension {
	exts := e.computed(in)
	if e.overrides == nil {
		return exts
	}
	keys := []string{catalogue.Key(in.TypeName, in.DeclName)}
	if in.DeclTypeName != "" {
		keys = append(keys, catalogue.Key(in.DeclTypeName, in.DeclName))
	}
	manual := e.overrides.Lookup(keys...)
	if cfg, ok := e.table.Select(in.TypeName); ok && excluded(cfg, in) {
		kept := manual[:0:0]
		for _, x := range manual {
			if x.Kind != in.Kind {
				kept = append(kept, x)
			}
		}
		manual = kept
	}
	return append(exts, manual...)
}

// TypeExtensions returns the extensions of a type declaration: a type
// extension plus an optional companion.
func (e *Engine) TypeExtensions(in Input) []catalogue.Extension {
	in.Kind = catalogue.KindType
	return e.Apply(in)
}

func (e *Engine) computed(in Input) []catalogue.Extension {
	cfg, ok := e.table.Select(in.TypeName)
	if !ok {
		return nil
	}
	cat := cfg.Category(in.Kind)
	if cat == nil || !cat.Include || excluded(cfg, in) {
		return nil
	}

	exts := []catalogue.Extension{{
		Kind:     in.Kind,
		TypeName: in.TypeName + cat.Suffix,
		Priority: priority(cfg, cat.Priority, in.Module),
	}}
	if cat.Companion {
		exts = append(exts, catalogue.Extension{
			Kind:     catalogue.KindCompanion,
			TypeName: in.TypeName,
		})
	}
	if p := cat.Static; p != nil && p.Include {
		target := in.TypeName
		if p.UseOutputType && in.OutputType != "" {
			target = in.OutputType
		}
		exts = append(exts, catalogue.Extension{
			Kind:     catalogue.KindStatic,
			TypeName: target + p.Suffix,
			Priority: priority(cfg, p.Priority, in.Module),
		})
	}
	return exts
}

// OutputModule returns the catalogue module a declaration is filed under.
func (e *Engine) OutputModule(in Input) string {
	if cfg, ok := e.table.Select(in.TypeName); ok {
		return in.Module + cfg.ModuleSuffix
	}
	return in.Module
}

func excluded(cfg *NamespaceConfig, in Input) bool {
	key := catalogue.Key(in.Module, in.DeclName)
	for _, ex := range cfg.Exclude {
		if ex == key {
			return true
		}
	}
	return false
}

// priority cascades category, namespace and module-prefix priorities.
func priority(cfg *NamespaceConfig, category *int, module string) string {
	if category != nil {
		return strconv.Itoa(*category)
	}
	if cfg.Priority != nil {
		return strconv.Itoa(*cfg.Priority)
	}
	if p, ok := modulePriority(cfg, module); ok {
		return strconv.Itoa(p)
	}
	return ""
}
