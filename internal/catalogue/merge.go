package catalogue

import (
	"sort"
)

type defKey struct {
	module string
	name   string
	kind   DeclKind
}

// Builder folds definitions into a catalogue. Definitions sharing
// (module, name, kind) have their extensions concatenated.
type Builder struct {
	order []defKey
	defs  map[defKey]*Definition
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{defs: make(map[defKey]*Definition)}
}

// Add appends def under module. Empty extension lists still register the
// declaration so that later streams can attach to it.
func (b *Builder) Add(module string, def Definition) {
	k := defKey{module: module, name: def.Name, kind: def.Kind}
	existing, ok := b.defs[k]
	if !ok {
		d := Definition{Name: def.Name, Kind: def.Kind}
		existing = &d
		b.defs[k] = existing
		b.order = append(b.order, k)
	}
	existing.Extensions = appendUnique(existing.Extensions, def.Extensions...)
}

// AddCatalogue folds every definition of c into the builder.
func (b *Builder) AddCatalogue(c Catalogue) {
	modules := make([]string, 0, len(c))
	for m := range c {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	for _, m := range modules {
		for _, def := range c[m] {
			b.Add(m, def)
		}
	}
}

// Catalogue returns the folded catalogue. Definitions without extensions
// are left out.
func (b *Builder) Catalogue() Catalogue {
	out := make(Catalogue)
	for _, k := range b.order {
		def := b.defs[k]
		if len(def.Extensions) == 0 {
			continue
		}
		exts := make([]Extension, len(def.Extensions))
		copy(exts, def.Extensions)
		out[k.module] = append(out[k.module], Definition{Name: def.Name, Kind: def.Kind, Extensions: exts})
	}
	return out
}

// Merge combines catalogues. The result does not depend on argument order
// once normalized.
func Merge(cs ...Catalogue) Catalogue {
	b := NewBuilder()
	for _, c := range cs {
		b.AddCatalogue(c)
	}
	return Normalize(b.Catalogue())
}

// Normalize sorts definitions by name and kind and extensions by
// kind, type name, member name and priority.
func Normalize(c Catalogue) Catalogue {
	out := make(Catalogue, len(c))
	for module, defs := range c {
		sorted := make([]Definition, len(defs))
		for i, d := range defs {
			exts := make([]Extension, len(d.Extensions))
			copy(exts, d.Extensions)
			sort.Slice(exts, func(i, j int) bool { return extLess(exts[i], exts[j]) })
			sorted[i] = Definition{Name: d.Name, Kind: d.Kind, Extensions: exts}
		}
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Name != sorted[j].Name {
				return sorted[i].Name < sorted[j].Name
			}
			return sorted[i].Kind < sorted[j].Kind
		})
		out[module] = sorted
	}
	return out
}

func extLess(a, b Extension) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.TypeName != b.TypeName {
		return a.TypeName < b.TypeName
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Priority < b.Priority
}

func appendUnique(dst []Extension, exts ...Extension) []Extension {
	for _, e := range exts {
		dup := false
		for _, have := range dst {
			if have == e {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, e)
		}
	}
	return dst
}
