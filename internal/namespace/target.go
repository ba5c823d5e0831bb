package namespace

import (
	"go/types"
	"strings"
)

// TargetName combines a namespace and a declared symbol name into the
// canonical type name extensions attach to. Rules are tried in order.
func TargetName(ns, symbol string) string {
	if strings.HasPrefix(ns, StdPrefix) {
		return symbol
	}
	base := BaseName(ns)
	if base != "" {
		if strings.EqualFold(symbol, base) {
			return ns
		}
		if len(symbol) > len(base) && strings.EqualFold(symbol[:len(base)], base) {
			return ns + "." + symbol[len(base):]
		}
	}
	if flattenedSuffix(ns, symbol) {
		return ns
	}
	if ns == "" {
		return symbol
	}
	return ns + "." + symbol
}

// flattenedSuffix reports whether symbol equals the trailing segments of
// ns joined without separators, ignoring case. The match must begin at a
// segment start so "mylib/set" does not claim "T".
func flattenedSuffix(ns, symbol string) bool {
	if symbol == "" {
		return false
	}
	segs := strings.Split(ns, "/")
	tail := ""
	for i := len(segs) - 1; i >= 0; i-- {
		tail = segs[i] + tail
		if len(tail) >= len(symbol) {
			return len(tail) == len(symbol) && strings.EqualFold(tail, symbol)
		}
	}
	return false
}

// BaseName returns the last path segment of ns.
func BaseName(ns string) string {
	if i := strings.LastIndexByte(ns, '/'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// TopLevel returns the first path segment of ns.
func TopLevel(ns string) string {
	if i := strings.IndexByte(ns, '/'); i >= 0 {
		return ns[:i]
	}
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[:i]
	}
	return ns
}

// SourceLocator reports the file an object is declared in.
type SourceLocator interface {
	SourcePath(obj types.Object) (string, bool)
}

// Namer resolves objects to namespaces and type names.
type Namer struct {
	resolver *Resolver
	locator  SourceLocator
}

// NewNamer binds a resolver to a source locator.
func NewNamer(r *Resolver, loc SourceLocator) *Namer {
	return &Namer{resolver: r, locator: loc}
}

// Namespace returns the namespace obj is declared in.
func (n *Namer) Namespace(obj types.Object) (string, bool) {
	if obj == nil || obj.Pkg() == nil {
		return "", false
	}
	p, ok := n.locator.SourcePath(obj)
	if !ok {
		return "", false
	}
	return n.resolver.Resolve(p), true
}

// Scope returns the module scope obj is declared in.
func (n *Namer) Scope(obj types.Object) (string, bool) {
	if obj == nil || obj.Pkg() == nil {
		return "", false
	}
	p, ok := n.locator.SourcePath(obj)
	if !ok {
		return "", false
	}
	return n.resolver.Scope(p), true
}

// TypeName returns the canonical type name for obj.
func (n *Namer) TypeName(obj types.Object) (string, bool) {
	ns, ok := n.Namespace(obj)
	if !ok {
		return "", false
	}
	return TargetName(ns, obj.Name()), true
}
