package classify

import "go/types"

// subject is the resolved type a declaration acts on or returns.
type subject struct {
	typeName string
	obj      *types.TypeName
}

// typeNameOf resolves t to its declaring type's canonical name.
func (c *Classifier) typeNameOf(t types.Type) (subject, bool) {
	if t == nil {
		return subject{}, false
	}
	obj, ok := c.oracle.DeclaringObject(t)
	if !ok {
		return subject{}, false
	}
	name, ok := c.namer.TypeName(obj)
	if !ok {
		return subject{}, false
	}
	return subject{typeName: name, obj: obj}, true
}

// dataSubject is typeNameOf restricted to non-callable types: a callable
// parameter is a continuation, not the value being operated on.
func (c *Classifier) dataSubject(t types.Type) (subject, bool) {
	if t == nil || len(c.oracle.CallSignatures(t)) > 0 {
		return subject{}, false
	}
	return c.typeNameOf(t)
}

// finalReturn follows curried results of sig until it reaches a type that
// is not callable or is a named type.
func (c *Classifier) finalReturn(sig *types.Signature) types.Type {
	t := c.oracle.ReturnType(sig)
	seen := make(map[types.Type]bool)
	for depth := 0; t != nil && depth < MaxUnwindDepth; depth++ {
		if isNamed(t) || seen[t] {
			break
		}
		seen[t] = true
		sigs := c.oracle.CallSignatures(t)
		if len(sigs) == 0 {
			break
		}
		t = c.oracle.ReturnType(sigs[0])
	}
	return t
}

func isNamed(t types.Type) bool {
	switch t.(type) {
	case *types.Named, *types.Alias:
		return true
	}
	return false
}
