package classify

import (
	"go/types"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
	"github.com/olehluchkiv/goextdefs/internal/namespace"
)

// shape holds the outcome of every structural test for one callable. It is
// computed independently per declaration; the partition consumes it later.
type shape struct {
	byName   bool
	getter   *subject
	fluent   *subject
	pipeable *subject
	static   string
	output   string
}

func (c *Classifier) shapeOf(d *Declaration, sig *types.Signature) shape {
	var s shape
	s.byName = c.table.StaticByName(d.TypeName, d.Name)
	if sub, ok := c.getterTest(sig, catalogue.KindGetter); ok {
		s.getter = &sub
	}
	if sub, ok := c.fluentTest(sig); ok {
		s.fluent = &sub
	}
	if sub, ok := c.pipeableTest(sig); ok {
		s.pipeable = &sub
	}
	out, hasOut := c.typeNameOf(c.finalReturn(sig))
	if hasOut {
		s.output = out.typeName
	}
	s.static = d.Namespace
	if hasOut && c.table.Eligible(out.typeName, catalogue.KindStatic) &&
		namespace.TopLevel(out.typeName) == namespace.TopLevel(d.Namespace) &&
		c.sameScope(d.Object, out.obj) {
		s.static = out.typeName
	}
	return s
}

// sameScope reports whether a and b are declared in the same module. Go
// namespaces share their host as top level, so the host alone cannot tell
// two modules apart.
func (c *Classifier) sameScope(a types.Object, b *types.TypeName) bool {
	sa, ok := c.namer.Scope(a)
	if !ok {
		return false
	}
	sb, ok := c.namer.Scope(b)
	return ok && sa == sb
}

// getterTest: exactly one data parameter whose type is eligible for kind.
func (c *Classifier) getterTest(sig *types.Signature, kind catalogue.Kind) (subject, bool) {
	params := c.oracle.Params(sig)
	if len(params) != 1 {
		return subject{}, false
	}
	sub, ok := c.dataSubject(params[0].Type)
	if !ok || !c.table.Eligible(sub.typeName, kind) {
		return subject{}, false
	}
	return sub, true
}

// fluentTest accepts (self, args...) => self' and the curried
// (args...) => (self) => self' shapes.
func (c *Classifier) fluentTest(sig *types.Signature) (subject, bool) {
	params := c.oracle.Params(sig)
	if len(params) >= 2 {
		self, ok := c.dataSubject(params[0].Type)
		if ok && c.table.Eligible(self.typeName, catalogue.KindFluent) {
			ret, hasRet := c.typeNameOf(c.finalReturn(sig))
			if !hasRet || ret.typeName == self.typeName {
				return self, true
			}
		}
	}
	for _, inner := range c.oracle.CallSignatures(c.oracle.ReturnType(sig)) {
		self, ok := c.getterTest(inner, catalogue.KindFluent)
		if !ok {
			continue
		}
		if ret, hasRet := c.typeNameOf(c.finalReturn(inner)); hasRet && ret.typeName == self.typeName {
			return self, true
		}
	}
	return subject{}, false
}

// pipeableTest: the result is itself a getter-shaped function.
func (c *Classifier) pipeableTest(sig *types.Signature) (subject, bool) {
	for _, inner := range c.oracle.CallSignatures(c.oracle.ReturnType(sig)) {
		if sub, ok := c.getterTest(inner, catalogue.KindPipeable); ok {
			return sub, true
		}
	}
	return subject{}, false
}
