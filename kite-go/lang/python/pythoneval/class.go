package pythoneval

import (
	"fmt"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// ClassContext is a class definition evaluated in its defining context
type ClassContext struct {
	Base
	def *pythonast.ClassDefStmt

	selfAttrs     map[string][]selfAttribute
	selfAttrOrder []string
}

type selfAttribute struct {
	method *pythonast.FunctionDefStmt
	attr   *pythonast.AttributeExpr
}

func (e *Evaluator) classContext(parent Context, def *pythonast.ClassDefStmt) *ClassContext {
	key := internKey{kind: "class", node: def, parent: parent.ID()}
	return e.intern(key, func() Context {
		return &ClassContext{Base: NewBase(e, parent), def: def}
	}).(*ClassContext)
}

// Node implements Context
func (c *ClassContext) Node() pythonast.Node { return c.def }

// Name implements Context
func (c *ClassContext) Name() string { return c.def.Name.Ident.Literal }

func (c *ClassContext) String() string {
	return fmt.Sprintf("<class %s>", c.Name())
}

// Def is the class definition
func (c *ClassContext) Def() *pythonast.ClassDefStmt { return c.def }

// Bases implements Context. Classes without explicit bases derive from object.
func (c *ClassContext) Bases(ctx kitectx.CallContext) ([]LazyContext, error) {
	bases := c.eval.Memoize(c, "bases", 0, []LazyContext(nil), func() interface{} {
		var out []LazyContext
		for _, arg := range c.def.Args {
			if !pythonast.IsNil(arg.Name) {
				// metaclass and other class keywords
				continue
			}
			out = append(out, LazyTree{Owner: c.parent, Expr: arg.Value})
		}
		if len(out) > 0 {
			return out
		}
		if object := c.eval.bridge.Special(ctx, SpecialObject); object != nil && object != Context(c) {
			out = append(out, LazyKnown{Context: object})
		}
		return out
	}).([]LazyContext)
	return bases, nil
}

// MRO implements Context. The order starts with the class itself, then walks each
// base's own order depth first, left to right, keeping the first occurrence of each
// class. Bases that do not infer to a class are skipped.
func (c *ClassContext) MRO(ctx kitectx.CallContext) ([]Context, error) {
	mro := c.eval.Memoize(c, "mro", 0, []Context(nil), func() interface{} {
		out := []Context{c}
		add := func(cls Context) {
			for _, seen := range out {
				if seen == cls {
					return
				}
			}
			out = append(out, cls)
		}

		bases, _ := c.Bases(ctx)
		for _, base := range bases {
			for _, cls := range base.Infer(ctx) {
				sub, err := cls.MRO(ctx)
				if err != nil {
					if c.eval.opts.Trace {
						c.eval.logger.Debugf("base %s of %s is not a class", cls, c)
					}
					continue
				}
				add(cls)
				for _, s := range sub {
					add(s)
				}
			}
		}
		return out
	}).([]Context)
	return mro, nil
}

// Call implements Context. Builtin containers are built from their arguments,
// everything else makes an instance.
func (c *ClassContext) Call(ctx kitectx.CallContext, args Arguments) (Set, error) {
	if kind, ok := c.eval.bridge.IsContainer(c); ok {
		return NewSet(c.eval.containerFromArgs(ctx, c, kind, args)), nil
	}
	return NewSet(c.eval.newInstance(ctx, c, args, false)), nil
}

// Class implements Context
func (c *ClassContext) Class(ctx kitectx.CallContext) (Context, error) {
	if t := c.eval.bridge.Special(ctx, SpecialType); t != nil {
		return t, nil
	}
	return nil, ErrUnsupported
}

// Filters implements Context. Free-variable lookup sees only the class body; attribute
// lookup sees one layer per class of the MRO, then the attributes of type.
func (c *ClassContext) Filters(ctx kitectx.CallContext, opts FilterOptions) []Filter {
	if opts.SearchGlobal {
		return []Filter{NewTreeFilter(c, c.def, opts.Until)}
	}

	mro, _ := c.MRO(ctx)
	var filters []Filter
	for _, cls := range mro {
		if cc, ok := cls.(*ClassContext); ok {
			filters = append(filters, newClassFilter(cc, opts.Origin, !opts.IsInstance))
		} else {
			filters = append(filters, cls.Filters(ctx, FilterOptions{SearchGlobal: true})...)
		}
	}
	if opts.IsInstance {
		return filters
	}
	if t, ok := c.eval.bridge.Special(ctx, SpecialType).(*ClassContext); ok && t != c {
		filters = append(filters, c.eval.generatedInstance(t).Filters(ctx, FilterOptions{})...)
	}
	return filters
}

// selfAttributes indexes the attributes assigned through the receiver in each method
// of the class. Static and class methods have no instance receiver.
func (c *ClassContext) selfAttributes() map[string][]selfAttribute {
	if c.selfAttrs != nil {
		return c.selfAttrs
	}
	c.selfAttrs = make(map[string][]selfAttribute)
	for _, stmt := range c.def.Body {
		fn, ok := stmt.(*pythonast.FunctionDefStmt)
		if !ok || len(fn.Parameters) == 0 || hasDecorator(fn, "staticmethod") || hasDecorator(fn, "classmethod") {
			continue
		}
		self := fn.Parameters[0].Name.Ident.Literal
		for _, attr := range pythonast.SelfAttributes(fn, self) {
			name := attr.Attribute.Literal
			if _, seen := c.selfAttrs[name]; !seen {
				c.selfAttrOrder = append(c.selfAttrOrder, name)
			}
			c.selfAttrs[name] = append(c.selfAttrs[name], selfAttribute{method: fn, attr: attr})
		}
	}
	return c.selfAttrs
}

func (c *ClassContext) selfAttributeOrder() []string {
	c.selfAttributes()
	return c.selfAttrOrder
}

// hasDecorator checks for a decorator that is the plain name given
func hasDecorator(fn *pythonast.FunctionDefStmt, name string) bool {
	for _, d := range fn.Decorators {
		if n, ok := d.(*pythonast.NameExpr); ok && n.Ident.Literal == name {
			return true
		}
	}
	return false
}
