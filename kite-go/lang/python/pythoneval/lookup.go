package pythoneval

import (
	"go/token"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// lookupName resolves a free variable reference made inside owner. Loop bindings in
// frame take precedence; after that the owner's scope and then the enclosing scopes
// are searched, finishing with the builtins.
func (e *Evaluator) lookupName(ctx kitectx.CallContext, owner Context, ref *pythonast.NameExpr, frame *Frame) Set {
	if value, ok := frame.Lookup(ref); ok {
		return value.Infer(ctx)
	}
	switch ref.Ident.Literal {
	case "True":
		return NewSet(e.bridge.Literal(ctx, true))
	case "False":
		return NewSet(e.bridge.Literal(ctx, false))
	case "None":
		return NewSet(e.bridge.Literal(ctx, nil))
	}

	names := e.lookupNames(ctx, owner, ref.Ident.Literal, e.statementStart(RootContext(owner), ref), ref)
	return inferNames(ctx, names)
}

// lookupNames returns the bindings of name visible from owner, considering only
// definitions of owner's own scope that begin before until.
func (e *Evaluator) lookupNames(ctx kitectx.CallContext, owner Context, name string, until token.Pos, origin pythonast.Node) []Name {
	var inFunction bool
	for c := owner; c != nil; c = c.Parent() {
		if _, ok := c.(*ClassContext); ok && inFunction {
			continue
		}
		filters := c.Filters(ctx, FilterOptions{SearchGlobal: true, Until: until, Origin: origin})
		if names := lookupFilters(ctx, filters, name); len(names) > 0 {
			return names
		}
		switch c.(type) {
		case *FunctionExecutionContext, *FunctionContext:
			// enclosing definitions are visible regardless of position once inside a function
			inFunction = true
			until = 0
		}
	}

	builtins := e.bridge.BuiltinsModule()
	if builtins == nil || builtins == RootContext(owner) {
		return nil
	}
	return NewTreeFilter(builtins, builtins.mod, 0).Get(ctx, name)
}

// statementStart is the start of the innermost statement containing node. Definitions
// from that statement onwards are not visible to the node.
func (e *Evaluator) statementStart(root *ModuleContext, node pythonast.Node) token.Pos {
	if root == nil {
		return 0
	}
	parents := e.parentsOf(root)
	for n := node; !pythonast.IsNil(n); n = parents[n] {
		if _, ok := n.(pythonast.Stmt); ok {
			return n.Begin()
		}
	}
	return 0
}

// attr resolves an attribute of c; the first filter with a binding for name wins
func (e *Evaluator) attr(ctx kitectx.CallContext, c Context, name string, origin pythonast.Node) Set {
	names := lookupFilters(ctx, c.Filters(ctx, FilterOptions{Origin: origin}), name)
	return inferNames(ctx, names)
}

// callMethod looks up a method on c and calls it with args
func (e *Evaluator) callMethod(ctx kitectx.CallContext, c Context, name string, args Arguments) (Set, bool) {
	methods := e.attr(ctx, c, name, nil)
	if len(methods) == 0 {
		return nil, false
	}
	return e.callAll(ctx, methods, args), true
}

// callAll calls each context of fns, treating uncallable ones as having no result
func (e *Evaluator) callAll(ctx kitectx.CallContext, fns Set, args Arguments) Set {
	var out Set
	for _, fn := range fns {
		res, err := fn.Call(ctx, args)
		if err != nil {
			e.unsupported("call", fn)
			continue
		}
		out = out.Union(res)
	}
	return out
}

// Names lists the bindings visible through the filters of c. When several filters
// bind the same name, the first one wins.
func Names(ctx kitectx.CallContext, c Context, opts FilterOptions) []Name {
	var out []Name
	seen := make(map[string]bool)
	for _, f := range c.Filters(ctx, opts) {
		added := make(map[string]bool)
		for _, n := range f.Values(ctx) {
			if seen[n.String()] {
				continue
			}
			added[n.String()] = true
			out = append(out, n)
		}
		for name := range added {
			seen[name] = true
		}
	}
	return out
}

func (e *Evaluator) unsupported(op string, c Context) {
	unsupportedBreakdown.HitAndAdd(op)
	if e.opts.Trace {
		e.logger.Debugf("unsupported %s on %s", op, c)
	}
}

// GetAttr resolves an attribute of c within a running query
func (e *Evaluator) GetAttr(ctx kitectx.CallContext, c Context, name string) Set {
	return e.attr(ctx, c, name, nil)
}
