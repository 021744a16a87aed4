package pythoneval

import (
	"fmt"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// Generator is the object returned by calling a generator function
type Generator struct {
	Base
	exec *FunctionExecutionContext
}

func (e *Evaluator) generator(exec *FunctionExecutionContext) *Generator {
	key := internKey{kind: "generator", node: exec.fn.def, parent: exec.ID()}
	return e.intern(key, func() Context {
		return &Generator{Base: NewBase(e, exec.Parent()), exec: exec}
	}).(*Generator)
}

// Execution is the function execution that created the generator
func (g *Generator) Execution() *FunctionExecutionContext { return g.exec }

// Node implements Context
func (g *Generator) Node() pythonast.Node { return g.exec.fn.def }

// Name implements Context
func (g *Generator) Name() string { return "generator" }

func (g *Generator) String() string {
	return fmt.Sprintf("<generator %s>", g.exec.fn.Name())
}

// Iterate implements Context
func (g *Generator) Iterate(ctx kitectx.CallContext) ([]LazyContext, error) {
	return g.exec.YieldValues(ctx), nil
}

// Class implements Context
func (g *Generator) Class(ctx kitectx.CallContext) (Context, error) {
	if c := g.eval.bridge.Special(ctx, SpecialGenerator); c != nil {
		return c, nil
	}
	return nil, ErrUnsupported
}

// Filters implements Context
func (g *Generator) Filters(ctx kitectx.CallContext, opts FilterOptions) []Filter {
	return g.eval.specialFilters(ctx, SpecialGenerator)
}

// yieldGroup is a run of yields sharing the loop they are in, or no loop
type yieldGroup struct {
	loop   *pythonast.ForStmt
	yields []*pythonast.YieldExpr
}

// YieldValues lists the values the generator produces, in order where the order can
// be predicted. Yields placed directly in the function body, or in a simple for loop
// directly in the body, are ordered; a loop is unrolled over the elements of its
// iterable with the loop variable bound for each element. Any other placement falls
// back to a single value merging every yield that may execute.
func (x *FunctionExecutionContext) YieldValues(ctx kitectx.CallContext) []LazyContext {
	e := x.eval
	return e.Memoize(x, "yields", 0, []LazyContext(nil), func() interface{} {
		def, ok := x.fn.def.(*pythonast.FunctionDefStmt)
		if !ok {
			return []LazyContext(nil)
		}
		if !e.pushCall(ctx, def, x.args) {
			return []LazyContext(nil)
		}
		defer e.popCall()

		groups, ordered := x.yieldGroups(def)
		if !ordered {
			return x.mergedYields(ctx, def)
		}

		var out []LazyContext
		for _, g := range groups {
			if g.loop == nil {
				for _, y := range g.yields {
					out = append(out, x.evalYield(ctx, y, nil)...)
				}
				continue
			}
			name := g.loop.Targets[0].(*pythonast.NameExpr).Ident.Literal
			elems := e.iterateSet(ctx, e.evalExpr(ctx, x, g.loop.Iterable, nil))
			for i, elem := range elems {
				frame := (*Frame)(nil).Bind(g.loop, name, elem, i)
				for _, y := range g.yields {
					out = append(out, x.evalYield(ctx, y, frame)...)
				}
			}
		}
		return out
	}).([]LazyContext)
}

// yieldGroups groups the yields by their innermost enclosing loop or branch. ordered
// is false if some yield is inside a construct whose iterations cannot be predicted.
func (x *FunctionExecutionContext) yieldGroups(def *pythonast.FunctionDefStmt) (groups []yieldGroup, ordered bool) {
	parents := x.eval.parentsOf(RootContext(x))
	var last *pythonast.ForStmt
	for _, y := range pythonast.Yields(def) {
		var anchor pythonast.Node
		for n := parents[y]; !pythonast.IsNil(n); n = parents[n] {
			switch n.(type) {
			case *pythonast.ForStmt, *pythonast.WhileStmt, *pythonast.IfStmt, *pythonast.FunctionDefStmt:
				anchor = n
			}
			if anchor != nil {
				break
			}
		}

		loop, isFor := anchor.(*pythonast.ForStmt)
		switch {
		case isFor && parents[loop] == pythonast.Node(def) && definesOneName(loop):
			if loop == last {
				groups[len(groups)-1].yields = append(groups[len(groups)-1].yields, y)
			} else {
				groups = append(groups, yieldGroup{loop: loop, yields: []*pythonast.YieldExpr{y}})
			}
		case anchor == pythonast.Node(def):
			groups = append(groups, yieldGroup{yields: []*pythonast.YieldExpr{y}})
		default:
			return nil, false
		}
		last = loop
	}
	return groups, true
}

func definesOneName(loop *pythonast.ForStmt) bool {
	if len(loop.Targets) != 1 {
		return false
	}
	_, ok := loop.Targets[0].(*pythonast.NameExpr)
	return ok
}

// mergedYields is the fallback for unpredictable yield order: one value that is the
// union of the yields that may execute, up to the first one that always does
func (x *FunctionExecutionContext) mergedYields(ctx kitectx.CallContext, def *pythonast.FunctionDefStmt) []LazyContext {
	e := x.eval
	var values Set
	for _, y := range pythonast.Yields(def) {
		reach := Uncertain
		if stmt := e.enclosingStmt(RootContext(x), y); stmt != nil {
			reach = e.reach(ctx, x, def, stmt)
		}
		if reach == Unreachable {
			continue
		}
		for _, l := range x.evalYield(ctx, y, nil) {
			values = values.Union(l.Infer(ctx))
		}
		if reach == Reachable {
			// nothing after a yield that always runs is merged in
			break
		}
	}
	if len(values) == 0 {
		return nil
	}
	return []LazyContext{LazyKnownSet(values)}
}

// evalYield returns the values one yield produces: its operand, None for a bare
// yield, or every element for `yield from`
func (x *FunctionExecutionContext) evalYield(ctx kitectx.CallContext, y *pythonast.YieldExpr, frame *Frame) []LazyContext {
	e := x.eval
	if pythonast.IsNil(y.Value) {
		return []LazyContext{LazyKnown{Context: e.bridge.Literal(ctx, nil)}}
	}
	if y.From {
		return e.iterateSet(ctx, e.evalExpr(ctx, x, y.Value, frame))
	}
	return []LazyContext{LazyTree{Owner: x, Expr: y.Value, Frame: frame}}
}
