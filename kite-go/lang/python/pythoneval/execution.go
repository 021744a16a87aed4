package pythoneval

import (
	"fmt"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// FunctionExecutionContext is one call of a function: the function, its arguments and
// the receiver of a bound method. Executions with equal argument signatures are shared.
type FunctionExecutionContext struct {
	Base
	fn       *FunctionContext
	args     Arguments
	receiver Context
}

func (e *Evaluator) newExecution(ctx kitectx.CallContext, fn *FunctionContext, args Arguments, receiver Context) *FunctionExecutionContext {
	var h hasher
	h.add(args.Signature(ctx))
	if receiver != nil {
		h.add(receiver.ID())
	}
	if _, ok := args.(AnonymousArguments); ok {
		h.addString("anonymous")
	}
	key := internKey{kind: "execution", node: fn.def, parent: fn.ID(), sig: h.sum()}
	return e.intern(key, func() Context {
		return &FunctionExecutionContext{Base: NewBase(e, fn.Parent()), fn: fn, args: args, receiver: receiver}
	}).(*FunctionExecutionContext)
}

// Function is the executed function
func (x *FunctionExecutionContext) Function() *FunctionContext { return x.fn }

// Arguments are the arguments of the call
func (x *FunctionExecutionContext) Arguments() Arguments { return x.args }

// Receiver is the instance or class bound to the first parameter, or nil
func (x *FunctionExecutionContext) Receiver() Context { return x.receiver }

// IsAnonymous is true for executions with no known caller
func (x *FunctionExecutionContext) IsAnonymous() bool {
	_, ok := x.args.(AnonymousArguments)
	return ok
}

// Node implements Context
func (x *FunctionExecutionContext) Node() pythonast.Node { return x.fn.def }

// Name implements Context
func (x *FunctionExecutionContext) Name() string { return x.fn.Name() }

func (x *FunctionExecutionContext) String() string {
	return fmt.Sprintf("<execution %s>", x.fn.Name())
}

func (x *FunctionExecutionContext) scope() pythonast.Scope { return x.fn.def }

// Filters implements Context
func (x *FunctionExecutionContext) Filters(ctx kitectx.CallContext, opts FilterOptions) []Filter {
	return []Filter{NewExecutionFilter(x, opts.Until)}
}

// Params are the values bound to the parameters of the function
func (x *FunctionExecutionContext) Params(ctx kitectx.CallContext) []ParamValue {
	return x.eval.Memoize(x, "params", 0, []ParamValue(nil), func() interface{} {
		if x.eval.collab.Params == nil {
			return []ParamValue(nil)
		}
		return x.eval.collab.Params.Bind(ctx, x)
	}).([]ParamValue)
}

func (x *FunctionExecutionContext) paramValue(ctx kitectx.CallContext, name *pythonast.NameExpr) Set {
	var out Set
	for _, p := range x.Params(ctx) {
		if p.Name == name {
			out = out.Union(p.Value.Infer(ctx))
		}
	}
	return out
}

// ReturnValues infers what the call returns. A generator function returns a generator;
// otherwise the result combines the documented and annotated return types with the
// values of the return statements that may execute, stopping at the first one that
// always executes.
func (x *FunctionExecutionContext) ReturnValues(ctx kitectx.CallContext) Set {
	e := x.eval
	return e.Memoize(x, "returns", 0, Set(nil), func() interface{} {
		if !e.pushCall(ctx, x.fn.def, x.args) {
			return Set(nil)
		}
		defer e.popCall()
		if !e.countExecution() {
			return Set(nil)
		}
		return e.truncate(x.returnValues(ctx))
	}).(Set)
}

func (x *FunctionExecutionContext) returnValues(ctx kitectx.CallContext) Set {
	e := x.eval
	switch def := x.fn.def.(type) {
	case *pythonast.LambdaExpr:
		return e.evalExpr(ctx, x, def.Body, nil)
	case *pythonast.FunctionDefStmt:
		if pythonast.IsGenerator(def) {
			return NewSet(e.generator(x))
		}

		var out Set
		if e.collab.DocstringTypes != nil {
			out = out.Union(e.collab.DocstringTypes.ReturnTypes(ctx, x))
		}
		if e.collab.AnnotationTypes != nil {
			out = out.Union(e.collab.AnnotationTypes.ReturnTypes(ctx, x))
		}
		for _, ret := range pythonast.Returns(def) {
			reach := e.reach(ctx, x, def, ret)
			if reach == Unreachable {
				continue
			}
			if pythonast.IsNil(ret.Value) {
				out = out.Add(e.bridge.Literal(ctx, nil))
			} else {
				out = out.Union(e.evalExpr(ctx, x, ret.Value, nil))
			}
			if reach == Reachable {
				break
			}
		}
		return out
	}
	return nil
}

func (e *Evaluator) reach(ctx kitectx.CallContext, exec Context, def pythonast.Node, stmt pythonast.Stmt) Reach {
	if e.collab.Reachability == nil {
		return Uncertain
	}
	return e.collab.Reachability.Check(ctx, exec, def, stmt)
}
