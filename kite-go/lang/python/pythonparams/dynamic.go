package pythonparams

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// searchParams binds the parameters of an execution with no known caller to the union
// of the arguments passed at the calls of the function found in the loaded modules.
// Defaults are always included. At most Options.DynamicParamsLimit calls are examined.
func searchParams(ctx kitectx.CallContext, exec *pythoneval.FunctionExecutionContext, sig signature, receiver []pythoneval.Argument) []pythoneval.ParamValue {
	fn := exec.Function()
	merged := bind(ctx, fn, sig, receiver, true)

	def, ok := fn.Def().(*pythonast.FunctionDefStmt)
	if !ok {
		return merged
	}
	for _, args := range callSites(ctx, fn.Evaluator(), def) {
		all := append(append([]pythoneval.Argument(nil), receiver...), args...)
		merged = union(merged, bind(ctx, fn, sig, all, true))
	}
	return merged
}

// callSites returns the arguments of the calls that may invoke def
func callSites(ctx kitectx.CallContext, e *pythoneval.Evaluator, def *pythonast.FunctionDefStmt) [][]pythoneval.Argument {
	name := def.Name.Ident.Literal
	limit := e.Options().DynamicParamsLimit
	builtins := e.Bridge().BuiltinsModule()

	var out [][]pythoneval.Argument
	var examined int
	for _, mod := range e.Modules() {
		if mod == builtins || mod.Module() == nil {
			continue
		}
		for _, call := range callsNamed(mod.Module(), name) {
			if examined >= limit {
				return out
			}
			examined++

			owner := e.ContextOf(mod, call)
			if !calls(e.EvalExpr(ctx, owner, call.Func), def) {
				continue
			}
			out = append(out, pythoneval.NewTreeArguments(owner, call, nil).Unpack(ctx))
		}
	}
	return out
}

// callsNamed finds the calls in a module whose callee is `name` or `x.name`
func callsNamed(mod *pythonast.Module, name string) []*pythonast.CallExpr {
	var out []*pythonast.CallExpr
	pythonast.Inspect(mod, func(n pythonast.Node) bool {
		call, ok := n.(*pythonast.CallExpr)
		if !ok {
			return true
		}
		switch f := call.Func.(type) {
		case *pythonast.NameExpr:
			if f.Ident.Literal == name {
				out = append(out, call)
			}
		case *pythonast.AttributeExpr:
			if f.Attribute.Literal == name {
				out = append(out, call)
			}
		}
		return true
	})
	return out
}

// calls reports whether any callee is the function defined by def, directly or bound
func calls(callees pythoneval.Set, def *pythonast.FunctionDefStmt) bool {
	for _, c := range callees {
		switch c := c.(type) {
		case *pythoneval.FunctionContext:
			if c.Node() == pythonast.Node(def) {
				return true
			}
		case *pythoneval.BoundMethod:
			if c.Function().Node() == pythonast.Node(def) {
				return true
			}
		}
	}
	return false
}

// union merges the values bound to the same parameter
func union(a, b []pythoneval.ParamValue) []pythoneval.ParamValue {
	out := append([]pythoneval.ParamValue(nil), a...)
	for _, pb := range b {
		found := false
		for i, pa := range out {
			if pa.Name == pb.Name {
				out[i].Value = pythoneval.MergedLazy{pa.Value, pb.Value}
				found = true
				break
			}
		}
		if !found {
			out = append(out, pb)
		}
	}
	return out
}
