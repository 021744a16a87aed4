// Package pythonparams binds call arguments to function parameters. Executions with no
// known caller are bound by searching the loaded modules for calls of the function.
package pythonparams

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// Binder implements pythoneval.ParamBinder
type Binder struct {
	// Dynamic enables the call-site search for anonymous executions
	Dynamic bool
}

// NewBinder returns a binder with the call-site search enabled
func NewBinder() *Binder {
	return &Binder{Dynamic: true}
}

// signature is the parameter list of a function or lambda
type signature struct {
	params []*pythonast.Parameter
	vararg *pythonast.ArgsParameter
	kwarg  *pythonast.ArgsParameter
}

func signatureOf(def pythonast.Scope) signature {
	switch def := def.(type) {
	case *pythonast.FunctionDefStmt:
		return signature{params: def.Parameters, vararg: def.Vararg, kwarg: def.Kwarg}
	case *pythonast.LambdaExpr:
		return signature{params: def.Parameters, vararg: def.Vararg, kwarg: def.Kwarg}
	}
	return signature{}
}

// Bind implements pythoneval.ParamBinder. The receiver, if any, is bound to the first
// parameter.
func (b *Binder) Bind(ctx kitectx.CallContext, exec *pythoneval.FunctionExecutionContext) []pythoneval.ParamValue {
	fn := exec.Function()
	sig := signatureOf(fn.Def())

	var args []pythoneval.Argument
	if r := exec.Receiver(); r != nil {
		args = append(args, pythoneval.Argument{Value: pythoneval.LazyKnown{Context: r}})
	}
	if exec.IsAnonymous() {
		if !b.Dynamic {
			return bind(ctx, fn, sig, args, true)
		}
		return searchParams(ctx, exec, sig, args)
	}
	args = append(args, exec.Arguments().Unpack(ctx)...)
	return bind(ctx, fn, sig, args, false)
}

// bind matches arguments to parameters. Positional arguments fill parameters in order
// and overflow into *args; keyword arguments match by name and overflow into **kwargs.
// Parameters left unfilled take their default, evaluated where the function is
// defined. If partial is set, *args and **kwargs are left unbound instead of empty.
func bind(ctx kitectx.CallContext, fn *pythoneval.FunctionContext, sig signature, args []pythoneval.Argument, partial bool) []pythoneval.ParamValue {
	e := fn.Evaluator()
	args = expand(ctx, e, args)

	bound := make([]pythoneval.LazyContext, len(sig.params))
	var extraPositional []pythoneval.LazyContext
	var extraKeys []string
	var extraValues []pythoneval.LazyContext

	next := 0
	for _, arg := range args {
		if arg.Keyword == "" {
			for next < len(sig.params) && sig.params[next].KeywordOnly {
				next++
			}
			if next < len(sig.params) {
				bound[next] = arg.Value
				next++
			} else {
				extraPositional = append(extraPositional, arg.Value)
			}
			continue
		}

		i := paramIndex(sig.params, arg.Keyword)
		switch {
		case i < 0:
			extraKeys = append(extraKeys, arg.Keyword)
			extraValues = append(extraValues, arg.Value)
		case bound[i] == nil:
			bound[i] = arg.Value
		default:
			bound[i] = pythoneval.MergedLazy{bound[i], arg.Value}
		}
	}

	var out []pythoneval.ParamValue
	for i, p := range sig.params {
		value := bound[i]
		if value == nil {
			value = defaultValue(fn, p)
		}
		out = append(out, pythoneval.ParamValue{Name: p.Name, Value: value})
	}
	if sig.vararg != nil && sig.vararg.Name != nil && (!partial || len(extraPositional) > 0) {
		out = append(out, pythoneval.ParamValue{
			Name:  sig.vararg.Name,
			Value: pythoneval.LazyKnown{Context: e.NewSequence(pythoneval.TupleKind, extraPositional)},
		})
	}
	if sig.kwarg != nil && sig.kwarg.Name != nil && (!partial || len(extraKeys) > 0) {
		out = append(out, pythoneval.ParamValue{
			Name:  sig.kwarg.Name,
			Value: pythoneval.LazyKnown{Context: e.NewDict(extraKeys, extraValues)},
		})
	}
	return out
}

// expand replaces `*args` by the elements of the iterable and `**kwargs` by the
// entries of dicts with known keys
func expand(ctx kitectx.CallContext, e *pythoneval.Evaluator, args []pythoneval.Argument) []pythoneval.Argument {
	var out []pythoneval.Argument
	for _, arg := range args {
		switch arg.Star {
		case 0:
			out = append(out, arg)
		case 1:
			for _, item := range e.Iterate(ctx, arg.Value.Infer(ctx)) {
				out = append(out, pythoneval.Argument{Value: item, Node: arg.Node})
			}
		case 2:
			for _, v := range arg.Value.Infer(ctx) {
				dict, ok := v.(*pythoneval.Sequence)
				if !ok || dict.Kind() != pythoneval.DictKind {
					continue
				}
				for _, key := range dict.Keys() {
					name, ok := key.(string)
					if !ok {
						continue
					}
					values, err := dict.GetItem(ctx, name)
					if err != nil {
						continue
					}
					out = append(out, pythoneval.Argument{
						Keyword: name,
						Value:   pythoneval.LazyKnownSet(values),
						Node:    arg.Node,
					})
				}
			}
		}
	}
	return out
}

func paramIndex(params []*pythonast.Parameter, name string) int {
	for i, p := range params {
		if p.Name != nil && p.Name.Ident.Literal == name {
			return i
		}
	}
	return -1
}

func defaultValue(fn *pythoneval.FunctionContext, p *pythonast.Parameter) pythoneval.LazyContext {
	if pythonast.IsNil(p.Default) {
		return pythoneval.LazyUnknown{}
	}
	return pythoneval.LazyTree{Owner: fn.Parent(), Expr: p.Default}
}
