package pythoneval

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// Argument is one argument of a call
type Argument struct {
	// Keyword is empty for positional arguments
	Keyword string
	// Star is 1 for `*args` and 2 for `**kwargs`
	Star  int
	Value LazyContext
	// Node is the argument expression, nil for values that did not come from source
	Node pythonast.Expr
}

// Arguments is the argument list of a call
type Arguments interface {
	Unpack(ctx kitectx.CallContext) []Argument
	// Signature is equal for argument lists that infer to the same values
	Signature(ctx kitectx.CallContext) uint64
	// CallSite is the call expression, nil if the arguments did not come from source
	CallSite() pythonast.Node
}

// TreeArguments are the arguments of a call expression evaluated in its owner.
// Values are inferred once, on first use.
type TreeArguments struct {
	owner Context
	call  *pythonast.CallExpr
	frame *Frame

	unpacked []Argument
	sig      uint64
	done     bool
}

// NewTreeArguments returns the arguments of call as seen from owner
func NewTreeArguments(owner Context, call *pythonast.CallExpr, frame *Frame) *TreeArguments {
	return &TreeArguments{owner: owner, call: call, frame: frame}
}

// Owner is the context the arguments are evaluated in
func (a *TreeArguments) Owner() Context { return a.owner }

// CallSite implements Arguments
func (a *TreeArguments) CallSite() pythonast.Node { return a.call }

func (a *TreeArguments) infer(ctx kitectx.CallContext) {
	if a.done {
		return
	}
	eval := a.owner.Evaluator()
	add := func(keyword string, star int, expr pythonast.Expr) {
		values := eval.evalExpr(ctx, a.owner, expr, a.frame)
		a.unpacked = append(a.unpacked, Argument{Keyword: keyword, Star: star, Value: LazyKnownSet(values), Node: expr})
	}
	for _, arg := range a.call.Args {
		var keyword string
		if name, ok := arg.Name.(*pythonast.NameExpr); ok {
			keyword = name.Ident.Literal
		}
		value := arg.Value
		star := 0
		if s, ok := value.(*pythonast.StarExpr); ok {
			value, star = s.Value, 1
		}
		add(keyword, star, value)
	}
	if !pythonast.IsNil(a.call.Vararg) {
		add("", 1, a.call.Vararg)
	}
	if !pythonast.IsNil(a.call.Kwarg) {
		add("", 2, a.call.Kwarg)
	}

	var h hasher
	for _, arg := range a.unpacked {
		h.addString(arg.Keyword)
		h.add(uint64(arg.Star))
		h.addSet(Set(arg.Value.(LazyKnownSet)))
	}
	a.sig = h.sum()
	a.done = true
}

// Unpack implements Arguments
func (a *TreeArguments) Unpack(ctx kitectx.CallContext) []Argument {
	a.infer(ctx)
	return a.unpacked
}

// Signature implements Arguments
func (a *TreeArguments) Signature(ctx kitectx.CallContext) uint64 {
	a.infer(ctx)
	return a.sig
}

// ValuesArguments are positional arguments with known values
type ValuesArguments []Set

// Unpack implements Arguments
func (a ValuesArguments) Unpack(kitectx.CallContext) []Argument {
	var out []Argument
	for _, s := range a {
		out = append(out, Argument{Value: LazyKnownSet(s)})
	}
	return out
}

// Signature implements Arguments
func (a ValuesArguments) Signature(kitectx.CallContext) uint64 {
	h := hasher{}
	h.addString("values")
	for _, s := range a {
		h.addSet(s)
	}
	return h.sum()
}

// CallSite implements Arguments
func (a ValuesArguments) CallSite() pythonast.Node { return nil }

// AnonymousArguments stand for the unknown arguments of an execution with no known caller
type AnonymousArguments struct{}

// Unpack implements Arguments
func (AnonymousArguments) Unpack(kitectx.CallContext) []Argument { return nil }

// Signature implements Arguments
func (AnonymousArguments) Signature(kitectx.CallContext) uint64 { return 0 }

// CallSite implements Arguments
func (AnonymousArguments) CallSite() pythonast.Node { return nil }
