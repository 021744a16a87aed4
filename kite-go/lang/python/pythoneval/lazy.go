package pythoneval

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// LazyContext is a value that is only inferred when needed
type LazyContext interface {
	Infer(ctx kitectx.CallContext) Set
}

// LazyKnown wraps an already inferred context
type LazyKnown struct {
	Context Context
}

// Infer implements LazyContext
func (l LazyKnown) Infer(kitectx.CallContext) Set {
	return NewSet(l.Context)
}

// LazyKnownSet wraps an already inferred set
type LazyKnownSet Set

// Infer implements LazyContext
func (l LazyKnownSet) Infer(kitectx.CallContext) Set {
	return Set(l)
}

// LazyUnknown infers to nothing
type LazyUnknown struct{}

// Infer implements LazyContext
func (LazyUnknown) Infer(kitectx.CallContext) Set {
	return nil
}

// LazyTree evaluates an expression in the context that owns it. Frame holds the loop
// variable bindings in effect where the value was created.
type LazyTree struct {
	Owner Context
	Expr  pythonast.Expr
	Frame *Frame
}

// Infer implements LazyContext
func (l LazyTree) Infer(ctx kitectx.CallContext) Set {
	return l.Owner.Evaluator().evalExpr(ctx, l.Owner, l.Expr, l.Frame)
}

// MergedLazy is the union of several lazy values
type MergedLazy []LazyContext

// Infer implements LazyContext
func (m MergedLazy) Infer(ctx kitectx.CallContext) Set {
	var out Set
	for _, l := range m {
		out = out.Union(l.Infer(ctx))
	}
	return out
}

// Frame binds a loop variable to the value of one modeled iteration. References
// to the name inside the loop statement see the bound value. Frames are immutable
// and chain to the frame they were created in.
type Frame struct {
	For   *pythonast.ForStmt
	Name  string
	Value LazyContext
	// Index is the iteration the frame models
	Index int
	Outer *Frame
}

// Bind returns a new frame chained to f
func (f *Frame) Bind(loop *pythonast.ForStmt, name string, value LazyContext, index int) *Frame {
	return &Frame{For: loop, Name: name, Value: value, Index: index, Outer: f}
}

// Lookup returns the value bound to the name of ref, if ref is inside a loop
// that binds it
func (f *Frame) Lookup(ref *pythonast.NameExpr) (LazyContext, bool) {
	for ; f != nil; f = f.Outer {
		if f.Name != ref.Ident.Literal {
			continue
		}
		if ref.Begin() >= f.For.Begin() && ref.End() <= f.For.End() {
			return f.Value, true
		}
	}
	return nil, false
}

func (f *Frame) signature(h *hasher) {
	for ; f != nil; f = f.Outer {
		h.add(uint64(f.For.Begin()))
		h.add(uint64(f.Index))
	}
}
