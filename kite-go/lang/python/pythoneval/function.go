package pythoneval

import (
	"fmt"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// FunctionContext is a function definition or lambda evaluated in its defining context
type FunctionContext struct {
	Base
	def pythonast.Scope
}

func (e *Evaluator) functionContext(parent Context, def pythonast.Scope) *FunctionContext {
	key := internKey{kind: "function", node: def, parent: parent.ID()}
	return e.intern(key, func() Context {
		return &FunctionContext{Base: NewBase(e, parent), def: def}
	}).(*FunctionContext)
}

// Node implements Context
func (f *FunctionContext) Node() pythonast.Node { return f.def }

// Def is the *pythonast.FunctionDefStmt or *pythonast.LambdaExpr of the function
func (f *FunctionContext) Def() pythonast.Scope { return f.def }

// Name implements Context
func (f *FunctionContext) Name() string {
	if def, ok := f.def.(*pythonast.FunctionDefStmt); ok {
		return def.Name.Ident.Literal
	}
	return "<lambda>"
}

func (f *FunctionContext) String() string {
	return fmt.Sprintf("<function %s>", f.Name())
}

// Call implements Context. Functions of the builtins module may be evaluated natively
// by the bridge; everything else executes the body.
func (f *FunctionContext) Call(ctx kitectx.CallContext, args Arguments) (Set, error) {
	if RootContext(f) == f.eval.bridge.BuiltinsModule() {
		if res, ok := f.eval.bridge.CallBuiltin(ctx, f, args); ok {
			return res, nil
		}
	}
	exec := f.eval.newExecution(ctx, f, args, nil)
	return exec.ReturnValues(ctx), nil
}

// Class implements Context
func (f *FunctionContext) Class(ctx kitectx.CallContext) (Context, error) {
	if c := f.eval.bridge.Special(ctx, SpecialFunction); c != nil {
		return c, nil
	}
	return nil, ErrUnsupported
}

// Filters implements Context
func (f *FunctionContext) Filters(ctx kitectx.CallContext, opts FilterOptions) []Filter {
	if opts.SearchGlobal {
		return []Filter{NewTreeFilter(f, f.def, opts.Until)}
	}
	return f.eval.specialFilters(ctx, SpecialFunction)
}

// BoundMethod is a function accessed through an instance or, for class methods, a class.
// The receiver is passed as the first argument.
type BoundMethod struct {
	Base
	fn       *FunctionContext
	receiver Context
}

func (e *Evaluator) boundMethod(fn *FunctionContext, receiver Context) *BoundMethod {
	key := internKey{kind: "bound method", node: fn.def, parent: receiver.ID(), sig: fn.ID()}
	return e.intern(key, func() Context {
		return &BoundMethod{Base: NewBase(e, fn.Parent()), fn: fn, receiver: receiver}
	}).(*BoundMethod)
}

// Function is the underlying function
func (m *BoundMethod) Function() *FunctionContext { return m.fn }

// Receiver is the bound instance or class
func (m *BoundMethod) Receiver() Context { return m.receiver }

// Node implements Context
func (m *BoundMethod) Node() pythonast.Node { return m.fn.def }

// Name implements Context
func (m *BoundMethod) Name() string { return m.fn.Name() }

func (m *BoundMethod) String() string {
	return fmt.Sprintf("<bound method %s of %s>", m.fn.Name(), m.receiver)
}

// Call implements Context
func (m *BoundMethod) Call(ctx kitectx.CallContext, args Arguments) (Set, error) {
	exec := m.eval.newExecution(ctx, m.fn, args, m.receiver)
	return exec.ReturnValues(ctx), nil
}

// Class implements Context
func (m *BoundMethod) Class(ctx kitectx.CallContext) (Context, error) {
	if c := m.eval.bridge.Special(ctx, SpecialMethod); c != nil {
		return c, nil
	}
	return nil, ErrUnsupported
}

// Filters implements Context
func (m *BoundMethod) Filters(ctx kitectx.CallContext, opts FilterOptions) []Filter {
	return m.eval.specialFilters(ctx, SpecialMethod)
}
