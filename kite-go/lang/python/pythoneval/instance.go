package pythoneval

import (
	"fmt"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// Instance is an object of a class. A generated instance stands for any object of the
// class and was not created by a call, so its constructor is never run.
type Instance struct {
	Base
	class     Context
	args      Arguments
	generated bool

	// literal is set for instances created from a literal value
	literal    interface{}
	hasLiteral bool

	initExecs []*FunctionExecutionContext
}

// newInstance returns the instance of class for args. The constructor runs once, when
// a non-generated instance is first created; an instance whose constructor aborted is
// forgotten.
func (e *Evaluator) newInstance(ctx kitectx.CallContext, class Context, args Arguments, generated bool) *Instance {
	var h hasher
	h.add(args.Signature(ctx))
	if generated {
		h.addString("generated")
	}
	key := internKey{kind: "instance", node: class.Node(), parent: class.ID(), sig: h.sum()}

	var created *Instance
	inst := e.intern(key, func() Context {
		created = &Instance{Base: NewBase(e, class.Parent()), class: class, args: args, generated: generated}
		return created
	}).(*Instance)
	if created != nil && !generated {
		var completed bool
		defer func() {
			if !completed {
				// the next call builds the instance again and reruns its constructor
				delete(e.interned, key)
			}
		}()
		created.runInit(ctx)
		completed = true
	}
	return inst
}

// generatedInstance stands for any instance of class
func (e *Evaluator) generatedInstance(class Context) *Instance {
	return e.newInstance(kitectx.CallContext{Context: kitectx.Background()}, class, AnonymousArguments{}, true)
}

// LiteralInstance returns the interned instance of class holding a literal value:
// an int64, float64, complex128, string, Bytes, bool or nil.
func (e *Evaluator) LiteralInstance(class Context, value interface{}) *Instance {
	key := internKey{kind: "literal", node: class.Node(), parent: class.ID(), sig: literalSignature(value)}
	return e.intern(key, func() Context {
		return &Instance{
			Base:       NewBase(e, class.Parent()),
			class:      class,
			args:       AnonymousArguments{},
			generated:  true,
			literal:    value,
			hasLiteral: true,
		}
	}).(*Instance)
}

func literalSignature(value interface{}) uint64 {
	var h hasher
	h.addString(fmt.Sprintf("%T:%v", value, value))
	return h.sum()
}

// Node implements Context
func (i *Instance) Node() pythonast.Node { return i.class.Node() }

// Name implements Context
func (i *Instance) Name() string { return i.class.Name() }

func (i *Instance) String() string {
	if i.hasLiteral {
		return fmt.Sprintf("<%s: %#v>", i.class.Name(), i.literal)
	}
	return fmt.Sprintf("<instance of %s>", i.class.Name())
}

// Literal returns the literal value of the instance, if it has one
func (i *Instance) Literal() (interface{}, bool) { return i.literal, i.hasLiteral }

// IsGenerated is true for instances that were not created by a call
func (i *Instance) IsGenerated() bool { return i.generated }

// Arguments are the constructor arguments
func (i *Instance) Arguments() Arguments { return i.args }

// Class implements Context
func (i *Instance) Class(kitectx.CallContext) (Context, error) { return i.class, nil }

// Bool implements Context. Only literals have a known truth value.
func (i *Instance) Bool() Truth {
	if !i.hasLiteral {
		return TruthUnknown
	}
	switch v := i.literal.(type) {
	case nil:
		return TruthFalse
	case bool:
		if v {
			return TruthTrue
		}
		return TruthFalse
	case int64:
		return truthOf(v != 0)
	case float64:
		return truthOf(v != 0)
	case complex128:
		return truthOf(v != 0)
	case string:
		return truthOf(v != "")
	case Bytes:
		return truthOf(v != "")
	}
	return TruthUnknown
}

func truthOf(b bool) Truth {
	if b {
		return TruthTrue
	}
	return TruthFalse
}

// Call implements Context through __call__
func (i *Instance) Call(ctx kitectx.CallContext, args Arguments) (Set, error) {
	res, ok := i.eval.callMethod(ctx, i, "__call__", args)
	if !ok {
		return nil, ErrUnsupported
	}
	return res, nil
}

// GetItem implements Context through __getitem__
func (i *Instance) GetItem(ctx kitectx.CallContext, index Index) (Set, error) {
	var arg Set
	if index != nil {
		arg = NewSet(i.eval.bridge.Literal(ctx, index))
	}
	res, ok := i.eval.callMethod(ctx, i, "__getitem__", ValuesArguments{arg})
	if !ok {
		return nil, ErrUnsupported
	}
	return res, nil
}

// Iterate implements Context through __iter__. An iterator that is itself an instance
// produces one value, the result of its __next__ (or python 2 next) method.
func (i *Instance) Iterate(ctx kitectx.CallContext) ([]LazyContext, error) {
	iters, ok := i.eval.callMethod(ctx, i, "__iter__", ValuesArguments{})
	if !ok {
		return nil, ErrUnsupported
	}
	var out []LazyContext
	for _, it := range iters {
		if inst, ok := it.(*Instance); ok {
			res, found := i.eval.callMethod(ctx, inst, "__next__", ValuesArguments{})
			if !found {
				res, found = i.eval.callMethod(ctx, inst, "next", ValuesArguments{})
			}
			if found {
				out = append(out, LazyKnownSet(res))
			}
			continue
		}
		elems, err := it.Iterate(ctx)
		if err != nil {
			i.eval.unsupported("iterate", it)
			continue
		}
		out = append(out, elems...)
	}
	return out, nil
}

// Filters implements Context. Attributes assigned through the receiver in the methods
// of each class of the MRO come first, then the class attributes seen through the
// instance.
func (i *Instance) Filters(ctx kitectx.CallContext, opts FilterOptions) []Filter {
	mro, err := i.class.MRO(ctx)
	if err != nil {
		return nil
	}
	var filters []Filter
	for _, cls := range mro {
		if cc, ok := cls.(*ClassContext); ok {
			filters = append(filters, &SelfNameFilter{instance: i, class: cc})
		}
	}
	for _, cls := range mro {
		var inner []Filter
		if cc, ok := cls.(*ClassContext); ok {
			inner = []Filter{newClassFilter(cc, opts.Origin, false)}
		} else {
			inner = cls.Filters(ctx, FilterOptions{SearchGlobal: true})
		}
		filters = append(filters, &InstanceClassFilter{instance: i, class: i.class, filters: inner})
	}
	return filters
}

// runInit executes the constructor with the instance's arguments
func (i *Instance) runInit(ctx kitectx.CallContext) {
	class, ok := i.class.(*ClassContext)
	if !ok {
		return
	}
	names := lookupFilters(ctx, class.Filters(ctx, FilterOptions{IsInstance: true}), "__init__")
	for _, name := range names {
		for _, v := range name.Infer(ctx) {
			fn, ok := v.(*FunctionContext)
			if !ok {
				continue
			}
			exec := i.eval.newExecution(ctx, fn, i.args, i)
			i.initExecs = append(i.initExecs, exec)
		}
	}
	for _, exec := range i.initExecs {
		exec.ReturnValues(ctx)
	}
}

// methodExecution is the execution in which the body of a method of class sees this
// instance as its receiver. The constructor of a created instance is the execution
// that ran with the constructor arguments; any other method is executed anonymously.
func (i *Instance) methodExecution(ctx kitectx.CallContext, class *ClassContext, method *pythonast.FunctionDefStmt) Context {
	for _, exec := range i.initExecs {
		if exec.fn.def == pythonast.Scope(method) {
			return exec
		}
	}
	fn := i.eval.functionContext(class, method)
	return i.eval.newExecution(ctx, fn, AnonymousArguments{}, i)
}

// bind turns a class attribute into what the instance sees: functions become bound
// methods and descriptors are applied
func (i *Instance) bind(ctx kitectx.CallContext, v Context, class Context) Set {
	e := i.eval
	switch v := v.(type) {
	case *FunctionContext:
		return NewSet(e.boundMethod(v, i))
	case *Instance:
		kind, inner := e.decoratorKind(ctx, v)
		switch kind {
		case "staticmethod":
			return inner
		case "classmethod":
			return e.bindFunctions(inner, class)
		case "property":
			var out Set
			for _, m := range e.bindFunctions(inner, i) {
				res, err := m.Call(ctx, ValuesArguments{})
				if err == nil {
					out = out.Union(res)
				}
			}
			return out
		}
		if res, ok := e.callMethod(ctx, v, "__get__", ValuesArguments{NewSet(i), NewSet(class)}); ok {
			return res
		}
	}
	return NewSet(v)
}

// bindToClass turns a class attribute into what the class itself sees
func (e *Evaluator) bindToClass(ctx kitectx.CallContext, v Context, class Context) Set {
	inst, ok := v.(*Instance)
	if !ok {
		return NewSet(v)
	}
	kind, inner := e.decoratorKind(ctx, inst)
	switch kind {
	case "staticmethod":
		return inner
	case "classmethod":
		return e.bindFunctions(inner, class)
	case "property":
		return NewSet(v)
	}
	if res, ok := e.callMethod(ctx, inst, "__get__", ValuesArguments{NewSet(e.bridge.Literal(ctx, nil)), NewSet(class)}); ok {
		return res
	}
	return NewSet(v)
}

// decoratorKind recognizes instances of the builtin staticmethod, classmethod and
// property classes, returning the wrapped function
func (e *Evaluator) decoratorKind(ctx kitectx.CallContext, inst *Instance) (string, Set) {
	for _, kind := range []string{"staticmethod", "classmethod", "property"} {
		if b := e.bridge.Builtin(ctx, kind); b == nil || b != inst.class {
			continue
		}
		args := inst.args.Unpack(ctx)
		if len(args) == 0 {
			return kind, nil
		}
		return kind, args[0].Value.Infer(ctx)
	}
	return "", nil
}

func (e *Evaluator) bindFunctions(fns Set, receiver Context) Set {
	var out Set
	for _, fn := range fns {
		if f, ok := fn.(*FunctionContext); ok {
			out = out.Add(e.boundMethod(f, receiver))
		} else {
			out = out.Add(fn)
		}
	}
	return out
}

// element wraps a node reached through the instance when instance elements are enabled
func (i *Instance) element(n pythonast.Node) pythonast.Node {
	if !i.eval.opts.WrapInstanceElements || pythonast.IsNil(n) {
		return n
	}
	return &InstanceElement{Node: n, Instance: i}
}
