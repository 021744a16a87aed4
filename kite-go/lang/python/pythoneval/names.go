package pythoneval

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// Name is a binding visible through a Filter
type Name interface {
	String() string
	// Node is the defining node, nil for synthesized names
	Node() pythonast.Node
	// Parent is the context that owns the binding
	Parent() Context
	Infer(ctx kitectx.CallContext) Set
}

// TreeName is a name bound by a definition in source
type TreeName struct {
	owner Context
	name  *pythonast.NameExpr
}

func (n *TreeName) String() string       { return n.name.Ident.Literal }
func (n *TreeName) Node() pythonast.Node { return n.name }
func (n *TreeName) Parent() Context      { return n.owner }

// Infer implements Name
func (n *TreeName) Infer(ctx kitectx.CallContext) Set {
	return n.owner.Evaluator().inferTarget(ctx, n.owner, n.name)
}

// ParamName is a parameter of an execution
type ParamName struct {
	exec *FunctionExecutionContext
	name *pythonast.NameExpr
}

func (n *ParamName) String() string       { return n.name.Ident.Literal }
func (n *ParamName) Node() pythonast.Node { return n.name }
func (n *ParamName) Parent() Context      { return n.exec }

// Infer implements Name
func (n *ParamName) Infer(ctx kitectx.CallContext) Set {
	return n.exec.paramValue(ctx, n.name)
}

// SelfName is an attribute assigned through the receiver of a method, `self.attr = value`
type SelfName struct {
	instance *Instance
	class    *ClassContext
	method   *pythonast.FunctionDefStmt
	attr     *pythonast.AttributeExpr
}

func (n *SelfName) String() string  { return n.attr.Attribute.Literal }
func (n *SelfName) Parent() Context { return n.instance }

// Node implements Name
func (n *SelfName) Node() pythonast.Node {
	return n.instance.element(n.attr)
}

// Infer implements Name
func (n *SelfName) Infer(ctx kitectx.CallContext) Set {
	owner := n.instance.methodExecution(ctx, n.class, n.method)
	if owner == nil {
		return nil
	}
	return n.instance.Evaluator().inferTarget(ctx, owner, n.attr)
}

// ClassName is an attribute of a class accessed on the class itself
type ClassName struct {
	class Context
	name  Name
}

func (n *ClassName) String() string       { return n.name.String() }
func (n *ClassName) Node() pythonast.Node { return n.name.Node() }
func (n *ClassName) Parent() Context      { return n.class }

// Infer implements Name
func (n *ClassName) Infer(ctx kitectx.CallContext) Set {
	eval := n.class.Evaluator()
	var out Set
	for _, v := range n.name.Infer(ctx) {
		out = out.Union(eval.bindToClass(ctx, v, n.class))
	}
	return out
}

// InstanceName is a class attribute seen through an instance: functions become bound
// methods and descriptors are applied
type InstanceName struct {
	instance *Instance
	class    Context
	name     Name
}

func (n *InstanceName) String() string  { return n.name.String() }
func (n *InstanceName) Parent() Context { return n.instance }

// Node implements Name
func (n *InstanceName) Node() pythonast.Node {
	return n.instance.element(n.name.Node())
}

// Infer implements Name
func (n *InstanceName) Infer(ctx kitectx.CallContext) Set {
	var out Set
	for _, v := range n.name.Infer(ctx) {
		out = out.Union(n.instance.bind(ctx, v, n.class))
	}
	return out
}

// ModuleAttributeName is one of the attributes every module has: __file__, __name__,
// __package__ and __doc__
type ModuleAttributeName struct {
	module *ModuleContext
	name   string
}

func (n *ModuleAttributeName) String() string       { return n.name }
func (n *ModuleAttributeName) Node() pythonast.Node { return nil }
func (n *ModuleAttributeName) Parent() Context      { return n.module }

// Infer implements Name
func (n *ModuleAttributeName) Infer(ctx kitectx.CallContext) Set {
	return n.module.Evaluator().builtinInstance(ctx, "str")
}

// SubModuleName is a module inside a package
type SubModuleName struct {
	module *ModuleContext
	name   string
}

func (n *SubModuleName) String() string       { return n.name }
func (n *SubModuleName) Node() pythonast.Node { return nil }
func (n *SubModuleName) Parent() Context      { return n.module }

// Infer implements Name
func (n *SubModuleName) Infer(ctx kitectx.CallContext) Set {
	return n.module.Evaluator().follow(ctx, n.module, []string{n.name}, 1)
}

// GlobalName is a module level name assigned inside a function that declares it global
type GlobalName struct {
	module *ModuleContext
	decl   pythonast.GlobalDecl
}

func (n *GlobalName) String() string       { return n.decl.Name.Ident.Literal }
func (n *GlobalName) Node() pythonast.Node { return n.decl.Name }
func (n *GlobalName) Parent() Context      { return n.module }

// Infer implements Name
func (n *GlobalName) Infer(ctx kitectx.CallContext) Set {
	eval := n.module.Evaluator()
	owner := eval.ContextOf(n.module, n.decl.Name)
	var out Set
	for _, def := range pythonast.DefinedNames(n.decl.Scope) {
		if def.Ident.Literal == n.String() {
			out = out.Union(eval.inferTarget(ctx, owner, def))
		}
	}
	return out
}

// ValueName is a name with a known value
type ValueName struct {
	parent Context
	name   string
	value  LazyContext
}

// NewValueName returns a name bound to value
func NewValueName(parent Context, name string, value LazyContext) *ValueName {
	return &ValueName{parent: parent, name: name, value: value}
}

func (n *ValueName) String() string       { return n.name }
func (n *ValueName) Node() pythonast.Node { return nil }
func (n *ValueName) Parent() Context      { return n.parent }

// Infer implements Name
func (n *ValueName) Infer(ctx kitectx.CallContext) Set {
	return n.value.Infer(ctx)
}

func inferNames(ctx kitectx.CallContext, names []Name) Set {
	var out Set
	for _, n := range names {
		out = out.Union(n.Infer(ctx))
	}
	return out
}
