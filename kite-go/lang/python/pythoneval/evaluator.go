// Package pythoneval infers the values python expressions may take without running
// them. An Evaluator holds one analysis session: the loaded modules, the contexts built
// from them, and the memo and guard tables that keep inference finite.
package pythoneval

import (
	"fmt"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/kiteco/pyeval/kite-golib/kitelog"
)

// Evaluator is one analysis session. It is not safe for concurrent use.
type Evaluator struct {
	opts   Options
	collab Collaborators
	bridge Bridge
	logger *kitelog.Logger

	nextID uint64

	modules       []*ModuleContext
	modulesByPath map[string]*ModuleContext
	modulesByNode map[*pythonast.Module]*ModuleContext
	modulesByName map[string]*ModuleContext

	parents     map[*pythonast.Module]map[pythonast.Node]pythonast.Node
	scopeTables map[*pythonast.Module]map[pythonast.Expr]pythonast.Scope
	scopes      map[pythonast.Scope]*scopeIndex
	globals     map[*pythonast.Module][]pythonast.GlobalDecl

	interned   map[internKey]Context
	memo       map[memoKey]*memoEntry
	active     []activeCall
	inferring  map[nameKey]bool
	executions int
}

// NewEvaluator starts a session. collab.NewBridge is required.
func NewEvaluator(collab Collaborators, opts Options) *Evaluator {
	e := &Evaluator{
		opts:          opts.withDefaults(),
		collab:        collab,
		logger:        collab.Logger,
		modulesByPath: make(map[string]*ModuleContext),
		modulesByNode: make(map[*pythonast.Module]*ModuleContext),
		modulesByName: make(map[string]*ModuleContext),
		parents:       make(map[*pythonast.Module]map[pythonast.Node]pythonast.Node),
		scopeTables:   make(map[*pythonast.Module]map[pythonast.Expr]pythonast.Scope),
		scopes:        make(map[pythonast.Scope]*scopeIndex),
		globals:       make(map[*pythonast.Module][]pythonast.GlobalDecl),
		interned:      make(map[internKey]Context),
		memo:          make(map[memoKey]*memoEntry),
		inferring:     make(map[nameKey]bool),
	}
	if e.logger == nil {
		e.logger = kitelog.Nop
	}
	e.bridge = collab.NewBridge(e)
	return e
}

func (e *Evaluator) newID() uint64 {
	e.nextID++
	return e.nextID
}

// Options are the limits of the session
func (e *Evaluator) Options() Options { return e.opts }

// Bridge is the session's view of native objects
func (e *Evaluator) Bridge() Bridge { return e.bridge }

// Importer is the session's module loader, possibly nil
func (e *Evaluator) Importer() Importer { return e.collab.Importer }

// Logger is the session's logger
func (e *Evaluator) Logger() *kitelog.Logger { return e.logger }

// run evaluates one public query. Running out of call depth gives an empty result;
// expiry of ctx itself aborts the caller.
func (e *Evaluator) run(ctx kitectx.Context, what string, f func(kitectx.CallContext) Set) (out Set) {
	defer func() {
		if r := recover(); r != nil {
			// an expired caller keeps unwinding to its own handler
			ctx.CheckAbort()
			e.logger.Warnf("pythoneval: panic during %s: %v", what, r)
			out = nil
		}
	}()
	err := ctx.WithCallLimit(e.opts.MaxRecursionDepth, func(cctx kitectx.CallContext) error {
		out = f(cctx)
		return nil
	})
	if err != nil {
		e.logger.Debugf("pythoneval: %s aborted: %v", what, err)
		return nil
	}
	return e.truncate(out)
}

// Infer returns the values of an expression evaluated in owner
func (e *Evaluator) Infer(ctx kitectx.Context, owner Context, expr pythonast.Expr) Set {
	return e.run(ctx, "infer", func(cctx kitectx.CallContext) Set {
		return e.evalExpr(cctx, owner, expr, nil)
	})
}

// InferName returns the values of a name as seen from the end of owner's scope
func (e *Evaluator) InferName(ctx kitectx.Context, owner Context, name string) Set {
	return e.run(ctx, "infer name", func(cctx kitectx.CallContext) Set {
		return inferNames(cctx, e.lookupNames(cctx, owner, name, 0, nil))
	})
}

// InferDefinition returns the values bound by a definition: an assignment target, a
// parameter, an imported name or the name of a function or class
func (e *Evaluator) InferDefinition(ctx kitectx.Context, owner Context, target pythonast.Expr) Set {
	return e.run(ctx, "infer definition", func(cctx kitectx.CallContext) Set {
		return e.inferTarget(cctx, owner, target)
	})
}

// Attr returns the values of an attribute of c
func (e *Evaluator) Attr(ctx kitectx.Context, c Context, name string) Set {
	return e.run(ctx, "attr", func(cctx kitectx.CallContext) Set {
		return e.attr(cctx, c, name, nil)
	})
}

// Execute calls c with args
func (e *Evaluator) Execute(ctx kitectx.Context, c Context, args Arguments) Set {
	return e.run(ctx, "execute", func(cctx kitectx.CallContext) Set {
		return e.callAll(cctx, NewSet(c), args)
	})
}

// Names lists the bindings visible through the filters of c
func (e *Evaluator) Names(ctx kitectx.Context, c Context, opts FilterOptions) []Name {
	var out []Name
	e.run(ctx, "names", func(cctx kitectx.CallContext) Set {
		out = Names(cctx, c, opts)
		return nil
	})
	return out
}

// EvalExpr evaluates an expression within a running query
func (e *Evaluator) EvalExpr(ctx kitectx.CallContext, owner Context, expr pythonast.Expr) Set {
	return e.evalExpr(ctx, owner, expr, nil)
}

// LookupName resolves a free variable within a running query
func (e *Evaluator) LookupName(ctx kitectx.CallContext, owner Context, ref *pythonast.NameExpr) Set {
	return e.lookupName(ctx, owner, ref, nil)
}

// Iterate lists the elements of the values in a set within a running query
func (e *Evaluator) Iterate(ctx kitectx.CallContext, values Set) []LazyContext {
	return e.iterateSet(ctx, values)
}

// Instantiate returns generated instances of the classes in a set. Other values are
// kept as they are.
func (e *Evaluator) Instantiate(values Set) Set {
	var out Set
	for _, v := range values {
		if c, ok := v.(*ClassContext); ok {
			out = out.Add(e.generatedInstance(c))
		} else {
			out = out.Add(v)
		}
	}
	return out
}

// ContextOf returns the context in which names at node resolve: the module, or an
// execution of the function that contains node. Functions are executed anonymously;
// methods get a generated instance of their class as receiver.
func (e *Evaluator) ContextOf(module *ModuleContext, node pythonast.Node) Context {
	var chain []pythonast.Scope
	for scope := e.scopeOf(module, node); scope != nil; scope = e.scopeOf(module, scope) {
		if _, ok := scope.(*pythonast.Module); ok {
			break
		}
		if _, ok := scope.(*pythonast.ComprehensionExpr); ok {
			continue
		}
		chain = append(chain, scope)
	}

	var owner Context = module
	for i := len(chain) - 1; i >= 0; i-- {
		switch def := chain[i].(type) {
		case *pythonast.ClassDefStmt:
			owner = e.classContext(owner, def)
		case *pythonast.FunctionDefStmt, *pythonast.LambdaExpr:
			fn := e.functionContext(owner, def)
			var receiver Context
			if class, ok := owner.(*ClassContext); ok {
				if fd, ok := def.(*pythonast.FunctionDefStmt); ok && !hasDecorator(fd, "staticmethod") {
					if hasDecorator(fd, "classmethod") {
						receiver = class
					} else {
						receiver = e.generatedInstance(class)
					}
				}
			}
			owner = e.newExecution(kitectx.CallContext{Context: kitectx.Background()}, fn, AnonymousArguments{}, receiver)
		}
	}
	return owner
}

// scopeOf is the scope whose names are visible at node. For a scope node this is the
// enclosing scope.
func (e *Evaluator) scopeOf(module *ModuleContext, node pythonast.Node) pythonast.Scope {
	if _, ok := node.(*pythonast.Module); ok {
		return nil
	}
	if expr, ok := node.(pythonast.Expr); ok {
		if scope, ok := e.scopeTable(module)[expr]; ok && scope != node {
			return scope
		}
	}
	parents := e.parentsOf(module)
	for n := parents[node]; !pythonast.IsNil(n); n = parents[n] {
		if scope, ok := n.(pythonast.Scope); ok {
			return scope
		}
	}
	return module.mod
}

// Parents maps each node of a module to its parent node
func (e *Evaluator) Parents(module *ModuleContext) map[pythonast.Node]pythonast.Node {
	return e.parentsOf(module)
}

func (e *Evaluator) parentsOf(module *ModuleContext) map[pythonast.Node]pythonast.Node {
	if parents, ok := e.parents[module.mod]; ok {
		return parents
	}
	parents := pythonast.ConstructParentTable(module.mod, 0)
	e.parents[module.mod] = parents
	return parents
}

func (e *Evaluator) scopeTable(module *ModuleContext) map[pythonast.Expr]pythonast.Scope {
	if table, ok := e.scopeTables[module.mod]; ok {
		return table
	}
	table := pythonast.ConstructScopeTable(module.mod)
	e.scopeTables[module.mod] = table
	return table
}

// enclosingStmt is the innermost statement containing node
func (e *Evaluator) enclosingStmt(module *ModuleContext, node pythonast.Node) pythonast.Stmt {
	parents := e.parentsOf(module)
	for n := node; !pythonast.IsNil(n); n = parents[n] {
		if stmt, ok := n.(pythonast.Stmt); ok {
			return stmt
		}
	}
	return nil
}

func (e *Evaluator) follow(ctx kitectx.CallContext, from *ModuleContext, names []string, level int) Set {
	if e.collab.Importer == nil {
		return nil
	}
	return e.collab.Importer.Follow(ctx, from, names, level)
}

func (e *Evaluator) builtinInstance(ctx kitectx.CallContext, name string) Set {
	class := e.bridge.Builtin(ctx, name)
	if class == nil {
		return nil
	}
	return NewSet(e.generatedInstance(class))
}

// specialFilters are the attributes of the objects a special class stands for
func (e *Evaluator) specialFilters(ctx kitectx.CallContext, kind SpecialClass) []Filter {
	class := e.bridge.Special(ctx, kind)
	if class == nil {
		return nil
	}
	return e.generatedInstance(class).Filters(ctx, FilterOptions{})
}

func (e *Evaluator) truncate(s Set) Set {
	if len(s) <= e.opts.MaxResultSize {
		return s
	}
	truncatedCount.Add(1)
	if e.opts.Trace {
		e.logger.Debugf("truncating %d results to %d", len(s), e.opts.MaxResultSize)
	}
	return s[:e.opts.MaxResultSize]
}

// Describe renders a set for logs and tests
func Describe(s Set) string {
	return fmt.Sprintf("%v", []Context(s))
}
