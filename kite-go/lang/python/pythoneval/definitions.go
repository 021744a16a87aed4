package pythoneval

import (
	"strings"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// inferTarget infers the value bound to a definition: an assigned or imported name,
// a loop or with target, a parameter, a function or class name, or an attribute
// assigned through a method receiver. owner is the context the definition is made in.
func (e *Evaluator) inferTarget(ctx kitectx.CallContext, owner Context, target pythonast.Expr) Set {
	ctx = ctx.Call()
	ctx.CheckAbort()
	if !e.pushName(owner, target) {
		return nil
	}
	defer e.popName(owner, target)

	root := RootContext(owner)
	if root == nil {
		return nil
	}
	parents := e.parentsOf(root)

	// climb out of tuple and list targets, recording the position taken at each level
	var path []int
	var starred bool
	var node pythonast.Node = target
	for {
		parent := parents[node]
		var elts []pythonast.Expr
		switch p := parent.(type) {
		case *pythonast.TupleExpr:
			elts = p.Elts
		case *pythonast.ListExpr:
			elts = p.Values
		case *pythonast.StarExpr:
			starred = true
			node = p
			continue
		}
		if elts == nil {
			break
		}
		path = append([]int{indexOf(elts, node)}, path...)
		node = parent
	}

	var values Set
	switch stmt := parents[node].(type) {
	case *pythonast.AssignStmt:
		values = e.inferAssign(ctx, owner, stmt)
	case *pythonast.AugAssignStmt:
		values = e.inferAugAssign(ctx, owner, stmt)
	case *pythonast.ForStmt:
		elems := e.iterateSet(ctx, e.evalExpr(ctx, owner, stmt.Iterable, nil))
		values = MergedLazy(elems).Infer(ctx)
		if len(stmt.Targets) > 1 {
			path = append([]int{indexOf(stmt.Targets, node)}, path...)
		}
	case *pythonast.Generator:
		// comprehension variables are not modeled
		return nil
	case *pythonast.WithItem:
		for _, v := range e.evalExpr(ctx, owner, stmt.Value, nil) {
			res, _ := e.callMethod(ctx, v, "__enter__", ValuesArguments{})
			values = values.Union(res)
		}
	case *pythonast.ExceptClause:
		values = e.inferExceptTarget(ctx, owner, stmt)
	case *pythonast.FunctionDefStmt:
		if stmt.Name == target {
			return e.inferFunctionDef(ctx, owner, stmt)
		}
	case *pythonast.ClassDefStmt:
		if stmt.Name == target {
			return e.inferClassDef(ctx, owner, stmt)
		}
	case *pythonast.Parameter, *pythonast.ArgsParameter:
		return e.inferParam(ctx, owner, target)
	case *pythonast.DottedExpr:
		return e.inferImportName(ctx, owner, parents, stmt, target)
	case *pythonast.ImportAsName:
		return e.inferImportFrom(ctx, owner, parents, stmt)
	case *pythonast.DottedAsName:
		return e.inferImportAs(ctx, owner, stmt)
	default:
		if e.opts.Trace {
			e.logger.Debugf("no definition for %s", pythonast.String(target))
		}
		return nil
	}

	if starred {
		// `a, *b = ...` binds a list whose elements are not tracked
		return e.builtinInstance(ctx, "list")
	}
	return e.unpack(ctx, values, path)
}

func indexOf(exprs []pythonast.Expr, node pythonast.Node) int {
	for i, x := range exprs {
		if pythonast.Node(x) == node {
			return i
		}
	}
	return -1
}

// unpack follows tuple unpacking positions into the elements of values
func (e *Evaluator) unpack(ctx kitectx.CallContext, values Set, path []int) Set {
	for _, i := range path {
		if i < 0 {
			return nil
		}
		elems := e.iterateSet(ctx, values)
		if i >= len(elems) {
			return nil
		}
		values = elems[i].Infer(ctx)
	}
	return values
}

func (e *Evaluator) inferAssign(ctx kitectx.CallContext, owner Context, stmt *pythonast.AssignStmt) Set {
	if pythonast.IsNil(stmt.Value) {
		// `x: int` declares an instance of the annotation
		if pythonast.IsNil(stmt.Annotation) {
			return nil
		}
		return e.Instantiate(e.EvalAnnotation(ctx, owner, stmt.Annotation))
	}
	return e.evalExpr(ctx, owner, stmt.Value, nil)
}

// EvalAnnotation evaluates an annotation in owner. String annotations name the
// annotated type by a dotted path.
func (e *Evaluator) EvalAnnotation(ctx kitectx.CallContext, owner Context, ann pythonast.Expr) Set {
	var out Set
	for _, v := range e.evalExpr(ctx, owner, ann, nil) {
		lit, _ := literalOf(v)
		path, ok := lit.(string)
		if !ok {
			out = out.Add(v)
			continue
		}
		out = out.Union(e.EvalDottedPath(ctx, owner, path))
	}
	return out
}

// EvalDottedPath resolves a name such as `os.path` as seen from the end of owner's scope
func (e *Evaluator) EvalDottedPath(ctx kitectx.CallContext, owner Context, path string) Set {
	parts := strings.Split(strings.TrimSpace(path), ".")
	values := inferNames(ctx, e.lookupNames(ctx, owner, parts[0], 0, nil))
	for _, part := range parts[1:] {
		var next Set
		for _, c := range values {
			next = next.Union(e.attr(ctx, c, part, nil))
		}
		values = next
	}
	return values
}

func (e *Evaluator) inferAugAssign(ctx kitectx.CallContext, owner Context, stmt *pythonast.AugAssignStmt) Set {
	op := strings.TrimSuffix(stmt.Op.Literal, "=")
	left := e.evalExpr(ctx, owner, stmt.Target, nil)
	right := e.evalExpr(ctx, owner, stmt.Value, nil)
	return e.binaryOp(ctx, owner, op, left, right)
}

func (e *Evaluator) inferExceptTarget(ctx kitectx.CallContext, owner Context, clause *pythonast.ExceptClause) Set {
	var out Set
	for _, v := range e.evalExpr(ctx, owner, clause.Type, nil) {
		if s, ok := v.(*Sequence); ok && s.kind == TupleKind {
			for _, cls := range MergedLazy(s.expanded(ctx)).Infer(ctx) {
				out = out.Union(e.Instantiate(NewSet(cls)))
			}
			continue
		}
		out = out.Union(e.Instantiate(NewSet(v)))
	}
	return out
}

func (e *Evaluator) inferFunctionDef(ctx kitectx.CallContext, owner Context, def *pythonast.FunctionDefStmt) Set {
	return e.decorate(ctx, owner, def.Decorators, NewSet(e.functionContext(owner, def)))
}

func (e *Evaluator) inferClassDef(ctx kitectx.CallContext, owner Context, def *pythonast.ClassDefStmt) Set {
	return e.decorate(ctx, owner, def.Decorators, NewSet(e.classContext(owner, def)))
}

// decorate applies decorators innermost first. A decorator that infers to nothing
// leaves the value as it was.
func (e *Evaluator) decorate(ctx kitectx.CallContext, owner Context, decorators []pythonast.Expr, values Set) Set {
	for i := len(decorators) - 1; i >= 0; i-- {
		fns := e.evalExpr(ctx, owner, decorators[i], nil)
		if len(fns) == 0 {
			continue
		}
		res := e.callAll(ctx, fns, ValuesArguments{values})
		if len(res) == 0 {
			continue
		}
		values = res
	}
	return values
}

func (e *Evaluator) inferParam(ctx kitectx.CallContext, owner Context, name pythonast.Expr) Set {
	n, ok := name.(*pythonast.NameExpr)
	if !ok {
		return nil
	}
	switch o := owner.(type) {
	case *FunctionExecutionContext:
		return o.paramValue(ctx, n)
	case *FunctionContext:
		return e.newExecution(ctx, o, AnonymousArguments{}, nil).paramValue(ctx, n)
	}
	return nil
}

// inferImportName handles `import a.b.c`, which binds a to the top level package
func (e *Evaluator) inferImportName(ctx kitectx.CallContext, owner Context, parents map[pythonast.Node]pythonast.Node, dotted *pythonast.DottedExpr, target pythonast.Expr) Set {
	if clause, ok := parents[dotted].(*pythonast.DottedAsName); ok && clause.Internal != nil {
		return e.inferImportAs(ctx, owner, clause)
	}
	if len(dotted.Names) == 0 || pythonast.Node(dotted.Names[0]) != pythonast.Node(target) {
		return nil
	}
	root := RootContext(owner)
	// load the whole path so that the sub-modules are registered with the session
	if len(dotted.Names) > 1 {
		e.follow(ctx, root, dottedNames(dotted), 0)
	}
	return e.follow(ctx, root, dottedNames(dotted)[:1], 0)
}

// inferImportAs handles `import a.b as c`, which binds c to a.b
func (e *Evaluator) inferImportAs(ctx kitectx.CallContext, owner Context, clause *pythonast.DottedAsName) Set {
	return e.follow(ctx, RootContext(owner), dottedNames(clause.External), 0)
}

// inferImportFrom handles `from pkg import name`: an attribute of pkg, or else its sub-module
func (e *Evaluator) inferImportFrom(ctx kitectx.CallContext, owner Context, parents map[pythonast.Node]pythonast.Node, clause *pythonast.ImportAsName) Set {
	stmt, ok := parents[clause].(*pythonast.ImportFromStmt)
	if !ok || clause.External == nil {
		return nil
	}
	root := RootContext(owner)
	pkgPath := dottedNames(stmt.Package)
	name := clause.External.Ident.Literal

	var out Set
	for _, mod := range e.follow(ctx, root, pkgPath, stmt.Dots) {
		out = out.Union(e.attr(ctx, mod, name, nil))
	}
	if len(out) > 0 {
		return out
	}
	return e.follow(ctx, root, append(append([]string(nil), pkgPath...), name), stmt.Dots)
}
