package pythonast

// Visitor is invoked for each node by Walk. If Visit returns a non-nil w, Walk
// visits each child of the node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// EdgeVisitor is like Visitor but also receives the parent and the name of the
// field through which the child was reached.
type EdgeVisitor interface {
	VisitEdge(parent, child Node, field string) (w EdgeVisitor)
}

// Walk traverses a syntax tree in depth-first order
func Walk(v Visitor, n Node) {
	if IsNil(n) {
		return
	}
	if v = v.Visit(n); v == nil {
		return
	}
	children(n, func(child Node, _ string) {
		Walk(v, child)
	})
	v.Visit(nil)
}

// WalkEdges traverses a syntax tree in depth-first order, reporting edges
func WalkEdges(v EdgeVisitor, n Node) {
	walkEdges(v, nil, n, "")
}

func walkEdges(v EdgeVisitor, parent, n Node, field string) {
	if IsNil(n) {
		return
	}
	if v = v.VisitEdge(parent, n, field); v == nil {
		return
	}
	children(n, func(child Node, field string) {
		walkEdges(v, n, child, field)
	})
	v.VisitEdge(n, nil, "")
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect calls f for each node in depth-first order, descending while f returns true.
// After the children of a node, f is called with nil.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}

type edgeInspector func(parent, child Node, field string) bool

func (f edgeInspector) VisitEdge(parent, child Node, field string) EdgeVisitor {
	if f(parent, child, field) {
		return f
	}
	return nil
}

// InspectEdges is Inspect with parent and field information
func InspectEdges(n Node, f func(parent, child Node, field string) bool) {
	WalkEdges(edgeInspector(f), n)
}

func exprs(f func(Node, string), field string, list []Expr) {
	for _, e := range list {
		if !IsNil(e) {
			f(e, field)
		}
	}
}

func stmts(f func(Node, string), field string, list []Stmt) {
	for _, s := range list {
		if !IsNil(s) {
			f(s, field)
		}
	}
}

func one(f func(Node, string), field string, n Node) {
	if !IsNil(n) {
		f(n, field)
	}
}

// children calls f for each non-nil child of n in source order
func children(n Node, f func(Node, string)) {
	switch n := n.(type) {
	case *Module:
		stmts(f, "Body", n.Body)

	case *ExprStmt:
		one(f, "Value", n.Value)
	case *AssignStmt:
		exprs(f, "Targets", n.Targets)
		one(f, "Annotation", n.Annotation)
		one(f, "Value", n.Value)
	case *AugAssignStmt:
		one(f, "Target", n.Target)
		one(f, "Value", n.Value)
	case *ReturnStmt:
		one(f, "Value", n.Value)
	case *DelStmt:
		exprs(f, "Targets", n.Targets)
	case *RaiseStmt:
		one(f, "Value", n.Value)
		one(f, "Cause", n.Cause)
	case *AssertStmt:
		one(f, "Condition", n.Condition)
		one(f, "Message", n.Message)
	case *GlobalStmt:
		for _, name := range n.Names {
			one(f, "Names", name)
		}
	case *NonLocalStmt:
		for _, name := range n.Names {
			one(f, "Names", name)
		}
	case *ImportNameStmt:
		for _, name := range n.Names {
			one(f, "Names", name)
		}
	case *ImportFromStmt:
		one(f, "Package", n.Package)
		for _, name := range n.Names {
			one(f, "Names", name)
		}
	case *IfStmt:
		for _, b := range n.Branches {
			one(f, "Branches", b)
		}
		stmts(f, "Else", n.Else)
	case *Branch:
		one(f, "Condition", n.Condition)
		stmts(f, "Body", n.Body)
	case *ForStmt:
		exprs(f, "Targets", n.Targets)
		one(f, "Iterable", n.Iterable)
		stmts(f, "Body", n.Body)
		stmts(f, "Else", n.Else)
	case *WhileStmt:
		one(f, "Condition", n.Condition)
		stmts(f, "Body", n.Body)
		stmts(f, "Else", n.Else)
	case *TryStmt:
		stmts(f, "Body", n.Body)
		for _, h := range n.Handlers {
			one(f, "Handlers", h)
		}
		stmts(f, "Else", n.Else)
		stmts(f, "Finally", n.Finally)
	case *ExceptClause:
		one(f, "Type", n.Type)
		one(f, "Target", n.Target)
		stmts(f, "Body", n.Body)
	case *WithStmt:
		for _, item := range n.Items {
			one(f, "Items", item)
		}
		stmts(f, "Body", n.Body)
	case *WithItem:
		one(f, "Value", n.Value)
		one(f, "Target", n.Target)
	case *FunctionDefStmt:
		exprs(f, "Decorators", n.Decorators)
		one(f, "Name", n.Name)
		for _, p := range n.Parameters {
			one(f, "Parameters", p)
		}
		one(f, "Vararg", n.Vararg)
		one(f, "Kwarg", n.Kwarg)
		one(f, "Annotation", n.Annotation)
		stmts(f, "Body", n.Body)
	case *ClassDefStmt:
		exprs(f, "Decorators", n.Decorators)
		one(f, "Name", n.Name)
		for _, a := range n.Args {
			one(f, "Args", a)
		}
		one(f, "Vararg", n.Vararg)
		one(f, "Kwarg", n.Kwarg)
		stmts(f, "Body", n.Body)
	case *Parameter:
		one(f, "Name", n.Name)
		one(f, "Annotation", n.Annotation)
		one(f, "Default", n.Default)
	case *ArgsParameter:
		one(f, "Name", n.Name)
		one(f, "Annotation", n.Annotation)

	case *DottedExpr:
		for _, name := range n.Names {
			one(f, "Names", name)
		}
	case *DottedAsName:
		one(f, "External", n.External)
		one(f, "Internal", n.Internal)
	case *ImportAsName:
		one(f, "External", n.External)
		one(f, "Internal", n.Internal)
	case *AttributeExpr:
		one(f, "Value", n.Value)
	case *CallExpr:
		one(f, "Func", n.Func)
		for _, a := range n.Args {
			one(f, "Args", a)
		}
		one(f, "Vararg", n.Vararg)
		one(f, "Kwarg", n.Kwarg)
	case *Argument:
		one(f, "Name", n.Name)
		one(f, "Value", n.Value)
	case *ListExpr:
		exprs(f, "Values", n.Values)
	case *TupleExpr:
		exprs(f, "Elts", n.Elts)
	case *SetExpr:
		exprs(f, "Values", n.Values)
	case *DictExpr:
		for _, item := range n.Items {
			one(f, "Items", item)
		}
	case *KeyValuePair:
		one(f, "Key", n.Key)
		one(f, "Value", n.Value)
	case *IndexExpr:
		one(f, "Value", n.Value)
		for _, s := range n.Subscripts {
			one(f, "Subscripts", s)
		}
	case *IndexSubscript:
		one(f, "Value", n.Value)
	case *SliceSubscript:
		one(f, "Lower", n.Lower)
		one(f, "Upper", n.Upper)
		one(f, "Step", n.Step)
	case *BinaryExpr:
		one(f, "Left", n.Left)
		one(f, "Right", n.Right)
	case *UnaryExpr:
		one(f, "Value", n.Value)
	case *IfExpr:
		one(f, "Body", n.Body)
		one(f, "Condition", n.Condition)
		one(f, "Else", n.Else)
	case *LambdaExpr:
		for _, p := range n.Parameters {
			one(f, "Parameters", p)
		}
		one(f, "Vararg", n.Vararg)
		one(f, "Kwarg", n.Kwarg)
		one(f, "Body", n.Body)
	case *YieldExpr:
		one(f, "Value", n.Value)
	case *AwaitExpr:
		one(f, "Value", n.Value)
	case *StarExpr:
		one(f, "Value", n.Value)
	case *ComprehensionExpr:
		one(f, "Key", n.Key)
		one(f, "Result", n.Result)
		for _, g := range n.Generators {
			one(f, "Generators", g)
		}
	case *Generator:
		exprs(f, "Vars", n.Vars)
		one(f, "Iterable", n.Iterable)
		exprs(f, "Filters", n.Filters)
	}
}
