package pythonast

// DefinedNames returns the names bound directly in scope, in source order.
// Bindings inside nested scopes are excluded, but the names of nested function
// and class definitions are included since they bind in the enclosing scope.
func DefinedNames(scope Scope) []*NameExpr {
	var out []*NameExpr
	add := func(n *NameExpr) {
		if n != nil {
			out = append(out, n)
		}
	}

	switch s := scope.(type) {
	case *Module:
		inspectScopeBody(s.Body, func(n Node) {
			if name, ok := n.(*NameExpr); ok {
				add(name)
			}
		}, true)
	case *ClassDefStmt:
		inspectScopeBody(s.Body, func(n Node) {
			if name, ok := n.(*NameExpr); ok {
				add(name)
			}
		}, true)
	case *FunctionDefStmt:
		for _, p := range s.Parameters {
			add(p.Name)
		}
		if s.Vararg != nil {
			add(s.Vararg.Name)
		}
		if s.Kwarg != nil {
			add(s.Kwarg.Name)
		}
		inspectScopeBody(s.Body, func(n Node) {
			if name, ok := n.(*NameExpr); ok {
				add(name)
			}
		}, true)
	case *LambdaExpr:
		for _, p := range s.Parameters {
			add(p.Name)
		}
		if s.Vararg != nil {
			add(s.Vararg.Name)
		}
		if s.Kwarg != nil {
			add(s.Kwarg.Name)
		}
	case *ComprehensionExpr:
		for _, g := range s.Generators {
			for _, v := range g.Vars {
				Inspect(v, func(n Node) bool {
					if name, ok := n.(*NameExpr); ok && name.Usage == Assign {
						add(name)
					}
					return true
				})
			}
		}
	}
	return out
}

// inspectScopeBody calls f for nodes of body that belong to the body's own scope.
// With bindings set, f only receives binding names: assigned or imported NameExprs
// and the names of nested definitions.
func inspectScopeBody(body []Stmt, f func(Node), bindings bool) {
	for _, stmt := range body {
		Inspect(stmt, func(n Node) bool {
			if n == nil {
				return false
			}
			switch n := n.(type) {
			case *FunctionDefStmt:
				if bindings {
					f(n.Name)
				} else {
					f(n)
				}
				return false
			case *ClassDefStmt:
				if bindings {
					f(n.Name)
				} else {
					f(n)
				}
				return false
			case *LambdaExpr, *ComprehensionExpr:
				if !bindings {
					f(n)
				}
				return false
			case *NameExpr:
				if !bindings || n.Usage == Assign || n.Usage == Import {
					f(n)
				}
				return false
			}
			if !bindings {
				f(n)
			}
			return true
		})
	}
}

func scopeBody(scope Scope) []Stmt {
	switch s := scope.(type) {
	case *Module:
		return s.Body
	case *ClassDefStmt:
		return s.Body
	case *FunctionDefStmt:
		return s.Body
	}
	return nil
}

// Returns lists the return statements of a function body in source order, excluding nested scopes.
func Returns(scope Scope) []*ReturnStmt {
	var out []*ReturnStmt
	inspectScopeBody(scopeBody(scope), func(n Node) {
		if ret, ok := n.(*ReturnStmt); ok {
			out = append(out, ret)
		}
	}, false)
	return out
}

// Yields lists the yield expressions of a function body in source order, excluding nested scopes.
func Yields(scope Scope) []*YieldExpr {
	var out []*YieldExpr
	inspectScopeBody(scopeBody(scope), func(n Node) {
		if y, ok := n.(*YieldExpr); ok {
			out = append(out, y)
		}
	}, false)
	return out
}

// IsGenerator is true if the function body yields
func IsGenerator(scope Scope) bool {
	return len(Yields(scope)) > 0
}

// Imports lists the import statements that belong to the module scope, including
// those nested in if/try/with blocks but not those inside functions or classes.
func Imports(mod *Module) []Stmt {
	var out []Stmt
	inspectScopeBody(mod.Body, func(n Node) {
		switch n := n.(type) {
		case *ImportNameStmt:
			out = append(out, n)
		case *ImportFromStmt:
			out = append(out, n)
		}
	}, false)
	return out
}

// GlobalDecl is one name declared `global` inside a function
type GlobalDecl struct {
	Name  *NameExpr
	Scope *FunctionDefStmt
}

// Globals lists every `global` declaration made in functions of the module, at any depth.
func Globals(mod *Module) []GlobalDecl {
	var out []GlobalDecl
	var visit func(body []Stmt, fn *FunctionDefStmt)
	visit = func(body []Stmt, fn *FunctionDefStmt) {
		inspectScopeBody(body, func(n Node) {
			switch n := n.(type) {
			case *GlobalStmt:
				if fn == nil {
					return
				}
				for _, name := range n.Names {
					out = append(out, GlobalDecl{Name: name, Scope: fn})
				}
			case *FunctionDefStmt:
				visit(n.Body, n)
			case *ClassDefStmt:
				visit(n.Body, fn)
			}
		}, false)
	}
	visit(mod.Body, nil)
	return out
}

// SelfAttributes lists the `self.attr = ...` style targets in a method body,
// where self is the name of the method's receiver parameter.
func SelfAttributes(fn *FunctionDefStmt, self string) []*AttributeExpr {
	var out []*AttributeExpr
	inspectScopeBody(fn.Body, func(n Node) {
		attr, ok := n.(*AttributeExpr)
		if !ok || attr.Usage != Assign {
			return
		}
		if name, ok := attr.Value.(*NameExpr); ok && name.Ident.Literal == self {
			out = append(out, attr)
		}
	}, false)
	return out
}

// Docstring returns the decoded docstring of a body, or the empty string
func Docstring(body []Stmt) string {
	if len(body) == 0 {
		return ""
	}
	stmt, ok := body[0].(*ExprStmt)
	if !ok {
		return ""
	}
	str, ok := stmt.Value.(*StringExpr)
	if !ok {
		return ""
	}
	return StringValue(str)
}
