package pythonast

import "fmt"

// CountNodes counts the number of nodes in a syntax tree
func CountNodes(node Node) int {
	var count int
	Inspect(node, func(n Node) bool {
		if n != nil {
			count++
		}
		return true
	})
	return count
}

// ConstructParentTable creates a map from nodes to their parents.
// Nodecount pre-sizes the map and may be zero.
func ConstructParentTable(node Node, nodecount int) map[Node]Node {
	parents := make(map[Node]Node, nodecount)
	InspectEdges(node, func(parent, child Node, field string) bool {
		if !IsNil(parent) && !IsNil(child) {
			parents[child] = parent
		}
		return true
	})
	return parents
}

// ConstructScopeTable maps every expression in the module to the lexical scope
// in which a name at that position would start resolving.
// Decorators, defaults, annotations and base classes resolve in the enclosing scope;
// comprehension bodies resolve in the comprehension (python 3 semantics).
func ConstructScopeTable(mod *Module) map[Expr]Scope {
	temp := make(map[Node]Scope)
	out := make(map[Expr]Scope)

	InspectEdges(mod, func(parent, child Node, field string) bool {
		if parent == nil {
			temp[mod] = mod
			return true
		}
		if child == nil {
			return false
		}

		var current Scope
		switch parent := parent.(type) {
		case *ClassDefStmt:
			switch field {
			case "Body":
				current = parent
			case "Name", "Args", "Decorators", "Vararg", "Kwarg":
				current = temp[parent]
			default:
				panic(fmt.Errorf("unhandled class def field %s", field))
			}
		case *FunctionDefStmt:
			switch field {
			case "Name", "Decorators", "Annotation":
				current = temp[parent]
			case "Parameters", "Vararg", "Kwarg", "Body":
				current = parent
			default:
				panic(fmt.Errorf("unhandled function def field %s", field))
			}
		case *LambdaExpr:
			current = parent
		case *ComprehensionExpr:
			current = parent
		case *Module:
			current = parent
		case *Parameter, *ArgsParameter:
			switch field {
			case "Annotation", "Default":
				// the parameter's own entry is the function scope, one more hop is the definer
				current = temp[temp[parent]]
			case "Name":
				current = temp[parent]
			default:
				panic(fmt.Errorf("unhandled field %s for %T", field, parent))
			}
		default:
			current = temp[parent]
		}

		temp[child] = current
		if expr, ok := child.(Expr); ok {
			out[expr] = current
		}
		return true
	})
	return out
}
