package pythonast

// Usage indicates whether an expression was being evaluated, assigned, deleted, or imported.
// In the following examples, "x" will have Usage=Evaluate:
//    print(x)
//    another = x
//    x.y = 3           <-- "x" is loaded even though "x.y" is assigned
// In the following examples, "x" will have Usage=Assign:
//    x = 3
//    def foo(x): pass
//    for x in y: pass
//    x, y = something()
// In the following examples, "x" will have Usage=Delete:
//    del x
// In the following examples, "x" will have Usage=Import:
//    import x
//    from somepackage import y as x
type Usage int

const (
	// Invalid Usage
	Invalid Usage = iota
	// Evaluate is for expressions that are being evaluated
	Evaluate
	// Assign is for expressions that are being assigned to
	Assign
	// Delete is for expressions that are being deleted
	Delete
	// Import is for expressions that are being imported
	Import
)

func (u Usage) String() string {
	switch u {
	case Evaluate:
		return "Evaluate"
	case Assign:
		return "Assign"
	case Delete:
		return "Delete"
	case Import:
		return "Import"
	default:
		return "Invalid"
	}
}

// GetUsage returns the Usage for the given Expr
func GetUsage(expr Expr) Usage {
	if IsNil(expr) {
		return Invalid
	}

	switch expr := expr.(type) {
	case *NameExpr:
		return expr.Usage
	case *TupleExpr:
		return expr.Usage
	case *IndexExpr:
		return expr.Usage
	case *AttributeExpr:
		return expr.Usage
	case *ListExpr:
		return expr.Usage
	default:
		return Evaluate
	}
}

// SetUsage marks a target expression, descending through tuple, list and
// starred targets. Attribute and subscript targets are marked themselves;
// their operands stay evaluated.
func SetUsage(expr Expr, u Usage) {
	switch expr := expr.(type) {
	case *NameExpr:
		expr.Usage = u
	case *AttributeExpr:
		expr.Usage = u
	case *IndexExpr:
		expr.Usage = u
	case *TupleExpr:
		expr.Usage = u
		for _, elt := range expr.Elts {
			SetUsage(elt, u)
		}
	case *ListExpr:
		expr.Usage = u
		for _, elt := range expr.Values {
			SetUsage(elt, u)
		}
	case *StarExpr:
		SetUsage(expr.Value, u)
	}
}
