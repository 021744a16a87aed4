package pythonast

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonscanner"
)

func derefType(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array:
		return derefType(t.Elem())
	default:
		return t
	}
}

func typename(obj interface{}) string {
	return derefType(reflect.TypeOf(obj)).Name()
}

func litStr(word *pythonscanner.Word) string {
	if word == nil {
		return "Nil"
	}
	return word.Literal
}

func tokStr(word *pythonscanner.Word) string {
	if word == nil {
		return "Nil"
	}
	return word.Token.String()
}

// String returns a short textual representation of a node
func String(n Node) string {
	if IsNil(n) {
		return "Nil"
	}
	out := typename(n)
	switch n := n.(type) {
	case *AttributeExpr:
		out += "[" + litStr(n.Attribute) + "]"
	case *NameExpr:
		out += "[" + litStr(n.Ident) + "]"
	case *NumberExpr:
		out += "[" + litStr(n.Number) + "]"
	case *StringExpr:
		var lits []string
		for _, s := range n.Strings {
			lits = append(lits, strings.Replace(litStr(s), "\n", "\\n", -1))
		}
		out += "[" + strings.Join(lits, " ") + "]"
	case *BinaryExpr:
		out += "[" + tokStr(n.Op) + "]"
	case *UnaryExpr:
		out += "[" + tokStr(n.Op) + "]"
	case *AugAssignStmt:
		out += "[" + tokStr(n.Op) + "]"
	case *YieldExpr:
		if n.From {
			out += "[from]"
		}
	case *ImportFromStmt:
		if n.Dots > 0 {
			out += fmt.Sprintf("[dots=%d]", n.Dots)
		}
		if n.Wildcard != nil {
			out += "[*]"
		}
	}
	return out
}

type prettyPrinter struct {
	depth     int
	indent    string
	positions bool
	w         io.Writer
}

func (p *prettyPrinter) Visit(n Node) Visitor {
	if n == nil {
		p.depth--
	} else {
		prefix := strings.Repeat(p.indent, p.depth)
		if p.positions {
			prefix = fmt.Sprintf("[%4d...%4d]", n.Begin(), n.End()) + prefix
		}
		fmt.Fprintln(p.w, prefix+String(n))
		p.depth++
	}
	return p
}

// Print writes a textual representation of syntax tree to the given writer
func Print(root Node, w io.Writer, indent string) {
	printer := prettyPrinter{
		w:      w,
		indent: indent,
	}
	Walk(&printer, root)
}

// PrintPositions is Print with begin and end positions for each node.
func PrintPositions(root Node, w io.Writer, indent string) {
	printer := prettyPrinter{
		w:         w,
		indent:    indent,
		positions: true,
	}
	Walk(&printer, root)
}
