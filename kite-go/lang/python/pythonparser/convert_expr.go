package pythonparser

import (
	"strings"

	sitter "github.com/kiteco/go-tree-sitter"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonscanner"
)

func (c *converter) exprs(nodes []*sitter.Node) []pythonast.Expr {
	var out []pythonast.Expr
	for _, n := range nodes {
		out = append(out, c.expr(n))
	}
	return out
}

// exprList expands a bare comma list into its elements
func (c *converter) exprList(n *sitter.Node) []pythonast.Expr {
	if n == nil {
		return nil
	}
	if isBareList(n) {
		return c.exprs(named(n))
	}
	return []pythonast.Expr{c.expr(n)}
}

// isBareList reports whether n is an unparenthesized comma list. The grammar
// wraps every assignment side, return value, yield operand and for target in
// one of these, even when it holds a single expression.
func isBareList(n *sitter.Node) bool {
	switch n.Type() {
	case "expression_list", "pattern_list", "variables":
		return true
	}
	return false
}

func (c *converter) expr(n *sitter.Node) pythonast.Expr {
	if n == nil {
		return nil
	}
	span := c.span(n)
	if n.IsMissing() {
		return &pythonast.BadExpr{Span: span}
	}

	switch n.Type() {
	case "identifier", "keyword_identifier":
		return c.name(n)
	case "true":
		return c.constant(n, "True")
	case "false":
		return c.constant(n, "False")
	case "none":
		return c.constant(n, "None")
	case "ellipsis":
		return c.constant(n, "Ellipsis")
	case "integer", "float":
		return c.number(n)
	case "string":
		return &pythonast.StringExpr{Span: span, Strings: []*pythonscanner.Word{c.word(n, pythonscanner.String)}}
	case "concatenated_string":
		str := &pythonast.StringExpr{Span: span}
		for _, kid := range named(n) {
			str.Strings = append(str.Strings, c.word(kid, pythonscanner.String))
		}
		return str
	case "parenthesized_expression":
		if kids := named(n); len(kids) > 0 {
			return c.expr(kids[0])
		}
	case "attribute":
		return &pythonast.AttributeExpr{
			Span:      span,
			Value:     c.expr(field(n, "object")),
			Attribute: c.word(field(n, "attribute"), pythonscanner.Ident),
			Usage:     pythonast.Evaluate,
		}
	case "call":
		return c.call(n)
	case "subscript":
		return c.subscript(n)
	case "list", "list_pattern":
		return &pythonast.ListExpr{Span: span, Values: c.exprs(named(n)), Usage: pythonast.Evaluate}
	case "expression_list", "pattern_list", "variables":
		// `x = 1` is a single expression but `x = 1,` is a tuple
		if kids := named(n); len(kids) == 1 && !hasToken(n, ",") {
			return c.expr(kids[0])
		}
		return &pythonast.TupleExpr{Span: span, Elts: c.exprs(named(n)), Usage: pythonast.Evaluate}
	case "tuple", "tuple_pattern":
		return &pythonast.TupleExpr{Span: span, Elts: c.exprs(named(n)), Usage: pythonast.Evaluate}
	case "type":
		if kids := named(n); len(kids) == 1 {
			return c.expr(kids[0])
		}
	case "set":
		return &pythonast.SetExpr{Span: span, Values: c.exprs(named(n))}
	case "dictionary":
		dict := &pythonast.DictExpr{Span: span}
		for _, kid := range named(n) {
			switch kid.Type() {
			case "pair":
				dict.Items = append(dict.Items, &pythonast.KeyValuePair{
					Span:  c.span(kid),
					Key:   c.expr(field(kid, "key")),
					Value: c.expr(field(kid, "value")),
				})
			case "dictionary_splat":
				dict.Items = append(dict.Items, &pythonast.KeyValuePair{Span: c.span(kid), Value: c.expr(named(kid)[0])})
			}
		}
		return dict
	case "binary_operator", "boolean_operator":
		return &pythonast.BinaryExpr{
			Span:  span,
			Left:  c.expr(field(n, "left")),
			Op:    c.op(field(n, "operator")),
			Right: c.expr(field(n, "right")),
		}
	case "comparison_operator":
		return c.comparison(n)
	case "unary_operator":
		return &pythonast.UnaryExpr{
			Span:  span,
			Op:    c.op(field(n, "operator")),
			Value: c.expr(field(n, "argument")),
		}
	case "not_operator":
		return &pythonast.UnaryExpr{
			Span:  span,
			Op:    c.op(children(n)[0]),
			Value: c.expr(field(n, "argument")),
		}
	case "conditional_expression":
		kids := named(n)
		if len(kids) == 3 {
			return &pythonast.IfExpr{Span: span, Body: c.expr(kids[0]), Condition: c.expr(kids[1]), Else: c.expr(kids[2])}
		}
	case "lambda":
		lambda := &pythonast.LambdaExpr{Span: span, Body: c.expr(field(n, "body"))}
		if params := field(n, "parameters"); params != nil {
			lambda.Parameters, lambda.Vararg, lambda.Kwarg = c.params(params)
		}
		return lambda
	case "yield":
		y := &pythonast.YieldExpr{Span: span, From: hasToken(n, "from")}
		if kids := named(n); len(kids) > 0 {
			y.Value = c.expr(kids[0])
		}
		return y
	case "await":
		if kids := named(n); len(kids) > 0 {
			return &pythonast.AwaitExpr{Span: span, Value: c.expr(kids[0])}
		}
	case "list_splat", "list_splat_pattern", "dictionary_splat", "parenthesized_list_splat":
		if kids := named(n); len(kids) > 0 {
			return &pythonast.StarExpr{Span: span, Value: c.expr(kids[0])}
		}
	case "named_expression":
		return c.expr(field(n, "value"))
	case "generator_expression":
		return c.comprehension(n, pythonast.GeneratorComprehension)
	case "list_comprehension":
		return c.comprehension(n, pythonast.ListComprehension)
	case "set_comprehension":
		return c.comprehension(n, pythonast.SetComprehension)
	case "dictionary_comprehension":
		return c.comprehension(n, pythonast.DictComprehension)
	}
	return &pythonast.BadExpr{Span: span}
}

func (c *converter) number(n *sitter.Node) *pythonast.NumberExpr {
	tok := pythonscanner.Int
	lit := n.Content(c.src)
	switch {
	case strings.HasSuffix(lit, "j"), strings.HasSuffix(lit, "J"):
		tok = pythonscanner.Imag
	case n.Type() == "float":
		tok = pythonscanner.Float
	}
	return &pythonast.NumberExpr{Number: c.word(n, tok)}
}

func (c *converter) call(n *sitter.Node) *pythonast.CallExpr {
	call := &pythonast.CallExpr{Span: c.span(n), Func: c.expr(field(n, "function"))}
	args := field(n, "arguments")
	if args == nil {
		return call
	}
	if args.Type() == "generator_expression" {
		call.Args = []*pythonast.Argument{{Span: c.span(args), Value: c.expr(args)}}
		return call
	}
	call.Args, call.Vararg, call.Kwarg = c.arguments(args)
	return call
}

func (c *converter) subscript(n *sitter.Node) *pythonast.IndexExpr {
	value := field(n, "value")
	index := &pythonast.IndexExpr{Span: c.span(n), Value: c.expr(value), Usage: pythonast.Evaluate}
	for _, kid := range named(n) {
		if same(kid, value) {
			continue
		}
		if kid.Type() != "slice" {
			index.Subscripts = append(index.Subscripts, &pythonast.IndexSubscript{Span: c.span(kid), Value: c.expr(kid)})
			continue
		}
		// slice children are expressions separated by colons; a missing part leaves a nil field
		slice := &pythonast.SliceSubscript{Span: c.span(kid)}
		parts := make([]pythonast.Expr, 3)
		var part int
		for _, piece := range children(kid) {
			if !piece.IsNamed() {
				if piece.Type() == ":" {
					part++
				}
				continue
			}
			if part < len(parts) {
				parts[part] = c.expr(piece)
			}
		}
		slice.Lower, slice.Upper, slice.Step = parts[0], parts[1], parts[2]
		index.Subscripts = append(index.Subscripts, slice)
	}
	return index
}

// comparison converts `a < b < c` into left-nested binary expressions
func (c *converter) comparison(n *sitter.Node) pythonast.Expr {
	kids := children(n)
	if len(kids) == 0 {
		return &pythonast.BadExpr{Span: c.span(n)}
	}
	result := c.expr(kids[0])
	var ops []*sitter.Node
	for _, kid := range kids[1:] {
		if !kid.IsNamed() {
			ops = append(ops, kid)
			continue
		}
		if len(ops) == 0 {
			continue
		}
		right := c.expr(kid)
		result = &pythonast.BinaryExpr{
			Span:  pythonast.Span{From: result.Begin(), To: right.End()},
			Left:  result,
			Op:    c.op(ops...),
			Right: right,
		}
		ops = nil
	}
	return result
}

func (c *converter) comprehension(n *sitter.Node, kind pythonast.ComprehensionKind) *pythonast.ComprehensionExpr {
	comp := &pythonast.ComprehensionExpr{Span: c.span(n), Kind: kind}
	body := field(n, "body")
	if kind == pythonast.DictComprehension && body != nil && body.Type() == "pair" {
		comp.Key = c.expr(field(body, "key"))
		comp.Result = c.expr(field(body, "value"))
	} else {
		comp.Result = c.expr(body)
	}

	for _, kid := range named(n) {
		switch kid.Type() {
		case "for_in_clause":
			gen := &pythonast.Generator{
				Span:     c.span(kid),
				Vars:     c.exprList(field(kid, "left")),
				Iterable: c.expr(field(kid, "right")),
			}
			for _, v := range gen.Vars {
				pythonast.SetUsage(v, pythonast.Assign)
			}
			comp.Generators = append(comp.Generators, gen)
		case "if_clause":
			if len(comp.Generators) == 0 {
				continue
			}
			last := comp.Generators[len(comp.Generators)-1]
			if kids := named(kid); len(kids) > 0 {
				last.Filters = append(last.Filters, c.expr(kids[0]))
			}
		}
	}
	return comp
}
