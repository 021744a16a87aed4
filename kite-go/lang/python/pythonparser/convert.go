package pythonparser

import (
	"go/token"
	"strings"

	sitter "github.com/kiteco/go-tree-sitter"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonscanner"
	"github.com/kiteco/pyeval/kite-golib/errors"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// converter turns a tree-sitter concrete syntax tree into a pythonast tree
type converter struct {
	// we violate the standard guideline of not storing ctx in another object to avoid threading this everywhere
	ctx  kitectx.Context
	src  []byte
	errs errors.Errors
}

func newConverter(ctx kitectx.Context, src []byte) *converter {
	return &converter{ctx: ctx, src: src}
}

func (c *converter) errorAt(n *sitter.Node) {
	c.errs = errors.Append(c.errs, SyntaxError{Pos: token.Pos(n.StartByte()), End: token.Pos(n.EndByte())})
}

// collectErrors records every ERROR and MISSING node under n
func (c *converter) collectErrors(n *sitter.Node) {
	if n.Type() == "ERROR" || n.IsMissing() {
		c.errorAt(n)
		return
	}
	if !n.HasError() {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c.collectErrors(n.Child(i))
	}
}

// -- helpers

func (c *converter) span(n *sitter.Node) pythonast.Span {
	return pythonast.Span{From: token.Pos(n.StartByte()), To: token.Pos(n.EndByte())}
}

// word returns a BadToken word for the nil nodes tree-sitter leaves in erroneous code
func (c *converter) word(n *sitter.Node, tok pythonscanner.Token) *pythonscanner.Word {
	if n == nil {
		return &pythonscanner.Word{Token: pythonscanner.BadToken}
	}
	return &pythonscanner.Word{
		Token:   tok,
		Begin:   token.Pos(n.StartByte()),
		End:     token.Pos(n.EndByte()),
		Literal: n.Content(c.src),
	}
}

func (c *converter) name(n *sitter.Node) *pythonast.NameExpr {
	return &pythonast.NameExpr{Ident: c.word(n, pythonscanner.Ident), Usage: pythonast.Evaluate}
}

// constant converts the True/False/None/Ellipsis keywords to names with a canonical spelling
func (c *converter) constant(n *sitter.Node, lit string) *pythonast.NameExpr {
	name := c.name(n)
	name.Ident.Literal = lit
	return name
}

func (c *converter) op(nodes ...*sitter.Node) *pythonscanner.Word {
	var parts []string
	for _, n := range nodes {
		if n == nil {
			return &pythonscanner.Word{Token: pythonscanner.BadToken}
		}
		parts = append(parts, n.Content(c.src))
	}
	lit := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	tok, ok := pythonscanner.LookupOperator(lit)
	if !ok {
		tok = pythonscanner.BadToken
	}
	return &pythonscanner.Word{
		Token:   tok,
		Begin:   token.Pos(nodes[0].StartByte()),
		End:     token.Pos(nodes[len(nodes)-1].EndByte()),
		Literal: lit,
	}
}

// children lists the children of n, skipping comments
func children(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Type() != "comment" {
			out = append(out, child)
		}
	}
	return out
}

// named lists the named children of n, skipping comments
func named(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil && child.Type() != "comment" {
			out = append(out, child)
		}
	}
	return out
}

func same(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// field returns the first child of n labelled name. ts_node_child_by_field_name
// drops labels such as body and consequence in the pinned runtime, so the
// labels are read off a cursor instead.
func field(n *sitter.Node, name string) *sitter.Node {
	if n == nil {
		return nil
	}
	cur := sitter.NewTreeCursor(n)
	defer cur.Close()
	for ok := cur.GoToFirstChild(); ok; ok = cur.GoToNextSibling() {
		if cur.CurrentFieldName() == name {
			return cur.CurrentNode()
		}
	}
	return nil
}

func hasToken(n *sitter.Node, typ string) bool {
	for _, child := range children(n) {
		if !child.IsNamed() && child.Type() == typ {
			return true
		}
	}
	return false
}

// -- module & statements

func (c *converter) module(root *sitter.Node) *pythonast.Module {
	return &pythonast.Module{
		Span: pythonast.Span{From: 0, To: token.Pos(len(c.src))},
		Body: c.stmts(named(root)),
	}
}

func (c *converter) stmts(nodes []*sitter.Node) []pythonast.Stmt {
	var out []pythonast.Stmt
	for _, n := range nodes {
		c.ctx.CheckAbort()
		out = append(out, c.stmt(n))
	}
	return out
}

func (c *converter) block(n *sitter.Node) []pythonast.Stmt {
	if n == nil {
		return nil
	}
	if n.Type() == "block" {
		return c.stmts(named(n))
	}
	return c.stmts([]*sitter.Node{n})
}

func (c *converter) stmt(n *sitter.Node) pythonast.Stmt {
	span := c.span(n)
	switch n.Type() {
	case "expression_statement":
		return c.exprStmt(n)
	case "return_statement":
		ret := &pythonast.ReturnStmt{Span: span}
		if kids := named(n); len(kids) > 0 {
			ret.Value = c.expr(kids[0])
		}
		return ret
	case "pass_statement":
		return &pythonast.PassStmt{Span: span}
	case "break_statement":
		return &pythonast.BreakStmt{Span: span}
	case "continue_statement":
		return &pythonast.ContinueStmt{Span: span}
	case "delete_statement":
		del := &pythonast.DelStmt{Span: span}
		for _, kid := range named(n) {
			del.Targets = append(del.Targets, c.exprList(kid)...)
		}
		for _, t := range del.Targets {
			pythonast.SetUsage(t, pythonast.Delete)
		}
		return del
	case "raise_statement":
		raise := &pythonast.RaiseStmt{Span: span}
		cause := field(n, "cause")
		for _, kid := range named(n) {
			if same(kid, cause) {
				raise.Cause = c.expr(kid)
			} else if raise.Value == nil {
				raise.Value = c.expr(kid)
			}
		}
		return raise
	case "assert_statement":
		assert := &pythonast.AssertStmt{Span: span}
		kids := named(n)
		if len(kids) > 0 {
			assert.Condition = c.expr(kids[0])
		}
		if len(kids) > 1 {
			assert.Message = c.expr(kids[1])
		}
		return assert
	case "global_statement":
		return &pythonast.GlobalStmt{Span: span, Names: c.names(n)}
	case "nonlocal_statement":
		return &pythonast.NonLocalStmt{Span: span, Names: c.names(n)}
	case "import_statement":
		return c.importName(n)
	case "import_from_statement", "future_import_statement":
		return c.importFrom(n)
	case "if_statement":
		return c.ifStmt(n)
	case "for_statement":
		return c.forStmt(n)
	case "while_statement":
		return &pythonast.WhileStmt{
			Span:      span,
			Condition: c.expr(field(n, "condition")),
			Body:      c.block(field(n, "body")),
			Else:      c.elseBody(field(n, "alternative")),
		}
	case "try_statement":
		return c.tryStmt(n)
	case "with_statement":
		return c.withStmt(n)
	case "function_definition":
		return c.functionDef(n)
	case "class_definition":
		return c.classDef(n)
	case "decorated_definition":
		return c.decorated(n)
	case "print_statement":
		return c.printStmt(n)
	}
	return &pythonast.BadStmt{Span: span}
}

func (c *converter) names(n *sitter.Node) []*pythonast.NameExpr {
	var out []*pythonast.NameExpr
	for _, kid := range named(n) {
		if kid.Type() == "identifier" {
			out = append(out, c.name(kid))
		}
	}
	return out
}

func (c *converter) exprStmt(n *sitter.Node) pythonast.Stmt {
	kids := named(n)
	if len(kids) == 1 {
		switch kids[0].Type() {
		case "assignment":
			assign := c.assign(kids[0])
			assign.Span = c.span(n)
			return assign
		case "augmented_assignment":
			aug := c.augAssign(kids[0])
			aug.Span = c.span(n)
			return aug
		}
		return &pythonast.ExprStmt{Span: c.span(n), Value: c.expr(kids[0])}
	}
	// `a, b` as a statement
	return &pythonast.ExprStmt{
		Span:  c.span(n),
		Value: &pythonast.TupleExpr{Span: c.span(n), Elts: c.exprs(kids), Usage: pythonast.Evaluate},
	}
}

// assign flattens chained assignments `a = b = value` into one statement
func (c *converter) assign(n *sitter.Node) *pythonast.AssignStmt {
	assign := &pythonast.AssignStmt{Span: c.span(n)}
	if typ := field(n, "type"); typ != nil {
		assign.Annotation = c.expr(typ)
	}
	cur := n
	for {
		assign.Targets = append(assign.Targets, c.target(field(cur, "left")))
		right := field(cur, "right")
		if right == nil {
			return assign
		}
		if right.Type() == "assignment" {
			cur = right
			continue
		}
		assign.Value = c.expr(right)
		return assign
	}
}

func (c *converter) augAssign(n *sitter.Node) *pythonast.AugAssignStmt {
	target := c.expr(field(n, "left"))
	pythonast.SetUsage(target, pythonast.Assign)
	return &pythonast.AugAssignStmt{
		Span:   c.span(n),
		Target: target,
		Op:     c.op(field(n, "operator")),
		Value:  c.expr(field(n, "right")),
	}
}

func (c *converter) target(n *sitter.Node) pythonast.Expr {
	e := c.expr(n)
	pythonast.SetUsage(e, pythonast.Assign)
	return e
}

func (c *converter) ifStmt(n *sitter.Node) *pythonast.IfStmt {
	stmt := &pythonast.IfStmt{
		Span: c.span(n),
		Branches: []*pythonast.Branch{{
			Span:      c.span(n),
			Condition: c.expr(field(n, "condition")),
			Body:      c.block(field(n, "consequence")),
		}},
	}
	for _, kid := range named(n) {
		switch kid.Type() {
		case "elif_clause":
			stmt.Branches = append(stmt.Branches, &pythonast.Branch{
				Span:      c.span(kid),
				Condition: c.expr(field(kid, "condition")),
				Body:      c.block(field(kid, "consequence")),
			})
		case "else_clause":
			stmt.Else = c.elseBody(kid)
		}
	}
	return stmt
}

func (c *converter) elseBody(n *sitter.Node) []pythonast.Stmt {
	if n == nil {
		return nil
	}
	if body := field(n, "body"); body != nil {
		return c.block(body)
	}
	for _, kid := range named(n) {
		if kid.Type() == "block" {
			return c.block(kid)
		}
	}
	return nil
}

func (c *converter) forStmt(n *sitter.Node) *pythonast.ForStmt {
	var targets []pythonast.Expr
	if left := field(n, "left"); left != nil {
		targets = c.exprList(left)
	}
	for _, t := range targets {
		pythonast.SetUsage(t, pythonast.Assign)
	}
	return &pythonast.ForStmt{
		Span:     c.span(n),
		Targets:  targets,
		Iterable: c.expr(field(n, "right")),
		Body:     c.block(field(n, "body")),
		Else:     c.elseBody(field(n, "alternative")),
		Async:    hasToken(n, "async"),
	}
}

func (c *converter) tryStmt(n *sitter.Node) *pythonast.TryStmt {
	stmt := &pythonast.TryStmt{Span: c.span(n), Body: c.block(field(n, "body"))}
	for _, kid := range named(n) {
		switch kid.Type() {
		case "except_clause":
			stmt.Handlers = append(stmt.Handlers, c.exceptClause(kid))
		case "else_clause":
			stmt.Else = c.elseBody(kid)
		case "finally_clause":
			stmt.Finally = c.elseBody(kid)
		}
	}
	return stmt
}

func (c *converter) exceptClause(n *sitter.Node) *pythonast.ExceptClause {
	clause := &pythonast.ExceptClause{Span: c.span(n)}
	var exprs []*sitter.Node
	for _, kid := range named(n) {
		switch kid.Type() {
		case "block":
			clause.Body = c.block(kid)
		case "as_pattern":
			exprs = append(exprs, named(kid)...)
		default:
			exprs = append(exprs, kid)
		}
	}
	if len(exprs) > 0 {
		clause.Type = c.expr(exprs[0])
	}
	if len(exprs) > 1 {
		clause.Target = c.target(unwrapAsTarget(exprs[1]))
	}
	return clause
}

// unwrapAsTarget strips the as_pattern_target wrapper newer grammars put around `as` targets
func unwrapAsTarget(n *sitter.Node) *sitter.Node {
	if n.Type() == "as_pattern_target" {
		if kids := named(n); len(kids) > 0 {
			return kids[0]
		}
	}
	return n
}

func (c *converter) withStmt(n *sitter.Node) *pythonast.WithStmt {
	stmt := &pythonast.WithStmt{Span: c.span(n), Async: hasToken(n, "async")}
	var collect func(*sitter.Node)
	collect = func(parent *sitter.Node) {
		for _, kid := range named(parent) {
			switch kid.Type() {
			case "with_clause":
				collect(kid)
			case "with_item":
				stmt.Items = append(stmt.Items, c.withItem(kid))
			case "block":
				stmt.Body = c.block(kid)
			}
		}
	}
	collect(n)
	return stmt
}

func (c *converter) withItem(n *sitter.Node) *pythonast.WithItem {
	item := &pythonast.WithItem{Span: c.span(n)}
	value := field(n, "value")
	if value == nil {
		return item
	}
	if value.Type() == "as_pattern" {
		kids := named(value)
		item.Value = c.expr(kids[0])
		if len(kids) > 1 {
			item.Target = c.target(unwrapAsTarget(kids[1]))
		}
		return item
	}
	item.Value = c.expr(value)
	if alias := field(n, "alias"); alias != nil {
		item.Target = c.target(alias)
	}
	return item
}

func (c *converter) functionDef(n *sitter.Node) *pythonast.FunctionDefStmt {
	name := c.name(field(n, "name"))
	name.Usage = pythonast.Assign
	def := &pythonast.FunctionDefStmt{
		Span:  c.span(n),
		Name:  name,
		Body:  c.block(field(n, "body")),
		Async: hasToken(n, "async"),
	}
	if params := field(n, "parameters"); params != nil {
		def.Parameters, def.Vararg, def.Kwarg = c.params(params)
	}
	if ret := field(n, "return_type"); ret != nil {
		def.Annotation = c.expr(ret)
	}
	return def
}

func (c *converter) classDef(n *sitter.Node) *pythonast.ClassDefStmt {
	name := c.name(field(n, "name"))
	name.Usage = pythonast.Assign
	def := &pythonast.ClassDefStmt{
		Span: c.span(n),
		Name: name,
		Body: c.block(field(n, "body")),
	}
	if supers := field(n, "superclasses"); supers != nil {
		def.Args, def.Vararg, def.Kwarg = c.arguments(supers)
	}
	return def
}

func (c *converter) decorated(n *sitter.Node) pythonast.Stmt {
	var decorators []pythonast.Expr
	for _, kid := range named(n) {
		if kid.Type() == "decorator" {
			decorators = append(decorators, c.decorator(kid))
		}
	}
	definition := field(n, "definition")
	if definition == nil {
		return &pythonast.BadStmt{Span: c.span(n)}
	}
	switch def := c.stmt(definition).(type) {
	case *pythonast.FunctionDefStmt:
		def.Decorators = decorators
		def.Span.From = token.Pos(n.StartByte())
		return def
	case *pythonast.ClassDefStmt:
		def.Decorators = decorators
		def.Span.From = token.Pos(n.StartByte())
		return def
	default:
		return def
	}
}

// decorator handles both `@expr` and the older `@dotted.name(args)` grammar shape
func (c *converter) decorator(n *sitter.Node) pythonast.Expr {
	kids := named(n)
	if len(kids) == 0 {
		return &pythonast.BadExpr{Span: c.span(n)}
	}
	if kids[0].Type() != "dotted_name" {
		return c.expr(kids[0])
	}
	var value pythonast.Expr
	for _, ident := range named(kids[0]) {
		if value == nil {
			value = c.name(ident)
			continue
		}
		value = &pythonast.AttributeExpr{
			Span:      pythonast.Span{From: value.Begin(), To: token.Pos(ident.EndByte())},
			Value:     value,
			Attribute: c.word(ident, pythonscanner.Ident),
			Usage:     pythonast.Evaluate,
		}
	}
	if len(kids) > 1 && kids[1].Type() == "argument_list" {
		call := &pythonast.CallExpr{Span: pythonast.Span{From: value.Begin(), To: token.Pos(kids[1].EndByte())}, Func: value}
		call.Args, call.Vararg, call.Kwarg = c.arguments(kids[1])
		return call
	}
	return value
}

// printStmt converts a python 2 print statement into a call of print
func (c *converter) printStmt(n *sitter.Node) pythonast.Stmt {
	kids := children(n)
	call := &pythonast.CallExpr{Span: c.span(n), Func: c.constant(kids[0], "print")}
	for _, kid := range named(n) {
		if kid.Type() == "chevron" {
			continue
		}
		call.Args = append(call.Args, &pythonast.Argument{Span: c.span(kid), Value: c.expr(kid)})
	}
	return &pythonast.ExprStmt{Span: c.span(n), Value: call}
}

// -- imports

func (c *converter) dotted(n *sitter.Node) *pythonast.DottedExpr {
	dotted := &pythonast.DottedExpr{Span: c.span(n)}
	if n.Type() == "identifier" {
		dotted.Names = []*pythonast.NameExpr{c.name(n)}
		return dotted
	}
	for _, ident := range named(n) {
		dotted.Names = append(dotted.Names, c.name(ident))
	}
	return dotted
}

func (c *converter) importName(n *sitter.Node) *pythonast.ImportNameStmt {
	stmt := &pythonast.ImportNameStmt{Span: c.span(n)}
	for _, kid := range named(n) {
		clause := &pythonast.DottedAsName{Span: c.span(kid)}
		switch kid.Type() {
		case "dotted_name":
			clause.External = c.dotted(kid)
		case "aliased_import":
			clause.External = c.dotted(field(kid, "name"))
			clause.Internal = c.name(field(kid, "alias"))
		default:
			continue
		}
		if clause.Internal != nil {
			clause.Internal.Usage = pythonast.Import
		} else if len(clause.External.Names) > 0 {
			// `import a.b` binds only a
			clause.External.Names[0].Usage = pythonast.Import
		}
		stmt.Names = append(stmt.Names, clause)
	}
	return stmt
}

func (c *converter) importFrom(n *sitter.Node) *pythonast.ImportFromStmt {
	stmt := &pythonast.ImportFromStmt{Span: c.span(n)}

	module := field(n, "module_name")
	switch {
	case n.Type() == "future_import_statement":
		kids := children(n)
		stmt.Package = &pythonast.DottedExpr{
			Span:  c.span(kids[1]),
			Names: []*pythonast.NameExpr{c.name(kids[1])},
		}
	case module == nil:
	case module.Type() == "relative_import":
		for _, kid := range named(module) {
			switch kid.Type() {
			case "import_prefix":
				stmt.Dots = strings.Count(kid.Content(c.src), ".")
			case "dotted_name":
				stmt.Package = c.dotted(kid)
			}
		}
	default:
		stmt.Package = c.dotted(module)
	}

	for _, kid := range named(n) {
		if same(kid, module) {
			continue
		}
		clause := &pythonast.ImportAsName{Span: c.span(kid)}
		switch kid.Type() {
		case "wildcard_import":
			stmt.Wildcard = c.word(kid, pythonscanner.Mul)
			continue
		case "dotted_name", "identifier":
			clause.External = c.dotted(kid).Names[0]
		case "aliased_import":
			clause.External = c.dotted(field(kid, "name")).Names[0]
			clause.Internal = c.name(field(kid, "alias"))
		default:
			continue
		}
		if clause.Internal != nil {
			clause.Internal.Usage = pythonast.Import
		} else {
			clause.External.Usage = pythonast.Import
		}
		stmt.Names = append(stmt.Names, clause)
	}
	return stmt
}

// -- parameters & arguments

func (c *converter) params(n *sitter.Node) (params []*pythonast.Parameter, vararg, kwarg *pythonast.ArgsParameter) {
	var keywordOnly bool

	param := func(kid, name, annotation, def *sitter.Node) {
		p := &pythonast.Parameter{Span: c.span(kid), Name: c.name(name), KeywordOnly: keywordOnly}
		p.Name.Usage = pythonast.Assign
		if annotation != nil {
			p.Annotation = c.expr(annotation)
		}
		if def != nil {
			p.Default = c.expr(def)
		}
		params = append(params, p)
	}
	splat := func(kid, inner, annotation *sitter.Node) *pythonast.ArgsParameter {
		p := &pythonast.ArgsParameter{Span: c.span(kid)}
		if idents := named(inner); len(idents) > 0 {
			p.Name = c.name(idents[0])
			p.Name.Usage = pythonast.Assign
		}
		if annotation != nil {
			p.Annotation = c.expr(annotation)
		}
		return p
	}

	for _, kid := range children(n) {
		switch kid.Type() {
		case "*", "keyword_separator":
			keywordOnly = true
		case "identifier":
			param(kid, kid, nil, nil)
		case "default_parameter":
			param(kid, field(kid, "name"), nil, field(kid, "value"))
		case "typed_default_parameter":
			param(kid, field(kid, "name"), field(kid, "type"), field(kid, "value"))
		case "typed_parameter":
			typ := field(kid, "type")
			inner := named(kid)[0]
			switch inner.Type() {
			case "list_splat_pattern", "list_splat":
				vararg = splat(kid, inner, typ)
				keywordOnly = true
			case "dictionary_splat_pattern", "dictionary_splat":
				kwarg = splat(kid, inner, typ)
			default:
				param(kid, inner, typ, nil)
			}
		case "list_splat_pattern", "list_splat":
			// a bare `*` parses as an empty list_splat
			if len(named(kid)) > 0 {
				vararg = splat(kid, kid, nil)
			}
			keywordOnly = true
		case "dictionary_splat_pattern", "dictionary_splat":
			kwarg = splat(kid, kid, nil)
		}
	}
	return
}

func (c *converter) arguments(n *sitter.Node) (args []*pythonast.Argument, vararg, kwarg pythonast.Expr) {
	for _, kid := range named(n) {
		switch kid.Type() {
		case "keyword_argument":
			args = append(args, &pythonast.Argument{
				Span:  c.span(kid),
				Name:  c.name(field(kid, "name")),
				Value: c.expr(field(kid, "value")),
			})
		case "list_splat":
			if vararg == nil {
				vararg = c.expr(named(kid)[0])
			} else {
				args = append(args, &pythonast.Argument{Span: c.span(kid), Value: c.expr(kid)})
			}
		case "dictionary_splat":
			if kwarg == nil {
				kwarg = c.expr(named(kid)[0])
			}
		default:
			args = append(args, &pythonast.Argument{Span: c.span(kid), Value: c.expr(kid)})
		}
	}
	return
}
