// Package pythonast defines the syntax tree consumed by the python inference engine.
package pythonast

import (
	"go/token"
	"reflect"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonscanner"
)

// Node is any node in the syntax tree
type Node interface {
	Begin() token.Pos
	End() token.Pos
}

// Expr is a node that produces a value
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node that appears in a statement list
type Stmt interface {
	Node
	stmtNode()
}

// Scope is a node that introduces a new namespace for the names bound inside it
type Scope interface {
	Node
	scopeNode()
}

// Subscript is one item inside the brackets of an IndexExpr
type Subscript interface {
	Node
	subscriptNode()
}

// IsNil checks whether a node is nil, including typed nil pointers stored in an interface
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Span is the byte range a node covers in its source
type Span struct {
	From, To token.Pos
}

// Begin is the first byte of the node
func (s Span) Begin() token.Pos { return s.From }

// End is one past the last byte of the node
func (s Span) End() token.Pos { return s.To }

// Module is the root of a source file
type Module struct {
	Span
	Body []Stmt
}

// -- statements

// BadStmt stands in for a statement that could not be parsed
type BadStmt struct {
	Span
}

// ExprStmt is an expression evaluated for its side effects
type ExprStmt struct {
	Span
	Value Expr
}

// AssignStmt is `t1 = t2 = value`, optionally annotated
type AssignStmt struct {
	Span
	Targets    []Expr
	Annotation Expr
	Value      Expr
}

// AugAssignStmt is `target op= value`
type AugAssignStmt struct {
	Span
	Target Expr
	Op     *pythonscanner.Word
	Value  Expr
}

// ReturnStmt is `return [value]`
type ReturnStmt struct {
	Span
	Value Expr
}

// PassStmt is `pass`
type PassStmt struct {
	Span
}

// BreakStmt is `break`
type BreakStmt struct {
	Span
}

// ContinueStmt is `continue`
type ContinueStmt struct {
	Span
}

// DelStmt is `del targets`
type DelStmt struct {
	Span
	Targets []Expr
}

// RaiseStmt is `raise [value [from cause]]`
type RaiseStmt struct {
	Span
	Value Expr
	Cause Expr
}

// AssertStmt is `assert condition[, message]`
type AssertStmt struct {
	Span
	Condition Expr
	Message   Expr
}

// GlobalStmt is `global names`
type GlobalStmt struct {
	Span
	Names []*NameExpr
}

// NonLocalStmt is `nonlocal names`
type NonLocalStmt struct {
	Span
	Names []*NameExpr
}

// ImportNameStmt is `import a.b as c, d`
type ImportNameStmt struct {
	Span
	Names []*DottedAsName
}

// ImportFromStmt is `from ..pkg import a as b, c` or `from pkg import *`
type ImportFromStmt struct {
	Span
	Dots     int
	Package  *DottedExpr
	Names    []*ImportAsName
	Wildcard *pythonscanner.Word
}

// IfStmt is an if/elif chain with an optional else
type IfStmt struct {
	Span
	Branches []*Branch
	Else     []Stmt
}

// Branch is one `if` or `elif` arm
type Branch struct {
	Span
	Condition Expr
	Body      []Stmt
}

// ForStmt is `for targets in iterable: body else: else`
type ForStmt struct {
	Span
	Targets  []Expr
	Iterable Expr
	Body     []Stmt
	Else     []Stmt
	Async    bool
}

// WhileStmt is `while condition: body else: else`
type WhileStmt struct {
	Span
	Condition Expr
	Body      []Stmt
	Else      []Stmt
}

// TryStmt is try/except/else/finally
type TryStmt struct {
	Span
	Body     []Stmt
	Handlers []*ExceptClause
	Else     []Stmt
	Finally  []Stmt
}

// ExceptClause is `except Type as target: body`
type ExceptClause struct {
	Span
	Type   Expr
	Target Expr
	Body   []Stmt
}

// WithStmt is `with items: body`
type WithStmt struct {
	Span
	Items []*WithItem
	Body  []Stmt
	Async bool
}

// WithItem is `value as target`
type WithItem struct {
	Span
	Value  Expr
	Target Expr
}

// FunctionDefStmt is a (possibly decorated) def
type FunctionDefStmt struct {
	Span
	Decorators []Expr
	Name       *NameExpr
	Parameters []*Parameter
	Vararg     *ArgsParameter
	Kwarg      *ArgsParameter
	Annotation Expr
	Body       []Stmt
	Async      bool
}

// ClassDefStmt is a (possibly decorated) class definition
type ClassDefStmt struct {
	Span
	Decorators []Expr
	Name       *NameExpr
	Args       []*Argument
	Vararg     Expr
	Kwarg      Expr
	Body       []Stmt
}

// Parameter is a named parameter of a function or lambda
type Parameter struct {
	Span
	Name        *NameExpr
	Annotation  Expr
	Default     Expr
	KeywordOnly bool
}

// ArgsParameter is `*args` or `**kwargs`
type ArgsParameter struct {
	Span
	Name       *NameExpr
	Annotation Expr
}

// -- expressions

// BadExpr stands in for an expression that could not be parsed
type BadExpr struct {
	Span
}

// NameExpr is an identifier
type NameExpr struct {
	Ident *pythonscanner.Word
	Usage Usage
}

// Begin implements Node
func (n *NameExpr) Begin() token.Pos { return n.Ident.Begin }

// End implements Node
func (n *NameExpr) End() token.Pos { return n.Ident.End }

// DottedExpr is a dotted module path such as `a.b.c`
type DottedExpr struct {
	Span
	Names []*NameExpr
}

// DottedAsName is `a.b as c` in an import statement
type DottedAsName struct {
	Span
	External *DottedExpr
	Internal *NameExpr
}

// ImportAsName is `a as b` in a from-import statement
type ImportAsName struct {
	Span
	External *NameExpr
	Internal *NameExpr
}

// AttributeExpr is `value.attribute`
type AttributeExpr struct {
	Span
	Value     Expr
	Attribute *pythonscanner.Word
	Usage     Usage
}

// CallExpr is `func(args, *vararg, **kwarg)`
type CallExpr struct {
	Span
	Func   Expr
	Args   []*Argument
	Vararg Expr
	Kwarg  Expr
}

// Argument is one positional or keyword argument
type Argument struct {
	Span
	Name  Expr
	Value Expr
}

// NumberExpr is an int, float or imaginary literal
type NumberExpr struct {
	Number *pythonscanner.Word
}

// Begin implements Node
func (n *NumberExpr) Begin() token.Pos { return n.Number.Begin }

// End implements Node
func (n *NumberExpr) End() token.Pos { return n.Number.End }

// StringExpr is one or more adjacent string literals
type StringExpr struct {
	Span
	Strings []*pythonscanner.Word
}

// ListExpr is `[values]`
type ListExpr struct {
	Span
	Values []Expr
	Usage  Usage
}

// TupleExpr is `(elts)` or a bare comma list
type TupleExpr struct {
	Span
	Elts  []Expr
	Usage Usage
}

// SetExpr is `{values}`
type SetExpr struct {
	Span
	Values []Expr
}

// DictExpr is `{k: v}`
type DictExpr struct {
	Span
	Items []*KeyValuePair
}

// KeyValuePair is one dict display item
type KeyValuePair struct {
	Span
	Key   Expr
	Value Expr
}

// IndexExpr is `value[subscripts]`
type IndexExpr struct {
	Span
	Value      Expr
	Subscripts []Subscript
	Usage      Usage
}

// IndexSubscript is a plain index
type IndexSubscript struct {
	Span
	Value Expr
}

// SliceSubscript is `lower:upper:step`
type SliceSubscript struct {
	Span
	Lower Expr
	Upper Expr
	Step  Expr
}

// BinaryExpr covers arithmetic, comparison and boolean operators
type BinaryExpr struct {
	Span
	Left  Expr
	Op    *pythonscanner.Word
	Right Expr
}

// UnaryExpr is `op value`
type UnaryExpr struct {
	Span
	Op    *pythonscanner.Word
	Value Expr
}

// IfExpr is `body if condition else orelse`
type IfExpr struct {
	Span
	Condition Expr
	Body      Expr
	Else      Expr
}

// LambdaExpr is `lambda params: body`
type LambdaExpr struct {
	Span
	Parameters []*Parameter
	Vararg     *ArgsParameter
	Kwarg      *ArgsParameter
	Body       Expr
}

// YieldExpr is `yield value` or `yield from value`
type YieldExpr struct {
	Span
	Value Expr
	From  bool
}

// AwaitExpr is `await value`
type AwaitExpr struct {
	Span
	Value Expr
}

// StarExpr is `*value` in a target or display
type StarExpr struct {
	Span
	Value Expr
}

// ComprehensionKind distinguishes the four comprehension forms
type ComprehensionKind int

const (
	// GeneratorComprehension is `(x for x in y)`
	GeneratorComprehension ComprehensionKind = iota
	// ListComprehension is `[x for x in y]`
	ListComprehension
	// SetComprehension is `{x for x in y}`
	SetComprehension
	// DictComprehension is `{k: v for k, v in y}`
	DictComprehension
)

// ComprehensionExpr is any comprehension; Key is only set for dict comprehensions
type ComprehensionExpr struct {
	Span
	Kind       ComprehensionKind
	Key        Expr
	Result     Expr
	Generators []*Generator
}

// Generator is one `for vars in iterable if filters` clause
type Generator struct {
	Span
	Vars     []Expr
	Iterable Expr
	Filters  []Expr
}

func (*Module) scopeNode()            {}
func (*FunctionDefStmt) scopeNode()   {}
func (*ClassDefStmt) scopeNode()      {}
func (*LambdaExpr) scopeNode()        {}
func (*ComprehensionExpr) scopeNode() {}

func (*BadStmt) stmtNode()         {}
func (*ExprStmt) stmtNode()        {}
func (*AssignStmt) stmtNode()      {}
func (*AugAssignStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()      {}
func (*PassStmt) stmtNode()        {}
func (*BreakStmt) stmtNode()       {}
func (*ContinueStmt) stmtNode()    {}
func (*DelStmt) stmtNode()         {}
func (*RaiseStmt) stmtNode()       {}
func (*AssertStmt) stmtNode()      {}
func (*GlobalStmt) stmtNode()      {}
func (*NonLocalStmt) stmtNode()    {}
func (*ImportNameStmt) stmtNode()  {}
func (*ImportFromStmt) stmtNode()  {}
func (*IfStmt) stmtNode()          {}
func (*ForStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()       {}
func (*TryStmt) stmtNode()         {}
func (*WithStmt) stmtNode()        {}
func (*FunctionDefStmt) stmtNode() {}
func (*ClassDefStmt) stmtNode()    {}

func (*BadExpr) exprNode()           {}
func (*NameExpr) exprNode()          {}
func (*DottedExpr) exprNode()        {}
func (*AttributeExpr) exprNode()     {}
func (*CallExpr) exprNode()          {}
func (*NumberExpr) exprNode()        {}
func (*StringExpr) exprNode()        {}
func (*ListExpr) exprNode()          {}
func (*TupleExpr) exprNode()         {}
func (*SetExpr) exprNode()           {}
func (*DictExpr) exprNode()          {}
func (*IndexExpr) exprNode()         {}
func (*BinaryExpr) exprNode()        {}
func (*UnaryExpr) exprNode()         {}
func (*IfExpr) exprNode()            {}
func (*LambdaExpr) exprNode()        {}
func (*YieldExpr) exprNode()         {}
func (*AwaitExpr) exprNode()         {}
func (*StarExpr) exprNode()          {}
func (*ComprehensionExpr) exprNode() {}

func (*IndexSubscript) subscriptNode() {}
func (*SliceSubscript) subscriptNode() {}
