package pythonast

import (
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonscanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assigned(s string) *NameExpr {
	n := newName(s)
	n.Usage = Assign
	return n
}

func literals(names []*NameExpr) []string {
	var out []string
	for _, n := range names {
		out = append(out, n.Ident.Literal)
	}
	return out
}

func TestDefinedNames(t *testing.T) {
	// def f(a, *args):
	//     x = 1
	//     def g(): y = 2
	//     for i in a: pass
	//     self.z = 3
	g := &FunctionDefStmt{
		Name: assigned("g"),
		Body: []Stmt{&AssignStmt{Targets: []Expr{assigned("y")}, Value: &NumberExpr{Number: newWord("2")}}},
	}
	selfAttr := &AttributeExpr{Value: newName("self"), Attribute: newWord("z"), Usage: Assign}
	f := &FunctionDefStmt{
		Name:       assigned("f"),
		Parameters: []*Parameter{{Name: assigned("a")}},
		Vararg:     &ArgsParameter{Name: assigned("args")},
		Body: []Stmt{
			&AssignStmt{Targets: []Expr{assigned("x")}, Value: &NumberExpr{Number: newWord("1")}},
			g,
			&ForStmt{Targets: []Expr{assigned("i")}, Iterable: newName("a"), Body: []Stmt{&PassStmt{}}},
			&AssignStmt{Targets: []Expr{selfAttr}, Value: &NumberExpr{Number: newWord("3")}},
		},
	}

	assert.Equal(t, []string{"a", "args", "x", "g", "i"}, literals(DefinedNames(f)))
	assert.Equal(t, []string{"y"}, literals(DefinedNames(g)))
	assert.Equal(t, []*AttributeExpr{selfAttr}, SelfAttributes(f, "self"))
	assert.Empty(t, SelfAttributes(f, "this"))
}

func TestReturnsAndYields(t *testing.T) {
	inner := &ReturnStmt{}
	outer := &ReturnStmt{Value: newName("x")}
	y := &YieldExpr{Value: newName("x")}
	f := &FunctionDefStmt{
		Name: assigned("f"),
		Body: []Stmt{
			&FunctionDefStmt{Name: assigned("g"), Body: []Stmt{inner}},
			&IfStmt{Branches: []*Branch{{Condition: newName("c"), Body: []Stmt{outer}}}},
			&ExprStmt{Value: y},
		},
	}
	assert.Equal(t, []*ReturnStmt{outer}, Returns(f))
	assert.Equal(t, []*YieldExpr{y}, Yields(f))
	assert.True(t, IsGenerator(f))
}

func TestGlobals(t *testing.T) {
	decl := newName("counter")
	fn := &FunctionDefStmt{
		Name: assigned("bump"),
		Body: []Stmt{&GlobalStmt{Names: []*NameExpr{decl}}},
	}
	mod := &Module{Body: []Stmt{&GlobalStmt{Names: []*NameExpr{newName("ignored")}}, fn}}

	globals := Globals(mod)
	require.Len(t, globals, 1)
	assert.Equal(t, decl, globals[0].Name)
	assert.Equal(t, fn, globals[0].Scope)
}

func TestStringValue(t *testing.T) {
	word := func(lit string) *pythonscanner.Word {
		return &pythonscanner.Word{Token: pythonscanner.String, Literal: lit}
	}
	for lit, expected := range map[string]string{
		`"abc"`:          "abc",
		`'a\nb'`:         "a\nb",
		`r'a\nb'`:        `a\nb`,
		`"""doc"""`:      "doc",
		`b'xyz'`:         "xyz",
		`''`:             "",
		`Rb"\d"`:         `\d`,
		`'it\'s'`:        "it's",
		`"""a "q" b"""`: `a "q" b`,
	} {
		assert.Equal(t, expected, StringValue(&StringExpr{Strings: []*pythonscanner.Word{word(lit)}}), lit)
	}

	doc := &StringExpr{Strings: []*pythonscanner.Word{word(`"first "`), word(`'second'`)}}
	assert.Equal(t, "first second", Docstring([]Stmt{&ExprStmt{Value: doc}}))
	assert.Equal(t, "", Docstring([]Stmt{&PassStmt{}}))
}
