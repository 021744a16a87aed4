package pythonparser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonscanner"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opts = Options{ErrorMode: FailFast, NoCache: true}

func requireParse(t *testing.T, src string) *pythonast.Module {
	mod, err := Parse(kitectx.Background(), []byte(src), opts)
	require.NoError(t, err)
	require.NotNil(t, mod)
	return mod
}

func assertAST(t *testing.T, expected string, node pythonast.Node) {
	var buf bytes.Buffer
	pythonast.Print(node, &buf, "\t")
	assert.Equal(t, strings.TrimSpace(expected), strings.TrimSpace(buf.String()))
}

func TestAssign(t *testing.T) {
	mod := requireParse(t, "a = b = 1\n")
	require.Len(t, mod.Body, 1)
	assign := mod.Body[0].(*pythonast.AssignStmt)
	require.Len(t, assign.Targets, 2)
	assert.Equal(t, pythonast.Assign, pythonast.GetUsage(assign.Targets[0]))
	assert.Equal(t, pythonast.Assign, pythonast.GetUsage(assign.Targets[1]))

	assertAST(t, `
Module
	AssignStmt
		NameExpr[a]
		NameExpr[b]
		NumberExpr[1]
`, mod)
}

func TestTupleTargets(t *testing.T) {
	mod := requireParse(t, "a, (b, c) = x\n")
	assign := mod.Body[0].(*pythonast.AssignStmt)
	tuple := assign.Targets[0].(*pythonast.TupleExpr)
	require.Len(t, tuple.Elts, 2)
	inner := tuple.Elts[1].(*pythonast.TupleExpr)
	assert.Equal(t, pythonast.Assign, pythonast.GetUsage(inner.Elts[1]))
	assert.Equal(t, pythonast.Evaluate, pythonast.GetUsage(assign.Value))
}

func TestConstants(t *testing.T) {
	mod := requireParse(t, "x = [True, False, None]\n")
	list := mod.Body[0].(*pythonast.AssignStmt).Value.(*pythonast.ListExpr)
	var lits []string
	for _, v := range list.Values {
		lits = append(lits, v.(*pythonast.NameExpr).Ident.Literal)
	}
	assert.Equal(t, []string{"True", "False", "None"}, lits)
}

func TestFunctionDef(t *testing.T) {
	src := `
@decorate
def f(a, b: int = 2, *args, c, **kwargs) -> str:
    """doc"""
    return a
`
	mod := requireParse(t, src)
	def := mod.Body[0].(*pythonast.FunctionDefStmt)

	assert.Equal(t, "f", def.Name.Ident.Literal)
	require.Len(t, def.Decorators, 1)
	require.Len(t, def.Parameters, 3)
	assert.Equal(t, "a", def.Parameters[0].Name.Ident.Literal)
	assert.NotNil(t, def.Parameters[1].Annotation)
	assert.NotNil(t, def.Parameters[1].Default)
	assert.True(t, def.Parameters[2].KeywordOnly)
	require.NotNil(t, def.Vararg)
	assert.Equal(t, "args", def.Vararg.Name.Ident.Literal)
	require.NotNil(t, def.Kwarg)
	assert.Equal(t, "kwargs", def.Kwarg.Name.Ident.Literal)
	assert.NotNil(t, def.Annotation)
	assert.Equal(t, "doc", pythonast.Docstring(def.Body))
	assert.Len(t, pythonast.Returns(def), 1)
}

func TestClassDef(t *testing.T) {
	mod := requireParse(t, "class C(A, B, metaclass=M):\n    x = 1\n")
	def := mod.Body[0].(*pythonast.ClassDefStmt)
	require.Len(t, def.Args, 3)
	assert.Nil(t, def.Args[0].Name)
	assert.NotNil(t, def.Args[2].Name)
	require.Len(t, def.Body, 1)
}

func TestImports(t *testing.T) {
	src := `
import os.path
import numpy as np
from . import sibling
from ..pkg.mod import a as b, c
from m import *
`
	mod := requireParse(t, src)
	require.Len(t, mod.Body, 5)

	imp := mod.Body[0].(*pythonast.ImportNameStmt)
	require.Len(t, imp.Names, 1)
	assert.Len(t, imp.Names[0].External.Names, 2)
	assert.Equal(t, pythonast.Import, imp.Names[0].External.Names[0].Usage)
	assert.NotEqual(t, pythonast.Import, imp.Names[0].External.Names[1].Usage)

	alias := mod.Body[1].(*pythonast.ImportNameStmt)
	assert.Equal(t, "np", alias.Names[0].Internal.Ident.Literal)

	rel := mod.Body[2].(*pythonast.ImportFromStmt)
	assert.Equal(t, 1, rel.Dots)
	assert.Nil(t, rel.Package)
	require.Len(t, rel.Names, 1)

	from := mod.Body[3].(*pythonast.ImportFromStmt)
	assert.Equal(t, 2, from.Dots)
	assert.Len(t, from.Package.Names, 2)
	require.Len(t, from.Names, 2)
	assert.Equal(t, "b", from.Names[0].Internal.Ident.Literal)
	assert.Equal(t, "c", from.Names[1].External.Ident.Literal)

	star := mod.Body[4].(*pythonast.ImportFromStmt)
	assert.NotNil(t, star.Wildcard)
	assert.Empty(t, star.Names)

	var defined []string
	for _, name := range pythonast.DefinedNames(mod) {
		defined = append(defined, name.Ident.Literal)
	}
	assert.Equal(t, []string{"os", "np", "sibling", "b", "c"}, defined)
}

func TestControlFlow(t *testing.T) {
	src := `
if a:
    pass
elif b:
    pass
else:
    pass
for i, j in x:
    break
else:
    pass
while c:
    continue
try:
    pass
except ValueError as e:
    pass
finally:
    pass
with open(p) as f:
    pass
`
	mod := requireParse(t, src)
	require.Len(t, mod.Body, 5)

	ifStmt := mod.Body[0].(*pythonast.IfStmt)
	assert.Len(t, ifStmt.Branches, 2)
	assert.Len(t, ifStmt.Else, 1)

	forStmt := mod.Body[1].(*pythonast.ForStmt)
	assert.Len(t, forStmt.Targets, 2)
	assert.Len(t, forStmt.Else, 1)

	assert.IsType(t, &pythonast.WhileStmt{}, mod.Body[2])

	try := mod.Body[3].(*pythonast.TryStmt)
	require.Len(t, try.Handlers, 1)
	assert.Equal(t, "e", try.Handlers[0].Target.(*pythonast.NameExpr).Ident.Literal)
	assert.Len(t, try.Finally, 1)

	with := mod.Body[4].(*pythonast.WithStmt)
	require.Len(t, with.Items, 1)
	assert.IsType(t, &pythonast.CallExpr{}, with.Items[0].Value)
	assert.Equal(t, pythonast.Assign, pythonast.GetUsage(with.Items[0].Target))
}

func TestExpressions(t *testing.T) {
	src := `x = a.b(1, *c, k=2, **d)[0:1] if not e else (yield from g)
y = lambda p, q=1: p + q
z = [i for i in r if i]
w = 1 < 2 <= 3
`
	mod := requireParse(t, src)

	ifExpr := mod.Body[0].(*pythonast.AssignStmt).Value.(*pythonast.IfExpr)
	index := ifExpr.Body.(*pythonast.IndexExpr)
	call := index.Value.(*pythonast.CallExpr)
	assert.Len(t, call.Args, 2)
	assert.NotNil(t, call.Vararg)
	assert.NotNil(t, call.Kwarg)
	assert.IsType(t, &pythonast.SliceSubscript{}, index.Subscripts[0])
	assert.Equal(t, pythonscanner.Not, ifExpr.Condition.(*pythonast.UnaryExpr).Op.Token)
	assert.True(t, ifExpr.Else.(*pythonast.YieldExpr).From)

	lambda := mod.Body[1].(*pythonast.AssignStmt).Value.(*pythonast.LambdaExpr)
	assert.Len(t, lambda.Parameters, 2)
	assert.Equal(t, pythonscanner.Add, lambda.Body.(*pythonast.BinaryExpr).Op.Token)

	comp := mod.Body[2].(*pythonast.AssignStmt).Value.(*pythonast.ComprehensionExpr)
	assert.Equal(t, pythonast.ListComprehension, comp.Kind)
	require.Len(t, comp.Generators, 1)
	assert.Len(t, comp.Generators[0].Filters, 1)

	cmp := mod.Body[3].(*pythonast.AssignStmt).Value.(*pythonast.BinaryExpr)
	assert.Equal(t, pythonscanner.Le, cmp.Op.Token)
	assert.Equal(t, pythonscanner.Lt, cmp.Left.(*pythonast.BinaryExpr).Op.Token)
}

func TestNotIn(t *testing.T) {
	mod := requireParse(t, "a not in b\nc is not d\n")
	first := mod.Body[0].(*pythonast.ExprStmt).Value.(*pythonast.BinaryExpr)
	second := mod.Body[1].(*pythonast.ExprStmt).Value.(*pythonast.BinaryExpr)
	assert.Equal(t, pythonscanner.NotIn, first.Op.Token)
	assert.Equal(t, pythonscanner.IsNot, second.Op.Token)
}

func TestStrings(t *testing.T) {
	mod := requireParse(t, "s = 'a' \"b\"\n")
	str := mod.Body[0].(*pythonast.AssignStmt).Value.(*pythonast.StringExpr)
	assert.Len(t, str.Strings, 2)
	assert.Equal(t, "ab", pythonast.StringValue(str))
}

func TestPositions(t *testing.T) {
	src := "x = foo\n"
	mod := requireParse(t, src)
	name := mod.Body[0].(*pythonast.AssignStmt).Value.(*pythonast.NameExpr)
	assert.Equal(t, "foo", src[name.Begin():name.End()])
}

func TestSyntaxErrors(t *testing.T) {
	src := "x = 1\ndef (:\ny = 2\n"

	mod, err := Parse(kitectx.Background(), []byte(src), opts)
	assert.Error(t, err)
	assert.Nil(t, mod)

	mod, err = Parse(kitectx.Background(), []byte(src), Options{ErrorMode: Recover, NoCache: true})
	assert.Error(t, err)
	require.NotNil(t, mod)
	assert.NotEmpty(t, mod.Body)
}

func TestBareLists(t *testing.T) {
	src := `x = 1,
for i in r:
    pass
def f():
    yield a
    yield b, c
    return d
raise E from e
`
	mod := requireParse(t, src)
	require.Len(t, mod.Body, 4)

	single := mod.Body[0].(*pythonast.AssignStmt)
	assert.IsType(t, &pythonast.NameExpr{}, single.Targets[0])
	tuple := single.Value.(*pythonast.TupleExpr)
	assert.Len(t, tuple.Elts, 1)

	loop := mod.Body[1].(*pythonast.ForStmt)
	require.Len(t, loop.Targets, 1)
	assert.Equal(t, "i", loop.Targets[0].(*pythonast.NameExpr).Ident.Literal)
	assert.Equal(t, pythonast.Assign, pythonast.GetUsage(loop.Targets[0]))
	assert.IsType(t, &pythonast.NameExpr{}, loop.Iterable)
	assert.Len(t, loop.Body, 1)

	def := mod.Body[2].(*pythonast.FunctionDefStmt)
	require.Len(t, def.Body, 3)
	first := def.Body[0].(*pythonast.ExprStmt).Value.(*pythonast.YieldExpr)
	assert.IsType(t, &pythonast.NameExpr{}, first.Value)
	second := def.Body[1].(*pythonast.ExprStmt).Value.(*pythonast.YieldExpr)
	assert.Len(t, second.Value.(*pythonast.TupleExpr).Elts, 2)
	ret := def.Body[2].(*pythonast.ReturnStmt)
	assert.Equal(t, "d", ret.Value.(*pythonast.NameExpr).Ident.Literal)

	raise := mod.Body[3].(*pythonast.RaiseStmt)
	assert.IsType(t, &pythonast.NameExpr{}, raise.Value)
	assert.IsType(t, &pythonast.NameExpr{}, raise.Cause)

	assertAST(t, `
Module
	AssignStmt
		NameExpr[x]
		TupleExpr
			NumberExpr[1]
`, &pythonast.Module{Body: mod.Body[:1]})
}

func TestBlockBodies(t *testing.T) {
	src := `class A(object):
    def m(self):
        """method doc"""
        self.x = {1: 2}
if a:
    x = 1
    y = 2
elif b:
    z = 3
`
	mod := requireParse(t, src)
	require.Len(t, mod.Body, 2)

	cls := mod.Body[0].(*pythonast.ClassDefStmt)
	require.Len(t, cls.Body, 1)
	method := cls.Body[0].(*pythonast.FunctionDefStmt)
	assert.Equal(t, "method doc", pythonast.Docstring(method.Body))
	assign := method.Body[1].(*pythonast.AssignStmt)
	assert.IsType(t, &pythonast.AttributeExpr{}, assign.Targets[0])
	dict := assign.Value.(*pythonast.DictExpr)
	require.Len(t, dict.Items, 1)
	assert.NotNil(t, dict.Items[0].Key)

	ifStmt := mod.Body[1].(*pythonast.IfStmt)
	require.Len(t, ifStmt.Branches, 2)
	assert.Len(t, ifStmt.Branches[0].Body, 2)
	assert.Len(t, ifStmt.Branches[1].Body, 1)
}

func TestKeywordOnlyMarker(t *testing.T) {
	mod := requireParse(t, "def h(a, *, b): pass\n")
	def := mod.Body[0].(*pythonast.FunctionDefStmt)
	require.Len(t, def.Parameters, 2)
	assert.Nil(t, def.Vararg)
	assert.False(t, def.Parameters[0].KeywordOnly)
	assert.True(t, def.Parameters[1].KeywordOnly)
	assert.Len(t, def.Body, 1)
}

func TestStarredListTarget(t *testing.T) {
	mod := requireParse(t, "[a, *rest] = items\n")
	assign := mod.Body[0].(*pythonast.AssignStmt)
	target := assign.Targets[0].(*pythonast.ListExpr)
	require.Len(t, target.Values, 2)
	star := target.Values[1].(*pythonast.StarExpr)
	assert.Equal(t, pythonast.Assign, pythonast.GetUsage(star.Value))
	assert.Equal(t, pythonast.Assign, pythonast.GetUsage(target.Values[0]))
	assert.IsType(t, &pythonast.NameExpr{}, assign.Value)
}
