package pythonast

import (
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonscanner"
	"github.com/stretchr/testify/assert"
)

func newWord(s string) *pythonscanner.Word {
	return &pythonscanner.Word{
		Token:   pythonscanner.Ident,
		Literal: s,
	}
}

func newName(s string) *NameExpr {
	return &NameExpr{
		Ident: newWord(s),
	}
}

func TestInspect(t *testing.T) {
	// (a + (b + c))
	a, b, c := newName("a"), newName("b"), newName("c")
	inner := &BinaryExpr{Left: b, Right: c}
	outer := &BinaryExpr{Left: a, Right: inner}

	expected := []Node{
		outer,
		a,
		nil, // closes "a"
		inner,
		b,
		nil, // closes "b"
		c,
		nil, // closes "c"
		nil, // closes "inner"
		nil, // closes "outer"
	}

	var actual []Node
	Inspect(outer, func(n Node) bool {
		actual = append(actual, n)
		return true
	})

	assert.Equal(t, expected, actual)
}

func TestInspectEdges(t *testing.T) {
	type edge struct {
		parent, child Node
		field         string
	}
	a, b := newName("a"), newName("b")
	call := &CallExpr{Func: a, Args: []*Argument{{Value: b}}}
	arg := call.Args[0]

	expected := []edge{
		{nil, call, ""},
		{call, a, "Func"},
		{a, nil, ""},
		{call, arg, "Args"},
		{arg, b, "Value"},
		{b, nil, ""},
		{arg, nil, ""},
		{call, nil, ""},
	}

	var actual []edge
	InspectEdges(call, func(parent, child Node, field string) bool {
		actual = append(actual, edge{parent, child, field})
		return true
	})

	assert.Equal(t, expected, actual)
}

func TestInspectSkipsNilChildren(t *testing.T) {
	ret := &ReturnStmt{}
	var count int
	Inspect(ret, func(n Node) bool {
		if n != nil {
			count++
		}
		return true
	})
	assert.Equal(t, 1, count)
}
