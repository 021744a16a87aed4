package pythonast

import (
	"bytes"
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonscanner"
	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	mod := &Module{Body: []Stmt{
		&AssignStmt{
			Targets: []Expr{assigned("x")},
			Value: &BinaryExpr{
				Left:  &NumberExpr{Number: newWord("1")},
				Op:    &pythonscanner.Word{Token: pythonscanner.Add},
				Right: newName("y"),
			},
		},
	}}

	var buf bytes.Buffer
	Print(mod, &buf, "  ")
	expected := `Module
  AssignStmt
    NameExpr[x]
    BinaryExpr[+]
      NumberExpr[1]
      NameExpr[y]
`
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, 6, CountNodes(mod))
}

func TestParentAndScopeTables(t *testing.T) {
	x := newName("x")
	def := &Parameter{Name: assigned("p"), Default: x}
	body := &ReturnStmt{Value: newName("p")}
	fn := &FunctionDefStmt{Name: assigned("f"), Parameters: []*Parameter{def}, Body: []Stmt{body}}
	mod := &Module{Body: []Stmt{fn}}

	parents := ConstructParentTable(mod, 0)
	assert.Equal(t, Node(def), parents[x])
	assert.Equal(t, Node(fn), parents[def])
	assert.Equal(t, Node(mod), parents[fn])

	scopes := ConstructScopeTable(mod)
	assert.Equal(t, Scope(mod), scopes[x])
	assert.Equal(t, Scope(fn), scopes[body.Value])
	assert.Equal(t, Scope(mod), scopes[fn.Name])
}
