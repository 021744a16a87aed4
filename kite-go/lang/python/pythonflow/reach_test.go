package pythonflow_test

import (
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonanalyzer"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonenv"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonflow"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assignment returns the statement assigning to name
func assignment(root pythonast.Node, name string) pythonast.Stmt {
	var ret pythonast.Stmt
	pythonast.Inspect(root, func(node pythonast.Node) bool {
		if node == nil || ret != nil {
			return false
		}
		if assign, ok := node.(*pythonast.AssignStmt); ok {
			if target, ok := assign.Targets[0].(*pythonast.NameExpr); ok && target.Ident.Literal == name {
				ret = assign
			}
		}
		return ret == nil
	})
	return ret
}

func TestCheck(t *testing.T) {
	src := `
def f(x):
    if True:
        a = 1
    else:
        b = 1
    if x:
        c = 1
    elif False:
        d = 1
    else:
        e = 1
    if 0:
        pass
    elif "":
        pass
    else:
        g = 1
    while x:
        h = 1
    try:
        i = 1
    except Exception:
        j = 1
    def inner():
        k = 1
    if True:
        if None:
            l = 1
    m = 1
`
	cfg := pythonanalyzer.DefaultConfig()
	cfg.SysPath = []string{"/code"}
	session, err := pythonanalyzer.NewSession(cfg, pythonenv.MapFileSystem{"/code/main.py": src}, nil)
	require.NoError(t, err)
	mod, err := session.Load(kitectx.Background(), "/code/main.py")
	require.NoError(t, err)

	def, ok := mod.Module().Body[0].(*pythonast.FunctionDefStmt)
	require.True(t, ok)
	exec := session.Evaluator().ContextOf(mod, def.Body[0])

	checker := pythonflow.NewChecker()
	ctx := kitectx.CallContext{Context: kitectx.Background()}
	for name, want := range map[string]pythoneval.Reach{
		"a": pythoneval.Reachable,
		"b": pythoneval.Unreachable,
		"c": pythoneval.Uncertain,
		"d": pythoneval.Unreachable,
		"e": pythoneval.Uncertain,
		"g": pythoneval.Reachable,
		"h": pythoneval.Uncertain,
		"i": pythoneval.Uncertain,
		"j": pythoneval.Uncertain,
		"k": pythoneval.Uncertain,
		"l": pythoneval.Unreachable,
		"m": pythoneval.Reachable,
	} {
		stmt := assignment(def, name)
		require.NotNil(t, stmt, "no assignment to %s", name)
		assert.Equal(t, want, checker.Check(ctx, exec, def, stmt), "reachability of %s", name)
	}
}
