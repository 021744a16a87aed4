// Package localcodetests exercises analysis sessions over small projects held in memory

package localcodetests

import (
	"path"
	"strings"
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonanalyzer"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonenv"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/kiteco/pyeval/kite-golib/linenumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type opts struct {
	src        string            // the python source code to analyze
	srcpath    string            // treat src as being from this path
	localfiles map[string]string // other local paths to include in the file system
	syspath    []string          // import roots, the directory of srcpath if empty
	expected   map[string]string // map from expressions to their expected values
}

func assertResolveOpts(t *testing.T, opts opts) (*pythonanalyzer.Session, *pythoneval.ModuleContext) {
	for i, line := range strings.Split(opts.src, "\n") {
		t.Logf("%3d  %s", i+1, line)
	}

	srcpath := opts.srcpath
	if srcpath == "" {
		srcpath = "/code/src.py"
	}
	fs := pythonenv.MapFileSystem{srcpath: opts.src}
	for p, buf := range opts.localfiles {
		if p != srcpath {
			fs[p] = buf
		}
	}

	cfg := pythonanalyzer.DefaultConfig()
	cfg.SysPath = opts.syspath
	if len(cfg.SysPath) == 0 {
		cfg.SysPath = []string{path.Dir(srcpath)}
	}
	session, err := pythonanalyzer.NewSession(cfg, fs, nil)
	require.NoError(t, err)

	mod, err := session.Load(kitectx.Background(), srcpath)
	require.NoError(t, err)

	lines := linenumber.NewMap([]byte(opts.src))

	for exprStr, expectedName := range opts.expected {
		expr := findExpr(mod.Module(), exprStr, opts.src)
		require.NotNil(t, expr, "could not find AST node for '%s'", exprStr)
		pos := lines.Position(int(expr.Begin()))

		actual := pythonanalyzer.SetString(session.Infer(kitectx.Background(), mod, expr))
		t.Logf("%25s (%s) -> %s", exprStr, pos, actual)
		assert.Equal(t, expectedName, actual,
			"expected %s to resolve to %s but got %s", exprStr, expectedName, actual)
	}
	return session, mod
}

// Find a node in an AST given the source for the node
func findExpr(root pythonast.Node, s string, orig string) pythonast.Expr {
	var ret pythonast.Expr
	pythonast.Inspect(root, func(node pythonast.Node) bool {
		if node == nil {
			return false
		}
		// ignore DottedExpr since they can make us fail to find the NameExpr inside
		expr, isexpr := node.(pythonast.Expr)
		_, isdotted := node.(*pythonast.DottedExpr)
		if isexpr && !isdotted && orig[expr.Begin():expr.End()] == s {
			ret = expr
		}
		return ret == nil
	})
	return ret
}
