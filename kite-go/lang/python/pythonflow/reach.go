// Package pythonflow classifies whether statements of a function body may execute,
// using the inferred truthiness of the conditions that guard them.
package pythonflow

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// Checker implements pythoneval.Reachability. Statements inside `while` loops and
// `try` blocks are always uncertain; `if` branches are decided by their conditions.
type Checker struct{}

// NewChecker returns a reachability checker
func NewChecker() *Checker {
	return &Checker{}
}

// Check implements pythoneval.Reachability. Conditions are evaluated in exec. The
// enclosing flow statements are examined from the innermost outwards, stopping at the
// first one that is not reachable.
func (c *Checker) Check(ctx kitectx.CallContext, exec pythoneval.Context, funcdef pythonast.Node, stmt pythonast.Stmt) pythoneval.Reach {
	e := exec.Evaluator()
	mod := pythoneval.RootContext(exec)
	if mod == nil {
		return pythoneval.Uncertain
	}
	parents := e.Parents(mod)

	child := pythonast.Node(stmt)
	for n := parents[child]; !pythonast.IsNil(n) && n != funcdef; child, n = n, parents[n] {
		var reach pythoneval.Reach
		switch n := n.(type) {
		case *pythonast.Branch:
			reach = c.checkBranch(ctx, e, exec, parents[n], n)
		case *pythonast.IfStmt:
			reach = c.checkElse(ctx, e, exec, n, child)
		case *pythonast.WhileStmt, *pythonast.TryStmt, *pythonast.ExceptClause:
			reach = pythoneval.Uncertain
		case pythonast.Scope:
			// a statement of a nested function or class
			return pythoneval.Uncertain
		default:
			continue
		}
		if reach != pythoneval.Reachable {
			return reach
		}
	}
	return pythoneval.Reachable
}

// checkBranch decides the body of an `if` or `elif` arm: unreachable when an earlier
// arm always runs, otherwise decided by the arm's own condition
func (c *Checker) checkBranch(ctx kitectx.CallContext, e *pythoneval.Evaluator, exec pythoneval.Context, parent pythonast.Node, branch *pythonast.Branch) pythoneval.Reach {
	if ifStmt, ok := parent.(*pythonast.IfStmt); ok {
		for _, b := range ifStmt.Branches {
			if b == branch {
				break
			}
			if truth(ctx, e, exec, b.Condition) == pythoneval.TruthTrue {
				return pythoneval.Unreachable
			}
		}
	}
	return reachOf(truth(ctx, e, exec, branch.Condition))
}

// checkElse decides the `else` body of an `if` statement: it runs only if every
// condition is false
func (c *Checker) checkElse(ctx kitectx.CallContext, e *pythoneval.Evaluator, exec pythoneval.Context, ifStmt *pythonast.IfStmt, child pythonast.Node) pythoneval.Reach {
	if !inElse(ifStmt, child) {
		return pythoneval.Reachable
	}
	for _, b := range ifStmt.Branches {
		switch truth(ctx, e, exec, b.Condition) {
		case pythoneval.TruthTrue:
			return pythoneval.Unreachable
		case pythoneval.TruthUnknown:
			return pythoneval.Uncertain
		}
	}
	return pythoneval.Reachable
}

func inElse(ifStmt *pythonast.IfStmt, child pythonast.Node) bool {
	for _, s := range ifStmt.Else {
		if pythonast.Node(s) == child {
			return true
		}
	}
	return false
}

func truth(ctx kitectx.CallContext, e *pythoneval.Evaluator, exec pythoneval.Context, cond pythonast.Expr) pythoneval.Truth {
	if pythonast.IsNil(cond) {
		return pythoneval.TruthUnknown
	}
	return e.EvalExpr(ctx, exec, cond).Truth()
}

func reachOf(t pythoneval.Truth) pythoneval.Reach {
	switch t {
	case pythoneval.TruthTrue:
		return pythoneval.Reachable
	case pythoneval.TruthFalse:
		return pythoneval.Unreachable
	default:
		return pythoneval.Uncertain
	}
}
