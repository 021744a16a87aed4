package pythoneval

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// activeCall is one function body being evaluated, keyed by the call expression it was
// reached through rather than by argument values, so `def f(x): return f([x])` stops
// at the first re-entry. Calls made with no call expression, such as decorator
// applications, are told apart by the signature of their arguments instead.
type activeCall struct {
	fn   pythonast.Node
	site pythonast.Node
	sig  uint64
}

// pushCall records an active call. It returns false, and records nothing, if the call
// is already active or fn is nested too deeply.
func (e *Evaluator) pushCall(ctx kitectx.CallContext, fn pythonast.Node, args Arguments) bool {
	call := activeCall{fn: fn, site: args.CallSite()}
	if pythonast.IsNil(call.site) {
		call.site = nil
		call.sig = args.Signature(ctx)
	}

	var depth int
	for _, c := range e.active {
		if c.fn != fn {
			continue
		}
		depth++
		if c == call {
			e.tripGuard("recursive call of %s", fn)
			return false
		}
	}
	if depth >= e.opts.MaxFunctionRecursion {
		e.tripGuard("function %s nested %d deep", fn, depth)
		return false
	}
	e.active = append(e.active, call)
	return true
}

func (e *Evaluator) popCall() {
	e.active = e.active[:len(e.active)-1]
}

type nameKey struct {
	owner uint64
	node  pythonast.Node
}

// pushName records that the definition node is being inferred in owner.
// It returns false if that inference is already in progress, e.g. for `x = x`.
func (e *Evaluator) pushName(owner Context, node pythonast.Node) bool {
	key := nameKey{owner: owner.ID(), node: node}
	if e.inferring[key] {
		e.tripGuard("re-entrant inference of %s", pythonast.String(node))
		return false
	}
	e.inferring[key] = true
	return true
}

func (e *Evaluator) popName(owner Context, node pythonast.Node) {
	delete(e.inferring, nameKey{owner: owner.ID(), node: node})
}

func (e *Evaluator) tripGuard(format string, args ...interface{}) {
	guardTripsCount.Add(1)
	if e.opts.Trace {
		e.logger.Debugf("guard: "+format, args...)
	}
}

// countExecution returns false once the session has used up its executions
func (e *Evaluator) countExecution() bool {
	if e.executions >= e.opts.MaxExecutions {
		e.tripGuard("execution limit %d reached", e.opts.MaxExecutions)
		return false
	}
	e.executions++
	executionsCount.Add(1)
	return true
}
