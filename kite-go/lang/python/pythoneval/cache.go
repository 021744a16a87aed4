package pythoneval

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
)

// internKey identifies a context: its kind, the node it wraps, its parent and its arguments
type internKey struct {
	kind   string
	node   pythonast.Node
	parent uint64
	sig    uint64
}

// intern returns the context already built for key, or builds and records it
func (e *Evaluator) intern(key internKey, build func() Context) Context {
	if c, ok := e.interned[key]; ok {
		return c
	}
	c := build()
	e.interned[key] = c
	return c
}

type memoKey struct {
	owner uint64
	op    string
	sig   uint64
}

type memoEntry struct {
	value interface{}
	done  bool
}

// Memoize returns the result of f for (owner, op, sig), computing it at most once per
// session. A query that re-enters itself while in progress gets def. If f aborts, the
// in-progress entry is removed so that a later query computes it again.
func (e *Evaluator) Memoize(owner Context, op string, sig uint64, def interface{}, f func() interface{}) interface{} {
	key := memoKey{owner: owner.ID(), op: op, sig: sig}
	if entry, ok := e.memo[key]; ok {
		memoRatio.Hit()
		if !entry.done {
			return def
		}
		return entry.value
	}
	memoRatio.Miss()

	entry := &memoEntry{value: def}
	e.memo[key] = entry
	var completed bool
	defer func() {
		if !completed {
			delete(e.memo, key)
		}
	}()

	entry.value = f()
	entry.done = true
	completed = true
	return entry.value
}
