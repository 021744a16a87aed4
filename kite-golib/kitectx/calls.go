package kitectx

import "errors"

// ErrCallLimit is the abort reason when a CallContext runs out of depth
var ErrCallLimit = errors.New("call limit exceeded")

// CallContext is a Context that also tracks the depth of a recursive computation.
// Every recursive step should derive its callee's context with Call; once the depth
// passes the limit, CheckAbort aborts the whole computation back to WithCallLimit.
type CallContext struct {
	Context
	depth int
	limit int
}

// WithCallLimit calls f with a CallContext that aborts when nested deeper than limit.
// A limit of zero or less disables the depth check.
func (ctx Context) WithCallLimit(limit int, f func(CallContext) error) (err error) {
	defer recoverAbort(ctx.CheckAbort, &err)
	err = f(CallContext{Context: ctx, limit: limit})
	return
}

// Call returns the context for one level deeper in the computation
func (ctx CallContext) Call() CallContext {
	ctx.depth++
	return ctx
}

// Depth is the number of Call levels between ctx and its WithCallLimit root
func (ctx CallContext) Depth() int {
	return ctx.depth
}

// AtCallLimit reports whether another Call would exceed the limit
func (ctx CallContext) AtCallLimit() bool {
	return ctx.limit > 0 && ctx.depth >= ctx.limit
}

// CheckAbort aborts if the underlying Context is expired or the depth is over the limit
func (ctx CallContext) CheckAbort() {
	ctx.Context.CheckAbort()
	if ctx.limit > 0 && ctx.depth > ctx.limit {
		abort(ErrCallLimit)
	}
}
