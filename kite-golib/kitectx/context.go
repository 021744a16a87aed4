// Package kitectx encapsulates the capability to abort computations.
//
// kitectx.Context is analogous to the built-in context.Context, with helper methods
// to define abort-able computations. ctx.CheckAbort() must be called frequently enough
// during a computation for the abort condition to be noticed.
//
// A function that accepts a kitectx.Context (or CallContext) should call CheckAbort,
// directly or through a callee, near its start.
//
// NOTE: a child Context must be created on the goroutine that runs the parent's
// computation. Aborts unwind with a panic, and a goroutine without a recovering
// handler would be brought down by a parent's expiry.
package kitectx

import (
	"context"
	"sync/atomic"
	"unsafe"

	"github.com/kiteco/pyeval/kite-golib/kitelog"
)

// Context manages an abort condition and a logger.
// It should be passed explicitly to functions rather than stored in another type.
type Context struct {
	context context.Context
	expired *unsafe.Pointer // pointer to unsafe.Pointer to expiry error
	Logger  *kitelog.Logger
}

// waitExpiry blocks until the underlying context.Context is done, then sets the expired flag
func (ctx Context) waitExpiry() {
	stdctx := ctx.Context()
	if done := stdctx.Done(); done != nil {
		<-done
		err := stdctx.Err()
		atomic.StorePointer(ctx.expired, unsafe.Pointer(&err))
	}
}

// withContext sets the expired flag asynchronously when std is done
func (ctx Context) withContext(std context.Context) Context {
	ctx.context = std
	ctx.expired = new(unsafe.Pointer)
	go ctx.waitExpiry()
	return ctx
}

// Background returns a context that doesn't expire
func Background() Context {
	return Context{
		Logger: kitelog.Basic,
	}
}

// TODO returns a context that doesn't expire
func TODO() Context {
	return Background()
}

// WithLogger returns a new Context with the provided kitelog.Logger set
func (ctx Context) WithLogger(l *kitelog.Logger) Context {
	ctx.Logger = l
	return ctx
}

// Context returns a context.Context for use with packages that don't support kitectx
func (ctx Context) Context() context.Context {
	if ctx.context == nil {
		return context.Background()
	}
	return ctx.context
}

// IsDeadlineExceeded checks if the error is a context expired error
func IsDeadlineExceeded(err error) bool {
	switch err {
	case context.DeadlineExceeded, ContextExpiredError{context.DeadlineExceeded}:
		return true
	}
	return false
}

// IsCallLimitExceeded checks if the error reports an exhausted call budget
func IsCallLimitExceeded(err error) bool {
	switch err {
	case ErrCallLimit, ContextExpiredError{ErrCallLimit}:
		return true
	}
	return false
}
