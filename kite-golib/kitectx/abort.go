package kitectx

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

type checkAbortPanic struct {
	err error
}

func abort(err error) {
	panic(checkAbortPanic{err})
}

func recoverAbort(parentCheck func(), err *error) {
	if v := recover(); v != nil {
		switch v := v.(type) {
		case checkAbortPanic:
			if parentCheck != nil {
				parentCheck() // keep unwinding if the parent is expired as well
			}
			*err = ContextExpiredError{v.err}

			if globalMetrics != nil {
				globalMetrics.hit(v.err)
			}
		default:
			panic(v)
		}
	}
}

// ContextExpiredError is returned when a computation is aborted
type ContextExpiredError struct {
	Err error
}

// Error implements error
func (c ContextExpiredError) Error() string {
	return fmt.Sprintf("kitectx.Context expired: %s", c.Err)
}

// CheckAbort aborts if ctx is expired
func (ctx Context) CheckAbort() {
	// NOTE: duplicated in CallContext.CheckAbort so that both stay inlinable
	if ctx.expired != nil {
		errPtr := (*error)(atomic.LoadPointer(ctx.expired))
		if errPtr != nil {
			abort(*errPtr)
		}
	}
}

// FromContext calls f with a Context that expires when std expires.
// std should eventually expire, otherwise a goroutine is leaked.
func FromContext(std context.Context, f func(Context) error) (err error) {
	if std == nil {
		panic("kitectx.FromContext called on nil context.Context")
	}

	if err := std.Err(); err != nil {
		return ContextExpiredError{err}
	}

	defer recoverAbort(nil, &err)
	ctx := Background().withContext(std)
	err = f(ctx)
	return
}

// WithTimeout is WithDeadline called on time.Now().Add(timeout)
func (ctx Context) WithTimeout(timeout time.Duration, f func(Context) error) error {
	return ctx.WithDeadline(time.Now().Add(timeout), f)
}

// WithDeadline calls f with a Context that expires at deadline.
func (ctx Context) WithDeadline(deadline time.Time, f func(Context) error) (err error) {
	defer recoverAbort(ctx.CheckAbort, &err)

	newStd, cancel := context.WithDeadline(ctx.Context(), deadline)
	defer cancel()
	if err := newStd.Err(); err != nil {
		return ContextExpiredError{err}
	}

	err = f(ctx.withContext(newStd))
	return
}

// CancelFunc = context.CancelFunc
type CancelFunc = context.CancelFunc

// WithCancel calls f with a Context that expires once cancel is called.
func (ctx Context) WithCancel(f func(Context, CancelFunc) error) (err error) {
	defer recoverAbort(ctx.CheckAbort, &err)

	newStd, cancel := context.WithCancel(ctx.Context())
	defer cancel()

	err = f(ctx.withContext(newStd), cancel)
	return
}
