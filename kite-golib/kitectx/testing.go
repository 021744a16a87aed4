package kitectx

import (
	"testing"
)

// WaitExpiry blocks until ctx is expired. Expiry is only eventually consistent,
// so tests use this instead of relying on a cancel taking effect immediately.
func (ctx Context) WaitExpiry(_ testing.TB) {
	ctx.waitExpiry()
}
