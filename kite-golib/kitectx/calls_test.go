package kitectx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recurse(ctx CallContext, n int) int {
	ctx.CheckAbort()
	if n == 0 {
		return ctx.Depth()
	}
	return recurse(ctx.Call(), n-1)
}

func TestWithCallLimit(t *testing.T) {
	var depth int
	err := Background().WithCallLimit(10, func(ctx CallContext) error {
		depth = recurse(ctx, 5)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, depth)
}

func TestWithCallLimit_Exceeded(t *testing.T) {
	err := Background().WithCallLimit(10, func(ctx CallContext) error {
		recurse(ctx, 100)
		return nil
	})
	require.Error(t, err)
	assert.True(t, IsCallLimitExceeded(err))
}

func TestWithCallLimit_Unlimited(t *testing.T) {
	err := Background().WithCallLimit(0, func(ctx CallContext) error {
		recurse(ctx, 1000)
		return nil
	})
	require.NoError(t, err)
}

func TestAtCallLimit(t *testing.T) {
	Background().WithCallLimit(2, func(ctx CallContext) error {
		assert.False(t, ctx.AtCallLimit())
		assert.False(t, ctx.Call().AtCallLimit())
		assert.True(t, ctx.Call().Call().AtCallLimit())
		return nil
	})
}
