package pythonparser

import (
	"testing"

	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCache(t *testing.T) {
	PurgeParseCache()
	defer PurgeParseCache()

	src := []byte("def f():\n    return 1\n")
	cached := Options{ErrorMode: FailFast}

	first, err := Parse(kitectx.Background(), src, cached)
	require.NoError(t, err)
	second, err := Parse(kitectx.Background(), src, cached)
	require.NoError(t, err)
	assert.True(t, first == second, "expected the cached module to be returned")

	recovered, err := Parse(kitectx.Background(), src, Options{ErrorMode: Recover})
	require.NoError(t, err)
	assert.False(t, first == recovered, "error modes are cached separately")

	uncached, err := Parse(kitectx.Background(), src, Options{NoCache: true})
	require.NoError(t, err)
	assert.False(t, first == uncached)
}
