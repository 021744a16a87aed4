package lazy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadError(t *testing.T) {
	var loadCount int
	loadErr := fmt.Errorf("some load error")

	loader := NewLoader(func() error {
		loadCount++
		return loadErr
	}, nil)

	require.Equal(t, loadErr, loader.LoadAndLock())
	require.Equal(t, loadErr, loader.LoadAndLock())
	require.Equal(t, 1, loadCount)

	loader.Unload()
	require.Equal(t, loadErr, loader.Load())
	require.Equal(t, 2, loadCount)
}

func TestLoadOnce(t *testing.T) {
	var loaded, unloaded int
	loader := NewLoader(func() error {
		loaded++
		return nil
	}, func() {
		unloaded++
	})

	require.NoError(t, loader.LoadAndLock())
	loader.Unlock()
	require.NoError(t, loader.Load())
	require.Equal(t, 1, loaded)

	loader.Unload()
	require.Equal(t, 1, unloaded)
	require.NoError(t, loader.Load())
	require.Equal(t, 2, loaded)
}
