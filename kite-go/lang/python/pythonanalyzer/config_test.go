package pythonanalyzer

import (
	"os"
	"strings"
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	doc := `
sys_path:
  - /src
  - /lib/site-packages
options:
  max_recursion_depth: 100
  trace: true
no_docstrings: true
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)

	expected := DefaultConfig()
	expected.SysPath = []string{"/src", "/lib/site-packages"}
	expected.Options.MaxRecursionDepth = 100
	expected.Options.Trace = true
	expected.NoDocstrings = true
	assert.Empty(t, pretty.Diff(expected, cfg))
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, pythoneval.DefaultOptions, cfg.Options)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("options:\n  max_result_size: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(strings.NewReader("sys_path: {"))
	assert.Error(t, err)
}

func TestConfigWithEnv(t *testing.T) {
	os.Setenv(sysPathEnv, "/a"+string(os.PathListSeparator)+"/b")
	os.Setenv(maxDepthEnv, "50")
	defer os.Unsetenv(sysPathEnv)
	defer os.Unsetenv(maxDepthEnv)

	cfg, err := DefaultConfig().WithEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, cfg.SysPath)
	assert.Equal(t, 50, cfg.Options.MaxRecursionDepth)

	os.Setenv(maxDepthEnv, "deep")
	_, err = DefaultConfig().WithEnv()
	assert.Error(t, err)
}
