package pythonhints_test

import (
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonanalyzer"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonenv"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnTypes(t *testing.T) {
	src := `
class Result(object):
    pass

def annotated() -> Result:
    pass

def quoted() -> "Result":
    pass

def documented():
    """:rtype: Result or None"""

def numpy():
    """Compute.

    Returns
    -------
    float
    """

a = annotated()
b = quoted()
c = documented()
d = numpy()
`
	cfg := pythonanalyzer.DefaultConfig()
	cfg.SysPath = []string{"/code"}
	session, err := pythonanalyzer.NewSession(cfg, pythonenv.MapFileSystem{"/code/main.py": src}, nil)
	require.NoError(t, err)
	mod, err := session.Load(kitectx.Background(), "/code/main.py")
	require.NoError(t, err)

	for name, want := range map[string]string{
		"a": "instanceof main.Result",
		"b": "instanceof main.Result",
		"c": "instanceof builtins.NoneType | instanceof main.Result",
		"d": "instanceof builtins.float",
	} {
		values := session.Evaluator().InferName(kitectx.Background(), mod, name)
		assert.Equal(t, want, pythonanalyzer.SetString(values), "values of %s", name)
	}
}
