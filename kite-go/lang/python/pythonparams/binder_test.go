package pythonparams_test

import (
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonanalyzer"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonenv"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValues(t *testing.T, src string, expected map[string]string) {
	cfg := pythonanalyzer.DefaultConfig()
	cfg.SysPath = []string{"/code"}
	session, err := pythonanalyzer.NewSession(cfg, pythonenv.MapFileSystem{"/code/main.py": src}, nil)
	require.NoError(t, err)
	mod, err := session.Load(kitectx.Background(), "/code/main.py")
	require.NoError(t, err)

	for name, want := range expected {
		values := session.Evaluator().InferName(kitectx.Background(), mod, name)
		assert.Equal(t, want, pythonanalyzer.SetString(values), "values of %s", name)
	}
}

func TestBindPositionalAndDefaults(t *testing.T) {
	src := `
def f(a, b=2, *args, **kwargs):
    return a, b, args, kwargs

a1, b1, args1, kw1 = f(1)
a2, b2, args2, kw2 = f(1, "s", 1.5, None, extra=1)
x2, y2 = args2
z2 = kw2["extra"]
`
	assertValues(t, src, map[string]string{
		"a1":    "instanceof builtins.int",
		"b1":    "instanceof builtins.int",
		"args1": "instanceof builtins.tuple",
		"kw1":   "instanceof builtins.dict",
		"b2":    "instanceof builtins.str",
		"x2":    "instanceof builtins.float",
		"y2":    "instanceof builtins.NoneType",
		"z2":    "instanceof builtins.int",
	})
}

func TestBindKeywords(t *testing.T) {
	src := `
def f(a, *, key=None):
    return key

def g(a, b):
    return b

k1 = f(1, key="s")
k2 = f(1, 2)
k3 = g(b=1.5, a=1)
`
	assertValues(t, src, map[string]string{
		"k1": "instanceof builtins.str",
		"k2": "instanceof builtins.NoneType",
		"k3": "instanceof builtins.float",
	})
}

func TestBindStarArguments(t *testing.T) {
	src := `
def f(a, b):
    return b

pair = (1, "s")
mapping = {"a": 1, "b": 1.5}
s1 = f(*pair)
s2 = f(**mapping)
`
	assertValues(t, src, map[string]string{
		"s1": "instanceof builtins.str",
		"s2": "instanceof builtins.float",
	})
}

func TestBindReceiver(t *testing.T) {
	src := `
class A(object):
    def me(self):
        return self

    @classmethod
    def cls(klass):
        return klass

a = A()
m = a.me()
c = a.cls()
`
	assertValues(t, src, map[string]string{
		"m": "instanceof main.A",
		"c": "main.A",
	})
}

func TestSearchParams(t *testing.T) {
	src := `
class A(object):
    def method(self, value, flag=None):
        return value

a = A()
a.method(1)
a.method("s", flag=True)
`
	cfg := pythonanalyzer.DefaultConfig()
	cfg.SysPath = []string{"/code"}
	session, err := pythonanalyzer.NewSession(cfg, pythonenv.MapFileSystem{"/code/main.py": src}, nil)
	require.NoError(t, err)
	mod, err := session.Load(kitectx.Background(), "/code/main.py")
	require.NoError(t, err)

	class, ok := mod.Module().Body[0].(*pythonast.ClassDefStmt)
	require.True(t, ok)
	method, ok := class.Body[0].(*pythonast.FunctionDefStmt)
	require.True(t, ok)

	for name, want := range map[string]string{
		"self":  "instanceof main.A",
		"value": "instanceof builtins.int | instanceof builtins.str",
		"flag":  "instanceof builtins.NoneType | instanceof builtins.bool",
	} {
		var param *pythonast.NameExpr
		for _, p := range method.Parameters {
			if p.Name.Ident.Literal == name {
				param = p.Name
			}
		}
		require.NotNil(t, param, "no parameter %s", name)
		values := session.Infer(kitectx.Background(), mod, param)
		assert.Equal(t, want, pythonanalyzer.SetString(values), "values of %s", name)
	}
}
