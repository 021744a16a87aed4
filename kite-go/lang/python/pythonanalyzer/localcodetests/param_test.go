package localcodetests

import "testing"

func TestParamTypes(t *testing.T) {
	src := `
def foo(a, b, c):
	out1 = a
	out2 = b
	out3 = c

foo(1, "xyz", 0.5)
`
	assertResolveOpts(t, opts{
		src:     src,
		srcpath: "/code/src.py",
		expected: map[string]string{
			"out1": "instanceof builtins.int",
			"out2": "instanceof builtins.str",
			"out3": "instanceof builtins.float",
		},
	})
}

func TestParamKeywordsAndDefaults(t *testing.T) {
	src := `
def foo(a, b=1.5, *args, **kwargs):
	return a, b, args, kwargs

out = foo(c=3, a="x")
first, second, rest, extra = out
`
	assertResolveOpts(t, opts{
		src: src,
		expected: map[string]string{
			"out":    "instanceof builtins.tuple",
			"first":  "instanceof builtins.str",
			"second": "instanceof builtins.float",
			"rest":   "instanceof builtins.tuple",
			"extra":  "instanceof builtins.dict",
		},
	})
}

func TestParamsFromSeveralCallSites(t *testing.T) {
	src := `
def ident(x):
	out = x
	return x

ident(1)
ident("s")
`
	assertResolveOpts(t, opts{
		src: src,
		expected: map[string]string{
			"out": "instanceof builtins.int | instanceof builtins.str",
		},
	})
}
