package localcodetests

import "testing"

// TestClassDef checks that attributes set by an inherited constructor reach other methods
func TestClassDef(t *testing.T) {
	classDef := `
class Base(object):
    def __init__(self, value):
        self.value = value

    def get(self):
        return self.value

class Child(Base):
    pass

c = Child("x")
out = c.get()
`

	assertResolveOpts(t, opts{
		src:     classDef,
		srcpath: "/code/classDef.py",
		expected: map[string]string{
			"out":  "instanceof builtins.str",
			"c":    "instanceof classDef.Child",
			"Base": "classDef.Base",
		},
	})
}

func TestClassAttributeShadowedBySelf(t *testing.T) {
	src := `
class Config(object):
    name = None

    def __init__(self):
        self.name = "default"

out = Config().name
`
	assertResolveOpts(t, opts{
		src: src,
		expected: map[string]string{
			"out": "instanceof builtins.str",
		},
	})
}

func TestGeneratorIteration(t *testing.T) {
	src := `
def numbers():
    yield 1
    yield 2

for n in numbers():
    out = n
`
	assertResolveOpts(t, opts{
		src: src,
		expected: map[string]string{
			"out":       "instanceof builtins.int",
			"numbers()": "instanceof builtins.generator",
		},
	})
}

func TestDocstringReturnType(t *testing.T) {
	src := `
def load():
    """Loads the thing.

    :rtype: str
    """

out = load()
`
	assertResolveOpts(t, opts{
		src: src,
		expected: map[string]string{
			"out": "instanceof builtins.str",
		},
	})
}
