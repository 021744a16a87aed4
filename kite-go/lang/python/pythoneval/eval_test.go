package pythoneval_test

import (
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonanalyzer"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoncompiled"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonenv"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonflow"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonhints"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonparams"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingExtractor records the executions whose return types were requested
type countingExtractor struct {
	calls map[string]int
}

func (c *countingExtractor) ReturnTypes(ctx kitectx.CallContext, exec *pythoneval.FunctionExecutionContext) pythoneval.Set {
	c.calls[exec.Function().Name()]++
	return nil
}

type fixture struct {
	t    *testing.T
	eval *pythoneval.Evaluator
	mod  *pythoneval.ModuleContext
}

func newFixture(t *testing.T, src string, files map[string]string) *fixture {
	return newFixtureWith(t, src, files, nil)
}

func newFixtureWith(t *testing.T, src string, files map[string]string, docs pythoneval.ReturnTypeExtractor) *fixture {
	return newFixtureOpts(t, src, files, docs, pythoneval.Options{})
}

func newFixtureOpts(t *testing.T, src string, files map[string]string, docs pythoneval.ReturnTypeExtractor, opts pythoneval.Options) *fixture {
	fs := pythonenv.MapFileSystem{"/code/main.py": src}
	for p, buf := range files {
		fs[p] = buf
	}
	importer, err := pythonenv.NewImporter(fs, []string{"/code"})
	require.NoError(t, err)

	eval := pythoneval.NewEvaluator(pythoneval.Collaborators{
		Importer:        importer,
		NewBridge:       pythoncompiled.NewBridge,
		DocstringTypes:  docs,
		AnnotationTypes: pythonhints.AnnotationTypes{},
		Reachability:    pythonflow.NewChecker(),
		Params:          pythonparams.NewBinder(),
	}, opts)

	mod, err := importer.Load(kitectx.Background(), eval, "/code/main.py")
	require.NoError(t, err)
	return &fixture{t: t, eval: eval, mod: mod}
}

func (f *fixture) infer(name string) pythoneval.Set {
	return f.eval.InferName(kitectx.Background(), f.mod, name)
}

func (f *fixture) one(name string) pythoneval.Context {
	values := f.infer(name)
	require.Len(f.t, values, 1, "values of %s: %s", name, pythoneval.Describe(values))
	return values[0]
}

func (f *fixture) assertInfer(expected map[string]string) {
	for name, want := range expected {
		assert.Equal(f.t, want, pythonanalyzer.SetString(f.infer(name)), "values of %s", name)
	}
}

func callCtx() kitectx.CallContext {
	return kitectx.CallContext{Context: kitectx.Background()}
}

func TestDiamondMRO(t *testing.T) {
	src := `
class A(object):
    x = 1

class B(A):
    pass

class C(A):
    x = "s"

class D(B, C):
    pass

out = D.x
`
	f := newFixture(t, src, nil)

	d, ok := f.one("D").(*pythoneval.ClassContext)
	require.True(t, ok)
	mro, err := d.MRO(callCtx())
	require.NoError(t, err)

	var names []string
	for _, c := range mro {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"D", "B", "A", "object", "C"}, names)

	f.assertInfer(map[string]string{"out": "instanceof builtins.int"})
}

func TestSelfAttributeShadowsClassAttribute(t *testing.T) {
	src := `
class A(object):
    attr = 1

    def __init__(self):
        self.attr = "s"

    def other(self):
        return self.attr

a = A()
direct = a.attr
through = a.other()
onclass = A.attr
`
	f := newFixture(t, src, nil)
	f.assertInfer(map[string]string{
		"direct":  "instanceof builtins.str",
		"through": "instanceof builtins.str",
		"onclass": "instanceof builtins.int",
	})
}

func TestExecutionsAreMemoized(t *testing.T) {
	src := `
def f(x):
    return x

a = f(1)
b = f(1)
c = f("s")
`
	docs := &countingExtractor{calls: make(map[string]int)}
	f := newFixtureWith(t, src, nil, docs)
	f.assertInfer(map[string]string{
		"a": "instanceof builtins.int",
		"b": "instanceof builtins.int",
		"c": "instanceof builtins.str",
	})
	assert.Equal(t, 2, docs.calls["f"])

	f.infer("a")
	f.infer("c")
	assert.Equal(t, 2, docs.calls["f"])
}

func TestRecursionTerminates(t *testing.T) {
	src := `
def forever(n):
    return forever(n)

def ping():
    return pong()

def pong():
    return ping()

def fact(n):
    if n < 2:
        return 1
    return n * fact(n - 1)

def nest(x):
    return nest([x])

x = x
a = forever(1)
b = ping()
c = fact(int())
d = nest(1)
`
	f := newFixture(t, src, nil)
	f.assertInfer(map[string]string{
		"x": "unknown",
		"a": "unknown",
		"b": "unknown",
		"c": "instanceof builtins.int",
		"d": "unknown",
	})
}

func selfName(t *testing.T, f *fixture, inst pythoneval.Context, attr string) *pythoneval.SelfName {
	for _, n := range f.eval.Names(kitectx.Background(), inst, pythoneval.FilterOptions{}) {
		if s, ok := n.(*pythoneval.SelfName); ok && s.String() == attr {
			return s
		}
	}
	require.FailNow(t, "no receiver attribute "+attr)
	return nil
}

func TestInstanceElements(t *testing.T) {
	src := `
class A(object):
    def __init__(self):
        self.attr = 1

a = A()
`
	f := newFixtureOpts(t, src, nil, nil, pythoneval.Options{WrapInstanceElements: true})
	inst, ok := f.one("a").(*pythoneval.Instance)
	require.True(t, ok)

	el, ok := selfName(t, f, inst, "attr").Node().(*pythoneval.InstanceElement)
	require.True(t, ok)
	assert.True(t, el.Instance == inst)
	assert.Equal(t, "attr", el.Name())
	_, ok = el.Node.(*pythonast.AttributeExpr)
	assert.True(t, ok)

	parent, ok := el.Parent().(*pythoneval.InstanceElement)
	require.True(t, ok)
	assert.True(t, parent.Instance == inst)
	assert.Equal(t, "", parent.Name())
	_, ok = parent.Node.(*pythonast.AssignStmt)
	assert.True(t, ok)

	kids := parent.Children()
	require.Len(t, kids, 2)
	target, ok := kids[0].(*pythoneval.InstanceElement)
	require.True(t, ok)
	assert.True(t, target.Node == el.Node)
}

func TestInstanceElementsDisabled(t *testing.T) {
	src := `
class A(object):
    def __init__(self):
        self.attr = 1

a = A()
`
	f := newFixture(t, src, nil)
	node := selfName(t, f, f.one("a"), "attr").Node()
	_, ok := node.(*pythonast.AttributeExpr)
	assert.True(t, ok)
}

func TestLiteralsAndClassesAreInterned(t *testing.T) {
	src := `
class A(object):
    pass

a = 1
b = 1
c = "1"
`
	f := newFixture(t, src, nil)
	assert.True(t, f.one("a") == f.one("b"))
	assert.False(t, f.one("a") == f.one("c"))
	assert.True(t, f.one("A") == f.one("A"))

	lit, ok := f.one("a").(*pythoneval.Instance).Literal()
	require.True(t, ok)
	assert.Equal(t, int64(1), lit)
}

func TestAbortedConstructorRunsAgain(t *testing.T) {
	src := `
class A(object):
    def __init__(self, value):
        self.value = value

one = 1
`
	f := newFixture(t, src, nil)
	class := f.one("A")
	args := pythoneval.ValuesArguments{f.infer("one")}

	err := kitectx.Background().WithCancel(func(ctx kitectx.Context, cancel kitectx.CancelFunc) error {
		cancel()
		ctx.WaitExpiry(t)
		f.eval.Execute(ctx, class, args)
		return nil
	})
	require.Error(t, err)

	insts := f.eval.Execute(kitectx.Background(), class, args)
	require.Len(t, insts, 1)
	values := f.eval.Attr(kitectx.Background(), insts[0], "value")
	assert.Equal(t, "instanceof builtins.int", pythonanalyzer.SetString(values))
}

func TestTruth(t *testing.T) {
	src := `
zero = 0
one = 1
text = ""
empty = []
full = [1]
none = None
number = int()
either = 0 if cond else 1

class A:
    pass

obj = A()
`
	f := newFixture(t, src, nil)
	for name, want := range map[string]pythoneval.Truth{
		"zero":   pythoneval.TruthFalse,
		"one":    pythoneval.TruthTrue,
		"text":   pythoneval.TruthFalse,
		"empty":  pythoneval.TruthFalse,
		"full":   pythoneval.TruthTrue,
		"none":   pythoneval.TruthFalse,
		"number": pythoneval.TruthUnknown,
		"either": pythoneval.TruthUnknown,
		"obj":    pythoneval.TruthUnknown,
	} {
		assert.Equal(t, want, f.infer(name).Truth(), "truth of %s", name)
	}
	assert.Equal(t, pythoneval.TruthUnknown, pythoneval.Set(nil).Truth())
}

func TestReturnReachability(t *testing.T) {
	src := `
def f(flag):
    if flag:
        return 1
    if True:
        return "s"
    return 1.5

def g():
    if False:
        return 1
    elif 0:
        return "s"
    else:
        return 1.5

def h():
    while cond:
        return 1
    return "s"

def k():
    if True:
        return 1
    if False:
        return "s"
    return 1.5

a = f(unknown)
b = g()
c = h()
d = k()
`
	f := newFixture(t, src, nil)
	f.assertInfer(map[string]string{
		"a": "instanceof builtins.int | instanceof builtins.str",
		"b": "instanceof builtins.float",
		"c": "instanceof builtins.int | instanceof builtins.str",
		"d": "instanceof builtins.int",
	})
}

func TestOrderedYields(t *testing.T) {
	src := `
def simple():
    yield 1
    yield "s"

def looped():
    for k in [1.5, None]:
        yield k

def branched(flag):
    if flag:
        yield 1
    yield "s"

def delegating():
    yield from simple()

first, second = simple()
third, fourth = looped()
for v in branched(unknown):
    merged = v
fifth, sixth = delegating()
`
	f := newFixture(t, src, nil)
	f.assertInfer(map[string]string{
		"first":  "instanceof builtins.int",
		"second": "instanceof builtins.str",
		"third":  "instanceof builtins.float",
		"fourth": "instanceof builtins.NoneType",
		"merged": "instanceof builtins.int | instanceof builtins.str",
		"fifth":  "instanceof builtins.int",
		"sixth":  "instanceof builtins.str",
	})
}

func TestMergedYieldsStopAtReachable(t *testing.T) {
	src := `
def mixed():
    while cond:
        yield 1
    yield "s"
    yield 1.5

for m in mixed():
    merged = m
`
	f := newFixture(t, src, nil)
	f.assertInfer(map[string]string{
		"merged": "instanceof builtins.int | instanceof builtins.str",
	})
}

func TestSpecialMethods(t *testing.T) {
	src := `
class Desc(object):
    def __get__(self, obj, owner):
        return 1

class Callable(object):
    def __call__(self):
        return "s"

class Indexable(object):
    def __getitem__(self, i):
        return 1.5

class Iterable(object):
    def __iter__(self):
        yield None

class Holder(object):
    d = Desc()

described = Holder().d
called = Callable()()
indexed = Indexable()[0]
for item in Iterable():
    iterated = item
`
	f := newFixture(t, src, nil)
	f.assertInfer(map[string]string{
		"described": "instanceof builtins.int",
		"called":    "instanceof builtins.str",
		"indexed":   "instanceof builtins.float",
		"iterated":  "instanceof builtins.NoneType",
	})
}

func TestDecorators(t *testing.T) {
	src := `
def passthrough(fn):
    return fn

def replace(fn):
    def inner():
        return "s"
    return inner

@passthrough
def kept():
    return 1

@replace
def replaced():
    return 1

class A(object):
    @staticmethod
    def static():
        return 1.5

    @property
    def prop(self):
        return None

a = kept()
b = replaced()
c = A.static()
d = A().prop
`
	f := newFixture(t, src, nil)
	f.assertInfer(map[string]string{
		"a": "instanceof builtins.int",
		"b": "instanceof builtins.str",
		"c": "instanceof builtins.float",
		"d": "instanceof builtins.NoneType",
	})
}

func TestDecoratorReenteredForAnotherFunction(t *testing.T) {
	src := `
def call(fn):
    return fn()

@call
def one():
    return 1

@call
def two():
    return one
`
	f := newFixture(t, src, nil)
	f.assertInfer(map[string]string{
		"one": "instanceof builtins.int",
		"two": "instanceof builtins.int",
	})
}

func TestContainers(t *testing.T) {
	src := `
items = [1, "s"]
first = items[0]
last = items[-1]
mapping = {"k": 1.5}
value = mapping["k"]
for key in mapping:
    k = key
size = len(items)
[a, *rest] = items
`
	f := newFixture(t, src, nil)
	f.assertInfer(map[string]string{
		"first": "instanceof builtins.int",
		"last":  "instanceof builtins.str",
		"value": "instanceof builtins.float",
		"k":     "instanceof builtins.str",
		"size":  "instanceof builtins.int",
		"a":     "instanceof builtins.int",
		"rest":  "instanceof builtins.list",
	})
}

func TestImports(t *testing.T) {
	src := `
import pkg
import pkg.sub as alias
from lib import *
from pkg import sub

star = public()
hidden = _private
viaalias = alias.VALUE
name = pkg.__name__
nested = sub.VALUE
`
	f := newFixture(t, src, map[string]string{
		"/code/lib.py":          "def public():\n    return 1\n\ndef _private():\n    return 1\n",
		"/code/pkg/__init__.py": "",
		"/code/pkg/sub.py":      "VALUE = 1.5\n",
	})
	f.assertInfer(map[string]string{
		"star":     "instanceof builtins.int",
		"hidden":   "unknown",
		"viaalias": "instanceof builtins.float",
		"name":     "instanceof builtins.str",
		"nested":   "instanceof builtins.float",
		"pkg":      "pkg",
		"alias":    "pkg.sub",
	})
}

func TestNamespacePackagePath(t *testing.T) {
	src := `
import ns.inner
value = ns.inner.VALUE
`
	f := newFixture(t, src, map[string]string{
		"/code/ns/inner.py": "VALUE = 1\n",
	})
	f.assertInfer(map[string]string{"value": "instanceof builtins.int"})

	ns, ok := f.one("ns").(*pythoneval.ModuleContext)
	require.True(t, ok)
	assert.Equal(t, "ns", ns.Name())
	assert.True(t, ns.IsPackage())
	dirs, err := ns.SearchPath(callCtx())
	require.NoError(t, err)
	assert.Equal(t, []string{"/code/ns"}, dirs)
}

func TestModuleAttributes(t *testing.T) {
	src := `
import pkg
file = __file__
doc = __doc__
package = __package__
`
	f := newFixture(t, src, map[string]string{
		"/code/pkg/__init__.py":       "",
		"/code/pkg/sub.py":            "VALUE = 1\n",
		"/code/pkg/inner/__init__.py": "",
		"/code/pkg/data/readme.txt":   "",
	})
	f.assertInfer(map[string]string{
		"file":    "instanceof builtins.str",
		"doc":     "instanceof builtins.str",
		"package": "instanceof builtins.str",
	})

	pkg, ok := f.one("pkg").(*pythoneval.ModuleContext)
	require.True(t, ok)
	p, err := pkg.FilePath()
	require.NoError(t, err)
	assert.Equal(t, "/code/pkg/__init__.py", p)
	name, err := pkg.PackageName()
	require.NoError(t, err)
	assert.Equal(t, "pkg", name)

	names := make(map[string]bool)
	for _, n := range f.eval.Names(kitectx.Background(), pkg, pythoneval.FilterOptions{SearchGlobal: true}) {
		names[n.String()] = true
	}
	for _, want := range []string{"__file__", "__name__", "sub", "inner"} {
		assert.True(t, names[want], "missing %s", want)
	}
	assert.False(t, names["data"])

	_, err = f.mod.SearchPath(callCtx())
	assert.Equal(t, pythoneval.ErrUnsupported, err)
}

func TestDeclaredNamespacePackage(t *testing.T) {
	fs := pythonenv.MapFileSystem{
		"/code/main.py":              "import legacy\nvalue = legacy.extra.VALUE\n",
		"/code/legacy/__init__.py":   "__import__('pkg_resources').declare_namespace(__name__)\n",
		"/vendor/legacy/__init__.py": "",
		"/vendor/legacy/extra.py":    "VALUE = 'x'\n",
	}
	importer, err := pythonenv.NewImporter(fs, []string{"/code", "/vendor"})
	require.NoError(t, err)
	eval := pythoneval.NewEvaluator(pythoneval.Collaborators{
		Importer:        importer,
		NewBridge:       pythoncompiled.NewBridge,
		AnnotationTypes: pythonhints.AnnotationTypes{},
		Reachability:    pythonflow.NewChecker(),
		Params:          pythonparams.NewBinder(),
	}, pythoneval.Options{})
	mod, err := importer.Load(kitectx.Background(), eval, "/code/main.py")
	require.NoError(t, err)

	f := &fixture{t: t, eval: eval, mod: mod}
	f.assertInfer(map[string]string{"value": "instanceof builtins.str"})

	legacy, ok := f.one("legacy").(*pythoneval.ModuleContext)
	require.True(t, ok)
	dirs, err := legacy.SearchPath(callCtx())
	require.NoError(t, err)
	assert.Equal(t, []string{"/code/legacy", "/vendor/legacy"}, dirs)
}

func TestDynamicParams(t *testing.T) {
	src := `
def target(a, b=None):
    return a

target(1)
target("s", b=2)
`
	f := newFixture(t, src, nil)

	def, ok := f.mod.Module().Body[0].(*pythonast.FunctionDefStmt)
	require.True(t, ok)
	ret, ok := def.Body[0].(*pythonast.ReturnStmt)
	require.True(t, ok)

	owner := f.eval.ContextOf(f.mod, ret.Value)
	exec, ok := owner.(*pythoneval.FunctionExecutionContext)
	require.True(t, ok)
	assert.True(t, exec.IsAnonymous())

	values := f.eval.Infer(kitectx.Background(), owner, ret.Value)
	assert.Equal(t, "instanceof builtins.int | instanceof builtins.str", pythonanalyzer.SetString(values))
}
