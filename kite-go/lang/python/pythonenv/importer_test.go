package pythonenv_test

import (
	"testing"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythoncompiled"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonenv"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var project = pythonenv.MapFileSystem{
	"/src/app/__init__.py":     "",
	"/src/app/main.py":         "",
	"/src/app/util.py":         "",
	"/src/app/sub/__init__.py": "",
	"/src/app/sub/deep.py":     "",
	"/src/app/data/readme.txt": "",
	"/src/nsroot/portion.py":   "",
	"/lib/nsroot/other.py":     "",
	"/lib/shadowed.py":         "",
	"/src/app/shadowed.py":     "",
	"/lib/legacy/__init__.py":  "",
}

func newImporter(t *testing.T) (*pythonenv.Importer, *pythoneval.Evaluator) {
	importer, err := pythonenv.NewImporter(project, []string{"/src", "/lib/"})
	require.NoError(t, err)
	e := pythoneval.NewEvaluator(pythoneval.Collaborators{
		Importer:  importer,
		NewBridge: pythoncompiled.NewBridge,
	}, pythoneval.Options{})
	return importer, e
}

func follow(t *testing.T, importer *pythonenv.Importer, from *pythoneval.ModuleContext, level int, names ...string) *pythoneval.ModuleContext {
	res := importer.Follow(kitectx.CallContext{Context: kitectx.Background()}, from, names, level)
	if len(res) == 0 {
		return nil
	}
	require.Len(t, res, 1)
	m, ok := res[0].(*pythoneval.ModuleContext)
	require.True(t, ok)
	return m
}

func TestModuleName(t *testing.T) {
	importer, _ := newImporter(t)
	assert.Equal(t, []string{"/src", "/lib"}, importer.SysPath())
	assert.Equal(t, "app.main", importer.ModuleName("/src/app/main.py"))
	assert.Equal(t, "app", importer.ModuleName("/src/app/__init__.py"))
	assert.Equal(t, "legacy", importer.ModuleName("/lib/legacy/__init__.py"))
	assert.Equal(t, "", importer.ModuleName("/elsewhere/x.py"))
}

func TestSubModules(t *testing.T) {
	importer, _ := newImporter(t)
	assert.Equal(t, []string{"main", "shadowed", "sub", "util"}, importer.SubModules("/src/app"))
	// served from the listing cache
	assert.Equal(t, []string{"main", "shadowed", "sub", "util"}, importer.SubModules("/src/app"))
	assert.Nil(t, importer.SubModules("/missing"))
}

func TestFollowAbsolute(t *testing.T) {
	importer, e := newImporter(t)
	main, err := importer.Load(kitectx.Background(), e, "/src/app/main.py")
	require.NoError(t, err)
	assert.Equal(t, "app.main", main.Name())

	deep := follow(t, importer, main, 0, "app", "sub", "deep")
	require.NotNil(t, deep)
	assert.Equal(t, "app.sub.deep", deep.Name())
	assert.True(t, e.ModuleByName("app.sub") != nil)

	// the directory of the importing file comes before the sys path
	shadowed := follow(t, importer, main, 0, "shadowed")
	require.NotNil(t, shadowed)
	p, err := shadowed.FilePath()
	require.NoError(t, err)
	assert.Equal(t, "/src/app/shadowed.py", p)

	assert.Nil(t, follow(t, importer, main, 0, "missing"))
	assert.Nil(t, follow(t, importer, main, 0, "app", "util", "nothing"))

	again, err := importer.Load(kitectx.Background(), e, "/src/app/sub/deep.py")
	require.NoError(t, err)
	assert.True(t, again == deep)
}

func TestFollowRelative(t *testing.T) {
	importer, e := newImporter(t)
	deep, err := importer.Load(kitectx.Background(), e, "/src/app/sub/deep.py")
	require.NoError(t, err)

	pkg := follow(t, importer, deep, 1)
	require.NotNil(t, pkg)
	assert.Equal(t, "app.sub", pkg.Name())
	assert.True(t, pkg.IsPackage())

	util := follow(t, importer, deep, 2, "util")
	require.NotNil(t, util)
	assert.Equal(t, "app.util", util.Name())

	top := follow(t, importer, deep, 2)
	require.NotNil(t, top)
	assert.Equal(t, "app", top.Name())
}

func TestFollowNamespacePackage(t *testing.T) {
	importer, e := newImporter(t)
	main, err := importer.Load(kitectx.Background(), e, "/src/app/main.py")
	require.NoError(t, err)

	ns := follow(t, importer, main, 0, "nsroot")
	require.NotNil(t, ns)
	assert.True(t, ns.IsPackage())
	dirs, err := ns.SearchPath(kitectx.CallContext{Context: kitectx.Background()})
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/nsroot", "/lib/nsroot"}, dirs)

	other := follow(t, importer, main, 0, "nsroot", "other")
	require.NotNil(t, other)
	assert.Equal(t, "nsroot.other", other.Name())
}

func TestLoadMissingFile(t *testing.T) {
	importer, e := newImporter(t)
	_, err := importer.Load(kitectx.Background(), e, "/src/app/nothere.py")
	assert.Error(t, err)
}
