package pythonenv

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFileSystem(t *testing.T) {
	fs := MapFileSystem{
		"/root/a.py":            "a = 1",
		"/root/pkg/__init__.py": "",
		"/root/pkg/b.py":        "b = 1",
	}

	buf, err := fs.ReadFile("/root/./a.py")
	require.NoError(t, err)
	assert.Equal(t, "a = 1", string(buf))

	_, err = fs.ReadFile("/root/missing.py")
	assert.Error(t, err)

	entries, err := fs.ReadDir("/root/")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "a.py"}, {Name: "pkg", IsDir: true}}, entries)

	_, err = fs.ReadDir("/nowhere")
	assert.Error(t, err)

	assert.True(t, fs.IsDir("/root/pkg"))
	assert.True(t, fs.IsDir("/"))
	assert.False(t, fs.IsDir("/root/a.py"))
	assert.True(t, fs.IsFile("/root/pkg/b.py"))
	assert.False(t, fs.IsFile("/root/pkg"))
}

func TestOSFileSystem(t *testing.T) {
	dir, err := ioutil.TempDir("", "pythonenv")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "pkg"), 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "mod.py"), []byte("x = 1\n"), 0644))

	var fs OSFileSystem
	buf, err := fs.ReadFile(filepath.Join(dir, "mod.py"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(buf))

	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Entry{{Name: "mod.py"}, {Name: "pkg", IsDir: true}}, entries)

	assert.True(t, fs.IsDir(filepath.Join(dir, "pkg")))
	assert.False(t, fs.IsFile(filepath.Join(dir, "pkg")))
	assert.True(t, fs.IsFile(filepath.Join(dir, "mod.py")))

	_, err = fs.ReadFile(filepath.Join(dir, "missing.py"))
	assert.Error(t, err)
}
