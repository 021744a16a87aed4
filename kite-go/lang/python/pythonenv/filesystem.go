package pythonenv

import (
	"io/ioutil"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/kiteco/pyeval/kite-golib/errors"
)

// Entry is one item of a directory listing
type Entry struct {
	Name  string
	IsDir bool
}

// FileSystem is the storage modules are imported from. Paths are slash separated and
// absolute.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(dir string) ([]Entry, error)
	IsDir(path string) bool
	IsFile(path string) bool
}

// OSFileSystem reads from the local disk
type OSFileSystem struct{}

// ReadFile implements FileSystem
func (OSFileSystem) ReadFile(p string) ([]byte, error) {
	buf, err := ioutil.ReadFile(p)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", p)
	}
	return buf, nil
}

// ReadDir implements FileSystem
func (OSFileSystem) ReadDir(dir string) ([]Entry, error) {
	infos, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "error listing %s", dir)
	}
	var out []Entry
	for _, info := range infos {
		out = append(out, Entry{Name: info.Name(), IsDir: info.IsDir()})
	}
	return out, nil
}

// IsDir implements FileSystem
func (OSFileSystem) IsDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// IsFile implements FileSystem
func (OSFileSystem) IsFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// MapFileSystem holds file contents by path. Directories exist implicitly.
type MapFileSystem map[string]string

// ReadFile implements FileSystem
func (m MapFileSystem) ReadFile(p string) ([]byte, error) {
	src, ok := m[path.Clean(p)]
	if !ok {
		return nil, errors.Errorf("no such file: %s", p)
	}
	return []byte(src), nil
}

// ReadDir implements FileSystem
func (m MapFileSystem) ReadDir(dir string) ([]Entry, error) {
	prefix := strings.TrimSuffix(path.Clean(dir), "/") + "/"
	seen := make(map[string]bool)
	var out []Entry
	for p := range m {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		name, isDir := rest, false
		if i := strings.Index(rest, "/"); i >= 0 {
			name, isDir = rest[:i], true
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Entry{Name: name, IsDir: isDir})
	}
	if len(out) == 0 {
		return nil, errors.Errorf("no such directory: %s", dir)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// IsDir implements FileSystem
func (m MapFileSystem) IsDir(p string) bool {
	prefix := strings.TrimSuffix(path.Clean(p), "/") + "/"
	for f := range m {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

// IsFile implements FileSystem
func (m MapFileSystem) IsFile(p string) bool {
	_, ok := m[path.Clean(p)]
	return ok
}
