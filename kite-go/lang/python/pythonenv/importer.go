// Package pythonenv finds and loads the modules named by import statements.
package pythonenv

import (
	"path"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonparser"
	"github.com/kiteco/pyeval/kite-golib/errors"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

const listingCacheSize = 1024

// Importer implements pythoneval.Importer over a FileSystem. Absolute imports are
// searched in the directories containing the importing file, innermost first, and then
// in the sys path.
type Importer struct {
	fs       FileSystem
	sysPath  []string
	listings *lru.Cache
}

// NewImporter creates an importer for the given import roots
func NewImporter(fs FileSystem, sysPath []string) (*Importer, error) {
	listings, err := lru.New(listingCacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating listing cache")
	}
	var roots []string
	for _, root := range sysPath {
		roots = append(roots, path.Clean(root))
	}
	return &Importer{fs: fs, sysPath: roots, listings: listings}, nil
}

// SysPath implements pythoneval.Importer
func (i *Importer) SysPath() []string { return i.sysPath }

// ReadFile implements pythoneval.Importer
func (i *Importer) ReadFile(p string) ([]byte, error) { return i.fs.ReadFile(p) }

// IsDir implements pythoneval.Importer
func (i *Importer) IsDir(p string) bool { return i.fs.IsDir(p) }

// SubModules implements pythoneval.Importer. Listings are cached.
func (i *Importer) SubModules(dir string) []string {
	if cached, ok := i.listings.Get(dir); ok {
		return cached.([]string)
	}
	entries, err := i.fs.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		switch {
		case entry.IsDir && i.fs.IsFile(path.Join(dir, entry.Name, "__init__.py")):
			names = append(names, entry.Name)
		case !entry.IsDir && strings.HasSuffix(entry.Name, ".py") && entry.Name != "__init__.py":
			names = append(names, strings.TrimSuffix(entry.Name, ".py"))
		}
	}
	sort.Strings(names)
	i.listings.Add(dir, names)
	return names
}

// Load returns the module for a source file, parsing it on first use. The dotted
// name is derived from the sys path root containing the file, if any.
func (i *Importer) Load(ctx kitectx.Context, e *pythoneval.Evaluator, srcpath string) (*pythoneval.ModuleContext, error) {
	srcpath = path.Clean(srcpath)
	if m := e.ModuleByPath(srcpath); m != nil {
		return m, nil
	}
	return i.load(ctx, e, srcpath, i.ModuleName(srcpath))
}

func (i *Importer) load(ctx kitectx.Context, e *pythoneval.Evaluator, srcpath, name string) (*pythoneval.ModuleContext, error) {
	if m := e.ModuleByPath(srcpath); m != nil {
		return m, nil
	}
	src, err := i.fs.ReadFile(srcpath)
	if err != nil {
		return nil, err
	}
	mod, err := pythonparser.Parse(ctx, src, pythonparser.Options{ErrorMode: pythonparser.Recover})
	if mod == nil {
		return nil, errors.Wrapf(err, "error parsing %s", srcpath)
	}
	if err != nil {
		e.Logger().Debugf("pythonenv: %s has syntax errors: %v", srcpath, err)
	}
	return e.ModuleContext(mod, name, srcpath), nil
}

// ModuleName is the dotted name of a file below a sys path root, or empty
func (i *Importer) ModuleName(srcpath string) string {
	for _, root := range i.sysPath {
		rel := strings.TrimPrefix(srcpath, root+"/")
		if rel == srcpath {
			continue
		}
		rel = strings.TrimSuffix(rel, ".py")
		rel = strings.TrimSuffix(rel, "/__init__")
		return strings.Replace(rel, "/", ".", -1)
	}
	return ""
}

// Follow implements pythoneval.Importer
func (i *Importer) Follow(ctx kitectx.CallContext, from *pythoneval.ModuleContext, names []string, level int) pythoneval.Set {
	e := from.Evaluator()
	var dirs []string
	var prefix string
	if level > 0 {
		dirs, prefix = i.relativeBase(ctx, from, level)
		if len(dirs) == 0 {
			return nil
		}
		if len(names) == 0 {
			if pkg := i.loadPackage(ctx, e, dirs, prefix); pkg != nil {
				return pythoneval.NewSet(pkg)
			}
			return nil
		}
	} else {
		if len(names) == 0 {
			return nil
		}
		dirs = i.absoluteRoots(from)
	}

	var current *pythoneval.ModuleContext
	for n, name := range names {
		dotted := name
		if prefix != "" {
			dotted = prefix + "." + name
		}
		current = i.find(ctx, e, dirs, name, dotted)
		if current == nil {
			return nil
		}
		if n == len(names)-1 {
			break
		}
		if !current.IsPackage() {
			return nil
		}
		searchPath, err := current.SearchPath(ctx)
		if err != nil {
			return nil
		}
		dirs, prefix = searchPath, dotted
	}
	return pythoneval.NewSet(current)
}

// relativeBase returns the directories `level` dots refer to from a module, and the
// dotted name of the package they form
func (i *Importer) relativeBase(ctx kitectx.CallContext, from *pythoneval.ModuleContext, level int) ([]string, string) {
	var dirs []string
	if from.IsPackage() {
		dirs, _ = from.SearchPath(ctx)
	} else if p, _ := from.FilePath(); p != "" {
		dirs = []string{path.Dir(p)}
	}
	pkg, _ := from.PackageName()
	for l := 1; l < level; l++ {
		var up []string
		for _, d := range dirs {
			up = append(up, path.Dir(d))
		}
		dirs = up
		if idx := strings.LastIndex(pkg, "."); idx >= 0 {
			pkg = pkg[:idx]
		} else {
			pkg = ""
		}
	}
	return dirs, pkg
}

// absoluteRoots lists the directories searched for a top level name: the ancestors of
// the importing file, innermost first, followed by the sys path
func (i *Importer) absoluteRoots(from *pythoneval.ModuleContext) []string {
	var roots []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	if p, _ := from.FilePath(); path.IsAbs(p) {
		for dir := path.Dir(p); ; dir = path.Dir(dir) {
			add(dir)
			if path.Dir(dir) == dir {
				break
			}
		}
	}
	for _, root := range i.sysPath {
		add(root)
	}
	return roots
}

// find resolves one name in a list of directories. A regular package or module in any
// directory wins over namespace package portions, which are merged.
func (i *Importer) find(ctx kitectx.CallContext, e *pythoneval.Evaluator, dirs []string, name, dotted string) *pythoneval.ModuleContext {
	var portions []string
	for _, dir := range dirs {
		pkgDir := path.Join(dir, name)
		if i.fs.IsFile(path.Join(pkgDir, "__init__.py")) {
			if m, err := i.load(ctx.Context, e, path.Join(pkgDir, "__init__.py"), dotted); err == nil {
				return m
			}
		}
		if i.fs.IsFile(pkgDir + ".py") {
			if m, err := i.load(ctx.Context, e, pkgDir+".py", dotted); err == nil {
				return m
			}
		}
		if i.fs.IsDir(pkgDir) {
			portions = append(portions, pkgDir)
		}
	}
	if len(portions) == 0 {
		return nil
	}
	return e.NamespaceModule(dotted, portions)
}

// loadPackage returns the package formed by dirs: the __init__.py of the first one
// that has it, or a namespace package
func (i *Importer) loadPackage(ctx kitectx.CallContext, e *pythoneval.Evaluator, dirs []string, name string) *pythoneval.ModuleContext {
	for _, dir := range dirs {
		init := path.Join(dir, "__init__.py")
		if i.fs.IsFile(init) {
			if m, err := i.load(ctx.Context, e, init, name); err == nil {
				return m
			}
		}
	}
	return e.NamespaceModule(name, dirs)
}
