package pythoneval

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// moduleAttributes are defined in every module
var moduleAttributes = []string{"__file__", "__name__", "__package__", "__doc__"}

// ModuleContext is a source module, or a namespace package with no source
type ModuleContext struct {
	Base
	mod  *pythonast.Module
	name string
	path string
	// dirs is the search path of a package: given for namespace packages, computed
	// on first use otherwise
	dirs      []string
	isPackage bool
}

// ModuleContext returns the context for a parsed module. Modules are interned by
// path, or by node if path is empty. name is the dotted import name, empty for a
// script.
func (e *Evaluator) ModuleContext(mod *pythonast.Module, name, path string) *ModuleContext {
	if path != "" {
		if m, ok := e.modulesByPath[path]; ok {
			return m
		}
	} else if m, ok := e.modulesByNode[mod]; ok {
		return m
	}

	m := &ModuleContext{
		mod:       mod,
		name:      name,
		path:      path,
		isPackage: filepath.Base(path) == "__init__.py",
	}
	m.Base = NewBase(e, nil)
	e.registerModule(m)
	return m
}

// NamespaceModule returns the context for a package made of directories without an __init__.py
func (e *Evaluator) NamespaceModule(name string, dirs []string) *ModuleContext {
	if m, ok := e.modulesByName[name]; ok && m.path == "" && m.dirs != nil {
		return m
	}
	m := &ModuleContext{
		mod:       &pythonast.Module{},
		name:      name,
		dirs:      dirs,
		isPackage: true,
	}
	m.Base = NewBase(e, nil)
	e.registerModule(m)
	return m
}

func (e *Evaluator) registerModule(m *ModuleContext) {
	if m.path != "" {
		e.modulesByPath[m.path] = m
	} else {
		e.modulesByNode[m.mod] = m
	}
	if m.name != "" {
		if _, ok := e.modulesByName[m.name]; !ok {
			e.modulesByName[m.name] = m
		}
	}
	e.modules = append(e.modules, m)
}

// ModuleByPath returns the module loaded from path, or nil
func (e *Evaluator) ModuleByPath(path string) *ModuleContext {
	return e.modulesByPath[path]
}

// ModuleByName returns the first module registered under a dotted name, or nil
func (e *Evaluator) ModuleByName(name string) *ModuleContext {
	return e.modulesByName[name]
}

// Modules lists the modules of the session in the order they were loaded
func (e *Evaluator) Modules() []*ModuleContext {
	return e.modules
}

// Module is the syntax tree of the module
func (m *ModuleContext) Module() *pythonast.Module { return m.mod }

// Node implements Context
func (m *ModuleContext) Node() pythonast.Node { return m.mod }

// Name implements Context
func (m *ModuleContext) Name() string {
	if m.name == "" {
		return "__main__"
	}
	return m.name
}

func (m *ModuleContext) String() string {
	return fmt.Sprintf("<module %s>", m.Name())
}

// IsPackage is true for __init__.py files and namespace packages
func (m *ModuleContext) IsPackage() bool { return m.isPackage }

// FilePath implements Context
func (m *ModuleContext) FilePath() (string, error) {
	return m.path, nil
}

// PackageName implements Context
func (m *ModuleContext) PackageName() (string, error) {
	if m.isPackage {
		return m.name, nil
	}
	if i := strings.LastIndex(m.name, "."); i >= 0 {
		return m.name[:i], nil
	}
	return "", nil
}

// SearchPath implements Context. Packages that declare themselves namespaces through
// pkgutil or pkg_resources search every same-named directory on the sys path.
func (m *ModuleContext) SearchPath(ctx kitectx.CallContext) ([]string, error) {
	if !m.isPackage {
		return nil, ErrUnsupported
	}
	if m.dirs != nil || m.path == "" {
		return m.dirs, nil
	}

	m.dirs = m.searchPath()
	return m.dirs, nil
}

func (m *ModuleContext) searchPath() []string {
	dir := filepath.Dir(m.path)
	importer := m.eval.collab.Importer
	if importer == nil {
		return []string{dir}
	}
	src, err := importer.ReadFile(m.path)
	if err != nil {
		return []string{dir}
	}
	if !bytes.Contains(src, []byte("declare_namespace(__name__)")) && !bytes.Contains(src, []byte("extend_path(__path__")) {
		return []string{dir}
	}

	parts := strings.Split(m.name, ".")
	var dirs []string
	for _, root := range importer.SysPath() {
		candidate := filepath.Join(append([]string{root}, parts...)...)
		if importer.IsDir(candidate) {
			dirs = append(dirs, candidate)
		}
	}
	if len(dirs) == 0 {
		return []string{dir}
	}
	return dirs
}

// Class implements Context
func (m *ModuleContext) Class(ctx kitectx.CallContext) (Context, error) {
	if c := m.eval.bridge.Special(ctx, SpecialModule); c != nil {
		return c, nil
	}
	return nil, ErrUnsupported
}

// Filters implements Context
func (m *ModuleContext) Filters(ctx kitectx.CallContext, opts FilterOptions) []Filter {
	filters := []Filter{NewTreeFilter(m, m.mod, opts.Until)}

	var attrs []Name
	for _, name := range moduleAttributes {
		attrs = append(attrs, &ModuleAttributeName{module: m, name: name})
	}
	filters = append(filters, NewDictFilter(attrs...))

	for _, star := range m.starImports(ctx) {
		f := NewTreeFilter(star, star.mod, 0)
		f.public = true
		filters = append(filters, f)
	}

	filters = append(filters, &GlobalNameFilter{module: m})

	if subs := m.subModules(ctx); len(subs) > 0 {
		filters = append(filters, NewDictFilter(subs...))
	}
	return filters
}

// starImports lists the modules whose public names `from m import *` statements bring
// in, including those they star import in turn
func (m *ModuleContext) starImports(ctx kitectx.CallContext) []*ModuleContext {
	return m.eval.Memoize(m, "star imports", 0, []*ModuleContext(nil), func() interface{} {
		var out []*ModuleContext
		add := func(mod *ModuleContext) {
			if mod == m {
				return
			}
			for _, seen := range out {
				if seen == mod {
					return
				}
			}
			out = append(out, mod)
		}
		for _, stmt := range pythonast.Imports(m.mod) {
			from, ok := stmt.(*pythonast.ImportFromStmt)
			if !ok || from.Wildcard == nil {
				continue
			}
			for _, c := range m.eval.follow(ctx, m, dottedNames(from.Package), from.Dots) {
				mod, ok := c.(*ModuleContext)
				if !ok {
					continue
				}
				add(mod)
				for _, nested := range mod.starImports(ctx) {
					add(nested)
				}
			}
		}
		return out
	}).([]*ModuleContext)
}

// subModules are the modules and packages directly inside the search path of a package
func (m *ModuleContext) subModules(ctx kitectx.CallContext) []Name {
	importer := m.eval.collab.Importer
	if !m.isPackage || importer == nil {
		return nil
	}
	dirs, err := m.SearchPath(ctx)
	if err != nil {
		return nil
	}
	var names []Name
	for _, dir := range dirs {
		for _, sub := range importer.SubModules(dir) {
			names = append(names, &SubModuleName{module: m, name: sub})
		}
	}
	return names
}

func (m *ModuleContext) globals() []pythonast.GlobalDecl {
	if decls, ok := m.eval.globals[m.mod]; ok {
		return decls
	}
	decls := pythonast.Globals(m.mod)
	m.eval.globals[m.mod] = decls
	return decls
}

func dottedNames(d *pythonast.DottedExpr) []string {
	if d == nil {
		return nil
	}
	var out []string
	for _, n := range d.Names {
		out = append(out, n.Ident.Literal)
	}
	return out
}
