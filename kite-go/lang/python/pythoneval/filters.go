package pythoneval

import (
	"go/token"
	"strings"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// Filter is one layer of a name lookup
type Filter interface {
	Get(ctx kitectx.CallContext, name string) []Name
	Values(ctx kitectx.CallContext) []Name
}

// scopeIndex indexes the names defined directly in a scope
type scopeIndex struct {
	order []string
	defs  map[string][]*pythonast.NameExpr
	// unconditional marks definitions made by a statement directly in the scope body
	unconditional map[*pythonast.NameExpr]bool
}

func (e *Evaluator) scopeNames(root *ModuleContext, scope pythonast.Scope) *scopeIndex {
	if names, ok := e.scopes[scope]; ok {
		return names
	}
	names := &scopeIndex{
		defs:          make(map[string][]*pythonast.NameExpr),
		unconditional: make(map[*pythonast.NameExpr]bool),
	}
	parents := e.parentsOf(root)
	for _, def := range pythonast.DefinedNames(scope) {
		lit := def.Ident.Literal
		if _, seen := names.defs[lit]; !seen {
			names.order = append(names.order, lit)
		}
		names.defs[lit] = append(names.defs[lit], def)
		if isUnconditional(parents, scope, def) {
			names.unconditional[def] = true
		}
	}
	e.scopes[scope] = names
	return names
}

func isUnconditional(parents map[pythonast.Node]pythonast.Node, scope pythonast.Scope, def *pythonast.NameExpr) bool {
	var node pythonast.Node = def
	for {
		parent, ok := parents[node]
		if !ok {
			return false
		}
		if parent == pythonast.Node(scope) {
			break
		}
		node = parent
	}
	switch node.(type) {
	case *pythonast.AssignStmt, *pythonast.AugAssignStmt, *pythonast.FunctionDefStmt, *pythonast.ClassDefStmt,
		*pythonast.ImportNameStmt, *pythonast.ImportFromStmt, *pythonast.Parameter, *pythonast.ArgsParameter:
		return true
	}
	return false
}

// TreeFilter finds the definitions made directly in the body of one scope. A later
// unconditional definition shadows everything defined before it.
type TreeFilter struct {
	owner Context
	scope pythonast.Scope
	until token.Pos
	// public hides names starting with an underscore, as star imports do
	public bool
	wrap   func(*pythonast.NameExpr) Name
}

// NewTreeFilter returns a filter over the definitions of scope that start before until,
// or all of them if until is zero. Names are owned by owner.
func NewTreeFilter(owner Context, scope pythonast.Scope, until token.Pos) *TreeFilter {
	f := &TreeFilter{owner: owner, scope: scope, until: until}
	f.wrap = func(n *pythonast.NameExpr) Name { return &TreeName{owner: owner, name: n} }
	return f
}

func (f *TreeFilter) names() *scopeIndex {
	return f.owner.Evaluator().scopeNames(RootContext(f.owner), f.scope)
}

// Get implements Filter
func (f *TreeFilter) Get(ctx kitectx.CallContext, name string) []Name {
	if f.public && strings.HasPrefix(name, "_") {
		return nil
	}
	names := f.names()
	var defs []*pythonast.NameExpr
	for _, def := range names.defs[name] {
		if f.until > 0 && def.Begin() >= f.until {
			continue
		}
		if names.unconditional[def] {
			defs = defs[:0]
		}
		defs = append(defs, def)
	}
	var out []Name
	for _, def := range defs {
		out = append(out, f.wrap(def))
	}
	return out
}

// Values implements Filter
func (f *TreeFilter) Values(ctx kitectx.CallContext) []Name {
	var out []Name
	for _, name := range f.names().order {
		out = append(out, f.Get(ctx, name)...)
	}
	return out
}

// NewExecutionFilter is a TreeFilter over a function body in which parameters
// resolve to the values bound by the execution
func NewExecutionFilter(exec *FunctionExecutionContext, until token.Pos) *TreeFilter {
	f := NewTreeFilter(exec, exec.scope(), until)
	params := make(map[*pythonast.NameExpr]bool)
	for _, p := range paramNames(exec.scope()) {
		params[p] = true
	}
	f.wrap = func(n *pythonast.NameExpr) Name {
		if params[n] {
			return &ParamName{exec: exec, name: n}
		}
		return &TreeName{owner: exec, name: n}
	}
	return f
}

// classFilter is the attribute layer contributed by one class. Private names are only
// visible from inside the class.
type classFilter struct {
	*TreeFilter
	class  *ClassContext
	origin pythonast.Node
	bound  bool
}

func newClassFilter(class *ClassContext, origin pythonast.Node, bound bool) *classFilter {
	return &classFilter{
		TreeFilter: NewTreeFilter(class, class.def, 0),
		class:      class,
		origin:     origin,
		bound:      bound,
	}
}

func (f *classFilter) accessible(name string) bool {
	if !strings.HasPrefix(name, "__") || strings.HasSuffix(name, "__") {
		return true
	}
	return !pythonast.IsNil(f.origin) && f.origin.Begin() >= f.class.def.Begin() && f.origin.End() <= f.class.def.End()
}

func (f *classFilter) Get(ctx kitectx.CallContext, name string) []Name {
	if !f.accessible(name) {
		return nil
	}
	names := f.TreeFilter.Get(ctx, name)
	if !f.bound {
		return names
	}
	for i, n := range names {
		names[i] = &ClassName{class: f.class, name: n}
	}
	return names
}

func (f *classFilter) Values(ctx kitectx.CallContext) []Name {
	var out []Name
	for _, name := range f.names().order {
		out = append(out, f.Get(ctx, name)...)
	}
	return out
}

// DictFilter is a fixed table of names
type DictFilter struct {
	order []string
	names map[string]Name
}

// NewDictFilter builds a filter from names, keeping the first of duplicates
func NewDictFilter(names ...Name) *DictFilter {
	f := &DictFilter{names: make(map[string]Name)}
	for _, n := range names {
		if _, ok := f.names[n.String()]; ok {
			continue
		}
		f.order = append(f.order, n.String())
		f.names[n.String()] = n
	}
	return f
}

// Get implements Filter
func (f *DictFilter) Get(ctx kitectx.CallContext, name string) []Name {
	if n, ok := f.names[name]; ok {
		return []Name{n}
	}
	return nil
}

// Values implements Filter
func (f *DictFilter) Values(ctx kitectx.CallContext) []Name {
	var out []Name
	for _, name := range f.order {
		out = append(out, f.names[name])
	}
	return out
}

// GlobalNameFilter finds names that functions of a module declare global
type GlobalNameFilter struct {
	module *ModuleContext
}

// Get implements Filter
func (f *GlobalNameFilter) Get(ctx kitectx.CallContext, name string) []Name {
	var out []Name
	for _, decl := range f.module.globals() {
		if decl.Name.Ident.Literal == name {
			out = append(out, &GlobalName{module: f.module, decl: decl})
		}
	}
	return out
}

// Values implements Filter
func (f *GlobalNameFilter) Values(ctx kitectx.CallContext) []Name {
	var out []Name
	for _, decl := range f.module.globals() {
		out = append(out, &GlobalName{module: f.module, decl: decl})
	}
	return out
}

// SelfNameFilter finds the attributes the methods of one class assign through their receiver
type SelfNameFilter struct {
	instance *Instance
	class    *ClassContext
}

// Get implements Filter
func (f *SelfNameFilter) Get(ctx kitectx.CallContext, name string) []Name {
	var out []Name
	for _, sa := range f.class.selfAttributes()[name] {
		out = append(out, &SelfName{instance: f.instance, class: f.class, method: sa.method, attr: sa.attr})
	}
	return out
}

// Values implements Filter
func (f *SelfNameFilter) Values(ctx kitectx.CallContext) []Name {
	var out []Name
	attrs := f.class.selfAttributes()
	for _, name := range f.class.selfAttributeOrder() {
		for _, sa := range attrs[name] {
			out = append(out, &SelfName{instance: f.instance, class: f.class, method: sa.method, attr: sa.attr})
		}
	}
	return out
}

// InstanceClassFilter shows the attributes of one class through an instance
type InstanceClassFilter struct {
	instance *Instance
	class    Context
	filters  []Filter
}

func (f *InstanceClassFilter) wrap(names []Name) []Name {
	out := make([]Name, 0, len(names))
	for _, n := range names {
		out = append(out, &InstanceName{instance: f.instance, class: f.class, name: n})
	}
	return out
}

// Get implements Filter
func (f *InstanceClassFilter) Get(ctx kitectx.CallContext, name string) []Name {
	for _, filter := range f.filters {
		if names := filter.Get(ctx, name); len(names) > 0 {
			return f.wrap(names)
		}
	}
	return nil
}

// Values implements Filter
func (f *InstanceClassFilter) Values(ctx kitectx.CallContext) []Name {
	var out []Name
	for _, filter := range f.filters {
		out = append(out, f.wrap(filter.Values(ctx))...)
	}
	return out
}

// lookupFilters returns the names from the first filter that has any for name
func lookupFilters(ctx kitectx.CallContext, filters []Filter, name string) []Name {
	for _, f := range filters {
		if names := f.Get(ctx, name); len(names) > 0 {
			return names
		}
	}
	return nil
}

// paramNames lists the parameter names of a function or lambda
func paramNames(scope pythonast.Scope) []*pythonast.NameExpr {
	var params []*pythonast.Parameter
	var vararg, kwarg *pythonast.ArgsParameter
	switch def := scope.(type) {
	case *pythonast.FunctionDefStmt:
		params, vararg, kwarg = def.Parameters, def.Vararg, def.Kwarg
	case *pythonast.LambdaExpr:
		params, vararg, kwarg = def.Parameters, def.Vararg, def.Kwarg
	}
	var out []*pythonast.NameExpr
	for _, p := range params {
		out = append(out, p.Name)
	}
	if vararg != nil && vararg.Name != nil {
		out = append(out, vararg.Name)
	}
	if kwarg != nil && kwarg.Name != nil {
		out = append(out, kwarg.Name)
	}
	return out
}
