package pythoneval

import (
	"fmt"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// Sequence is a builtin container: a list, tuple, set or dict display, a comprehension,
// or a container built from an iterable such as `list(x)`
type Sequence struct {
	Base
	kind ContainerKind
	node pythonast.Node
	// items are the elements in order; for dicts, the values
	items []LazyContext
	// keys are the statically known keys of a dict display, parallel to items
	keys []Index
	// sized is true if items are exactly the elements of the container
	sized bool
}

// NewSequence builds a container of the given kind holding exactly items. It is not
// interned.
func (e *Evaluator) NewSequence(kind ContainerKind, items []LazyContext) *Sequence {
	return &Sequence{Base: NewBase(e, nil), kind: kind, items: items, sized: true}
}

// NewDict builds a dict with string keys
func (e *Evaluator) NewDict(keys []string, values []LazyContext) *Sequence {
	s := e.NewSequence(DictKind, values)
	for _, k := range keys {
		s.keys = append(s.keys, k)
	}
	return s
}

// sequenceOf returns the container a display expression creates
func (e *Evaluator) sequenceOf(owner Context, expr pythonast.Expr, frame *Frame) *Sequence {
	var h hasher
	frame.signature(&h)
	key := internKey{kind: "display", node: expr, parent: owner.ID(), sig: h.sum()}
	return e.intern(key, func() Context {
		s := &Sequence{Base: NewBase(e, owner), node: expr, sized: true}
		lazy := func(x pythonast.Expr) LazyContext {
			return LazyTree{Owner: owner, Expr: x, Frame: frame}
		}
		var elts []pythonast.Expr
		switch x := expr.(type) {
		case *pythonast.ListExpr:
			s.kind, elts = ListKind, x.Values
		case *pythonast.TupleExpr:
			s.kind, elts = TupleKind, x.Elts
		case *pythonast.SetExpr:
			s.kind, elts = SetKind, x.Values
		case *pythonast.DictExpr:
			s.kind = DictKind
			for _, kv := range x.Items {
				s.keys = append(s.keys, staticIndex(kv.Key))
				s.items = append(s.items, lazy(kv.Value))
			}
		case *pythonast.ComprehensionExpr:
			s.kind = comprehensionKinds[x.Kind]
			s.sized = false
		}
		for _, elt := range elts {
			if _, ok := elt.(*pythonast.StarExpr); ok {
				// the length is no longer known, but the order of the other elements is kept
				s.sized = false
			}
			s.items = append(s.items, lazy(elt))
		}
		return s
	}).(*Sequence)
}

var comprehensionKinds = map[pythonast.ComprehensionKind]ContainerKind{
	pythonast.GeneratorComprehension: GeneratorKind,
	pythonast.ListComprehension:      ListKind,
	pythonast.SetComprehension:       SetKind,
	pythonast.DictComprehension:      DictKind,
}

// containerFromArgs builds a builtin container from the iterable passed to its class
func (e *Evaluator) containerFromArgs(ctx kitectx.CallContext, class *ClassContext, kind ContainerKind, args Arguments) *Sequence {
	key := internKey{kind: "container", node: class.def, parent: class.ID(), sig: args.Signature(ctx)}
	return e.intern(key, func() Context {
		s := &Sequence{Base: NewBase(e, class.Parent()), kind: kind, node: args.CallSite()}
		var positional []Argument
		for _, arg := range args.Unpack(ctx) {
			if arg.Keyword == "" && arg.Star == 0 {
				positional = append(positional, arg)
			}
		}
		switch {
		case len(positional) == 0:
			s.sized = len(args.Unpack(ctx)) == 0
		case kind != DictKind:
			s.items = e.iterateSet(ctx, positional[0].Value.Infer(ctx))
		}
		return s
	}).(*Sequence)
}

// Kind is the builtin class of the container
func (s *Sequence) Kind() ContainerKind { return s.kind }

// Node implements Context
func (s *Sequence) Node() pythonast.Node { return s.node }

// Name implements Context
func (s *Sequence) Name() string { return string(s.kind) }

func (s *Sequence) String() string {
	return fmt.Sprintf("<%s of %d>", s.kind, len(s.items))
}

// Bool implements Context. Displays are falsy exactly when empty.
func (s *Sequence) Bool() Truth {
	if !s.sized {
		return TruthUnknown
	}
	return truthOf(len(s.items) > 0)
}

// Keys are the statically known keys of a dict, parallel to its values
func (s *Sequence) Keys() []Index { return s.keys }

// Len is the number of elements, if it is known
func (s *Sequence) Len(ctx kitectx.CallContext) (int, bool) {
	if !s.sized {
		return 0, false
	}
	return len(s.items), true
}

// Iterate implements Context. Dicts iterate over their keys.
func (s *Sequence) Iterate(ctx kitectx.CallContext) ([]LazyContext, error) {
	if s.kind != DictKind {
		return s.expanded(ctx), nil
	}
	var out []LazyContext
	dict, ok := s.node.(*pythonast.DictExpr)
	if !ok {
		for _, key := range s.keys {
			if key != nil {
				out = append(out, LazyKnown{Context: s.eval.bridge.Literal(ctx, key)})
			}
		}
		return out, nil
	}
	for _, kv := range dict.Items {
		out = append(out, LazyTree{Owner: s.parent, Expr: kv.Key})
	}
	return out, nil
}

// expanded lists the items with starred elements replaced by their contents
func (s *Sequence) expanded(ctx kitectx.CallContext) []LazyContext {
	var out []LazyContext
	for _, item := range s.items {
		tree, ok := item.(LazyTree)
		if !ok {
			out = append(out, item)
			continue
		}
		star, ok := tree.Expr.(*pythonast.StarExpr)
		if !ok {
			out = append(out, item)
			continue
		}
		values := s.eval.evalExpr(ctx, tree.Owner, star.Value, tree.Frame)
		out = append(out, s.eval.iterateSet(ctx, values)...)
	}
	return out
}

// GetItem implements Context. A nil index returns every element; a known index that
// is out of range or absent returns ErrNotFound.
func (s *Sequence) GetItem(ctx kitectx.CallContext, index Index) (Set, error) {
	if index == nil {
		return MergedLazy(s.items).Infer(ctx), nil
	}
	if s.kind == DictKind {
		for i, key := range s.keys {
			if key != nil && key == index {
				return s.items[i].Infer(ctx), nil
			}
		}
		return nil, ErrNotFound
	}

	pos, ok := index.(int64)
	if !ok || s.kind == SetKind || s.kind == FrozenSetKind {
		return nil, ErrNotFound
	}
	items := s.expanded(ctx)
	if pos < 0 {
		pos += int64(len(items))
	}
	if pos < 0 || pos >= int64(len(items)) {
		return nil, ErrNotFound
	}
	return items[pos].Infer(ctx), nil
}

// Class implements Context
func (s *Sequence) Class(ctx kitectx.CallContext) (Context, error) {
	if c := s.eval.bridge.Builtin(ctx, string(s.kind)); c != nil {
		return c, nil
	}
	return nil, ErrUnsupported
}

// Filters implements Context through a generated instance of the builtin class
func (s *Sequence) Filters(ctx kitectx.CallContext, opts FilterOptions) []Filter {
	class, err := s.Class(ctx)
	if err != nil {
		return nil
	}
	return s.eval.generatedInstance(class).Filters(ctx, opts)
}

// iterateSet iterates every context of a set, merging the elements found at the same
// position
func (e *Evaluator) iterateSet(ctx kitectx.CallContext, values Set) []LazyContext {
	var columns [][]LazyContext
	for _, v := range values {
		elems, err := v.Iterate(ctx)
		if err != nil {
			e.unsupported("iterate", v)
			continue
		}
		columns = append(columns, elems)
	}
	if len(columns) == 1 {
		return columns[0]
	}

	var out []LazyContext
	for i := 0; ; i++ {
		var merged MergedLazy
		for _, col := range columns {
			if i < len(col) {
				merged = append(merged, col[i])
			}
		}
		if len(merged) == 0 {
			return out
		}
		out = append(out, merged)
	}
}

// staticIndex is the value of a subscript or dict key that is a literal number or
// string, or nil
func staticIndex(expr pythonast.Expr) Index {
	switch x := expr.(type) {
	case *pythonast.NumberExpr:
		if v, ok := parseNumber(x.Number.Literal).(int64); ok {
			return v
		}
	case *pythonast.StringExpr:
		if len(x.Strings) > 0 && !isBytesPrefix(pythonast.StringPrefix(x.Strings[0].Literal)) {
			return pythonast.StringValue(x)
		}
	case *pythonast.UnaryExpr:
		if x.Op.Literal != "-" {
			return nil
		}
		if v, ok := staticIndex(x.Value).(int64); ok {
			return -v
		}
	}
	return nil
}

// InstanceElement is a syntax node reached through an instance. Navigating from it
// keeps the instance attached.
type InstanceElement struct {
	pythonast.Node
	Instance *Instance
}

// Parent is the wrapped parent of the node, or nil at the root
func (el *InstanceElement) Parent() pythonast.Node {
	root := RootContext(el.Instance.class)
	if root == nil {
		return nil
	}
	p, ok := el.Instance.eval.parentsOf(root)[el.Node]
	if !ok {
		return nil
	}
	return el.Instance.element(p)
}

// Children are the wrapped direct children of the node
func (el *InstanceElement) Children() []pythonast.Node {
	var out []pythonast.Node
	pythonast.InspectEdges(el.Node, func(parent, child pythonast.Node, field string) bool {
		if parent == nil {
			return true
		}
		if parent == el.Node && !pythonast.IsNil(child) {
			out = append(out, el.Instance.element(child))
		}
		return false
	})
	return out
}

// Name is the identifier of a wrapped name or attribute
func (el *InstanceElement) Name() string {
	switch n := el.Node.(type) {
	case *pythonast.NameExpr:
		return n.Ident.Literal
	case *pythonast.AttributeExpr:
		return n.Attribute.Literal
	}
	return ""
}
