package pythoneval

import (
	"go/token"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// Truth is the inferred truthiness of a value
type Truth int

const (
	// TruthUnknown means the value may be truthy or falsy
	TruthUnknown Truth = iota
	// TruthTrue means the value is always truthy
	TruthTrue
	// TruthFalse means the value is always falsy
	TruthFalse
)

func (t Truth) String() string {
	switch t {
	case TruthTrue:
		return "true"
	case TruthFalse:
		return "false"
	default:
		return "unknown"
	}
}

// Invert swaps true and false
func (t Truth) Invert() Truth {
	switch t {
	case TruthTrue:
		return TruthFalse
	case TruthFalse:
		return TruthTrue
	default:
		return TruthUnknown
	}
}

// Index is the key of a subscript: an int64, a string, or nil when not statically known
type Index interface{}

// FilterOptions select the filters a context returns
type FilterOptions struct {
	// SearchGlobal selects the filters used for free-variable lookup rather than
	// attribute lookup: for classes and functions only their own body.
	SearchGlobal bool
	// Until restricts tree definitions to those beginning before the position, if non-zero
	Until token.Pos
	// Origin is the node the lookup starts from. Private class names are only
	// visible to origins inside the class.
	Origin pythonast.Node
	// IsInstance views class attributes through an instance
	IsInstance bool
}

// Context is any entity that can be evaluated: a module, class, function, execution,
// instance or builtin value. Queries that do not apply to a context return ErrUnsupported.
type Context interface {
	Evaluator() *Evaluator
	// Parent is the defining context, nil for modules
	Parent() Context
	// Node is the syntax node the context was built from, if any
	Node() pythonast.Node
	Name() string
	// ID is unique per context within an Evaluator
	ID() uint64
	String() string

	Call(ctx kitectx.CallContext, args Arguments) (Set, error)
	Bool() Truth
	Bases(ctx kitectx.CallContext) ([]LazyContext, error)
	MRO(ctx kitectx.CallContext) ([]Context, error)
	Iterate(ctx kitectx.CallContext) ([]LazyContext, error)
	Class(ctx kitectx.CallContext) (Context, error)
	GetItem(ctx kitectx.CallContext, index Index) (Set, error)

	FilePath() (string, error)
	PackageName() (string, error)
	SearchPath(ctx kitectx.CallContext) ([]string, error)

	Filters(ctx kitectx.CallContext, opts FilterOptions) []Filter
}

// Base implements the bookkeeping part of Context and rejects every query.
// Context implementations embed it and override what they support.
type Base struct {
	eval   *Evaluator
	parent Context
	id     uint64
}

// NewBase allocates the shared part of a new context
func NewBase(eval *Evaluator, parent Context) Base {
	return Base{eval: eval, parent: parent, id: eval.newID()}
}

// Evaluator implements Context
func (b *Base) Evaluator() *Evaluator { return b.eval }

// Parent implements Context
func (b *Base) Parent() Context { return b.parent }

// ID implements Context
func (b *Base) ID() uint64 { return b.id }

// Node implements Context
func (b *Base) Node() pythonast.Node { return nil }

// Call implements Context
func (b *Base) Call(kitectx.CallContext, Arguments) (Set, error) { return nil, ErrUnsupported }

// Bool implements Context; objects are truthy unless they say otherwise
func (b *Base) Bool() Truth { return TruthTrue }

// Bases implements Context
func (b *Base) Bases(kitectx.CallContext) ([]LazyContext, error) { return nil, ErrUnsupported }

// MRO implements Context
func (b *Base) MRO(kitectx.CallContext) ([]Context, error) { return nil, ErrUnsupported }

// Iterate implements Context
func (b *Base) Iterate(kitectx.CallContext) ([]LazyContext, error) { return nil, ErrUnsupported }

// Class implements Context
func (b *Base) Class(kitectx.CallContext) (Context, error) { return nil, ErrUnsupported }

// GetItem implements Context
func (b *Base) GetItem(kitectx.CallContext, Index) (Set, error) { return nil, ErrUnsupported }

// FilePath implements Context
func (b *Base) FilePath() (string, error) { return "", ErrUnsupported }

// PackageName implements Context
func (b *Base) PackageName() (string, error) { return "", ErrUnsupported }

// SearchPath implements Context
func (b *Base) SearchPath(kitectx.CallContext) ([]string, error) { return nil, ErrUnsupported }

// Filters implements Context
func (b *Base) Filters(kitectx.CallContext, FilterOptions) []Filter { return nil }

// RootContext returns the module a context is defined in
func RootContext(c Context) *ModuleContext {
	for c != nil {
		if mod, ok := c.(*ModuleContext); ok {
			return mod
		}
		c = c.Parent()
	}
	return nil
}
