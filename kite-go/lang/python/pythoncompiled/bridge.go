// Package pythoncompiled provides the builtins module to the evaluator: a python
// description of the builtin classes and functions, completed by native
// implementations where the result depends on the arguments.
package pythoncompiled

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonparser"
	"github.com/kiteco/pyeval/kite-golib/errors"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/kiteco/pyeval/kite-golib/lazy"
)

var (
	builtinsAST    *pythonast.Module
	builtinsLoader = lazy.NewLoader(loadBuiltins, func() { builtinsAST = nil })
)

func loadBuiltins() error {
	mod, err := pythonparser.Parse(kitectx.Background(), []byte(builtinsSource), pythonparser.Options{
		ErrorMode: pythonparser.FailFast,
		NoCache:   true,
	})
	if err != nil {
		return errors.Wrapf(err, "error parsing builtins")
	}
	builtinsAST = mod
	return nil
}

var specialNames = map[pythoneval.SpecialClass]string{
	pythoneval.SpecialFunction:  "function",
	pythoneval.SpecialMethod:    "method",
	pythoneval.SpecialGenerator: "generator",
	pythoneval.SpecialModule:    "module",
	pythoneval.SpecialType:      "type",
	pythoneval.SpecialObject:    "object",
	pythoneval.SpecialNone:      "NoneType",
}

var containerKinds = []pythoneval.ContainerKind{
	pythoneval.ListKind,
	pythoneval.TupleKind,
	pythoneval.SetKind,
	pythoneval.FrozenSetKind,
	pythoneval.DictKind,
}

// Bridge implements pythoneval.Bridge for one evaluator
type Bridge struct {
	eval     *pythoneval.Evaluator
	module   *pythoneval.ModuleContext
	failed   bool
	builtins map[string]pythoneval.Context
}

// NewBridge is the pythoneval.Collaborators.NewBridge constructor
func NewBridge(e *pythoneval.Evaluator) pythoneval.Bridge {
	return &Bridge{eval: e, builtins: make(map[string]pythoneval.Context)}
}

// BuiltinsModule implements pythoneval.Bridge. The module is built on first use.
func (b *Bridge) BuiltinsModule() *pythoneval.ModuleContext {
	if b.module != nil || b.failed {
		return b.module
	}
	if err := builtinsLoader.LoadAndLock(); err != nil {
		b.failed = true
		b.eval.Logger().Warnf("pythoncompiled: %v", err)
		return nil
	}
	defer builtinsLoader.Unlock()
	b.module = b.eval.ModuleContext(builtinsAST, "builtins", "")
	return b.module
}

// Builtin implements pythoneval.Bridge
func (b *Bridge) Builtin(ctx kitectx.CallContext, name string) pythoneval.Context {
	if c, ok := b.builtins[name]; ok {
		return c
	}
	mod := b.BuiltinsModule()
	if mod == nil {
		return nil
	}

	found := definition(ctx, pythoneval.NewTreeFilter(mod, mod.Module(), 0).Get(ctx, name))
	if found == nil {
		return nil
	}
	b.builtins[name] = found
	return found
}

// definition returns the first class or function the names infer to
func definition(ctx kitectx.CallContext, names []pythoneval.Name) pythoneval.Context {
	for _, n := range names {
		for _, c := range n.Infer(ctx) {
			switch c.(type) {
			case *pythoneval.ClassContext, *pythoneval.FunctionContext:
				return c
			}
		}
	}
	return nil
}

// Special implements pythoneval.Bridge
func (b *Bridge) Special(ctx kitectx.CallContext, kind pythoneval.SpecialClass) pythoneval.Context {
	name, ok := specialNames[kind]
	if !ok {
		return nil
	}
	return b.Builtin(ctx, name)
}

// Literal implements pythoneval.Bridge
func (b *Bridge) Literal(ctx kitectx.CallContext, value interface{}) pythoneval.Context {
	var class string
	switch v := value.(type) {
	case nil:
		class = "NoneType"
	case bool:
		class = "bool"
	case int:
		value, class = int64(v), "int"
	case int64:
		class = "int"
	case float64:
		class = "float"
	case complex128:
		class = "complex"
	case string:
		class = "str"
	case pythoneval.Bytes:
		class = "bytes"
	default:
		return nil
	}
	c := b.Builtin(ctx, class)
	if c == nil {
		return nil
	}
	return b.eval.LiteralInstance(c, value)
}

// IsContainer implements pythoneval.Bridge
func (b *Bridge) IsContainer(class pythoneval.Context) (pythoneval.ContainerKind, bool) {
	if _, ok := class.(*pythoneval.ClassContext); !ok {
		return "", false
	}
	if pythoneval.RootContext(class) != b.BuiltinsModule() {
		return "", false
	}
	ctx := kitectx.CallContext{Context: kitectx.Background()}
	for _, kind := range containerKinds {
		if b.Builtin(ctx, string(kind)) == class {
			return kind, true
		}
	}
	return "", false
}
