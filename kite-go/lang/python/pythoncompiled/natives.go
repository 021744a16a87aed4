package pythoncompiled

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

type native func(b *Bridge, ctx kitectx.CallContext, args []pythoneval.Set) (pythoneval.Set, bool)

// natives are the builtin functions evaluated from their arguments rather than from
// their python description
var natives = map[string]native{
	"next":       nativeNext,
	"iter":       nativeIter,
	"type":       nativeType,
	"getattr":    nativeGetattr,
	"isinstance": nativeIsinstance,
	"len":        nativeLen,
}

// CallBuiltin implements pythoneval.Bridge. Only positional arguments are considered;
// calls with keyword or starred arguments fall back to the python description.
func (b *Bridge) CallBuiltin(ctx kitectx.CallContext, fn *pythoneval.FunctionContext, args pythoneval.Arguments) (pythoneval.Set, bool) {
	f, ok := natives[fn.Name()]
	if !ok {
		return nil, false
	}
	var values []pythoneval.Set
	for _, arg := range args.Unpack(ctx) {
		if arg.Keyword != "" || arg.Star != 0 {
			return nil, false
		}
		values = append(values, arg.Value.Infer(ctx))
	}
	return f(b, ctx, values)
}

func nativeNext(b *Bridge, ctx kitectx.CallContext, args []pythoneval.Set) (pythoneval.Set, bool) {
	if len(args) == 0 || len(args) > 2 {
		return nil, false
	}
	var out pythoneval.Set
	for _, item := range b.eval.Iterate(ctx, args[0]) {
		out = out.Union(item.Infer(ctx))
	}
	if len(args) == 2 {
		out = out.Union(args[1])
	}
	return out, true
}

// nativeIter returns the iterable itself, which iterates like its iterator
func nativeIter(b *Bridge, ctx kitectx.CallContext, args []pythoneval.Set) (pythoneval.Set, bool) {
	if len(args) != 1 {
		return nil, false
	}
	return args[0], true
}

func nativeType(b *Bridge, ctx kitectx.CallContext, args []pythoneval.Set) (pythoneval.Set, bool) {
	if len(args) != 1 {
		return nil, false
	}
	var out pythoneval.Set
	for _, v := range args[0] {
		if class, err := v.Class(ctx); err == nil {
			out = out.Add(class)
		}
	}
	return out, true
}

func nativeGetattr(b *Bridge, ctx kitectx.CallContext, args []pythoneval.Set) (pythoneval.Set, bool) {
	if len(args) < 2 || len(args) > 3 {
		return nil, false
	}
	var out pythoneval.Set
	if len(args) == 3 {
		out = args[2]
	}
	name, ok := stringLiteral(args[1])
	if !ok {
		return out, true
	}
	for _, obj := range args[0] {
		out = out.Union(b.eval.GetAttr(ctx, obj, name))
	}
	return out, true
}

// nativeIsinstance folds to a literal when every object is, or every object is not,
// an instance of one of the classes
func nativeIsinstance(b *Bridge, ctx kitectx.CallContext, args []pythoneval.Set) (pythoneval.Set, bool) {
	if len(args) != 2 {
		return nil, false
	}
	unknown := pythoneval.NewSet(b.instanceOf(ctx, "bool"))

	var classes pythoneval.Set
	for _, c := range args[1] {
		if seq, ok := c.(*pythoneval.Sequence); ok && seq.Kind() == pythoneval.TupleKind {
			for _, item := range b.eval.Iterate(ctx, pythoneval.NewSet(seq)) {
				classes = classes.Union(item.Infer(ctx))
			}
			continue
		}
		classes = classes.Add(c)
	}
	if len(args[0]) == 0 || len(classes) == 0 {
		return unknown, true
	}

	var matched, missed bool
	for _, obj := range args[0] {
		class, err := obj.Class(ctx)
		if err != nil {
			return unknown, true
		}
		mro, err := class.MRO(ctx)
		if err != nil {
			return unknown, true
		}
		if overlaps(mro, classes) {
			matched = true
		} else {
			missed = true
		}
	}
	switch {
	case matched && !missed:
		return pythoneval.NewSet(b.Literal(ctx, true)), true
	case missed && !matched:
		return pythoneval.NewSet(b.Literal(ctx, false)), true
	default:
		return unknown, true
	}
}

func nativeLen(b *Bridge, ctx kitectx.CallContext, args []pythoneval.Set) (pythoneval.Set, bool) {
	if len(args) != 1 {
		return nil, false
	}
	if len(args[0]) == 1 {
		if seq, ok := args[0][0].(*pythoneval.Sequence); ok {
			if n, ok := seq.Len(ctx); ok {
				return pythoneval.NewSet(b.Literal(ctx, int64(n))), true
			}
		}
		if inst, ok := args[0][0].(*pythoneval.Instance); ok {
			if s, ok := inst.Literal(); ok {
				switch s := s.(type) {
				case string:
					return pythoneval.NewSet(b.Literal(ctx, int64(len([]rune(s))))), true
				case pythoneval.Bytes:
					return pythoneval.NewSet(b.Literal(ctx, int64(len(s)))), true
				}
			}
		}
	}
	return pythoneval.NewSet(b.instanceOf(ctx, "int")), true
}

func (b *Bridge) instanceOf(ctx kitectx.CallContext, name string) pythoneval.Context {
	class := b.Builtin(ctx, name)
	if class == nil {
		return nil
	}
	return b.eval.Instantiate(pythoneval.NewSet(class))[0]
}

func stringLiteral(s pythoneval.Set) (string, bool) {
	if len(s) != 1 {
		return "", false
	}
	inst, ok := s[0].(*pythoneval.Instance)
	if !ok {
		return "", false
	}
	v, ok := inst.Literal()
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

func overlaps(a []pythoneval.Context, b pythoneval.Set) bool {
	for _, c := range a {
		if b.Contains(c) {
			return true
		}
	}
	return false
}
