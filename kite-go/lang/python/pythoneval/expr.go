package pythoneval

import (
	"math"
	"strconv"
	"strings"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// evalExpr infers the values of an expression evaluated in owner, with loop
// variables bound by frame
func (e *Evaluator) evalExpr(ctx kitectx.CallContext, owner Context, expr pythonast.Expr, frame *Frame) Set {
	ctx = ctx.Call()
	ctx.CheckAbort()
	if pythonast.IsNil(expr) {
		return nil
	}
	return e.truncate(e.evalExprInner(ctx, owner, expr, frame))
}

func (e *Evaluator) evalExprInner(ctx kitectx.CallContext, owner Context, expr pythonast.Expr, frame *Frame) Set {
	switch x := expr.(type) {
	case *pythonast.NameExpr:
		return e.lookupName(ctx, owner, x, frame)

	case *pythonast.AttributeExpr:
		var out Set
		for _, v := range e.evalExpr(ctx, owner, x.Value, frame) {
			out = out.Union(e.attr(ctx, v, x.Attribute.Literal, x))
		}
		return out

	case *pythonast.CallExpr:
		fns := e.evalExpr(ctx, owner, x.Func, frame)
		if len(fns) == 0 {
			return nil
		}
		return e.callAll(ctx, fns, NewTreeArguments(owner, x, frame))

	case *pythonast.NumberExpr:
		if v := parseNumber(x.Number.Literal); v != nil {
			return NewSet(e.bridge.Literal(ctx, v))
		}
		return nil

	case *pythonast.StringExpr:
		if len(x.Strings) == 0 {
			return nil
		}
		prefix := pythonast.StringPrefix(x.Strings[0].Literal)
		switch {
		case strings.Contains(prefix, "f"):
			return e.builtinInstance(ctx, "str")
		case isBytesPrefix(prefix):
			return NewSet(e.bridge.Literal(ctx, Bytes(pythonast.StringValue(x))))
		}
		return NewSet(e.bridge.Literal(ctx, pythonast.StringValue(x)))

	case *pythonast.ListExpr, *pythonast.TupleExpr, *pythonast.SetExpr, *pythonast.DictExpr, *pythonast.ComprehensionExpr:
		return NewSet(e.sequenceOf(owner, x, frame))

	case *pythonast.IndexExpr:
		return e.evalIndex(ctx, owner, x, frame)

	case *pythonast.BinaryExpr:
		return e.evalBinary(ctx, owner, x, frame)

	case *pythonast.UnaryExpr:
		return e.evalUnary(ctx, owner, x, frame)

	case *pythonast.IfExpr:
		switch e.evalExpr(ctx, owner, x.Condition, frame).Truth() {
		case TruthTrue:
			return e.evalExpr(ctx, owner, x.Body, frame)
		case TruthFalse:
			return e.evalExpr(ctx, owner, x.Else, frame)
		}
		return e.evalExpr(ctx, owner, x.Body, frame).Union(e.evalExpr(ctx, owner, x.Else, frame))

	case *pythonast.LambdaExpr:
		return NewSet(e.functionContext(owner, x))

	case *pythonast.StarExpr:
		return e.evalExpr(ctx, owner, x.Value, frame)

	case *pythonast.YieldExpr, *pythonast.AwaitExpr, *pythonast.BadExpr, *pythonast.DottedExpr:
		return nil
	}
	return nil
}

func (e *Evaluator) evalIndex(ctx kitectx.CallContext, owner Context, x *pythonast.IndexExpr, frame *Frame) Set {
	values := e.evalExpr(ctx, owner, x.Value, frame)
	if len(x.Subscripts) != 1 {
		return nil
	}

	var index Index
	switch sub := x.Subscripts[0].(type) {
	case *pythonast.IndexSubscript:
		index = staticIndex(sub.Value)
	case *pythonast.SliceSubscript:
		// a slice of a builtin sequence is a sequence of the same kind
		var out Set
		for _, v := range values {
			if s, ok := v.(*Sequence); ok && s.kind != DictKind {
				out = out.Union(e.builtinInstance(ctx, string(s.kind)))
				continue
			}
			if res, err := v.GetItem(ctx, nil); err == nil {
				out = out.Union(res)
			}
		}
		return out
	}

	var out Set
	for _, v := range values {
		res, err := v.GetItem(ctx, index)
		if err == ErrNotFound {
			res, err = v.GetItem(ctx, nil)
		}
		if err != nil {
			e.unsupported("getitem", v)
			continue
		}
		out = out.Union(res)
	}
	return out
}

var comparisons = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"in": true, "not in": true, "is": true, "is not": true, "<>": true,
}

var binaryMethods = map[string][2]string{
	"+":  {"__add__", "__radd__"},
	"-":  {"__sub__", "__rsub__"},
	"*":  {"__mul__", "__rmul__"},
	"/":  {"__truediv__", "__rtruediv__"},
	"//": {"__floordiv__", "__rfloordiv__"},
	"%":  {"__mod__", "__rmod__"},
	"**": {"__pow__", "__rpow__"},
	"@":  {"__matmul__", "__rmatmul__"},
	"<<": {"__lshift__", "__rlshift__"},
	">>": {"__rshift__", "__rrshift__"},
	"&":  {"__and__", "__rand__"},
	"|":  {"__or__", "__ror__"},
	"^":  {"__xor__", "__rxor__"},
}

func (e *Evaluator) evalBinary(ctx kitectx.CallContext, owner Context, x *pythonast.BinaryExpr, frame *Frame) Set {
	op := x.Op.Literal
	left := e.evalExpr(ctx, owner, x.Left, frame)

	switch {
	case op == "and" || op == "or":
		if len(left) == 0 {
			return e.evalExpr(ctx, owner, x.Right, frame)
		}
		// `a and b` is a when a is falsy, otherwise b; `a or b` the reverse
		stop := TruthFalse
		if op == "or" {
			stop = TruthTrue
		}
		var out Set
		var continues bool
		for _, v := range left {
			t := v.Bool()
			if t != stop.Invert() {
				out = out.Add(v)
			}
			if t != stop {
				continues = true
			}
		}
		if continues {
			out = out.Union(e.evalExpr(ctx, owner, x.Right, frame))
		}
		return out

	case comparisons[op]:
		right := e.evalExpr(ctx, owner, x.Right, frame)
		if v, ok := foldComparison(op, left, right); ok {
			return NewSet(e.bridge.Literal(ctx, v))
		}
		return e.builtinInstance(ctx, "bool")
	}

	return e.binaryOp(ctx, owner, op, left, e.evalExpr(ctx, owner, x.Right, frame))
}

// binaryOp applies an arithmetic or bitwise operator, folding literals and otherwise
// calling the operand's method or the reflected method of the other operand
func (e *Evaluator) binaryOp(ctx kitectx.CallContext, owner Context, op string, left, right Set) Set {
	methods, ok := binaryMethods[op]
	if !ok {
		e.unsupported("operator "+op, owner)
		return nil
	}
	var out Set
	for _, l := range left {
		for _, r := range right {
			if v, ok := foldArithmetic(op, l, r); ok {
				out = out.Add(e.bridge.Literal(ctx, v))
				continue
			}
			res, found := e.callMethod(ctx, l, methods[0], ValuesArguments{NewSet(r)})
			if !found || len(res) == 0 {
				res, _ = e.callMethod(ctx, r, methods[1], ValuesArguments{NewSet(l)})
			}
			out = out.Union(res)
		}
	}
	return out
}

var unaryMethods = map[string]string{
	"-": "__neg__",
	"+": "__pos__",
	"~": "__invert__",
}

func (e *Evaluator) evalUnary(ctx kitectx.CallContext, owner Context, x *pythonast.UnaryExpr, frame *Frame) Set {
	values := e.evalExpr(ctx, owner, x.Value, frame)
	if x.Op.Literal == "not" {
		switch values.Truth() {
		case TruthTrue:
			return NewSet(e.bridge.Literal(ctx, false))
		case TruthFalse:
			return NewSet(e.bridge.Literal(ctx, true))
		}
		return e.builtinInstance(ctx, "bool")
	}

	method, ok := unaryMethods[x.Op.Literal]
	if !ok {
		return nil
	}
	var out Set
	for _, v := range values {
		if lit, ok := literalOf(v); ok {
			if res, ok := foldUnary(x.Op.Literal, lit); ok {
				out = out.Add(e.bridge.Literal(ctx, res))
				continue
			}
		}
		res, _ := e.callMethod(ctx, v, method, ValuesArguments{})
		out = out.Union(res)
	}
	return out
}

// parseNumber returns the int64, float64 or complex128 value of a number literal,
// or nil if it does not fit
func parseNumber(lit string) interface{} {
	lit = strings.Replace(strings.ToLower(lit), "_", "", -1)
	if strings.HasSuffix(lit, "j") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(lit, "j"), 64)
		if err != nil {
			return nil
		}
		return complex(0, f)
	}
	lit = strings.TrimSuffix(lit, "l")
	if strings.HasPrefix(lit, "0o") {
		lit = "0" + lit[2:]
	}
	if i, err := strconv.ParseInt(lit, 0, 64); err == nil {
		return i
	}
	if len(lit) > 1 && lit[0] == '0' && !strings.ContainsAny(lit, ".ex") {
		// python 2 octal such as 0777
		if i, err := strconv.ParseInt(lit[1:], 8, 64); err == nil {
			return i
		}
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return f
	}
	return nil
}

func isBytesPrefix(prefix string) bool {
	return strings.Contains(prefix, "b")
}

// literalOf returns the literal value of an instance created from a literal
func literalOf(c Context) (interface{}, bool) {
	if inst, ok := c.(*Instance); ok {
		return inst.Literal()
	}
	return nil, false
}

func singleLiteral(s Set) (interface{}, bool) {
	if len(s) != 1 {
		return nil, false
	}
	return literalOf(s[0])
}

func foldComparison(op string, left, right Set) (bool, bool) {
	l, ok := singleLiteral(left)
	if !ok {
		return false, false
	}
	r, ok := singleLiteral(right)
	if !ok {
		return false, false
	}
	switch op {
	case "is":
		return l == nil && r == nil, l == nil || r == nil
	case "is not":
		return !(l == nil && r == nil), l == nil || r == nil
	case "==":
		return l == r, true
	case "!=", "<>":
		return l != r, true
	}

	if lf, ok := toFloat(l); ok {
		if rf, ok := toFloat(r); ok {
			switch op {
			case "<":
				return lf < rf, true
			case ">":
				return lf > rf, true
			case "<=":
				return lf <= rf, true
			case ">=":
				return lf >= rf, true
			}
		}
	}
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			switch op {
			case "<":
				return ls < rs, true
			case ">":
				return ls > rs, true
			case "<=":
				return ls <= rs, true
			case ">=":
				return ls >= rs, true
			case "in":
				return strings.Contains(rs, ls), true
			case "not in":
				return !strings.Contains(rs, ls), true
			}
		}
	}
	return false, false
}

func toFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// foldArithmetic computes operators on literal ints, floats and strings
func foldArithmetic(op string, left, right Context) (interface{}, bool) {
	l, ok := literalOf(left)
	if !ok {
		return nil, false
	}
	r, ok := literalOf(right)
	if !ok {
		return nil, false
	}

	if li, ok := l.(int64); ok {
		if ri, ok := r.(int64); ok {
			return foldInt(op, li, ri)
		}
	}
	if lf, ok := toFloat(l); ok {
		if rf, ok := toFloat(r); ok {
			if _, isBool := l.(bool); isBool {
				return nil, false
			}
			return foldFloat(op, lf, rf)
		}
	}
	switch l := l.(type) {
	case string:
		switch r := r.(type) {
		case string:
			if op == "+" {
				return l + r, true
			}
		case int64:
			if op == "*" && r >= 0 && r*int64(len(l)) <= 1<<16 {
				return strings.Repeat(l, int(r)), true
			}
		}
	case Bytes:
		if r, ok := r.(Bytes); ok && op == "+" {
			return l + r, true
		}
	}
	return nil, false
}

func foldInt(op string, l, r int64) (interface{}, bool) {
	switch op {
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		if r == 0 {
			return nil, false
		}
		return float64(l) / float64(r), true
	case "//":
		if r == 0 {
			return nil, false
		}
		q := l / r
		if (l%r != 0) && ((l < 0) != (r < 0)) {
			q--
		}
		return q, true
	case "%":
		if r == 0 {
			return nil, false
		}
		m := l % r
		if m != 0 && ((m < 0) != (r < 0)) {
			m += r
		}
		return m, true
	case "**":
		if r < 0 || r > 62 {
			return nil, false
		}
		p := math.Pow(float64(l), float64(r))
		if math.Abs(p) >= math.MaxInt64 {
			return nil, false
		}
		return int64(p), true
	case "<<":
		if r < 0 || r > 62 {
			return nil, false
		}
		return l << uint(r), true
	case ">>":
		if r < 0 {
			return nil, false
		}
		return l >> uint(r), true
	case "&":
		return l & r, true
	case "|":
		return l | r, true
	case "^":
		return l ^ r, true
	}
	return nil, false
}

func foldFloat(op string, l, r float64) (interface{}, bool) {
	switch op {
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		if r == 0 {
			return nil, false
		}
		return l / r, true
	case "**":
		return math.Pow(l, r), true
	}
	return nil, false
}

func foldUnary(op string, v interface{}) (interface{}, bool) {
	switch v := v.(type) {
	case int64:
		switch op {
		case "-":
			return -v, true
		case "+":
			return v, true
		case "~":
			return ^v, true
		}
	case float64:
		switch op {
		case "-":
			return -v, true
		case "+":
			return v, true
		}
	}
	return nil, false
}
