package pythonanalyzer

import (
	"sort"
	"strings"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// QualifiedName is the dotted path of a module, class or function: the module name
// followed by the names of the enclosing classes and functions
func QualifiedName(c pythoneval.Context) string {
	var parts []string
	for ; c != nil; c = c.Parent() {
		switch c.(type) {
		case *pythoneval.ModuleContext, *pythoneval.ClassContext, *pythoneval.FunctionContext, *pythoneval.FunctionExecutionContext:
			parts = append([]string{c.Name()}, parts...)
		}
	}
	return strings.Join(parts, ".")
}

// ValueString renders a value as `builtins.int` for classes and functions, the module
// name for modules, and `instanceof builtins.int` for objects
func ValueString(c pythoneval.Context) string {
	switch c := c.(type) {
	case nil:
		return "<nil>"
	case *pythoneval.ModuleContext:
		return c.Name()
	case *pythoneval.ClassContext, *pythoneval.FunctionContext:
		return QualifiedName(c)
	case *pythoneval.BoundMethod:
		return "method " + QualifiedName(c.Function())
	case *pythoneval.Instance:
		class, _ := c.Class(kitectx.CallContext{Context: kitectx.Background()})
		return "instanceof " + QualifiedName(class)
	case *pythoneval.Sequence:
		return "instanceof builtins." + string(c.Kind())
	case *pythoneval.Generator:
		return "instanceof builtins.generator"
	}
	return c.String()
}

// SetString renders a set as its sorted distinct value strings joined by ` | `, or
// `unknown` if it is empty
func SetString(s pythoneval.Set) string {
	if len(s) == 0 {
		return "unknown"
	}
	seen := make(map[string]bool)
	var parts []string
	for _, c := range s {
		v := ValueString(c)
		if !seen[v] {
			seen[v] = true
			parts = append(parts, v)
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " | ")
}
