// Package pythonhints recovers the return types of functions from outside their
// bodies: from docstring fields and from return annotations.
package pythonhints

import (
	"regexp"
	"strings"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

var (
	// sphinx `:rtype: str` and epytext `@rtype: str`
	fieldRtype = regexp.MustCompile(`(?m)^\s*[:@]rtype:?\s*([^\n]+)$`)
	// numpydoc section header followed by its underline
	numpyReturns = regexp.MustCompile(`(?m)^\s*(?:Returns|Yields)\s*\n\s*-{3,}\s*\n([^\n]+)$`)
	dottedName   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*`)
	typeSep      = regexp.MustCompile(`\s+or\s+|\||,`)
)

// DocstringTypes implements pythoneval.ReturnTypeExtractor from the return type field
// of a function's docstring
type DocstringTypes struct{}

// ReturnTypes implements pythoneval.ReturnTypeExtractor. Each named type is resolved
// in the scope defining the function and contributes a generated instance.
func (DocstringTypes) ReturnTypes(ctx kitectx.CallContext, exec *pythoneval.FunctionExecutionContext) pythoneval.Set {
	def, ok := exec.Function().Def().(*pythonast.FunctionDefStmt)
	if !ok {
		return nil
	}
	doc := pythonast.Docstring(def.Body)
	if doc == "" {
		return nil
	}

	e := exec.Evaluator()
	owner := exec.Function().Parent()
	var out pythoneval.Set
	for _, name := range ReturnTypeNames(doc) {
		if name == "None" {
			out = out.Add(e.Bridge().Literal(ctx, nil))
			continue
		}
		out = out.Union(e.Instantiate(e.EvalDottedPath(ctx, owner, name)))
	}
	return out
}

// ReturnTypeNames extracts the dotted type names of the return type field of a
// docstring. Alternatives written `a or b`, `a | b` or `a, b` are all returned;
// descriptions such as `list of str` keep only the leading name.
func ReturnTypeNames(doc string) []string {
	var field string
	if m := fieldRtype.FindStringSubmatch(doc); m != nil {
		field = m[1]
	} else if m := numpyReturns.FindStringSubmatch(doc); m != nil {
		field = m[1]
		// numpydoc allows `name : type`
		if i := strings.Index(field, " : "); i >= 0 {
			field = field[i+3:]
		}
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	var out []string
	for _, alt := range typeSep.Split(field, -1) {
		alt = strings.Trim(strings.TrimSpace(alt), "`~:")
		alt = strings.TrimPrefix(alt, "class:")
		alt = strings.Trim(alt, "`~")
		if name := dottedName.FindString(alt); name != "" {
			out = append(out, name)
		}
	}
	return out
}
