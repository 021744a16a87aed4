package pythonhints

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// AnnotationTypes implements pythoneval.ReturnTypeExtractor from `-> T` annotations
type AnnotationTypes struct{}

// ReturnTypes implements pythoneval.ReturnTypeExtractor. The annotation is evaluated
// where the function is defined; classes become generated instances.
func (AnnotationTypes) ReturnTypes(ctx kitectx.CallContext, exec *pythoneval.FunctionExecutionContext) pythoneval.Set {
	def, ok := exec.Function().Def().(*pythonast.FunctionDefStmt)
	if !ok || pythonast.IsNil(def.Annotation) {
		return nil
	}
	e := exec.Evaluator()
	return e.Instantiate(e.EvalAnnotation(ctx, exec.Function().Parent(), def.Annotation))
}
