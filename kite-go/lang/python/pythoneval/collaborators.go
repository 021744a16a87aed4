package pythoneval

import (
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/kiteco/pyeval/kite-golib/kitelog"
)

// Importer locates and loads modules for import statements
type Importer interface {
	// Follow resolves `from <level dots><names>` relative to from. An empty names
	// list with level > 0 refers to the package containing from.
	Follow(ctx kitectx.CallContext, from *ModuleContext, names []string, level int) Set
	// SubModules lists the module and package names directly inside dir
	SubModules(dir string) []string
	// SysPath is the ordered list of import roots
	SysPath() []string
	// ReadFile returns the contents of a source file
	ReadFile(path string) ([]byte, error)
	// IsDir reports whether path is an existing directory
	IsDir(path string) bool
}

// SpecialClass names the builtin classes that stand in for kinds of objects
type SpecialClass int

const (
	// SpecialFunction is the class of plain functions
	SpecialFunction SpecialClass = iota
	// SpecialMethod is the class of bound methods
	SpecialMethod
	// SpecialGenerator is the class of generator objects
	SpecialGenerator
	// SpecialModule is the class of modules
	SpecialModule
	// SpecialType is the class of classes
	SpecialType
	// SpecialObject is the root of every class hierarchy
	SpecialObject
	// SpecialNone is the class of None
	SpecialNone
)

// ContainerKind identifies the builtin container classes
type ContainerKind string

// Container kinds. The values are the names of the builtin classes.
const (
	ListKind      ContainerKind = "list"
	TupleKind     ContainerKind = "tuple"
	SetKind       ContainerKind = "set"
	FrozenSetKind ContainerKind = "frozenset"
	DictKind      ContainerKind = "dict"
	GeneratorKind ContainerKind = "generator"
)

// Bytes is the literal value of a bytes object
type Bytes string

// Bridge stands in for natively implemented objects: the builtins module, its
// classes and the values of literals.
type Bridge interface {
	BuiltinsModule() *ModuleContext
	// Builtin returns the builtin with the given name, or nil
	Builtin(ctx kitectx.CallContext, name string) Context
	Special(ctx kitectx.CallContext, kind SpecialClass) Context
	// Literal returns the interned context for an int64, float64, complex128, string,
	// Bytes, bool or nil value.
	Literal(ctx kitectx.CallContext, value interface{}) Context
	// IsContainer reports whether class is one of the builtin container classes
	IsContainer(class Context) (ContainerKind, bool)
	// CallBuiltin evaluates builtin functions whose result depends on their arguments.
	// ok is false if fn has no native implementation.
	CallBuiltin(ctx kitectx.CallContext, fn *FunctionContext, args Arguments) (result Set, ok bool)
}

// ReturnTypeExtractor contributes return types of an execution from outside its body
type ReturnTypeExtractor interface {
	ReturnTypes(ctx kitectx.CallContext, exec *FunctionExecutionContext) Set
}

// Reach classifies whether a statement may execute
type Reach int

const (
	// Uncertain means the statement may or may not execute
	Uncertain Reach = iota
	// Reachable means the statement executes whenever its function reaches it in sequence
	Reachable
	// Unreachable means the statement never executes
	Unreachable
)

func (r Reach) String() string {
	switch r {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	default:
		return "uncertain"
	}
}

// Reachability classifies statements of a function body
type Reachability interface {
	Check(ctx kitectx.CallContext, exec Context, funcdef pythonast.Node, stmt pythonast.Stmt) Reach
}

// ParamValue is the value bound to one parameter name
type ParamValue struct {
	Name  *pythonast.NameExpr
	Value LazyContext
}

// ParamBinder binds the arguments of an execution to its function's parameters.
// Anonymous executions have no arguments and are bound by searching for call sites.
type ParamBinder interface {
	Bind(ctx kitectx.CallContext, exec *FunctionExecutionContext) []ParamValue
}

// Collaborators are the external services used by an Evaluator. Nil members disable
// the corresponding source of information, except NewBridge which is required.
type Collaborators struct {
	Importer        Importer
	NewBridge       func(*Evaluator) Bridge
	DocstringTypes  ReturnTypeExtractor
	AnnotationTypes ReturnTypeExtractor
	Reachability    Reachability
	Params          ParamBinder
	Logger          *kitelog.Logger
}
