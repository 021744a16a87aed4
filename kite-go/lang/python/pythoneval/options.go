package pythoneval

// Options bounds the work done by an Evaluator
type Options struct {
	// MaxRecursionDepth is the kitectx call limit for one public query
	MaxRecursionDepth int `yaml:"max_recursion_depth"`
	// MaxResultSize truncates every inferred set
	MaxResultSize int `yaml:"max_result_size"`
	// MaxExecutions bounds the number of function executions per session
	MaxExecutions int `yaml:"max_executions"`
	// MaxFunctionRecursion bounds how often one function may be active on the stack
	MaxFunctionRecursion int `yaml:"max_function_recursion"`
	// DynamicParamsLimit bounds the call sites examined for a function with no known caller
	DynamicParamsLimit int `yaml:"dynamic_params_limit"`
	// WrapInstanceElements makes instance attribute names report their nodes through
	// InstanceElement wrappers. Experimental.
	WrapInstanceElements bool `yaml:"wrap_instance_elements"`
	// Trace logs unsupported operations, guard trips and truncations at debug level
	Trace bool `yaml:"trace"`
}

// DefaultOptions are used for zero-valued fields of the options passed to NewEvaluator
var DefaultOptions = Options{
	MaxRecursionDepth:    400,
	MaxResultSize:        64,
	MaxExecutions:        5000,
	MaxFunctionRecursion: 6,
	DynamicParamsLimit:   16,
}

func (o Options) withDefaults() Options {
	if o.MaxRecursionDepth <= 0 {
		o.MaxRecursionDepth = DefaultOptions.MaxRecursionDepth
	}
	if o.MaxResultSize <= 0 {
		o.MaxResultSize = DefaultOptions.MaxResultSize
	}
	if o.MaxExecutions <= 0 {
		o.MaxExecutions = DefaultOptions.MaxExecutions
	}
	if o.MaxFunctionRecursion <= 0 {
		o.MaxFunctionRecursion = DefaultOptions.MaxFunctionRecursion
	}
	if o.DynamicParamsLimit <= 0 {
		o.DynamicParamsLimit = DefaultOptions.DynamicParamsLimit
	}
	return o
}
