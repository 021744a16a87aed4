package pythonscanner

// Token identifies the lexical class of a Word
type Token int

// Token kinds. Operators get individual tokens so that consumers can switch on them.
const (
	Illegal Token = iota
	BadToken

	literalBegin
	Ident
	Int
	Float
	Imag
	String
	literalEnd

	operatorBegin
	Add
	Sub
	Mul
	MatMul
	Div
	FloorDiv
	Mod
	Pow
	BitAnd
	BitOr
	BitXor
	LeftShift
	RightShift
	BitNot
	Lt
	Gt
	Le
	Ge
	Eq
	Ne
	In
	NotIn
	Is
	IsNot
	And
	Or
	Not
	operatorEnd
)

var tokenStrings = map[Token]string{
	Illegal:  "Illegal",
	BadToken: "BadToken",

	Ident:  "Ident",
	Int:    "Int",
	Float:  "Float",
	Imag:   "Imag",
	String: "String",

	Add:        "+",
	Sub:        "-",
	Mul:        "*",
	MatMul:     "@",
	Div:        "/",
	FloorDiv:   "//",
	Mod:        "%",
	Pow:        "**",
	BitAnd:     "&",
	BitOr:      "|",
	BitXor:     "^",
	LeftShift:  "<<",
	RightShift: ">>",
	BitNot:     "~",
	Lt:         "<",
	Gt:         ">",
	Le:         "<=",
	Ge:         ">=",
	Eq:         "==",
	Ne:         "!=",
	In:         "in",
	NotIn:      "not in",
	Is:         "is",
	IsNot:      "is not",
	And:        "and",
	Or:         "or",
	Not:        "not",
}

var operators = make(map[string]Token)

func init() {
	for tok := operatorBegin + 1; tok < operatorEnd; tok++ {
		operators[tokenStrings[tok]] = tok
	}
	operators["<>"] = Ne
}

// String returns the operator text for operators and the kind name otherwise
func (t Token) String() string {
	if s, ok := tokenStrings[t]; ok {
		return s
	}
	return "Token(?)"
}

// IsLiteral is true for identifiers, numbers and strings
func (t Token) IsLiteral() bool {
	return literalBegin < t && t < literalEnd
}

// IsOperator is true for operator tokens
func (t Token) IsOperator() bool {
	return operatorBegin < t && t < operatorEnd
}

// IsComparison is true for operators that produce a bool
func (t Token) IsComparison() bool {
	switch t {
	case Lt, Gt, Le, Ge, Eq, Ne, In, NotIn, Is, IsNot:
		return true
	}
	return false
}

// LookupOperator returns the token for operator text; augmented forms such as "+=" map to
// their binary operator. Whitespace inside "not in" and "is not" must be normalized to one space.
func LookupOperator(op string) (Token, bool) {
	if len(op) > 1 && op[len(op)-1] == '=' {
		switch op {
		case "==", "!=", "<=", ">=":
		default:
			op = op[:len(op)-1]
		}
	}
	tok, ok := operators[op]
	return tok, ok
}
