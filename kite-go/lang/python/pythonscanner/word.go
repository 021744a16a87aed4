// Package pythonscanner defines the lexical leaves of a python syntax tree.
package pythonscanner

import (
	"fmt"
	"go/token"
	"strings"
)

// Word represents a token together with its position and literal content
type Word struct {
	Token   Token
	Begin   token.Pos
	End     token.Pos
	Literal string
}

// String gets a string representation of a lexical symbol
func (w Word) String() string {
	switch {
	case w.Token.IsLiteral():
		s := w.Token.String()
		if len(w.Literal) > 50 || strings.Contains(w.Literal, "\n") {
			return s + fmt.Sprintf("[%d chars]", len(w.Literal))
		}
		return s + "[" + w.Literal + "]"
	case w.Token.IsOperator():
		return `"` + w.Token.String() + `"`
	default:
		return w.Token.String() + "[" + w.Literal + "]"
	}
}
