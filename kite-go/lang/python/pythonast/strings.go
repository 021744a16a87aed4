package pythonast

import (
	"strings"
)

// StringValue returns the concatenated contents of the literals in a StringExpr,
// with prefixes and quotes removed and simple escapes decoded. Formatted strings
// are returned with their replacement fields verbatim.
func StringValue(s *StringExpr) string {
	var b strings.Builder
	for _, w := range s.Strings {
		b.WriteString(literalContents(w.Literal))
	}
	return b.String()
}

// StringPrefix returns the lower-cased prefix letters of a string literal, e.g. "rb"
func StringPrefix(lit string) string {
	i := strings.IndexAny(lit, `'"`)
	if i < 0 {
		return ""
	}
	return strings.ToLower(lit[:i])
}

func literalContents(lit string) string {
	prefix := StringPrefix(lit)
	body := lit[len(prefix):]
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(body) >= 2*len(q) && strings.HasPrefix(body, q) && strings.HasSuffix(body, q) {
			body = body[len(q) : len(body)-len(q)]
			break
		}
	}
	if strings.Contains(prefix, "r") {
		return body
	}
	return unescape(body)
}

var escapes = map[byte]string{
	'n':  "\n",
	't':  "\t",
	'r':  "\r",
	'0':  "\x00",
	'\\': "\\",
	'\'': "'",
	'"':  "\"",
	'\n': "",
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			if rep, ok := escapes[s[i+1]]; ok {
				b.WriteString(rep)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
