// Package pythonparser builds pythonast syntax trees from python source using tree-sitter.
package pythonparser

import (
	"fmt"
	"go/token"

	sitter "github.com/kiteco/go-tree-sitter"
	"github.com/kiteco/go-tree-sitter/python"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
)

// ErrorMode determines how the parser behaves when the source has syntax errors.
type ErrorMode int

const (
	// FailFast returns a nil module and an error if the source has any syntax error.
	FailFast ErrorMode = iota

	// Recover converts what it can. Unparseable regions become BadStmt and
	// BadExpr nodes and the returned error lists their positions.
	Recover
)

// Options represents configuration for parsing
type Options struct {
	ErrorMode ErrorMode
	// NoCache skips the process-wide parse cache
	NoCache bool
}

// SyntaxError locates one region tree-sitter could not parse
type SyntaxError struct {
	Pos token.Pos
	End token.Pos
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at [%d, %d)", e.Pos, e.End)
}

// Parse parses python source into a module. In Recover mode a non-nil module
// is returned even if err is non-nil.
func Parse(ctx kitectx.Context, src []byte, opts Options) (*pythonast.Module, error) {
	ctx.CheckAbort()

	if !opts.NoCache {
		if entry, ok := getCachedParse(src, opts.ErrorMode); ok {
			return entry.mod, entry.err
		}
	}

	mod, err := parse(ctx, src, opts)
	if !opts.NoCache {
		cacheParse(src, opts.ErrorMode, mod, err)
	}
	return mod, err
}

func parse(ctx kitectx.Context, src []byte, opts Options) (*pythonast.Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree := parser.Parse(src)
	defer tree.Close()

	root := tree.RootNode()
	c := newConverter(ctx, src)
	if root.HasError() {
		c.collectErrors(root)
	}
	if opts.ErrorMode == FailFast && c.errs != nil {
		return nil, c.errs
	}

	mod := c.module(root)
	if c.errs != nil {
		return mod, c.errs
	}
	return mod, nil
}
