// Package pythonanalyzer wires the evaluator to its default collaborators and answers
// queries about the values of expressions in python files.
package pythonanalyzer

import (
	"path"
	"sort"
	"strings"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythonast"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoncompiled"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonenv"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonflow"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonhints"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonparams"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonparser"
	"github.com/kiteco/pyeval/kite-golib/errors"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/kiteco/pyeval/kite-golib/kitelog"
	"github.com/kiteco/pyeval/kite-golib/linenumber"
)

// Session is one analysis over a file system. It is not safe for concurrent use.
type Session struct {
	cfg      Config
	importer *pythonenv.Importer
	eval     *pythoneval.Evaluator
	logger   *kitelog.Logger
}

// NewSession creates a session reading modules from fs. logger may be nil.
func NewSession(cfg Config, fs pythonenv.FileSystem, logger *kitelog.Logger) (*Session, error) {
	if logger == nil {
		logger = kitelog.Nop
	}
	importer, err := pythonenv.NewImporter(fs, cfg.SysPath)
	if err != nil {
		return nil, err
	}

	binder := pythonparams.NewBinder()
	binder.Dynamic = !cfg.NoDynamicParams
	collab := pythoneval.Collaborators{
		Importer:        importer,
		NewBridge:       pythoncompiled.NewBridge,
		AnnotationTypes: pythonhints.AnnotationTypes{},
		Reachability:    pythonflow.NewChecker(),
		Params:          binder,
		Logger:          logger,
	}
	if !cfg.NoDocstrings {
		collab.DocstringTypes = pythonhints.DocstringTypes{}
	}

	return &Session{
		cfg:      cfg,
		importer: importer,
		eval:     pythoneval.NewEvaluator(collab, cfg.Options),
		logger:   logger,
	}, nil
}

// Evaluator is the session's evaluator
func (s *Session) Evaluator() *pythoneval.Evaluator { return s.eval }

// Load returns the module for a file of the session's file system
func (s *Session) Load(ctx kitectx.Context, srcpath string) (*pythoneval.ModuleContext, error) {
	return s.importer.Load(ctx, s.eval, srcpath)
}

// LoadSource registers source that is not read from the file system, such as an
// unsaved buffer, as the module at srcpath
func (s *Session) LoadSource(ctx kitectx.Context, srcpath string, src []byte) (*pythoneval.ModuleContext, error) {
	mod, err := pythonparser.Parse(ctx, src, pythonparser.Options{ErrorMode: pythonparser.Recover})
	if mod == nil {
		return nil, errors.Wrapf(err, "error parsing %s", srcpath)
	}
	if err != nil {
		s.logger.Debugf("pythonanalyzer: %s has syntax errors at %s", srcpath, strings.Join(SyntaxErrorPositions(src, err), ", "))
	}
	var name string
	if srcpath != "" {
		srcpath = path.Clean(srcpath)
		name = s.importer.ModuleName(srcpath)
	}
	return s.eval.ModuleContext(mod, name, srcpath), nil
}

// Infer returns the values of an expression of a module. Names being defined give
// the values bound to them.
func (s *Session) Infer(ctx kitectx.Context, mod *pythoneval.ModuleContext, expr pythonast.Expr) pythoneval.Set {
	owner := s.eval.ContextOf(mod, expr)
	if name, ok := expr.(*pythonast.NameExpr); ok && name.Usage != pythonast.Evaluate {
		return s.eval.InferDefinition(ctx, owner, name)
	}
	return s.eval.Infer(ctx, owner, expr)
}

// Binding is a module level name and its values
type Binding struct {
	Name   string
	Values pythoneval.Set
}

// TopLevel infers every name defined at the top level of a module, sorted by name
func (s *Session) TopLevel(ctx kitectx.Context, mod *pythoneval.ModuleContext) []Binding {
	var out []Binding
	seen := make(map[string]bool)
	for _, name := range s.eval.Names(ctx, mod, pythoneval.FilterOptions{SearchGlobal: true}) {
		if _, ok := name.(*pythoneval.TreeName); !ok || name.Parent() != pythoneval.Context(mod) || seen[name.String()] {
			continue
		}
		seen[name.String()] = true
		out = append(out, Binding{
			Name:   name.String(),
			Values: s.eval.InferName(ctx, mod, name.String()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SyntaxErrorPositions lists the line:column positions of the syntax errors in err
func SyntaxErrorPositions(src []byte, err error) []string {
	var errs []error
	if multi, ok := err.(errors.Errors); ok {
		errs = multi.Slice()
	} else if err != nil {
		errs = []error{err}
	}

	lines := linenumber.NewMap(src)
	var out []string
	for _, e := range errs {
		if serr, ok := e.(pythonparser.SyntaxError); ok {
			out = append(out, lines.Position(int(serr.Pos)).String())
		}
	}
	return out
}
