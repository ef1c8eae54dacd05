package semantic

import (
	"github.com/tliron/commonlog"

	"quorlin/internal/ast"
	"quorlin/internal/errors"
	"quorlin/internal/types"
)

var log = commonlog.GetLogger("quorlin.semantic")

type Analyzer struct {
	errors     []errors.CompilerError // All diagnostics, in discovery order
	scopes     *ScopeTable            // Lexical frames, prelude at the root
	env        *TypeEnv               // Inferred type of every checked expression
	context    *ContextRegistry       // Types and standard library
	body       bodyContext            // Current function/loop state
	signatures map[*ast.Function]*types.Signature
	skipped    map[ast.Item]bool // Declarations rejected in pass 1
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) reset() {
	a.errors = make([]errors.CompilerError, 0)
	a.scopes = NewScopeTable()
	a.env = NewTypeEnv()
	a.context = NewContextRegistry()
	a.body = bodyContext{}
	a.signatures = make(map[*ast.Function]*types.Signature)
	a.skipped = make(map[ast.Item]bool)
}

// Analyze validates module. On success it returns the module unchanged; on
// failure it returns an errors.List with every diagnostic found. A broken
// analyzer invariant is returned as an *errors.InternalError instead.
func (a *Analyzer) Analyze(module *ast.Module) (result *ast.Module, err error) {
	a.reset()

	defer func() {
		err = errors.RecoverInternal(recover(), err)
		if err != nil {
			result = nil
		}
	}()

	a.definePrelude()

	// Module items live in their own frame above the prelude so user
	// declarations may reuse standard library names.
	a.pushScope()

	log.Debugf("collecting %d declarations of module %q", len(module.Items), module.Name)
	a.collectDeclarations(module)

	log.Debugf("checking module %q", module.Name)
	a.checkDeclarations(module)

	a.popScope()

	if len(a.errors) > 0 {
		log.Infof("module %q: %d semantic error(s)", module.Name, len(a.errors))
		return nil, errors.List(a.errors)
	}
	return module, nil
}

// GetErrors returns all errors with suggestions and proper formatting
func (a *Analyzer) GetErrors() []errors.CompilerError {
	return a.errors
}

// TypeOf returns the type inferred for expr during the last Analyze call
func (a *Analyzer) TypeOf(expr ast.Expr) (types.Type, bool) {
	if a.env == nil {
		return nil, false
	}
	return a.env.Lookup(expr)
}

// TypeEnv exposes the expression type cache of the last Analyze call
func (a *Analyzer) TypeEnv() *TypeEnv {
	return a.env
}

// Registry exposes the types declared by the last analyzed module
func (a *Analyzer) Registry() *types.TypeRegistry {
	if a.context == nil {
		return nil
	}
	return a.context.Types()
}

func (a *Analyzer) pushScope() {
	a.scopes.Push()
}

func (a *Analyzer) popScope() {
	if !a.scopes.Pop() {
		errors.ICE("scope stack underflow: pop at root frame")
	}
}

// define binds sym in the current frame, recording a diagnostic on conflict
func (a *Analyzer) define(sym *Symbol) bool {
	if err := a.scopes.Define(sym); err != nil {
		if ce, ok := err.(errors.CompilerError); ok {
			a.addCompilerError(ce)
		} else {
			errors.ICE("unexpected define failure: %v", err)
		}
		return false
	}
	return true
}
