package semantic

import (
	"sort"

	"quorlin/internal/ast"
	"quorlin/internal/builtins"
	"quorlin/internal/errors"
)

// isTypeName reports whether expr is a bare identifier naming a struct or enum
func (a *Analyzer) isTypeName(expr ast.Expr) bool {
	ident, ok := expr.(*ast.IdentExpr)
	if !ok {
		return false
	}
	sym, found := a.scopes.Lookup(ident.Name)
	return found && sym.Kind == SymbolType
}

// moduleSymbol returns the standard library module a bare identifier names
func (a *Analyzer) moduleSymbol(expr ast.Expr) (*Symbol, bool) {
	ident, ok := expr.(*ast.IdentExpr)
	if !ok {
		return nil, false
	}
	sym, found := a.scopes.Lookup(ident.Name)
	if !found || sym.Kind != SymbolModule {
		return nil, false
	}
	return sym, true
}

func (a *Analyzer) findSimilarVariables(name string) []string {
	return errors.SimilarNames(name, a.scopes.Visible(SymbolVariable))
}

func (a *Analyzer) findSimilarFunctions(name string) []string {
	return errors.SimilarNames(name, a.scopes.Visible(SymbolFunction))
}

func (a *Analyzer) findSimilarTypes(name string) []string {
	candidates := a.scopes.Visible(SymbolType)
	candidates = append(candidates, a.scopes.Visible(SymbolContract)...)
	for builtin := range builtins.BuiltinTypes {
		candidates = append(candidates, builtin)
	}
	for generic := range builtins.GenericArity {
		candidates = append(candidates, generic)
	}
	sort.Strings(candidates)
	return errors.SimilarNames(name, candidates)
}
