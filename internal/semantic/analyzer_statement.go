package semantic

import (
	"quorlin/internal/ast"
	"quorlin/internal/errors"
	"quorlin/internal/types"
)

func (a *Analyzer) checkBlock(body []ast.Stmt) {
	for _, stmt := range body {
		a.checkStmt(stmt)
	}
}

// checkScopedBlock checks body in a fresh child frame
func (a *Analyzer) checkScopedBlock(body []ast.Stmt) {
	a.pushScope()
	a.checkBlock(body)
	a.popScope()
}

func (a *Analyzer) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		a.checkLet(s)
	case *ast.AssignStmt:
		a.checkAssign(s)
	case *ast.IfStmt:
		a.checkIf(s)
	case *ast.WhileStmt:
		a.checkWhile(s)
	case *ast.ReturnStmt:
		a.checkReturn(s)
	case *ast.BreakStmt:
		if !a.body.inLoop {
			a.addCompilerError(errors.BreakOutsideLoop(s.Pos))
		}
	case *ast.ContinueStmt:
		if !a.body.inLoop {
			a.addCompilerError(errors.ContinueOutsideLoop(s.Pos))
		}
	case *ast.ExprStmt:
		a.checkExpr(s.Expr)
	default:
		errors.ICE("unknown statement %T", stmt)
	}
}

func (a *Analyzer) checkLet(s *ast.LetStmt) {
	var valueType types.Type
	if s.Value != nil {
		// The initializer is checked before the name is bound, so `let x = x`
		// refers to an outer x.
		valueType = a.checkExpr(s.Value)
	}

	var varType types.Type
	switch {
	case s.Type != nil && s.Value != nil:
		varType = a.resolveType(s.Type)
		if !types.Compatible(varType, valueType) {
			a.addTypeMismatchError(varType, valueType, s.Value.NodePos())
		}
	case s.Type != nil:
		varType = a.resolveType(s.Type)
	case s.Value != nil:
		varType = valueType
	default:
		a.addCompilerError(errors.CannotInferType(s.Name.Value, s.Name.Pos))
		varType = types.ErrorT
	}

	a.define(NewVariableSymbol(s.Name.Value, varType, s.Mutable, s.Name.Pos))
}

func (a *Analyzer) checkAssign(s *ast.AssignStmt) {
	targetType := a.checkExpr(s.Target)
	valueType := a.checkExpr(s.Value)

	if !a.checkAssignable(s.Target) {
		return
	}

	if !types.Compatible(targetType, valueType) {
		a.addTypeMismatchError(targetType, valueType, s.Value.NodePos())
	}
}

// checkAssignable reports targets that are not writable locations
func (a *Analyzer) checkAssignable(target ast.Expr) bool {
	switch t := target.(type) {
	case *ast.IdentExpr:
		sym, ok := a.scopes.Lookup(t.Name)
		if !ok || sym.Kind != SymbolVariable {
			return true // already reported while checking the target
		}
		if !sym.Mutable {
			a.addCompilerError(errors.ImmutableAssignment(t.Name, t.Pos))
			return false
		}
		return true
	case *ast.AttributeExpr:
		base, ok := a.env.Lookup(t.Value)
		if !ok || types.IsInvalid(base) {
			return true
		}
		if a.isTypeName(t.Value) {
			a.addCompilerError(errors.InvalidAssignment(t.String(), "enum variants are constants", t.Attr.Pos))
			return false
		}
		f, found := a.context.Types().Field(base, t.Attr.Value)
		if !found {
			return false // methods and unknown members were reported while checking the target
		}
		if f.Constant {
			a.addCompilerError(errors.InvalidAssignment(t.String(), "storage variable is declared const", t.Attr.Pos))
			return false
		}
		return true
	case *ast.IndexExpr:
		// Elements of lists and mappings are always writable
		return true
	default:
		a.addCompilerError(errors.InvalidAssignment(target.String(), "not an assignable location", target.NodePos()))
		return false
	}
}

func (a *Analyzer) checkIf(s *ast.IfStmt) {
	for _, branch := range s.Branches {
		a.expectBool(branch.Cond)
		a.checkScopedBlock(branch.Body)
	}
	if s.Else != nil {
		a.checkScopedBlock(s.Else)
	}
}

func (a *Analyzer) checkWhile(s *ast.WhileStmt) {
	a.expectBool(s.Cond)

	saved := a.body.inLoop
	a.body.inLoop = true
	a.checkScopedBlock(s.Body)
	a.body.inLoop = saved
}

func (a *Analyzer) checkReturn(s *ast.ReturnStmt) {
	expected := a.body.returnType

	if s.Value == nil {
		if expected != nil {
			a.addCompilerError(errors.InvalidReturnType(a.body.function, expected.String(), types.UnitT.String(), s.Pos))
		}
		return
	}

	actual := a.checkExpr(s.Value)
	switch {
	case expected == nil:
		a.addCompilerError(errors.InvalidReturnType(a.body.function, types.UnitT.String(), actual.String(), s.Value.NodePos()))
	case !types.Compatible(expected, actual):
		a.addCompilerError(errors.InvalidReturnType(a.body.function, expected.String(), actual.String(), s.Value.NodePos()))
	}
}

// expectBool checks a condition and reports anything but bool
func (a *Analyzer) expectBool(cond ast.Expr) {
	t := a.checkExpr(cond)
	if !types.Compatible(types.BoolT, t) {
		a.addTypeMismatchError(types.BoolT, t, cond.NodePos())
	}
}
