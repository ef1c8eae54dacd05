package semantic

import (
	"quorlin/internal/ast"
	"quorlin/internal/errors"
	"quorlin/internal/types"
)

var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true, "**": true}

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

var logicalOps = map[string]bool{"and": true, "or": true}

// checkExpr infers the type of expr, records it in the type environment and
// returns it. Errors are recorded and yield the error type.
func (a *Analyzer) checkExpr(expr ast.Expr) types.Type {
	t := a.inferExpr(expr)
	a.env.Register(expr, t)
	return t
}

func (a *Analyzer) inferExpr(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		return types.Uint256
	case *ast.StringLit:
		return types.StrT
	case *ast.BoolLit:
		return types.BoolT
	case *ast.NoneLit:
		return types.NoneT
	case *ast.IdentExpr:
		return a.checkIdent(e)
	case *ast.BinaryExpr:
		return a.checkBinary(e)
	case *ast.UnaryExpr:
		return a.checkUnary(e)
	case *ast.CallExpr:
		return a.checkCall(e)
	case *ast.AttributeExpr:
		return a.checkAttribute(e)
	case *ast.IndexExpr:
		return a.checkIndex(e)
	default:
		errors.ICE("unknown expression %T", expr)
		return types.ErrorT
	}
}

func (a *Analyzer) checkIdent(e *ast.IdentExpr) types.Type {
	sym, ok := a.scopes.Lookup(e.Name)
	if !ok || sym.Kind != SymbolVariable {
		a.addUndefinedVariableError(e.Name, e.Pos)
		return types.ErrorT
	}
	return sym.Type
}

func (a *Analyzer) checkBinary(e *ast.BinaryExpr) types.Type {
	left := a.checkExpr(e.Left)
	right := a.checkExpr(e.Right)

	switch {
	case arithmeticOps[e.Op]:
		if types.IsInvalid(left) || types.IsInvalid(right) {
			return types.ErrorT
		}
		if !types.IsNumeric(left) || !types.IsNumeric(right) {
			a.addCompilerError(errors.InvalidOperation(e.Op, left.String(), right.String(), e.Pos))
			return types.ErrorT
		}
		return left

	case comparisonOps[e.Op]:
		if !types.Compatible(left, right) {
			a.addTypeMismatchError(left, right, e.Right.NodePos())
		}
		return types.BoolT

	case logicalOps[e.Op]:
		if !types.Compatible(types.BoolT, left) {
			a.addTypeMismatchError(types.BoolT, left, e.Left.NodePos())
		}
		if !types.Compatible(types.BoolT, right) {
			a.addTypeMismatchError(types.BoolT, right, e.Right.NodePos())
		}
		return types.BoolT
	}

	a.addCompilerError(errors.InvalidOperation(e.Op, left.String(), right.String(), e.Pos))
	return types.ErrorT
}

func (a *Analyzer) checkUnary(e *ast.UnaryExpr) types.Type {
	operand := a.checkExpr(e.Value)

	switch e.Op {
	case "-":
		if types.IsInvalid(operand) {
			return types.ErrorT
		}
		if !types.IsNumeric(operand) {
			a.addCompilerError(errors.InvalidOperation(e.Op, operand.String(), "", e.Pos))
			return types.ErrorT
		}
		return operand
	case "not":
		if !types.Compatible(types.BoolT, operand) {
			a.addCompilerError(errors.InvalidOperation(e.Op, operand.String(), "", e.Pos))
		}
		return types.BoolT
	}

	a.addCompilerError(errors.InvalidOperation(e.Op, operand.String(), "", e.Pos))
	return types.ErrorT
}

func (a *Analyzer) checkCall(e *ast.CallExpr) types.Type {
	sig, name := a.resolveCallee(e.Callee)

	argTypes := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.checkExpr(arg)
	}

	if sig == nil {
		return types.ErrorT
	}

	if len(e.Args) != len(sig.Params) {
		a.addCompilerError(errors.WrongNumberOfArguments(name, len(sig.Params), len(e.Args), e.Pos))
	}
	for i := 0; i < len(e.Args) && i < len(sig.Params); i++ {
		if !types.Compatible(sig.Params[i], argTypes[i]) {
			a.addTypeMismatchError(sig.Params[i], argTypes[i], e.Args[i].NodePos())
		}
	}

	return sig.ResultType()
}

// resolveCallee finds the signature a call refers to. It returns nil after
// recording a diagnostic when the callee is not a function.
func (a *Analyzer) resolveCallee(callee ast.Expr) (*types.Signature, string) {
	switch c := callee.(type) {
	case *ast.IdentExpr:
		sym, ok := a.scopes.Lookup(c.Name)
		if !ok {
			a.addUndefinedFunctionError(c.Name, c.Pos)
			return nil, c.Name
		}
		if sym.Kind != SymbolFunction {
			a.addCompilerError(errors.NotCallable(c.Name, sym.Kind.String(), c.Pos))
			return nil, c.Name
		}
		return sym.Signature, c.Name

	case *ast.AttributeExpr:
		if mod, ok := a.moduleSymbol(c.Value); ok {
			qualified := mod.Name + "." + c.Attr.Value
			if sig, found := mod.Members[c.Attr.Value]; found {
				return sig, qualified
			}
			a.addNoSuchModuleMemberError(mod, c.Attr)
			return nil, qualified
		}

		base := a.checkExpr(c.Value)
		if types.IsInvalid(base) {
			return nil, c.Attr.Value
		}
		if sig, ok := a.context.Types().Method(base, c.Attr.Value); ok {
			return sig, c.Attr.Value
		}
		if _, ok := a.context.Types().Field(base, c.Attr.Value); ok {
			a.addCompilerError(errors.NotCallable(c.Attr.Value, "field", c.Attr.Pos))
			return nil, c.Attr.Value
		}
		a.addNoSuchAttributeError(base, c.Attr)
		return nil, c.Attr.Value
	}

	t := a.checkExpr(callee)
	if !types.IsInvalid(t) {
		a.addCompilerError(errors.NotCallable(callee.String(), "value of type "+t.String(), callee.NodePos()))
	}
	return nil, callee.String()
}

func (a *Analyzer) checkAttribute(e *ast.AttributeExpr) types.Type {
	if mod, ok := a.moduleSymbol(e.Value); ok {
		if _, found := mod.Members[e.Attr.Value]; !found {
			a.addNoSuchModuleMemberError(mod, e.Attr)
			return types.ErrorT
		}
		a.addCompilerError(errors.NewSemanticError(errors.ErrorNoSuchAttribute,
			"function '"+e.String()+"' must be called", e.Attr.Pos).
			WithName(e.Attr.Value).
			WithSuggestion("add an argument list: "+e.String()+"(...)").
			Build())
		return types.ErrorT
	}

	// Enum variants: `Status.Active` where Status names an enum type
	if ident, ok := e.Value.(*ast.IdentExpr); ok {
		if sym, found := a.scopes.Lookup(ident.Name); found && sym.Kind == SymbolType {
			return a.checkTypeMember(sym, e)
		}
	}

	base := a.checkExpr(e.Value)
	if types.IsInvalid(base) {
		return types.ErrorT
	}
	if f, ok := a.context.Types().Field(base, e.Attr.Value); ok {
		return f.Type
	}
	if _, ok := a.context.Types().Method(base, e.Attr.Value); ok {
		a.addCompilerError(errors.NewSemanticError(errors.ErrorNoSuchAttribute,
			"method '"+e.Attr.Value+"' must be called", e.Attr.Pos).
			WithName(e.Attr.Value).
			WithSuggestion("add an argument list: "+e.String()+"(...)").
			Build())
		return types.ErrorT
	}
	a.addNoSuchAttributeError(base, e.Attr)
	return types.ErrorT
}

func (a *Analyzer) checkTypeMember(sym *Symbol, e *ast.AttributeExpr) types.Type {
	named, ok := sym.Type.(types.Named)
	if ok && named.Kind == types.EnumKind {
		if a.context.Types().HasVariant(named.Name, e.Attr.Value) {
			a.env.Register(e.Value, named)
			return named
		}
		a.addNoSuchAttributeError(named, e.Attr)
		return types.ErrorT
	}
	a.addNoSuchAttributeError(sym.Type, e.Attr)
	return types.ErrorT
}

func (a *Analyzer) checkIndex(e *ast.IndexExpr) types.Type {
	base := a.checkExpr(e.Value)
	index := a.checkExpr(e.Index)

	switch b := base.(type) {
	case types.Invalid:
		return types.ErrorT
	case types.Array:
		return b.Elem
	case types.Mapping:
		if !types.Compatible(b.Key, index) {
			a.addTypeMismatchError(b.Key, index, e.Index.NodePos())
		}
		return b.Value
	}

	a.addCompilerError(errors.CannotIndex(base.String(), e.Pos))
	return types.ErrorT
}
