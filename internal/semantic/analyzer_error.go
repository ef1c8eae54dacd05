package semantic

import (
	"sort"

	"quorlin/internal/ast"
	"quorlin/internal/errors"
	"quorlin/internal/types"
)

func (a *Analyzer) addCompilerError(err errors.CompilerError) {
	log.Debugf("%s", err.Error())
	a.errors = append(a.errors, err)
}

func (a *Analyzer) addUndefinedVariableError(name string, pos ast.Position) {
	similar := a.findSimilarVariables(name)
	a.addCompilerError(errors.UndefinedVariable(name, pos, similar))
}

func (a *Analyzer) addUndefinedFunctionError(name string, pos ast.Position) {
	similar := a.findSimilarFunctions(name)
	a.addCompilerError(errors.UndefinedFunction(name, pos, similar))
}

func (a *Analyzer) addUndefinedTypeError(err error) {
	unknown, ok := err.(*types.UnknownTypeError)
	if !ok || unknown.Expr == nil {
		errors.ICE("unexpected type resolution failure: %v", err)
	}
	name := unknown.Expr.Name.Value
	a.addCompilerError(errors.UndefinedType(name, unknown.Reason, unknown.Expr.Pos, a.findSimilarTypes(name)))
}

func (a *Analyzer) addTypeMismatchError(expected, actual types.Type, pos ast.Position) {
	a.addCompilerError(errors.TypeMismatch(expected.String(), actual.String(), pos))
}

func (a *Analyzer) addNoSuchAttributeError(base types.Type, attr ast.Ident) {
	available := a.context.Types().MemberNames(base)
	a.addCompilerError(errors.NoSuchAttribute(base.String(), attr.Value, attr.Pos, available))
}

func (a *Analyzer) addNoSuchModuleMemberError(mod *Symbol, member ast.Ident) {
	available := make([]string, 0, len(mod.Members))
	for name := range mod.Members {
		available = append(available, name)
	}
	sort.Strings(available)
	a.addCompilerError(errors.NoSuchModuleMember(mod.Name, member.Value, member.Pos, available))
}
