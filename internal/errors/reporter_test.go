package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorlin/internal/ast"
)

func TestErrorReporter(t *testing.T) {
	source := `contract Token:
    fn total() -> uint256:
        let x = unknownVar
        return x`

	reporter := NewErrorReporter("token.qrl", source)

	err := UndefinedVariable("unknownVar", ast.Position{Line: 3, Column: 17}, []string{"knownVar", "anotherVar"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable")
	assert.Contains(t, formatted, "unknownVar")
	assert.Contains(t, formatted, "token.qrl:3:17")
	assert.Contains(t, formatted, "did you mean")
	assert.Contains(t, formatted, "knownVar")
}

func TestFormatErrorWithoutPosition(t *testing.T) {
	reporter := NewErrorReporter("token.qir", "module token\n")
	formatted := reporter.FormatError(IRMalformed("Token.transfer", "register %7 is never defined"))

	assert.Contains(t, formatted, "error["+ErrorIRMalformed+"]")
	assert.Contains(t, formatted, "--> token.qir (fn Token.transfer)")
	assert.NotContains(t, formatted, ":0:0")
}

func TestFormatErrorShowsTypesAndFile(t *testing.T) {
	reporter := NewErrorReporter("a.qrl", `let x: uint256 = "s"`)
	formatted := reporter.FormatError(TypeMismatch("uint256", "str", ast.Position{Filename: "b.qrl", Line: 1, Column: 18}))

	assert.Contains(t, formatted, "--> b.qrl:1:18")
	assert.Contains(t, formatted, `let x: uint256 = "s"`)
	assert.Contains(t, formatted, "^")
	assert.Contains(t, formatted, "= expected uint256, found str")
}

func TestFormatListKeepsOrder(t *testing.T) {
	reporter := NewErrorReporter("a.qrl", "break\ncontinue")
	list := List{
		BreakOutsideLoop(ast.Position{Line: 1, Column: 1}),
		ContinueOutsideLoop(ast.Position{Line: 2, Column: 1}),
	}

	formatted := reporter.FormatList(list)
	first := strings.Index(formatted, ErrorBreakOutsideLoop)
	second := strings.Index(formatted, ErrorContinueOutsideLoop)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestUndefinedVariableError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UndefinedVariable("balace", pos, []string{"balance"})
	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Equal(t, KindUndefinedVariable, err.Kind)
	assert.Equal(t, "balace", err.Name)
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'balance'")

	err = UndefinedVariable("xyz", pos, nil)
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "make sure the variable is declared")
}

func TestConstructorsCarryKinds(t *testing.T) {
	pos := ast.Position{Line: 2, Column: 3}

	cases := []struct {
		err  CompilerError
		kind Kind
	}{
		{UndefinedFunction("sende", pos, []string{"sender"}), KindUndefinedFunction},
		{UndefinedType("Foo", "unknown type 'Foo'", pos, nil), KindUndefinedType},
		{CannotInferType("x", pos), KindUndefinedType},
		{TypeMismatch("bool", "uint256", pos), KindTypeMismatch},
		{InvalidOperation("+", "bool", "uint256", pos), KindInvalidOperation},
		{DuplicateDefinition("x", pos), KindDuplicateDefinition},
		{InvalidAssignment("f()", "not an assignable location", pos), KindInvalidAssignment},
		{ImmutableAssignment("x", pos), KindInvalidAssignment},
		{WrongNumberOfArguments("f", 2, 1, pos), KindWrongNumberOfArguments},
		{NotCallable("x", "variable", pos), KindNotCallable},
		{CannotIndex("bool", pos), KindCannotIndex},
		{NoSuchAttribute("Point", "z", pos, []string{"x", "y"}), KindNoSuchAttribute},
		{InvalidReturnType("f", "uint256", "str", pos), KindInvalidReturnType},
		{BreakOutsideLoop(pos), KindBreakOutsideLoop},
		{ContinueOutsideLoop(pos), KindContinueOutsideLoop},
		{IRSyntax("unexpected token", pos), KindIRSyntax},
		{IRMalformed("main", "undefined register %3"), KindIRMalformed},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, tc.err.Kind, tc.err.Message)
		assert.Equal(t, tc.kind.Code(), tc.err.Code, tc.err.Message)
		assert.Equal(t, Error, tc.err.Level)
	}
}

func TestTypeMismatchPayload(t *testing.T) {
	err := TypeMismatch("uint256", "str", ast.Position{Line: 4, Column: 9})
	assert.Equal(t, "uint256", err.Expected)
	assert.Equal(t, "str", err.Found)
	assert.Contains(t, err.Error(), "4:9")
	assert.Contains(t, err.Error(), "expected uint256, found str")
}

func TestInvalidOperationUnary(t *testing.T) {
	err := InvalidOperation("not", "uint256", "", ast.Position{})
	assert.Equal(t, "invalid operation: not uint256", err.Message)
	assert.Contains(t, err.Suggestions[0].Message, "boolean")
}

func TestListError(t *testing.T) {
	list := List{
		TypeMismatch("bool", "str", ast.Position{Line: 1, Column: 1}),
		BreakOutsideLoop(ast.Position{Line: 2, Column: 1}),
	}
	assert.Contains(t, list.Error(), "2 errors")
	assert.True(t, list.HasKind(KindBreakOutsideLoop))
	assert.False(t, list.HasKind(KindNotCallable))
	assert.Equal(t, []Kind{KindTypeMismatch, KindBreakOutsideLoop}, list.Kinds())
	assert.Equal(t, "no errors", List{}.Error())
}

func TestSimilarNames(t *testing.T) {
	assert.Equal(t, []string{"balance", "balances"}, SimilarNames("balanc", []string{"balances", "owner", "balance"}))
	assert.Empty(t, SimilarNames("x", []string{"x"}))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestRecoverInternal(t *testing.T) {
	run := func() (err error) {
		defer func() { err = RecoverInternal(recover(), err) }()
		ICE("scope stack underflow at depth %d", 0)
		return nil
	}

	err := run()
	require.Error(t, err)
	var ice *InternalError
	require.ErrorAs(t, err, &ice)
	assert.Contains(t, ice.Error(), "scope stack underflow at depth 0")
	assert.Equal(t, KindInternal, ice.ToCompilerError().Kind)

	assert.Panics(t, func() {
		_ = RecoverInternal("not an ICE", nil)
	})
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Semantic Analysis", GetErrorCategory(ErrorTypeMismatch))
	assert.Equal(t, "Type System", GetErrorCategory(ErrorCannotIndex))
	assert.Equal(t, "Flow Control", GetErrorCategory(ErrorBreakOutsideLoop))
	assert.Equal(t, "IR Syntax", GetErrorCategory(ErrorIRSyntax))
	assert.Equal(t, "Internal", GetErrorCategory(ErrorInternal))
	assert.Equal(t, "Value cannot be indexed", GetErrorDescription(ErrorCannotIndex))
	assert.Equal(t, "BreakOutsideLoop", KindBreakOutsideLoop.String())
}
