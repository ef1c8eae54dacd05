package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorlin/internal/ast"
	"quorlin/internal/errors"
	"quorlin/internal/types"
)

func tokenContract() *ast.Contract {
	return &ast.Contract{
		Name: ident("Token"),
		StateVars: []*ast.StateVar{
			{Name: ident("balances"), Type: typ("mapping", typ("address"), typ("uint256"))},
			{Name: ident("total"), Type: typ("uint256")},
			{Name: ident("decimals"), Type: typ("uint8"), Constant: true},
		},
		Functions: []*ast.Function{
			fn("transfer", []*ast.Param{param("to", typ("address")), param("amount", typ("uint256"))}, typ("bool"),
				let("from", nil, call(name("sender"))),
				exprStmt(call(name("require"), bin(">=", index(attr(name("self"), "balances"), name("from")), name("amount")), str("low"))),
				assign(index(attr(name("self"), "balances"), name("from")),
					bin("-", index(attr(name("self"), "balances"), name("from")), name("amount"))),
				assign(index(attr(name("self"), "balances"), name("to")),
					bin("+", index(attr(name("self"), "balances"), name("to")), name("amount"))),
				exprStmt(call(attr(name("self"), "emit_total"))),
				ret(boolean(true)),
			),
			fn("emit_total", nil, nil,
				assign(name("total"), bin("+", name("total"), num("0"))),
			),
		},
	}
}

func TestValidModule(t *testing.T) {
	m := module(tokenContract())

	a := NewAnalyzer()
	result, err := a.Analyze(m)
	require.NoError(t, err)
	assert.Same(t, m, result)
	assert.Empty(t, a.GetErrors())
}

func TestReturnTypeChecking(t *testing.T) {
	bad := module(fn("f", nil, typ("uint256"), ret(str("text"))))
	_, list, err := analyze(bad)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, errors.KindInvalidReturnType, list[0].Kind)
	assert.Equal(t, "uint256", list[0].Expected)
	assert.Equal(t, "str", list[0].Found)

	good := module(fn("f", nil, typ("uint256"), ret(bin("+", num("1"), num("2")))))
	_, list, err = analyze(good)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReturnWithoutDeclaredType(t *testing.T) {
	m := module(
		fn("f", nil, nil, ret(num("1"))),
		fn("g", nil, typ("bool"), ret(nil)),
		fn("h", nil, nil, ret(nil)),
	)
	_, list, _ := analyze(m)
	require.Len(t, list, 2)
	assert.Equal(t, []errors.Kind{errors.KindInvalidReturnType, errors.KindInvalidReturnType}, list.Kinds())
	assert.Equal(t, "()", list[0].Expected)
	assert.Equal(t, "()", list[1].Found)
}

func TestLoopScoping(t *testing.T) {
	outside := module(fn("f", nil, nil, &ast.BreakStmt{Pos: pos(3)}, &ast.ContinueStmt{Pos: pos(4)}))
	_, list, _ := analyze(outside)
	require.Len(t, list, 2)
	assert.Equal(t, errors.KindBreakOutsideLoop, list[0].Kind)
	assert.Equal(t, 3, list[0].Position.Line)
	assert.Equal(t, errors.KindContinueOutsideLoop, list[1].Kind)

	nested := module(fn("f", nil, nil,
		while(boolean(true),
			ifStmt(boolean(false), &ast.BreakStmt{}),
			&ast.ContinueStmt{},
		),
	))
	_, list, _ = analyze(nested)
	assert.Empty(t, list)

	// the loop flag is restored after the loop body
	after := module(fn("f", nil, nil, while(boolean(true)), &ast.BreakStmt{}))
	_, list, _ = analyze(after)
	require.Len(t, list, 1)
	assert.Equal(t, errors.KindBreakOutsideLoop, list[0].Kind)
}

func TestDiagnosticsAccumulate(t *testing.T) {
	m := module(
		fn("f", nil, nil,
			let("a", typ("bool"), num("1")),
			exprStmt(name("missing")),
			&ast.BreakStmt{},
		),
		fn("g", nil, typ("uint256"), ret(str("x"))),
	)
	_, list, _ := analyze(m)
	assert.Equal(t, []errors.Kind{
		errors.KindTypeMismatch,
		errors.KindUndefinedVariable,
		errors.KindBreakOutsideLoop,
		errors.KindInvalidReturnType,
	}, list.Kinds())
}

func TestErrorTypeSuppressesCascades(t *testing.T) {
	m := module(fn("f", nil, typ("uint256"),
		let("x", nil, name("undefined_thing")),
		let("y", typ("bool"), name("x")),
		let("z", nil, bin("+", name("x"), num("1"))),
		ret(name("x")),
	))
	_, list, _ := analyze(m)
	require.Len(t, list, 1)
	assert.Equal(t, errors.KindUndefinedVariable, list[0].Kind)
}

func TestDuplicateTopLevelDeclarations(t *testing.T) {
	m := module(
		fn("test", nil, typ("uint256"), ret(num("42"))),
		fn("test", nil, typ("str"), ret(num("1"))), // body not checked
		fn("other", nil, nil),
	)
	_, list, _ := analyze(m)
	require.Len(t, list, 1)
	assert.Equal(t, errors.KindDuplicateDefinition, list[0].Kind)
	assert.Equal(t, "test", list[0].Name)
}

func TestForwardReferences(t *testing.T) {
	m := module(
		fn("first", nil, typ("Point"), ret(call(name("second")))),
		fn("second", nil, typ("Point"), ret(call(name("first")))),
		&ast.Struct{Name: ident("Point"), Fields: []*ast.StructField{
			{Name: ident("x"), Type: typ("uint256")},
		}},
	)
	_, list, _ := analyze(m)
	assert.Empty(t, list)
}

func TestUserDeclarationsShadowPrelude(t *testing.T) {
	m := module(
		fn("sender", nil, typ("uint256"), ret(num("1"))),
		fn("f", nil, typ("uint256"), ret(call(name("sender")))),
	)
	_, list, _ := analyze(m)
	assert.Empty(t, list)
}

func TestDuplicateTypeDeclarationLeavesNoType(t *testing.T) {
	m := module(
		fn("foo", nil, nil),
		&ast.Struct{Name: ident("foo"), Fields: []*ast.StructField{
			{Name: ident("x"), Type: typ("uint256")},
		}},
		fn("g", nil, nil, let("s", typ("foo"), nil)),
	)
	_, list, _ := analyze(m)
	assert.Equal(t, []errors.Kind{errors.KindDuplicateDefinition, errors.KindUndefinedType}, list.Kinds())
}

func TestStandardLibraryModules(t *testing.T) {
	m := module(fn("f", nil, typ("address"),
		let("now", typ("uint256"), call(attr(name("evm"), "block_timestamp"))),
		exprStmt(call(attr(name("assert"), "require"), bin(">", name("now"), num("0")), str("late"))),
		exprStmt(call(attr(name("evm"), "balance_of"))),
		exprStmt(call(attr(name("evm"), "sendr"))),
		exprStmt(attr(name("crypto"), "keccak256")),
		ret(call(attr(name("evm"), "sender"))),
	))
	a, list, _ := analyze(m)
	require.Equal(t, []errors.Kind{
		errors.KindWrongNumberOfArguments,
		errors.KindNoSuchAttribute,
		errors.KindNoSuchAttribute,
	}, list.Kinds())
	assert.Equal(t, "evm.balance_of", list[0].Name)
	assert.Contains(t, list[1].Message, "module 'evm' has no function 'sendr'")
	require.NotEmpty(t, list[1].Suggestions)
	assert.Contains(t, list[1].Suggestions[0].Message, "sender")

	sender := m.Items[0].(*ast.Function).Body[5].(*ast.ReturnStmt).Value
	got, ok := a.TypeOf(sender)
	require.True(t, ok)
	assert.Equal(t, types.AddrT, got)
}

func TestUserDeclarationShadowsModule(t *testing.T) {
	m := module(fn("f", []*ast.Param{param("evm", typ("uint256"))}, nil,
		exprStmt(call(attr(name("evm"), "sender"))),
	))
	_, list, _ := analyze(m)
	require.Len(t, list, 1)
	assert.Equal(t, errors.KindNoSuchAttribute, list[0].Kind)
}

func TestLetWithoutTypeOrValue(t *testing.T) {
	m := module(fn("f", nil, nil,
		let("x", nil, nil),
		let("y", typ("uint256"), nil),
		assign(name("x"), bin("+", name("y"), num("1"))),
	))
	_, list, _ := analyze(m)
	require.Len(t, list, 2)
	assert.Equal(t, errors.KindUndefinedType, list[0].Kind)
	assert.Contains(t, list[0].Message, "cannot infer type")
	// x is immutable; its sentinel type does not add a mismatch
	assert.Equal(t, errors.KindInvalidAssignment, list[1].Kind)
}

func TestAssignment(t *testing.T) {
	m := module(fn("f", []*ast.Param{{Name: ident("p"), Type: typ("uint256"), Mutable: true}}, nil,
		letMut("a", nil, num("1")),
		assign(name("a"), num("2")),
		assign(name("p"), num("3")),
		assign(name("a"), str("no")),
		assign(call(name("sender")), num("1")),
	))
	_, list, _ := analyze(m)
	assert.Equal(t, []errors.Kind{errors.KindTypeMismatch, errors.KindInvalidAssignment}, list.Kinds())
}

func TestAssignToEnumVariant(t *testing.T) {
	m := module(
		&ast.Enum{Name: ident("Status"), Variants: []ast.Ident{ident("Active"), ident("Paused")}},
		fn("f", nil, nil,
			letMut("s", nil, attr(name("Status"), "Active")),
			assign(name("s"), attr(name("Status"), "Paused")),
			assign(attr(name("Status"), "Active"), attr(name("Status"), "Paused")),
		),
	)
	_, list, _ := analyze(m)
	require.Len(t, list, 1)
	assert.Equal(t, errors.KindInvalidAssignment, list[0].Kind)
	assert.Contains(t, list[0].Message, "Status.Active")
}

func TestAssignToMethodReportsOnce(t *testing.T) {
	c := tokenContract()
	c.Functions = append(c.Functions, fn("overwrite", nil, nil,
		assign(attr(name("self"), "emit_total"), num("1")),
	))
	_, list, _ := analyze(module(c))
	assert.Equal(t, []errors.Kind{errors.KindNoSuchAttribute}, list.Kinds())
}

func TestConstantStateVariables(t *testing.T) {
	c := tokenContract()
	c.Functions = append(c.Functions, fn("bump", nil, nil,
		assign(attr(name("self"), "decimals"), num("1")),
		assign(name("decimals"), num("1")),
	))
	_, list, _ := analyze(module(c))
	assert.Equal(t, []errors.Kind{errors.KindInvalidAssignment, errors.KindInvalidAssignment}, list.Kinds())
}

func TestConditionsMustBeBool(t *testing.T) {
	m := module(fn("f", nil, nil,
		&ast.IfStmt{
			Branches: []*ast.CondBranch{
				{Cond: num("1")},
				{Cond: boolean(true)},
				{Cond: str("s")},
			},
			Else: []ast.Stmt{},
		},
		while(num("0")),
	))
	_, list, _ := analyze(m)
	require.Len(t, list, 3)
	for _, e := range list {
		assert.Equal(t, errors.KindTypeMismatch, e.Kind)
		assert.Equal(t, "bool", e.Expected)
	}
}

func TestBranchScopes(t *testing.T) {
	m := module(fn("f", nil, typ("uint256"),
		ifStmt(boolean(true), let("inner", nil, num("1"))),
		ret(name("inner")),
	))
	_, list, _ := analyze(m)
	require.Len(t, list, 1)
	assert.Equal(t, errors.KindUndefinedVariable, list[0].Kind)
}

func TestBinaryOperators(t *testing.T) {
	m := module(fn("f", nil, nil,
		let("a", nil, bin("+", num("1"), boolean(true))),
		let("b", nil, bin("==", num("1"), str("x"))),
		let("c", nil, bin("and", boolean(true), num("1"))),
		let("d", nil, bin("<", num("1"), num("2"))),
		let("e", nil, bin("^^", num("1"), num("2"))),
		let("g", nil, &ast.UnaryExpr{Op: "-", Value: boolean(true)}),
		let("h", nil, &ast.UnaryExpr{Op: "not", Value: num("1")}),
		let("i", nil, &ast.UnaryExpr{Op: "not", Value: name("d")}),
	))
	a, list, _ := analyze(m)
	assert.Equal(t, []errors.Kind{
		errors.KindInvalidOperation,
		errors.KindTypeMismatch,
		errors.KindTypeMismatch,
		errors.KindInvalidOperation,
		errors.KindInvalidOperation,
		errors.KindInvalidOperation,
	}, list.Kinds())

	assert.NotNil(t, a.TypeEnv())
	assert.Greater(t, a.TypeEnv().Len(), 0)
}

func TestArithmeticResultIsLeftType(t *testing.T) {
	sum := bin("*", name("a"), name("b"))
	m := module(fn("f", []*ast.Param{param("a", typ("uint8")), param("b", typ("uint256"))}, typ("uint8"),
		ret(sum),
	))
	a, list, _ := analyze(m)
	assert.Empty(t, list)
	got, ok := a.TypeOf(sum)
	require.True(t, ok)
	assert.Equal(t, types.Int{Bits: 8}, got)
}

func TestCalls(t *testing.T) {
	m := module(
		fn("add", []*ast.Param{param("a", typ("uint256")), param("b", typ("uint256"))}, typ("uint256"),
			ret(bin("+", name("a"), name("b")))),
		fn("f", nil, nil,
			let("v", nil, num("1")),
			exprStmt(call(name("add"), num("1"))),
			exprStmt(call(name("add"), num("1"), str("x"))),
			exprStmt(call(name("nope"))),
			exprStmt(call(name("v"))),
			exprStmt(call(num("3"))),
			let("ok", typ("uint256"), call(name("add"), num("1"), num("2"))),
			let("unit", nil, call(name("require"), boolean(true), str("m"))),
		),
	)
	a, list, _ := analyze(m)
	assert.Equal(t, []errors.Kind{
		errors.KindWrongNumberOfArguments,
		errors.KindTypeMismatch,
		errors.KindUndefinedFunction,
		errors.KindNotCallable,
		errors.KindNotCallable,
	}, list.Kinds())

	unit := m.Items[1].(*ast.Function).Body[7].(*ast.LetStmt).Value
	got, ok := a.TypeOf(unit)
	require.True(t, ok)
	assert.Equal(t, types.UnitT, got)
}

func TestUndefinedFunctionSuggestsSimilar(t *testing.T) {
	m := module(fn("f", nil, nil, exprStmt(call(name("sende")))))
	_, list, _ := analyze(m)
	require.Len(t, list, 1)
	require.NotEmpty(t, list[0].Suggestions)
	assert.Contains(t, list[0].Suggestions[0].Message, "sender")
}

func TestAttributesAndMethods(t *testing.T) {
	c := tokenContract()
	c.Functions = append(c.Functions, fn("inspect", nil, nil,
		exprStmt(attr(name("self"), "missing")),
		exprStmt(call(attr(name("self"), "total"))),
		exprStmt(call(attr(name("self"), "transfer"), num("1"), num("2"))),
		exprStmt(attr(name("self"), "emit_total")),
		exprStmt(attr(num("1"), "x")),
	))
	_, list, _ := analyze(module(c))
	assert.Equal(t, []errors.Kind{
		errors.KindNoSuchAttribute,
		errors.KindNotCallable,
		errors.KindTypeMismatch, // 1 is not an address
		errors.KindNoSuchAttribute,
		errors.KindNoSuchAttribute,
	}, list.Kinds())
}

func TestStructFieldsAndEnums(t *testing.T) {
	m := module(
		&ast.Struct{Name: ident("Point"), Fields: []*ast.StructField{
			{Name: ident("x"), Type: typ("uint256")},
			{Name: ident("y"), Type: typ("uint256")},
		}},
		&ast.Enum{Name: ident("Status"), Variants: []ast.Ident{ident("Active"), ident("Paused")}},
		fn("f", []*ast.Param{param("p", typ("Point"))}, typ("uint256"),
			let("s", typ("Status"), attr(name("Status"), "Active")),
			let("bad", nil, attr(name("Status"), "Gone")),
			let("z", nil, attr(name("p"), "z")),
			ret(attr(name("p"), "x")),
		),
	)
	_, list, _ := analyze(m)
	require.Len(t, list, 2)
	assert.Equal(t, errors.KindNoSuchAttribute, list[0].Kind)
	assert.Equal(t, errors.KindNoSuchAttribute, list[1].Kind)
	assert.Contains(t, list[1].Notes[0], "x, y")
}

func TestIndexing(t *testing.T) {
	m := module(fn("f", []*ast.Param{
		param("m", typ("mapping", typ("address"), typ("bool"))),
		param("l", typ("list", typ("uint8"))),
		param("n", typ("uint256")),
	}, nil,
		let("a", typ("bool"), index(name("m"), call(name("sender")))),
		let("b", nil, index(name("m"), num("1"))),
		let("c", typ("uint8"), index(name("l"), str("anything"))),
		let("d", nil, index(name("n"), num("0"))),
	))
	_, list, _ := analyze(m)
	assert.Equal(t, []errors.Kind{errors.KindTypeMismatch, errors.KindCannotIndex}, list.Kinds())
}

func TestUndefinedTypes(t *testing.T) {
	m := module(
		fn("f", []*ast.Param{param("a", typ("uint25"))}, typ("mapping", typ("address")),
			let("x", typ("Nope"), num("1")),
		),
	)
	_, list, _ := analyze(m)
	require.Len(t, list, 3)
	for _, e := range list {
		assert.Equal(t, errors.KindUndefinedType, e.Kind)
	}
	assert.Contains(t, list[0].Suggestions[0].Message, "uint256")
}

func TestDuplicateMembers(t *testing.T) {
	m := module(
		&ast.Struct{Name: ident("P"), Fields: []*ast.StructField{
			{Name: ident("x"), Type: typ("bool")},
			{Name: ident("x"), Type: typ("bool")},
		}},
		fn("f", []*ast.Param{param("a", typ("bool")), param("a", typ("bool"))}, nil,
			let("v", nil, num("1")),
			let("v", nil, num("2")),
		),
	)
	_, list, _ := analyze(m)
	assert.Equal(t, []errors.Kind{
		errors.KindDuplicateDefinition,
		errors.KindDuplicateDefinition,
		errors.KindDuplicateDefinition,
	}, list.Kinds())
}

func TestAnalyzerIsReusable(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.Analyze(module(fn("f", nil, nil, &ast.BreakStmt{})))
	require.Error(t, err)

	_, err = a.Analyze(module(fn("f", nil, nil)))
	require.NoError(t, err)
	assert.Empty(t, a.GetErrors())
}

func TestInternalErrorIsFatal(t *testing.T) {
	m := module(fn("f", nil, nil, nil))
	a := NewAnalyzer()
	_, err := a.Analyze(m)

	var ice *errors.InternalError
	require.ErrorAs(t, err, &ice)
	assert.Contains(t, ice.Message, "unknown statement")
}
