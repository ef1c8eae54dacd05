package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorlin/internal/errors"
	"quorlin/internal/types"
)

func TestShadowing(t *testing.T) {
	st := NewScopeTable()
	require.NoError(t, st.Define(NewVariableSymbol("x", types.Uint256, false, pos(1))))

	st.Push()
	require.NoError(t, st.Define(NewVariableSymbol("x", types.BoolT, false, pos(2))))

	sym, ok := st.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.BoolT, sym.Type)

	require.True(t, st.Pop())
	sym, ok = st.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.Uint256, sym.Type)
}

func TestDuplicateDefinition(t *testing.T) {
	st := NewScopeTable()
	require.NoError(t, st.Define(NewVariableSymbol("x", types.Uint256, false, pos(1))))

	err := st.Define(NewVariableSymbol("x", types.BoolT, false, pos(7)))
	require.Error(t, err)
	ce, ok := err.(errors.CompilerError)
	require.True(t, ok)
	assert.Equal(t, errors.KindDuplicateDefinition, ce.Kind)
	assert.Equal(t, 7, ce.Position.Line, "location of the rejected symbol")

	// the original binding survives
	sym, _ := st.Lookup("x")
	assert.Equal(t, types.Uint256, sym.Type)

	st.Push()
	assert.NoError(t, st.Define(NewVariableSymbol("x", types.BoolT, false, pos(9))))
}

func TestLookupLocalIgnoresAncestors(t *testing.T) {
	st := NewScopeTable()
	require.NoError(t, st.Define(NewVariableSymbol("outer", types.Uint256, false, pos(1))))
	st.Push()

	_, ok := st.LookupLocal("outer")
	assert.False(t, ok)
	_, ok = st.Lookup("outer")
	assert.True(t, ok)
	_, ok = st.Lookup("missing")
	assert.False(t, ok)
}

func TestPopRootIsNoOp(t *testing.T) {
	st := NewScopeTable()
	root := st.Current()
	assert.False(t, st.Pop())
	assert.Equal(t, root, st.Current())
	assert.Equal(t, 0, st.Depth())

	child := st.Push()
	grandchild := st.Push()
	assert.NotEqual(t, child, grandchild)
	assert.Equal(t, 2, st.Depth())
	assert.True(t, st.Pop())
	assert.Equal(t, child, st.Current())
}

func TestVisibleNearestBindingWins(t *testing.T) {
	st := NewScopeTable()
	require.NoError(t, st.Define(NewFunctionSymbol("f", &types.Signature{Name: "f"}, pos(1))))
	require.NoError(t, st.Define(NewVariableSymbol("a", types.Uint256, false, pos(1))))
	st.Push()
	require.NoError(t, st.Define(NewVariableSymbol("f", types.BoolT, false, pos(2))))

	assert.Equal(t, []string{"a", "f"}, st.Visible(SymbolVariable))
	assert.Empty(t, st.Visible(SymbolFunction))
}
