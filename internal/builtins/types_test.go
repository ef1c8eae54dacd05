package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegerWidth(t *testing.T) {
	bits, signed, ok := IntegerWidth("uint256")
	assert.True(t, ok)
	assert.Equal(t, 256, bits)
	assert.False(t, signed)

	bits, signed, ok = IntegerWidth("int8")
	assert.True(t, ok)
	assert.Equal(t, 8, bits)
	assert.True(t, signed)

	_, _, ok = IntegerWidth("bool")
	assert.False(t, ok)
	_, _, ok = IntegerWidth("uint7")
	assert.False(t, ok)
}

func TestIsBuiltinType(t *testing.T) {
	assert.True(t, IsBuiltinType("address"))
	assert.True(t, IsIntegerType("uint64"))
	assert.False(t, IsIntegerType("str"))
	assert.False(t, IsBuiltinType("mapping"))
	assert.Equal(t, 2, GenericArity[Mapping])
}
