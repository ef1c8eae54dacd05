package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSEReusesPureExpressions(t *testing.T) {
	m := singleBlock(Return{Value: r(3)},
		add(r(1), r(0), c(4)),
		add(r(2), c(4), r(0)),
		Keccak{Dest: 3, Args: []Value{r(1), r(2)}},
	)
	m.Functions[0].Params = []*Param{{Name: "x", Reg: 0}}

	out := RunPass(CommonSubexpressionElimination{}, m, false)
	assert.Equal(t, []Instruction{
		add(r(1), r(0), c(4)),
		Assign{Dest: 2, Src: r(1)},
		Keccak{Dest: 3, Args: []Value{r(1), r(2)}},
	}, entry(out))
}

func TestCSEKeepsOperandOrderForNonCommutative(t *testing.T) {
	m := singleBlock(Return{Value: r(2)},
		Arith{Op: OpSub, Dest: 1, Left: c(9), Right: c(4)},
		Arith{Op: OpSub, Dest: 2, Left: c(4), Right: c(9)},
	)

	out := RunPass(CommonSubexpressionElimination{}, m, false)
	assert.Equal(t, entry(m), entry(out))
}

func TestCSEInvalidatesAtStorageWrite(t *testing.T) {
	m := singleBlock(Return{Value: r(3)},
		SLoad{Dest: 0, Slot: c(7)},
		SLoad{Dest: 1, Slot: c(7)},
		SStore{Slot: c(7), Value: c(0)},
		SLoad{Dest: 2, Slot: c(7)},
		Caller{Dest: 3},
	)

	out := RunPass(CommonSubexpressionElimination{}, m, false)
	assert.Equal(t, []Instruction{
		SLoad{Dest: 0, Slot: c(7)},
		Assign{Dest: 1, Src: r(0)},
		SStore{Slot: c(7), Value: c(0)},
		SLoad{Dest: 2, Slot: c(7)},
		Caller{Dest: 3},
	}, entry(out))
}

func TestCSEDoesNotCrossBlocks(t *testing.T) {
	m := tokenModule()
	transfer := m.Contracts[0].Functions[0]
	transfer.Blocks["send"].Instructions = append(
		[]Instruction{Caller{Dest: transfer.NextRegister}},
		transfer.Blocks["send"].Instructions...)
	transfer.NextRegister++

	out := RunPass(CommonSubexpressionElimination{}, m, false)
	assert.Equal(t, transfer.Blocks["send"].Instructions, out.Contracts[0].Functions[0].Blocks["send"].Instructions)
}

func TestExpressionKey(t *testing.T) {
	k1, ok := ExpressionKey(Compare{Op: CmpEq, Dest: 1, Left: r(0), Right: c(3)})
	assert.True(t, ok)
	k2, _ := ExpressionKey(Compare{Op: CmpEq, Dest: 2, Left: c(3), Right: r(0)})
	assert.Equal(t, k1, k2)

	k3, _ := ExpressionKey(Compare{Op: CmpLt, Dest: 3, Left: c(3), Right: r(0)})
	k4, _ := ExpressionKey(Compare{Op: CmpLt, Dest: 4, Left: r(0), Right: c(3)})
	assert.NotEqual(t, k3, k4)

	unchecked, _ := ExpressionKey(add(r(1), r(0), c(1)))
	checked, _ := ExpressionKey(Arith{Op: OpAdd, Dest: 2, Left: r(0), Right: c(1), Checked: true})
	assert.NotEqual(t, unchecked, checked)

	_, ok = ExpressionKey(Assign{Dest: 1, Src: c(1)})
	assert.False(t, ok)
	_, ok = ExpressionKey(Call{Dest: 1, Callee: "f"})
	assert.False(t, ok)
}
