package ir

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestFoldInstruction(t *testing.T) {
	tests := []struct {
		name string
		in   Instruction
		want Instruction
	}{
		{"add constants", add(r(0), c(2), c(3)), Assign{Dest: 0, Src: c(5)}},
		{"mul constants", mul(r(0), c(6), c(7)), Assign{Dest: 0, Src: c(42)}},
		{"mul by one on the right", mul(r(1), r(0), c(1)), Assign{Dest: 1, Src: r(0)}},
		{"mul by one on the left", mul(r(1), c(1), r(0)), Assign{Dest: 1, Src: r(0)}},
		{"mul by zero on the left", mul(r(2), c(0), r(7)), Assign{Dest: 2, Src: c(0)}},
		{"mul by zero on the right", mul(r(2), r(7), c(0)), Assign{Dest: 2, Src: c(0)}},
		{"add register untouched", add(r(1), r(0), c(0)), add(r(1), r(0), c(0))},
		{"sub untouched", Arith{Op: OpSub, Dest: 1, Left: c(5), Right: c(3)}, Arith{Op: OpSub, Dest: 1, Left: c(5), Right: c(3)}},
		{"compare untouched", Compare{Op: CmpLt, Dest: 1, Left: c(1), Right: c(2)}, Compare{Op: CmpLt, Dest: 1, Left: c(1), Right: c(2)}},
		{"store untouched", SStore{Slot: c(0), Value: c(1)}, SStore{Slot: c(0), Value: c(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldInstruction(tt.in))
		})
	}
}

func TestFoldWrapsUnchecked(t *testing.T) {
	maxWord := ConstFrom(new(uint256.Int).SetAllOne())

	got := FoldInstruction(add(r(0), maxWord, c(2)))
	assert.Equal(t, Assign{Dest: 0, Src: c(1)}, got)
}

func TestFoldKeepsOverflowingChecked(t *testing.T) {
	maxWord := ConstFrom(new(uint256.Int).SetAllOne())
	checkedAdd := Arith{Op: OpAdd, Dest: 0, Left: maxWord, Right: c(1), Checked: true}
	checkedMul := Arith{Op: OpMul, Dest: 1, Left: maxWord, Right: c(2), Checked: true}

	assert.Equal(t, checkedAdd, FoldInstruction(checkedAdd))
	assert.Equal(t, checkedMul, FoldInstruction(checkedMul))

	inRange := Arith{Op: OpAdd, Dest: 2, Left: c(1), Right: c(1), Checked: true}
	assert.Equal(t, Assign{Dest: 2, Src: c(2)}, FoldInstruction(inRange))
}

func TestConstantFoldingIsIdempotent(t *testing.T) {
	m := singleBlock(Return{Value: r(2)},
		add(r(0), c(2), c(3)),
		mul(r(1), r(0), c(1)),
		mul(r(2), c(0), r(1)),
		add(r(3), r(1), r(2)),
	)

	once := RunPass(ConstantFolding{}, m, false)
	twice := RunPass(ConstantFolding{}, once, false)

	assert.Equal(t, Print(once), Print(twice))
	assert.Len(t, entry(once), 4)
	assert.Equal(t, Assign{Dest: 0, Src: c(5)}, entry(once)[0])
	assert.Equal(t, add(r(3), r(1), r(2)), entry(once)[3])
}
