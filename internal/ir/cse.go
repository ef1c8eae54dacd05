package ir

import (
	"sort"
	"strings"
)

// CommonSubexpressionElimination replaces a repeated computation inside a
// basic block with a copy of the earlier result. The table of available
// expressions is cleared at every instruction with an observable effect,
// so storage reads are only reused while no write or call intervenes.
type CommonSubexpressionElimination struct{}

func (CommonSubexpressionElimination) Name() string {
	return "common-subexpression-elimination"
}

func (CommonSubexpressionElimination) Description() string {
	return "Reuses the result of an identical earlier computation in the same block"
}

func (CommonSubexpressionElimination) RunOnFunction(f *Function) *Function {
	return RewriteBlocks(f, eliminateInBlock)
}

func eliminateInBlock(b *BasicBlock) []Instruction {
	out := make([]Instruction, 0, len(b.Instructions))
	available := make(map[string]Register)

	for _, inst := range b.Instructions {
		if inst.Effects().Observable() {
			clear(available)
			out = append(out, inst)
			continue
		}

		key, ok := ExpressionKey(inst)
		if !ok {
			out = append(out, inst)
			continue
		}
		dest, _ := inst.Def()
		if prev, found := available[key]; found {
			out = append(out, Assign{Dest: dest, Src: prev})
			continue
		}
		available[key] = dest
		out = append(out, inst)
	}
	return out
}

// ExpressionKey is a canonical signature of the value an instruction
// computes. Operands of commutative operators are sorted so that a+b and
// b+a share a key. Instructions that cannot be reused have no key.
func ExpressionKey(inst Instruction) (string, bool) {
	switch i := inst.(type) {
	case Arith:
		return signature(i.Opcode(), i.Op.Commutative(), i.Left, i.Right), true
	case Compare:
		return signature(i.Op.String(), i.Op.Commutative(), i.Left, i.Right), true
	case Keccak:
		return signature("keccak", false, i.Args...), true
	case SLoad:
		return signature("sload", false, i.Slot), true
	case Caller:
		return "caller", true
	default:
		return "", false
	}
}

func signature(op string, commutative bool, operands ...Value) string {
	parts := make([]string, len(operands))
	for i, v := range operands {
		parts[i] = v.String()
	}
	if commutative {
		sort.Strings(parts)
	}
	return op + " " + strings.Join(parts, ",")
}
