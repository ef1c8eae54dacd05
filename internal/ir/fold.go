package ir

import "github.com/holiman/uint256"

// ConstantFolding evaluates arithmetic on known constants at compile time.
// It rewrites one instruction at a time and never changes the instruction
// count, so running it twice gives the same result as running it once.
type ConstantFolding struct{}

func (ConstantFolding) Name() string {
	return "constant-folding"
}

func (ConstantFolding) Description() string {
	return "Evaluates constant expressions at compile time and replaces them with literals"
}

func (ConstantFolding) RunOnFunction(f *Function) *Function {
	return RewriteBlocks(f, func(b *BasicBlock) []Instruction {
		out := make([]Instruction, len(b.Instructions))
		for i, inst := range b.Instructions {
			out[i] = FoldInstruction(inst)
		}
		return out
	})
}

// FoldInstruction applies the folding rules to a single instruction:
//
//	add c1, c2 -> mov c1+c2
//	mul c1, c2 -> mov c1*c2
//	mul x, 1   -> mov x   (either operand order)
//	mul x, 0   -> mov 0   (either operand order)
//
// Arithmetic wraps modulo 2^256. A checked operation whose constant result
// overflows is left in place so it still aborts at run time.
func FoldInstruction(inst Instruction) Instruction {
	a, ok := inst.(Arith)
	if !ok {
		return inst
	}

	left, leftConst := a.Left.(Const)
	right, rightConst := a.Right.(Const)

	switch a.Op {
	case OpAdd:
		if leftConst && rightConst {
			var sum uint256.Int
			if _, overflow := sum.AddOverflow(&left.V, &right.V); overflow && a.Checked {
				return inst
			}
			return Assign{Dest: a.Dest, Src: Const{V: sum}}
		}

	case OpMul:
		if leftConst && rightConst {
			var product uint256.Int
			if _, overflow := product.MulOverflow(&left.V, &right.V); overflow && a.Checked {
				return inst
			}
			return Assign{Dest: a.Dest, Src: Const{V: product}}
		}
		switch {
		case IsConst(a.Right, 1):
			return Assign{Dest: a.Dest, Src: a.Left}
		case IsConst(a.Left, 1):
			return Assign{Dest: a.Dest, Src: a.Right}
		case IsConst(a.Left, 0), IsConst(a.Right, 0):
			return Assign{Dest: a.Dest, Src: ConstInt(0)}
		}
	}
	return inst
}
