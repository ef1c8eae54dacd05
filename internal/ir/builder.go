package ir

import (
	"fmt"

	"quorlin/internal/types"
)

// FunctionBuilder assembles a Function block by block. The first block
// created becomes the entry block. Register numbers are allocated after
// the parameters.
type FunctionBuilder struct {
	fn      *Function
	current *BasicBlock
}

// NewFunctionBuilder starts a function with no parameters or blocks
func NewFunctionBuilder(name string) *FunctionBuilder {
	return &FunctionBuilder{
		fn: &Function{
			Name:      name,
			Blocks:    make(map[string]*BasicBlock),
			LocalVars: make(map[string]Register),
		},
	}
}

// Param declares a parameter and returns the register that holds it
func (b *FunctionBuilder) Param(name string, t types.Type) Register {
	reg := b.NewRegister()
	b.fn.Params = append(b.fn.Params, &Param{Name: name, Type: t, Reg: reg})
	return reg
}

// ParamAt declares a parameter bound to an explicit register
func (b *FunctionBuilder) ParamAt(reg Register, name string, t types.Type) {
	b.reserve(reg)
	b.fn.Params = append(b.fn.Params, &Param{Name: name, Type: t, Reg: reg})
}

// Returns sets the result type
func (b *FunctionBuilder) Returns(t types.Type) *FunctionBuilder {
	b.fn.ReturnType = t
	return b
}

// Local records a source-level variable name for a register
func (b *FunctionBuilder) Local(name string, reg Register) {
	b.fn.LocalVars[name] = reg
}

// NewRegister allocates a fresh register
func (b *FunctionBuilder) NewRegister() Register {
	reg := b.fn.NextRegister
	b.fn.NextRegister++
	return reg
}

// Block creates a new block and makes it current
func (b *FunctionBuilder) Block(label string) *FunctionBuilder {
	if _, exists := b.fn.Blocks[label]; exists {
		panic(fmt.Sprintf("ir: duplicate block label %q", label))
	}
	block := &BasicBlock{Label: label}
	b.fn.Blocks[label] = block
	if b.fn.Entry == "" {
		b.fn.Entry = label
	}
	b.current = block
	return b
}

// HasBlock reports whether a block with the label exists
func (b *FunctionBuilder) HasBlock(label string) bool {
	_, ok := b.fn.Blocks[label]
	return ok
}

// Append adds an instruction with explicit registers to the current block
func (b *FunctionBuilder) Append(inst Instruction) {
	if b.current == nil {
		panic("ir: instruction appended before any block")
	}
	if reg, ok := inst.Def(); ok {
		b.reserve(reg)
	}
	b.current.Instructions = append(b.current.Instructions, inst)
}

// Terminate ends the current block
func (b *FunctionBuilder) Terminate(t Terminator) {
	if b.current == nil {
		panic("ir: terminator set before any block")
	}
	b.current.Terminator = t
}

func (b *FunctionBuilder) reserve(reg Register) {
	if reg >= b.fn.NextRegister {
		b.fn.NextRegister = reg + 1
	}
}

// Arith emits Dest = left op right
func (b *FunctionBuilder) Arith(op ArithOp, left, right Value, checked bool) Register {
	dest := b.NewRegister()
	b.Append(Arith{Op: op, Dest: dest, Left: left, Right: right, Checked: checked})
	return dest
}

// Add emits an unchecked addition
func (b *FunctionBuilder) Add(left, right Value) Register {
	return b.Arith(OpAdd, left, right, false)
}

// Mul emits an unchecked multiplication
func (b *FunctionBuilder) Mul(left, right Value) Register {
	return b.Arith(OpMul, left, right, false)
}

// Compare emits a comparison
func (b *FunctionBuilder) Compare(op CompareOp, left, right Value) Register {
	dest := b.NewRegister()
	b.Append(Compare{Op: op, Dest: dest, Left: left, Right: right})
	return dest
}

// Assign emits a copy
func (b *FunctionBuilder) Assign(src Value) Register {
	dest := b.NewRegister()
	b.Append(Assign{Dest: dest, Src: src})
	return dest
}

// SLoad emits a storage read
func (b *FunctionBuilder) SLoad(slot Value) Register {
	dest := b.NewRegister()
	b.Append(SLoad{Dest: dest, Slot: slot})
	return dest
}

// SStore emits a storage write
func (b *FunctionBuilder) SStore(slot, value Value) {
	b.Append(SStore{Slot: slot, Value: value})
}

// Keccak emits a hash of the operands
func (b *FunctionBuilder) Keccak(args ...Value) Register {
	dest := b.NewRegister()
	b.Append(Keccak{Dest: dest, Args: args})
	return dest
}

// Caller emits a read of the message sender
func (b *FunctionBuilder) Caller() Register {
	dest := b.NewRegister()
	b.Append(Caller{Dest: dest})
	return dest
}

// Call emits a call whose result is kept
func (b *FunctionBuilder) Call(callee string, external bool, args ...Value) Register {
	dest := b.NewRegister()
	b.Append(Call{Dest: dest, Callee: callee, Args: args, External: external})
	return dest
}

// CallVoid emits a call whose result is discarded
func (b *FunctionBuilder) CallVoid(callee string, external bool, args ...Value) {
	b.Append(Call{Dest: NoRegister, Callee: callee, Args: args, External: external})
}

// Emit emits a log entry
func (b *FunctionBuilder) Emit(event string, args ...Value) {
	b.Append(Emit{Event: event, Args: args})
}

// Jump ends the current block with an unconditional jump
func (b *FunctionBuilder) Jump(target string) {
	b.Terminate(Jump{Target: target})
}

// Branch ends the current block with a conditional branch
func (b *FunctionBuilder) Branch(cond Value, then, els string) {
	b.Terminate(Branch{Cond: cond, Then: then, Else: els})
}

// Return ends the current block returning v, which may be nil
func (b *FunctionBuilder) Return(v Value) {
	b.Terminate(Return{Value: v})
}

// Abort ends the current block with a revert
func (b *FunctionBuilder) Abort(reason string) {
	b.Terminate(Abort{Reason: reason})
}

// Build finalizes the control-flow edges and returns the function
func (b *FunctionBuilder) Build() *Function {
	b.fn.RebuildEdges()
	return b.fn
}
