package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Instruction is a non-terminating IR instruction. The set of
// implementations is closed; passes switch over them exhaustively.
type Instruction interface {
	// Def returns the destination register, if the instruction has one
	Def() (Register, bool)
	// Uses returns the operands read by the instruction
	Uses() []Value
	// Effects describes what the instruction does besides producing Def
	Effects() Effects
	String() string
	isInstruction()
}

// ArithOp is a 256-bit arithmetic operator
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

var arithNames = [...]string{"add", "sub", "mul", "div", "mod"}

func (op ArithOp) String() string {
	if int(op) < len(arithNames) {
		return arithNames[op]
	}
	return "arith(" + strconv.Itoa(int(op)) + ")"
}

// Commutative reports whether operand order does not matter
func (op ArithOp) Commutative() bool {
	return op == OpAdd || op == OpMul
}

// CompareOp is a comparison operator producing 0 or 1
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

var compareNames = [...]string{"eq", "ne", "lt", "le", "gt", "ge"}

func (op CompareOp) String() string {
	if int(op) < len(compareNames) {
		return compareNames[op]
	}
	return "cmp(" + strconv.Itoa(int(op)) + ")"
}

// Commutative reports whether operand order does not matter
func (op CompareOp) Commutative() bool {
	return op == CmpEq || op == CmpNe
}

// ParseArithOp maps a mnemonic back to its operator
func ParseArithOp(name string) (ArithOp, bool) {
	for i, n := range arithNames {
		if n == name {
			return ArithOp(i), true
		}
	}
	return 0, false
}

// ParseCompareOp maps a mnemonic back to its operator
func ParseCompareOp(name string) (CompareOp, bool) {
	for i, n := range compareNames {
		if n == name {
			return CompareOp(i), true
		}
	}
	return 0, false
}

// Arith computes Dest = Left op Right. Checked arithmetic aborts the
// transaction on overflow or division by zero instead of wrapping.
type Arith struct {
	Op          ArithOp
	Dest        Register
	Left, Right Value
	Checked     bool
}

// Compare computes Dest = Left op Right as 0 or 1
type Compare struct {
	Op          CompareOp
	Dest        Register
	Left, Right Value
}

// Assign copies Src into Dest
type Assign struct {
	Dest Register
	Src  Value
}

// SLoad reads a storage slot
type SLoad struct {
	Dest Register
	Slot Value
}

// SStore writes a storage slot
type SStore struct {
	Slot  Value
	Value Value
}

// Keccak hashes its operands as 32-byte words
type Keccak struct {
	Dest Register
	Args []Value
}

// Caller loads the address of the message sender
type Caller struct {
	Dest Register
}

// Call invokes another function. Dest is NoRegister when the result is
// discarded. External calls leave the contract.
type Call struct {
	Dest     Register
	Callee   string
	Args     []Value
	External bool
}

// Emit writes a log entry for Event
type Emit struct {
	Event string
	Args  []Value
}

func (Arith) isInstruction()   {}
func (Compare) isInstruction() {}
func (Assign) isInstruction()  {}
func (SLoad) isInstruction()   {}
func (SStore) isInstruction()  {}
func (Keccak) isInstruction()  {}
func (Caller) isInstruction()  {}
func (Call) isInstruction()    {}
func (Emit) isInstruction()    {}

func (i Arith) Def() (Register, bool)   { return i.Dest, true }
func (i Compare) Def() (Register, bool) { return i.Dest, true }
func (i Assign) Def() (Register, bool)  { return i.Dest, true }
func (i SLoad) Def() (Register, bool)   { return i.Dest, true }
func (SStore) Def() (Register, bool)    { return NoRegister, false }
func (i Keccak) Def() (Register, bool)  { return i.Dest, true }
func (i Caller) Def() (Register, bool)  { return i.Dest, true }
func (i Call) Def() (Register, bool)    { return i.Dest, i.Dest != NoRegister }
func (Emit) Def() (Register, bool)      { return NoRegister, false }

func (i Arith) Uses() []Value   { return []Value{i.Left, i.Right} }
func (i Compare) Uses() []Value { return []Value{i.Left, i.Right} }
func (i Assign) Uses() []Value  { return []Value{i.Src} }
func (i SLoad) Uses() []Value   { return []Value{i.Slot} }
func (i SStore) Uses() []Value  { return []Value{i.Slot, i.Value} }
func (i Keccak) Uses() []Value  { return i.Args }
func (Caller) Uses() []Value    { return nil }
func (i Call) Uses() []Value    { return i.Args }
func (i Emit) Uses() []Value    { return i.Args }

func (i Arith) Opcode() string {
	if i.Checked {
		return i.Op.String() + ".checked"
	}
	return i.Op.String()
}

func (i Arith) String() string {
	return fmt.Sprintf("%s = %s %s, %s", i.Dest, i.Opcode(), i.Left, i.Right)
}

func (i Compare) String() string {
	return fmt.Sprintf("%s = %s %s, %s", i.Dest, i.Op, i.Left, i.Right)
}

func (i Assign) String() string {
	return fmt.Sprintf("%s = mov %s", i.Dest, i.Src)
}

func (i SLoad) String() string {
	return fmt.Sprintf("%s = sload %s", i.Dest, i.Slot)
}

func (i SStore) String() string {
	return fmt.Sprintf("sstore %s, %s", i.Slot, i.Value)
}

func (i Keccak) String() string {
	return fmt.Sprintf("%s = keccak %s", i.Dest, joinValues(i.Args))
}

func (i Caller) String() string {
	return fmt.Sprintf("%s = caller", i.Dest)
}

func (i Call) String() string {
	op := "call"
	if i.External {
		op = "call.ext"
	}
	s := fmt.Sprintf("%s %s(%s)", op, i.Callee, joinValues(i.Args))
	if i.Dest != NoRegister {
		return fmt.Sprintf("%s = %s", i.Dest, s)
	}
	return s
}

func (i Emit) String() string {
	return fmt.Sprintf("emit %s(%s)", i.Event, joinValues(i.Args))
}

// Terminator ends a basic block and names its successors
type Terminator interface {
	Uses() []Value
	Targets() []string
	String() string
	isTerminator()
}

// Jump transfers control unconditionally
type Jump struct {
	Target string
}

// Branch transfers control to Then when Cond is non-zero, else to Else
type Branch struct {
	Cond       Value
	Then, Else string
}

// Return leaves the function. Value is nil for functions without a result.
type Return struct {
	Value Value
}

// Abort reverts the transaction
type Abort struct {
	Reason string
}

func (Jump) isTerminator()   {}
func (Branch) isTerminator() {}
func (Return) isTerminator() {}
func (Abort) isTerminator()  {}

func (Jump) Uses() []Value     { return nil }
func (t Branch) Uses() []Value { return []Value{t.Cond} }
func (t Return) Uses() []Value {
	if t.Value == nil {
		return nil
	}
	return []Value{t.Value}
}
func (Abort) Uses() []Value { return nil }

func (t Jump) Targets() []string   { return []string{t.Target} }
func (t Branch) Targets() []string { return []string{t.Then, t.Else} }
func (Return) Targets() []string   { return nil }
func (Abort) Targets() []string    { return nil }

func (t Jump) String() string { return "jmp " + t.Target }

func (t Branch) String() string {
	return fmt.Sprintf("br %s, %s, %s", t.Cond, t.Then, t.Else)
}

func (t Return) String() string {
	if t.Value == nil {
		return "ret"
	}
	return "ret " + t.Value.String()
}

func (t Abort) String() string {
	if t.Reason == "" {
		return "abort"
	}
	return "abort " + strconv.Quote(t.Reason)
}

func joinValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
