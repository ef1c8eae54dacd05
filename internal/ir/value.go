package ir

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Value is an instruction operand: a compile-time constant or a register
type Value interface {
	String() string
	isValue()
}

// Register names the result of an earlier instruction or a parameter
type Register int

// NoRegister marks an instruction without a destination
const NoRegister Register = -1

// Const is a 256-bit unsigned machine word
type Const struct {
	V uint256.Int
}

func (Register) isValue() {}
func (Const) isValue()    {}

func (r Register) String() string {
	return fmt.Sprintf("%%%d", int(r))
}

func (c Const) String() string {
	return c.V.Dec()
}

// ConstInt builds a constant from a small integer
func ConstInt(v uint64) Const {
	var c Const
	c.V.SetUint64(v)
	return c
}

// ConstFrom builds a constant from a 256-bit integer
func ConstFrom(v *uint256.Int) Const {
	return Const{V: *v}
}

// IsConst reports whether v is a constant equal to n
func IsConst(v Value, n uint64) bool {
	c, ok := v.(Const)
	return ok && c.V.IsUint64() && c.V.Uint64() == n
}

// RegisterOf returns the register v refers to, if any
func RegisterOf(v Value) (Register, bool) {
	r, ok := v.(Register)
	return r, ok
}
