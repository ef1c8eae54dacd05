package types

import (
	"strconv"

	"quorlin/internal/builtins"
)

// Type is the closed set of semantic types
type Type interface {
	String() string
	isType()
}

// Int is a fixed-width integer
type Int struct {
	Bits   int
	Signed bool
}

type Bool struct{}

type String struct{}

type Address struct{}

type Bytes struct{}

// Unit is the result of calling a function with no declared return type
type Unit struct{}

// None is the type of the `None` literal
type None struct{}

// Array is a dynamically sized list of Elem
type Array struct {
	Elem Type
}

// Mapping is a storage key/value map
type Mapping struct {
	Key   Type
	Value Type
}

// NamedKind distinguishes user-defined nominal types
type NamedKind int

const (
	StructKind NamedKind = iota
	ContractKind
	EnumKind
)

// Named refers to a user-defined struct, contract or enum by name
type Named struct {
	Name string
	Kind NamedKind
}

// Invalid is substituted for expressions whose type could not be determined.
// It is compatible with every type so one error does not cascade.
type Invalid struct{}

func (Int) isType()     {}
func (Bool) isType()    {}
func (String) isType()  {}
func (Address) isType() {}
func (Bytes) isType()   {}
func (Unit) isType()    {}
func (None) isType()    {}
func (Array) isType()   {}
func (Mapping) isType() {}
func (Named) isType()   {}
func (Invalid) isType() {}

func (t Int) String() string {
	if t.Signed {
		return "int" + strconv.Itoa(t.Bits)
	}
	return "uint" + strconv.Itoa(t.Bits)
}

func (Bool) String() string    { return string(builtins.Bool) }
func (String) String() string  { return string(builtins.Str) }
func (Address) String() string { return string(builtins.Address) }
func (Bytes) String() string   { return string(builtins.Bytes) }
func (Unit) String() string    { return "()" }
func (None) String() string    { return "None" }
func (Invalid) String() string { return "{unknown}" }

func (t Array) String() string {
	return builtins.List + "[" + t.Elem.String() + "]"
}

func (t Mapping) String() string {
	return builtins.Mapping + "[" + t.Key.String() + ", " + t.Value.String() + "]"
}

func (t Named) String() string { return t.Name }

// Commonly used types
var (
	Uint256 Type = Int{Bits: 256}
	Int256  Type = Int{Bits: 256, Signed: true}
	BoolT   Type = Bool{}
	StrT    Type = String{}
	AddrT   Type = Address{}
	BytesT  Type = Bytes{}
	UnitT   Type = Unit{}
	NoneT   Type = None{}
	ErrorT  Type = Invalid{}
)

// FromBuiltin maps a builtin scalar type name to its Type
func FromBuiltin(name string) (Type, bool) {
	if bits, signed, ok := builtins.IntegerWidth(name); ok {
		return Int{Bits: bits, Signed: signed}, true
	}
	switch builtins.BuiltinType(name) {
	case builtins.Bool:
		return BoolT, true
	case builtins.Address:
		return AddrT, true
	case builtins.Str:
		return StrT, true
	case builtins.Bytes:
		return BytesT, true
	}
	return nil, false
}
