package builtins

import "strconv"

// BuiltinType represents the built-in scalar types in the Quorlin language
type BuiltinType string

const (
	// Unsigned integers
	Uint8   BuiltinType = "uint8"
	Uint16  BuiltinType = "uint16"
	Uint32  BuiltinType = "uint32"
	Uint64  BuiltinType = "uint64"
	Uint128 BuiltinType = "uint128"
	Uint256 BuiltinType = "uint256"

	// Signed integers
	Int8   BuiltinType = "int8"
	Int16  BuiltinType = "int16"
	Int32  BuiltinType = "int32"
	Int64  BuiltinType = "int64"
	Int128 BuiltinType = "int128"
	Int256 BuiltinType = "int256"

	// Other primitives
	Bool    BuiltinType = "bool"
	Address BuiltinType = "address"
	Str     BuiltinType = "str"
	Bytes   BuiltinType = "bytes"
)

// Generic container type constructors
const (
	Mapping = "mapping"
	List    = "list"
)

// BuiltinTypes contains all valid built-in scalar types
var BuiltinTypes = map[string]bool{
	string(Uint8):   true,
	string(Uint16):  true,
	string(Uint32):  true,
	string(Uint64):  true,
	string(Uint128): true,
	string(Uint256): true,

	string(Int8):   true,
	string(Int16):  true,
	string(Int32):  true,
	string(Int64):  true,
	string(Int128): true,
	string(Int256): true,

	string(Bool):    true,
	string(Address): true,
	string(Str):     true,
	string(Bytes):   true,
}

// GenericArity holds the number of type arguments each generic constructor takes
var GenericArity = map[string]int{
	Mapping: 2,
	List:    1,
}

// IsBuiltinType checks if a type name is a built-in scalar type
func IsBuiltinType(typeName string) bool {
	return BuiltinTypes[typeName]
}

// IsIntegerType checks if a type is a signed or unsigned integer type
func IsIntegerType(typeName string) bool {
	_, _, ok := IntegerWidth(typeName)
	return ok
}

// IntegerWidth returns the bit width and signedness of an integer type name
func IntegerWidth(typeName string) (bits int, signed bool, ok bool) {
	if !BuiltinTypes[typeName] {
		return 0, false, false
	}
	digits := ""
	switch {
	case len(typeName) > 4 && typeName[:4] == "uint":
		digits = typeName[4:]
	case len(typeName) > 3 && typeName[:3] == "int":
		digits = typeName[3:]
		signed = true
	default:
		return 0, false, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false, false
	}
	return n, signed, true
}
