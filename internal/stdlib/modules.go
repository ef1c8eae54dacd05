package stdlib

import (
	"sort"

	"quorlin/internal/ast"
	"quorlin/internal/builtins"
)

// ModuleDefinition defines a standard library module
type ModuleDefinition struct {
	Name      string                        // Module name (e.g., "evm")
	Path      string                        // Full module path (e.g., "std.evm")
	Functions map[string]FunctionDefinition // Available functions in this module
}

// FunctionDefinition defines a function signature from a standard library module
type FunctionDefinition struct {
	Name       string                // Function name (e.g., "sender")
	Parameters []ParameterDefinition // Function parameters
	ReturnType *TypeRef              // Return type (nil if void)
}

// ParameterDefinition defines a function parameter
type ParameterDefinition struct {
	Name string
	Type *TypeRef
}

// TypeRef represents a type reference that can be generic
type TypeRef struct {
	Name        string     // Base type name (e.g., "uint256", "mapping")
	GenericArgs []*TypeRef // Type arguments for parameterized types
}

func NewTypeRef(name string) *TypeRef {
	return &TypeRef{Name: name}
}

func NewGenericTypeRef(name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Name: name, GenericArgs: args}
}

func AddressType() *TypeRef { return NewTypeRef(string(builtins.Address)) }
func BoolType() *TypeRef    { return NewTypeRef(string(builtins.Bool)) }
func StrType() *TypeRef     { return NewTypeRef(string(builtins.Str)) }
func BytesType() *TypeRef   { return NewTypeRef(string(builtins.Bytes)) }
func Uint64Type() *TypeRef  { return NewTypeRef(string(builtins.Uint64)) }
func Uint256Type() *TypeRef { return NewTypeRef(string(builtins.Uint256)) }

// ToTypeExpr converts the reference into the syntax the type registry resolves
func (tr *TypeRef) ToTypeExpr() *ast.TypeExpr {
	if tr == nil {
		return nil
	}
	te := &ast.TypeExpr{Name: ast.Ident{Value: tr.Name}}
	for _, arg := range tr.GenericArgs {
		te.Args = append(te.Args, arg.ToTypeExpr())
	}
	return te
}

func NewFunction(name string, returnType *TypeRef, params ...ParameterDefinition) FunctionDefinition {
	return FunctionDefinition{
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
	}
}

func NewParam(name string, typeRef *TypeRef) ParameterDefinition {
	return ParameterDefinition{Name: name, Type: typeRef}
}

// GetStandardModules returns all standard library modules keyed by path
func GetStandardModules() map[string]*ModuleDefinition {
	return map[string]*ModuleDefinition{
		"std.evm": {
			Name: "evm",
			Path: "std.evm",
			Functions: map[string]FunctionDefinition{
				"sender":          NewFunction("sender", AddressType()),
				"origin":          NewFunction("origin", AddressType()),
				"value":           NewFunction("value", Uint256Type()),
				"block_timestamp": NewFunction("block_timestamp", Uint256Type()),
				"block_number":    NewFunction("block_number", Uint256Type()),
				"chain_id":        NewFunction("chain_id", Uint64Type()),
				"balance_of":      NewFunction("balance_of", Uint256Type(), NewParam("account", AddressType())),
				"this":            NewFunction("this", AddressType()),
			},
		},
		"std.crypto": {
			Name: "crypto",
			Path: "std.crypto",
			Functions: map[string]FunctionDefinition{
				"keccak256": NewFunction("keccak256", BytesType(), NewParam("data", BytesType())),
				"sha256":    NewFunction("sha256", BytesType(), NewParam("data", BytesType())),
			},
		},
		"std.assert": {
			Name: "assert",
			Path: "std.assert",
			Functions: map[string]FunctionDefinition{
				"require": NewFunction("require", nil,
					NewParam("condition", BoolType()),
					NewParam("message", StrType())),
				"revert": NewFunction("revert", nil, NewParam("message", StrType())),
			},
		},
	}
}

// Prelude returns every function that is in scope without an import,
// ordered by name so symbol definition order is deterministic.
func Prelude() []FunctionDefinition {
	var fns []FunctionDefinition
	for _, mod := range GetStandardModules() {
		for _, fn := range mod.Functions {
			fns = append(fns, fn)
		}
	}
	sort.Slice(fns, func(i, j int) bool { return fns[i].Name < fns[j].Name })
	return fns
}
