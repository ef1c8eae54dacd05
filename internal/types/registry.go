package types

import (
	"fmt"
	"sort"

	"quorlin/internal/ast"
	"quorlin/internal/builtins"
)

// Field is a named, typed member of a struct or contract
type Field struct {
	Name     string
	Type     Type
	Constant bool
}

// Signature is the checked shape of a callable
type Signature struct {
	Name       string
	ParamNames []string
	Params     []Type
	Mutable    []bool
	Return     Type // nil when the function returns nothing
}

// ResultType is the type a call to the signature evaluates to
func (s *Signature) ResultType() Type {
	if s.Return == nil {
		return UnitT
	}
	return s.Return
}

// StructDef describes a user-defined struct
type StructDef struct {
	Name   string
	Fields []Field
}

// ContractDef describes a contract: its storage variables and methods
type ContractDef struct {
	Name    string
	Fields  []Field
	Methods map[string]*Signature
}

// EnumDef describes a user-defined enum
type EnumDef struct {
	Name     string
	Variants []string
}

// UnknownTypeError reports a type expression that does not name a type
type UnknownTypeError struct {
	Expr   *ast.TypeExpr
	Reason string
}

func (e *UnknownTypeError) Error() string {
	return e.Reason
}

// TypeRegistry manages the builtin and user-defined types of one module
type TypeRegistry struct {
	structs   map[string]*StructDef
	contracts map[string]*ContractDef
	enums     map[string]*EnumDef
}

// NewTypeRegistry creates a new type registry with no user-defined types
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		structs:   make(map[string]*StructDef),
		contracts: make(map[string]*ContractDef),
		enums:     make(map[string]*EnumDef),
	}
}

// DeclareStruct registers a struct name; fields are filled in once resolvable
func (tr *TypeRegistry) DeclareStruct(name string) *StructDef {
	def := &StructDef{Name: name}
	tr.structs[name] = def
	return def
}

// DeclareContract registers a contract name
func (tr *TypeRegistry) DeclareContract(name string) *ContractDef {
	def := &ContractDef{Name: name, Methods: make(map[string]*Signature)}
	tr.contracts[name] = def
	return def
}

// DeclareEnum registers an enum with its variants
func (tr *TypeRegistry) DeclareEnum(name string, variants []string) *EnumDef {
	def := &EnumDef{Name: name, Variants: variants}
	tr.enums[name] = def
	return def
}

// Lookup returns the type a bare name refers to
func (tr *TypeRegistry) Lookup(name string) (Type, bool) {
	if t, ok := FromBuiltin(name); ok {
		return t, true
	}
	if _, ok := tr.structs[name]; ok {
		return Named{Name: name, Kind: StructKind}, true
	}
	if _, ok := tr.contracts[name]; ok {
		return Named{Name: name, Kind: ContractKind}, true
	}
	if _, ok := tr.enums[name]; ok {
		return Named{Name: name, Kind: EnumKind}, true
	}
	return nil, false
}

// Resolve turns a written type into a Type. Unknown names resolve to the
// error sentinel together with an UnknownTypeError describing the first
// offending sub-expression.
func (tr *TypeRegistry) Resolve(te *ast.TypeExpr) (Type, error) {
	if te == nil {
		return ErrorT, &UnknownTypeError{Reason: "missing type"}
	}

	name := te.Name.Value
	if arity, generic := builtins.GenericArity[name]; generic {
		if len(te.Args) != arity {
			return ErrorT, &UnknownTypeError{
				Expr:   te,
				Reason: fmt.Sprintf("'%s' expects %d type argument(s), found %d", name, arity, len(te.Args)),
			}
		}
		args := make([]Type, len(te.Args))
		for i, arg := range te.Args {
			t, err := tr.Resolve(arg)
			if err != nil {
				return ErrorT, err
			}
			args[i] = t
		}
		if name == builtins.Mapping {
			return Mapping{Key: args[0], Value: args[1]}, nil
		}
		return Array{Elem: args[0]}, nil
	}

	if len(te.Args) > 0 {
		return ErrorT, &UnknownTypeError{Expr: te, Reason: fmt.Sprintf("type '%s' is not generic", name)}
	}
	if t, ok := tr.Lookup(name); ok {
		return t, nil
	}
	return ErrorT, &UnknownTypeError{Expr: te, Reason: fmt.Sprintf("unknown type '%s'", name)}
}

// GetStruct returns the struct definition for a user-defined type
func (tr *TypeRegistry) GetStruct(name string) *StructDef {
	return tr.structs[name]
}

// GetContract returns the contract definition for a user-defined type
func (tr *TypeRegistry) GetContract(name string) *ContractDef {
	return tr.contracts[name]
}

// GetEnum returns the enum definition for a user-defined type
func (tr *TypeRegistry) GetEnum(name string) *EnumDef {
	return tr.enums[name]
}

// Field looks up a member of a struct or contract typed value
func (tr *TypeRegistry) Field(t Type, name string) (Field, bool) {
	named, ok := t.(Named)
	if !ok {
		return Field{}, false
	}
	var fields []Field
	switch named.Kind {
	case StructKind:
		if def := tr.structs[named.Name]; def != nil {
			fields = def.Fields
		}
	case ContractKind:
		if def := tr.contracts[named.Name]; def != nil {
			fields = def.Fields
		}
	}
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Method looks up a contract method
func (tr *TypeRegistry) Method(t Type, name string) (*Signature, bool) {
	named, ok := t.(Named)
	if !ok || named.Kind != ContractKind {
		return nil, false
	}
	def := tr.contracts[named.Name]
	if def == nil {
		return nil, false
	}
	sig, ok := def.Methods[name]
	return sig, ok
}

// HasVariant reports whether enum declares the given variant
func (tr *TypeRegistry) HasVariant(enum, variant string) bool {
	def := tr.enums[enum]
	if def == nil {
		return false
	}
	for _, v := range def.Variants {
		if v == variant {
			return true
		}
	}
	return false
}

// MemberNames lists the fields (and methods, for contracts) of t, sorted
func (tr *TypeRegistry) MemberNames(t Type) []string {
	named, ok := t.(Named)
	if !ok {
		return nil
	}
	var names []string
	switch named.Kind {
	case StructKind:
		if def := tr.structs[named.Name]; def != nil {
			for _, f := range def.Fields {
				names = append(names, f.Name)
			}
		}
	case ContractKind:
		if def := tr.contracts[named.Name]; def != nil {
			for _, f := range def.Fields {
				names = append(names, f.Name)
			}
			for m := range def.Methods {
				names = append(names, m)
			}
		}
	case EnumKind:
		if def := tr.enums[named.Name]; def != nil {
			names = append(names, def.Variants...)
		}
	}
	sort.Strings(names)
	return names
}
