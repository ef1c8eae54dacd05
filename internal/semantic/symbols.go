package semantic

import (
	"quorlin/internal/ast"
	"quorlin/internal/types"
)

type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolType
	SymbolContract
	SymbolModule
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	case SymbolContract:
		return "contract"
	case SymbolModule:
		return "module"
	default:
		return "symbol"
	}
}

// Symbol is a named declaration. Symbols are never modified after creation.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Type       types.Type                  // variables: declared type; types and contracts: the named type
	Mutable    bool                        // variables only
	Signature  *types.Signature            // functions only
	Members    map[string]*types.Signature // modules only
	DeclaredAt ast.Position
}

func NewVariableSymbol(name string, t types.Type, mutable bool, pos ast.Position) *Symbol {
	return &Symbol{Name: name, Kind: SymbolVariable, Type: t, Mutable: mutable, DeclaredAt: pos}
}

func NewFunctionSymbol(name string, sig *types.Signature, pos ast.Position) *Symbol {
	return &Symbol{Name: name, Kind: SymbolFunction, Signature: sig, DeclaredAt: pos}
}

func NewTypeSymbol(name string, t types.Type, pos ast.Position) *Symbol {
	return &Symbol{Name: name, Kind: SymbolType, Type: t, DeclaredAt: pos}
}

func NewContractSymbol(name string, pos ast.Position) *Symbol {
	return &Symbol{
		Name:       name,
		Kind:       SymbolContract,
		Type:       types.Named{Name: name, Kind: types.ContractKind},
		DeclaredAt: pos,
	}
}

func NewModuleSymbol(name string, members map[string]*types.Signature) *Symbol {
	return &Symbol{Name: name, Kind: SymbolModule, Members: members}
}
