package semantic

import (
	"sort"

	"quorlin/internal/stdlib"
	"quorlin/internal/types"
)

// ContextRegistry provides a unified view of all available types and
// standard library functions for one analysis run
type ContextRegistry struct {
	typeRegistry  *types.TypeRegistry
	stdlibModules map[string]*stdlib.ModuleDefinition
}

// NewContextRegistry creates a new unified context registry
func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{
		typeRegistry:  types.NewTypeRegistry(),
		stdlibModules: stdlib.GetStandardModules(),
	}
}

// Types returns the type registry
func (cr *ContextRegistry) Types() *types.TypeRegistry {
	return cr.typeRegistry
}

// Modules returns the standard library modules ordered by path
func (cr *ContextRegistry) Modules() []*stdlib.ModuleDefinition {
	modules := make([]*stdlib.ModuleDefinition, 0, len(cr.stdlibModules))
	for _, mod := range cr.stdlibModules {
		modules = append(modules, mod)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Path < modules[j].Path })
	return modules
}

// bodyContext is the state that changes while walking a function body.
// It is saved and restored around every nested checking context.
type bodyContext struct {
	function   string
	returnType types.Type // nil when the function declares no return type
	inLoop     bool
}
