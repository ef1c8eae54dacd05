package semantic

import (
	"quorlin/internal/ast"
	"quorlin/internal/errors"
	"quorlin/internal/stdlib"
	"quorlin/internal/types"
)

// definePrelude binds the standard library in the root frame: every
// function by its bare name, and every module so that evm.sender() resolves
func (a *Analyzer) definePrelude() {
	signatures := make(map[string]*types.Signature)
	for _, fn := range stdlib.Prelude() {
		sig := a.preludeSignature(fn)
		signatures[fn.Name] = sig
		if !a.define(NewFunctionSymbol(fn.Name, sig, ast.Position{})) {
			errors.ICE("prelude function %s defined twice", fn.Name)
		}
	}

	for _, mod := range a.context.Modules() {
		members := make(map[string]*types.Signature, len(mod.Functions))
		for name := range mod.Functions {
			members[name] = signatures[name]
		}
		if !a.define(NewModuleSymbol(mod.Name, members)) {
			errors.ICE("prelude module %s collides with another prelude name", mod.Path)
		}
		log.Debugf("prelude: module %s with %d functions", mod.Path, len(members))
	}
}

func (a *Analyzer) preludeSignature(fn stdlib.FunctionDefinition) *types.Signature {
	sig := &types.Signature{Name: fn.Name}
	for _, p := range fn.Parameters {
		t, err := a.context.Types().Resolve(p.Type.ToTypeExpr())
		if err != nil {
			errors.ICE("prelude function %s: %v", fn.Name, err)
		}
		sig.ParamNames = append(sig.ParamNames, p.Name)
		sig.Params = append(sig.Params, t)
		sig.Mutable = append(sig.Mutable, false)
	}
	if fn.ReturnType != nil {
		t, err := a.context.Types().Resolve(fn.ReturnType.ToTypeExpr())
		if err != nil {
			errors.ICE("prelude function %s: %v", fn.Name, err)
		}
		sig.Return = t
	}
	return sig
}

// collectDeclarations is pass 1: every top-level name is bound in the
// module frame before any body is checked.
func (a *Analyzer) collectDeclarations(module *ast.Module) {
	registry := a.context.Types()

	// Type names first so signatures and fields may refer to types declared
	// later. Only the first item with a name is declared; the rest are
	// rejected as duplicates below.
	claimed := make(map[string]bool)
	for _, item := range module.Items {
		name := item.ItemName().Value
		if claimed[name] {
			continue
		}
		claimed[name] = true
		if _, taken := registry.Lookup(name); taken {
			continue
		}
		switch node := item.(type) {
		case *ast.Contract:
			registry.DeclareContract(name)
		case *ast.Struct:
			registry.DeclareStruct(name)
		case *ast.Enum:
			variants := make([]string, 0, len(node.Variants))
			for _, v := range node.Variants {
				variants = append(variants, v.Value)
			}
			registry.DeclareEnum(name, variants)
		}
	}

	for _, item := range module.Items {
		var sym *Symbol
		name := item.ItemName()

		switch node := item.(type) {
		case *ast.Contract:
			sym = NewContractSymbol(name.Value, name.Pos)
		case *ast.Struct:
			sym = NewTypeSymbol(name.Value, types.Named{Name: name.Value, Kind: types.StructKind}, name.Pos)
		case *ast.Enum:
			sym = NewTypeSymbol(name.Value, types.Named{Name: name.Value, Kind: types.EnumKind}, name.Pos)
		case *ast.Function:
			sig := a.buildSignature(node)
			a.signatures[node] = sig
			sym = NewFunctionSymbol(name.Value, sig, name.Pos)
		default:
			errors.ICE("unknown module item %T", item)
		}

		if !a.define(sym) {
			a.skipped[item] = true
		}
	}

	// Members of the accepted type declarations
	for _, item := range module.Items {
		if a.skipped[item] {
			continue
		}
		switch node := item.(type) {
		case *ast.Struct:
			a.collectStruct(node)
		case *ast.Contract:
			a.collectContract(node)
		case *ast.Enum:
			a.collectEnum(node)
		}
	}
}

func (a *Analyzer) collectStruct(node *ast.Struct) {
	def := a.context.Types().GetStruct(node.Name.Value)
	if def == nil {
		return
	}
	seen := make(map[string]bool)
	for _, field := range node.Fields {
		if seen[field.Name.Value] {
			a.addCompilerError(errors.DuplicateDefinition(field.Name.Value, field.Name.Pos))
			continue
		}
		seen[field.Name.Value] = true
		def.Fields = append(def.Fields, types.Field{Name: field.Name.Value, Type: a.resolveType(field.Type)})
	}
}

func (a *Analyzer) collectEnum(node *ast.Enum) {
	seen := make(map[string]bool)
	for _, v := range node.Variants {
		if seen[v.Value] {
			a.addCompilerError(errors.DuplicateDefinition(v.Value, v.Pos))
		}
		seen[v.Value] = true
	}
}

// collectContract records storage field types and method signatures so that
// self.<member> resolves from any method regardless of declaration order.
// Duplicate members are reported when the contract frame is populated.
func (a *Analyzer) collectContract(node *ast.Contract) {
	def := a.context.Types().GetContract(node.Name.Value)
	if def == nil {
		return
	}
	for _, sv := range node.StateVars {
		def.Fields = append(def.Fields, types.Field{
			Name:     sv.Name.Value,
			Type:     a.resolveType(sv.Type),
			Constant: sv.Constant,
		})
	}
	for _, fn := range node.Functions {
		sig := a.buildSignature(fn)
		a.signatures[fn] = sig
		if _, exists := def.Methods[fn.Name.Value]; !exists {
			def.Methods[fn.Name.Value] = sig
		}
	}
}

func (a *Analyzer) buildSignature(fn *ast.Function) *types.Signature {
	sig := &types.Signature{Name: fn.Name.Value}
	for _, p := range fn.Params {
		sig.ParamNames = append(sig.ParamNames, p.Name.Value)
		sig.Params = append(sig.Params, a.resolveType(p.Type))
		sig.Mutable = append(sig.Mutable, p.Mutable)
	}
	if fn.Return != nil {
		sig.Return = a.resolveType(fn.Return)
	}
	return sig
}

// resolveType resolves a written type, reporting unknown names and
// substituting the error type
func (a *Analyzer) resolveType(te *ast.TypeExpr) types.Type {
	t, err := a.context.Types().Resolve(te)
	if err != nil {
		a.addUndefinedTypeError(err)
	}
	return t
}

// checkDeclarations is pass 2: bodies are checked with all top-level names bound
func (a *Analyzer) checkDeclarations(module *ast.Module) {
	for _, item := range module.Items {
		if a.skipped[item] {
			continue
		}
		switch node := item.(type) {
		case *ast.Contract:
			a.checkContract(node)
		case *ast.Function:
			a.checkFunction(node)
		}
	}
}

func (a *Analyzer) checkContract(node *ast.Contract) {
	self := types.Named{Name: node.Name.Value, Kind: types.ContractKind}

	a.pushScope()
	a.define(NewVariableSymbol("self", self, false, node.Name.Pos))

	for _, sv := range node.StateVars {
		t := types.ErrorT
		if f, ok := a.context.Types().Field(self, sv.Name.Value); ok {
			t = f.Type
		}
		a.define(NewVariableSymbol(sv.Name.Value, t, !sv.Constant, sv.Name.Pos))
	}

	// Methods are bound before any body is checked so they may call each other
	checked := make([]*ast.Function, 0, len(node.Functions))
	for _, fn := range node.Functions {
		if a.define(NewFunctionSymbol(fn.Name.Value, a.signatures[fn], fn.Name.Pos)) {
			checked = append(checked, fn)
		}
	}

	for _, fn := range checked {
		a.checkFunction(fn)
	}

	a.popScope()
}

func (a *Analyzer) checkFunction(fn *ast.Function) {
	sig := a.signatures[fn]
	if sig == nil {
		errors.ICE("function %s has no collected signature", fn.Name.Value)
	}

	a.pushScope()
	for i, p := range fn.Params {
		a.define(NewVariableSymbol(p.Name.Value, sig.Params[i], p.Mutable, p.Name.Pos))
	}

	saved := a.body
	a.body = bodyContext{
		function:   fn.Name.Value,
		returnType: sig.Return,
		inLoop:     false,
	}

	a.checkBlock(fn.Body)

	a.body = saved
	a.popScope()
}
