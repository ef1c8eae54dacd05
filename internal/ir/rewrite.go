package ir

import (
	"maps"
	"sync"
)

// FunctionPass rewrites a single function into a new one. Implementations
// must not modify their argument.
type FunctionPass func(*Function) *Function

// MapFunctions rebuilds m with every function replaced by pass(f). The
// contract metadata is copied so the result shares no mutable state with m.
// With parallel set, functions are rewritten concurrently; the result is
// identical either way.
func MapFunctions(m *Module, pass FunctionPass, parallel bool) *Module {
	inputs := m.AllFunctions()
	outputs := make([]*Function, len(inputs))

	if parallel && len(inputs) > 1 {
		var wg sync.WaitGroup
		panics := make([]any, len(inputs))
		for i, f := range inputs {
			wg.Add(1)
			go func(i int, f *Function) {
				defer wg.Done()
				defer func() { panics[i] = recover() }()
				outputs[i] = pass(f)
			}(i, f)
		}
		wg.Wait()
		for _, p := range panics {
			if p != nil {
				panic(p)
			}
		}
	} else {
		for i, f := range inputs {
			outputs[i] = pass(f)
		}
	}

	out := &Module{Name: m.Name}
	out.Functions = outputs[:len(m.Functions):len(m.Functions)]
	next := len(m.Functions)
	for _, c := range m.Contracts {
		nc := copyContract(c)
		end := next + len(c.Functions)
		nc.Functions = outputs[next:end:end]
		next = end
		out.Contracts = append(out.Contracts, nc)
	}
	return out
}

func copyContract(c *Contract) *Contract {
	nc := &Contract{Name: c.Name}
	for _, v := range c.StateVars {
		cp := *v
		nc.StateVars = append(nc.StateVars, &cp)
	}
	for _, e := range c.Events {
		ne := &Event{Name: e.Name}
		for _, p := range e.Params {
			cp := *p
			ne.Params = append(ne.Params, &cp)
		}
		nc.Events = append(nc.Events, ne)
	}
	for _, s := range c.StorageLayout {
		cp := *s
		nc.StorageLayout = append(nc.StorageLayout, &cp)
	}
	return nc
}

// RewriteBlocks rebuilds f, replacing the instruction list of every block
// with rewrite(block). Terminators and edges are carried over.
func RewriteBlocks(f *Function, rewrite func(*BasicBlock) []Instruction) *Function {
	out := &Function{
		Name:         f.Name,
		ReturnType:   f.ReturnType,
		Entry:        f.Entry,
		Blocks:       make(map[string]*BasicBlock, len(f.Blocks)),
		LocalVars:    maps.Clone(f.LocalVars),
		NextRegister: f.NextRegister,
	}
	if out.LocalVars == nil {
		out.LocalVars = make(map[string]Register)
	}
	for _, p := range f.Params {
		cp := *p
		out.Params = append(out.Params, &cp)
	}
	for label, b := range f.Blocks {
		out.Blocks[label] = &BasicBlock{
			Label:        b.Label,
			Instructions: rewrite(b),
			Terminator:   b.Terminator,
			Predecessors: append([]string(nil), b.Predecessors...),
			Successors:   append([]string(nil), b.Successors...),
		}
	}
	return out
}

// Clone returns a deep copy of m
func Clone(m *Module) *Module {
	return MapFunctions(m, func(f *Function) *Function {
		return RewriteBlocks(f, func(b *BasicBlock) []Instruction {
			return append([]Instruction(nil), b.Instructions...)
		})
	}, false)
}
