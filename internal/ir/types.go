package ir

import (
	"quorlin/internal/types"
)

// IR types and structures handed from the lowering stage to the optimizer
// and from the optimizer to the target emitters. Registers are write-once
// per function (SSA-like) and every pass rebuilds the tree instead of
// mutating it, so a Module is safe to keep around as a snapshot.

// Module is the unit the optimizer consumes and produces
type Module struct {
	Name      string
	Contracts []*Contract
	Functions []*Function
}

// Contract groups the storage, events and methods of one contract
type Contract struct {
	Name          string
	StateVars     []*StateVar
	Functions     []*Function
	Events        []*Event
	StorageLayout []*StorageSlot
}

// StateVar is a contract storage variable
type StateVar struct {
	Name     string
	Type     types.Type
	Constant bool
}

// Param is a function parameter bound to the register holding its value
type Param struct {
	Name string
	Type types.Type
	Reg  Register
}

// Function is a control-flow graph of basic blocks
type Function struct {
	Name         string
	Params       []*Param
	ReturnType   types.Type // nil when the function returns nothing
	Entry        string
	Blocks       map[string]*BasicBlock
	LocalVars    map[string]Register
	NextRegister Register
}

// BasicBlock is a straight-line instruction list ending in one terminator
type BasicBlock struct {
	Label        string
	Instructions []Instruction
	Terminator   Terminator
	Predecessors []string
	Successors   []string
}

// InstructionCount is the number of non-terminator instructions in f
func (f *Function) InstructionCount() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Instructions)
	}
	return n
}

// AllFunctions returns free functions followed by contract methods, in order
func (m *Module) AllFunctions() []*Function {
	fns := append([]*Function(nil), m.Functions...)
	for _, c := range m.Contracts {
		fns = append(fns, c.Functions...)
	}
	return fns
}

// InstructionCount is the number of non-terminator instructions in m
func (m *Module) InstructionCount() int {
	n := 0
	for _, f := range m.AllFunctions() {
		n += f.InstructionCount()
	}
	return n
}

// FindFunction looks up a free function, or a contract method as "Contract.method"
func (m *Module) FindFunction(name string) *Function {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	for _, c := range m.Contracts {
		for _, f := range c.Functions {
			if c.Name+"."+f.Name == name {
				return f
			}
		}
	}
	return nil
}
