package ir

// DeadCodeElimination removes instructions whose result is never read.
// Storage writes, log entries, calls and checked arithmetic are always
// kept. Liveness is computed over the whole function: blocks are swept in
// reverse instruction order until the live set stops growing, so values
// flowing into other blocks or around loops are seen.
type DeadCodeElimination struct{}

func (DeadCodeElimination) Name() string {
	return "dead-code-elimination"
}

func (DeadCodeElimination) Description() string {
	return "Removes instructions whose results are never used and that have no observable effect"
}

func (DeadCodeElimination) RunOnFunction(f *Function) *Function {
	live := LiveRegisters(f)

	out := RewriteBlocks(f, func(b *BasicBlock) []Instruction {
		kept := make([]Instruction, 0, len(b.Instructions))
		for _, inst := range b.Instructions {
			if keepInstruction(inst, live) {
				kept = append(kept, inst)
			}
		}
		return kept
	})

	// drop debug names of registers that no longer exist
	defined := make(map[Register]bool)
	for _, p := range out.Params {
		defined[p.Reg] = true
	}
	for _, b := range out.Blocks {
		for _, inst := range b.Instructions {
			if reg, ok := inst.Def(); ok {
				defined[reg] = true
			}
		}
	}
	for name, reg := range out.LocalVars {
		if !defined[reg] {
			delete(out.LocalVars, name)
		}
	}
	return out
}

// LiveRegisters returns the registers read by terminators or by
// instructions that must be kept
func LiveRegisters(f *Function) map[Register]bool {
	live := make(map[Register]bool)
	labels := f.Labels()
	for changed := true; changed; {
		changed = false
		for _, label := range labels {
			if sweepBlock(f.Blocks[label], live) {
				changed = true
			}
		}
	}
	return live
}

// sweepBlock walks b backwards marking operands of kept instructions live.
// It reports whether the live set grew.
func sweepBlock(b *BasicBlock, live map[Register]bool) bool {
	grew := false
	mark := func(vs []Value) {
		for _, v := range vs {
			if r, ok := v.(Register); ok && !live[r] {
				live[r] = true
				grew = true
			}
		}
	}

	if b.Terminator != nil {
		mark(b.Terminator.Uses())
	}
	for i := len(b.Instructions) - 1; i >= 0; i-- {
		inst := b.Instructions[i]
		if keepInstruction(inst, live) {
			mark(inst.Uses())
		}
	}
	return grew
}

// keepInstruction keeps anything with an observable effect or a live
// result. Checked arithmetic also stays when its result is dead: it may
// abort on overflow, and dropping it would turn a reverting call into a
// succeeding one.
func keepInstruction(inst Instruction, live map[Register]bool) bool {
	if !inst.Effects().Removable() {
		return true
	}
	reg, ok := inst.Def()
	return ok && live[reg]
}
