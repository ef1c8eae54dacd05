package ir

import (
	"fmt"

	"quorlin/internal/errors"
)

// Verify checks the structural invariants of m: every function has an
// entry block, every block ends in a terminator whose targets exist,
// registers are defined exactly once and every register read has a
// definition. It returns an errors.List of IRMalformed diagnostics.
func Verify(m *Module) error {
	var list errors.List
	for _, c := range m.Contracts {
		for _, f := range c.Functions {
			list = append(list, verifyFunction(c.Name+"."+f.Name, f, c)...)
		}
		for _, e := range c.Events {
			list = append(list, verifyEvent(c, e)...)
		}
	}
	for _, f := range m.Functions {
		list = append(list, verifyFunction(f.Name, f, nil)...)
	}
	if len(list) > 0 {
		return list
	}
	return nil
}

// verifyFunction checks f; c is the enclosing contract, nil for free functions
func verifyFunction(name string, f *Function, c *Contract) errors.List {
	var list errors.List
	report := func(format string, args ...any) {
		list = append(list, errors.IRMalformed(name, fmt.Sprintf(format, args...)))
	}

	if _, ok := f.Blocks[f.Entry]; !ok {
		report("entry block %q does not exist", f.Entry)
	}

	defined := make(map[Register]bool)
	define := func(r Register, where string) {
		if r < 0 {
			report("negative register %s in %s", r, where)
			return
		}
		if defined[r] {
			report("register %s defined more than once (%s)", r, where)
		}
		if r >= f.NextRegister {
			report("register %s is not below the next free register %s", r, f.NextRegister)
		}
		defined[r] = true
	}
	for _, p := range f.Params {
		define(p.Reg, "parameter "+p.Name)
	}

	labels := f.Labels()
	for _, label := range labels {
		b := f.Blocks[label]
		if b.Label != label {
			report("block stored under %q is labeled %q", label, b.Label)
		}
		for _, inst := range b.Instructions {
			if reg, ok := inst.Def(); ok {
				define(reg, "block "+label)
			}
		}
	}

	checkUses := func(label string, what fmt.Stringer, uses []Value) {
		for _, v := range uses {
			if v == nil {
				report("missing operand in %q (block %s)", what, label)
				continue
			}
			if r, ok := v.(Register); ok && !defined[r] {
				report("register %s used in %q (block %s) is never defined", r, what, label)
			}
		}
	}

	for _, label := range labels {
		b := f.Blocks[label]
		for _, inst := range b.Instructions {
			checkUses(label, inst, inst.Uses())
			if emit, ok := inst.(Emit); ok && c != nil {
				event := c.FindEvent(emit.Event)
				switch {
				case event == nil:
					report("block %s emits undeclared event %s", label, emit.Event)
				case len(event.Params) != len(emit.Args):
					report("event %s takes %d fields, emitted with %d", emit.Event, len(event.Params), len(emit.Args))
				}
			}
		}
		if b.Terminator == nil {
			report("block %s has no terminator", label)
			continue
		}
		checkUses(label, b.Terminator, b.Terminator.Uses())
		for _, target := range b.Terminator.Targets() {
			if _, ok := f.Blocks[target]; !ok {
				report("block %s jumps to unknown block %q", label, target)
			}
		}
		if ret, ok := b.Terminator.(Return); ok {
			if f.ReturnType == nil && ret.Value != nil {
				report("block %s returns a value from a function without a result", label)
			}
			if f.ReturnType != nil && ret.Value == nil {
				report("block %s returns no value from a function returning %s", label, f.ReturnType)
			}
		}
	}

	for local, r := range f.LocalVars {
		if !defined[r] {
			report("local %s refers to undefined register %s", local, r)
		}
	}
	return list
}

func verifyEvent(c *Contract, e *Event) errors.List {
	var list errors.List
	seen := make(map[string]bool)
	for _, p := range e.Params {
		if seen[p.Name] {
			list = append(list, errors.IRMalformed(c.Name+"."+e.Name,
				fmt.Sprintf("duplicate event field %q", p.Name)))
		}
		seen[p.Name] = true
	}
	return list
}
