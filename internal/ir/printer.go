package ir

import (
	"fmt"
	"sort"
	"strings"
)

// Printer renders IR in the textual form read back by the irtext package.
// Output is deterministic: blocks follow Function.Labels and locals are
// sorted by name.
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new IR printer
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// Print returns the textual form of a module
func Print(m *Module) string {
	p := NewPrinter()
	p.printModule(m)
	return p.output.String()
}

// PrintFunction returns the textual form of a single function
func PrintFunction(f *Function) string {
	p := NewPrinter()
	p.printFunction(f)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printModule(m *Module) {
	p.writeLine("module %s", m.Name)

	for _, c := range m.Contracts {
		p.output.WriteString("\n")
		p.printContract(c)
	}
	for _, f := range m.Functions {
		p.output.WriteString("\n")
		p.printFunction(f)
	}
}

func (p *Printer) printContract(c *Contract) {
	p.writeLine("contract %s {", c.Name)
	p.indent++

	for _, v := range c.StateVars {
		switch slot, ok := c.SlotOf(v.Name); {
		case v.Constant:
			p.writeLine("storage %s: %s const", v.Name, v.Type)
		case ok:
			p.writeLine("storage %s: %s @ %d", v.Name, v.Type, slot.Slot)
		default:
			p.writeLine("storage %s: %s", v.Name, v.Type)
		}
	}

	for _, e := range c.Events {
		params := make([]string, len(e.Params))
		for i, param := range e.Params {
			prefix := ""
			if param.Indexed {
				prefix = "indexed "
			}
			params[i] = fmt.Sprintf("%s%s: %s", prefix, param.Name, param.Type)
		}
		p.writeLine("event %s(%s) ; %s", e.Name, strings.Join(params, ", "), e.TopicHex())
	}

	for i, f := range c.Functions {
		if i > 0 || len(c.StateVars) > 0 || len(c.Events) > 0 {
			p.output.WriteString("\n")
		}
		p.printFunction(f)
	}

	p.indent--
	p.writeLine("}")
}

func (p *Printer) printFunction(f *Function) {
	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		params[i] = fmt.Sprintf("%s %s: %s", param.Reg, param.Name, param.Type)
	}
	header := fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(params, ", "))
	if f.ReturnType != nil {
		header += " -> " + f.ReturnType.String()
	}
	p.writeLine("%s {", header)

	p.indent++
	names := make([]string, 0, len(f.LocalVars))
	for name := range f.LocalVars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.writeLine("local %s = %s", name, f.LocalVars[name])
	}
	p.indent--

	for _, label := range f.Labels() {
		p.printBlock(f.Blocks[label])
	}
	p.writeLine("}")
}

func (p *Printer) printBlock(b *BasicBlock) {
	p.writeLine("%s:", b.Label)
	p.indent++
	for _, inst := range b.Instructions {
		p.writeLine("%s", inst)
	}
	if b.Terminator != nil {
		p.writeLine("%s", b.Terminator)
	}
	p.indent--
}
