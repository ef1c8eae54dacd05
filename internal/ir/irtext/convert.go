package irtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/holiman/uint256"

	"quorlin/internal/builtins"
	"quorlin/internal/errors"
	"quorlin/internal/ir"
	"quorlin/internal/types"
)

// converter turns the parse tree into IR, collecting every structural
// error instead of stopping at the first
type converter struct {
	filename string
	errors   errors.List
}

func (c *converter) errorf(pos lexer.Position, format string, args ...any) {
	c.errors = append(c.errors, errors.IRSyntax(fmt.Sprintf(format, args...), position(pos)))
}

func (c *converter) module(file *File) *ir.Module {
	m := &ir.Module{Name: file.Name}
	for _, item := range file.Items {
		switch {
		case item.Contract != nil:
			m.Contracts = append(m.Contracts, c.contract(item.Contract))
		case item.Function != nil:
			m.Functions = append(m.Functions, c.function(item.Function))
		}
	}
	return m
}

func (c *converter) contract(decl *ContractDecl) *ir.Contract {
	contract := &ir.Contract{Name: decl.Name}
	explicitSlots := false

	for _, member := range decl.Members {
		switch {
		case member.Storage != nil:
			s := member.Storage
			v := &ir.StateVar{Name: s.Name, Type: c.typeRef(s.Type), Constant: s.Constant}
			contract.StateVars = append(contract.StateVars, v)
			if s.Slot == nil {
				continue
			}
			if s.Constant {
				c.errorf(s.Pos, "constant %s cannot occupy a storage slot", s.Name)
				continue
			}
			slot, err := strconv.ParseUint(*s.Slot, 0, 64)
			if err != nil {
				c.errorf(s.Pos, "invalid storage slot %q", *s.Slot)
				continue
			}
			explicitSlots = true
			contract.StorageLayout = append(contract.StorageLayout, &ir.StorageSlot{Name: v.Name, Slot: slot, Type: v.Type})

		case member.Event != nil:
			e := &ir.Event{Name: member.Event.Name}
			for _, f := range member.Event.Fields {
				e.Params = append(e.Params, &ir.EventParam{Name: f.Name, Type: c.typeRef(f.Type), Indexed: f.Indexed})
			}
			contract.Events = append(contract.Events, e)

		case member.Function != nil:
			contract.Functions = append(contract.Functions, c.function(member.Function))
		}
	}

	if !explicitSlots {
		contract.StorageLayout = ir.ComputeLayout(contract.StateVars)
	}
	return contract
}

func (c *converter) function(decl *FunctionDecl) *ir.Function {
	b := ir.NewFunctionBuilder(decl.Name)
	for _, p := range decl.Params {
		b.ParamAt(c.register(p.Pos, p.Reg), p.Name, c.typeRef(p.Type))
	}
	if decl.Return != nil {
		b.Returns(c.typeRef(decl.Return))
	}
	for _, l := range decl.Locals {
		b.Local(l.Name, c.register(l.Pos, l.Reg))
	}
	if len(decl.Blocks) == 0 {
		c.errorf(decl.Pos, "function %s has no blocks", decl.Name)
	}

	for _, block := range decl.Blocks {
		if b.HasBlock(block.Label) {
			c.errorf(block.Pos, "duplicate block label %s", block.Label)
			continue
		}
		b.Block(block.Label)

		for i, line := range block.Lines {
			last := i == len(block.Lines)-1
			switch {
			case line.Terminator != nil && last:
				b.Terminate(c.terminator(line.Terminator))
			case line.Terminator != nil:
				c.errorf(line.Terminator.Pos, "terminator must be the last line of block %s", block.Label)
			default:
				if inst := c.instruction(line.Instruction); inst != nil {
					b.Append(inst)
				}
			}
		}
		if n := len(block.Lines); n == 0 || block.Lines[n-1].Terminator == nil {
			c.errorf(block.Pos, "block %s does not end with a terminator", block.Label)
		}
	}
	return b.Build()
}

func (c *converter) instruction(decl *InstructionDecl) ir.Instruction {
	name, checked := strings.CutSuffix(decl.Op, ".checked")
	isCall := decl.Op == "call" || decl.Op == "call.ext"

	if (decl.Callee != nil) != (isCall || decl.Op == "emit") {
		if decl.Callee != nil {
			c.errorf(decl.Pos, "%s does not take a target", decl.Op)
		} else {
			c.errorf(decl.Pos, "%s needs a target name", decl.Op)
		}
		return nil
	}

	args := c.operands(decl.Args)
	if decl.Callee != nil {
		args = c.operands(decl.CallArgs)
	}

	wantDest := func(want bool) (ir.Register, bool) {
		if want && decl.Dest == nil {
			c.errorf(decl.Pos, "%s needs a destination register", decl.Op)
			return ir.NoRegister, false
		}
		if !want && decl.Dest != nil {
			c.errorf(decl.Pos, "%s does not produce a value", decl.Op)
			return ir.NoRegister, false
		}
		if decl.Dest == nil {
			return ir.NoRegister, true
		}
		return c.register(decl.Pos, *decl.Dest), true
	}
	arity := func(n int) bool {
		if len(args) != n {
			c.errorf(decl.Pos, "%s takes %d operand(s), got %d", decl.Op, n, len(args))
			return false
		}
		return true
	}

	if op, ok := ir.ParseArithOp(name); ok {
		dest, ok := wantDest(true)
		if !ok || !arity(2) {
			return nil
		}
		return ir.Arith{Op: op, Dest: dest, Left: args[0], Right: args[1], Checked: checked}
	}
	if op, ok := ir.ParseCompareOp(decl.Op); ok {
		dest, ok := wantDest(true)
		if !ok || !arity(2) {
			return nil
		}
		return ir.Compare{Op: op, Dest: dest, Left: args[0], Right: args[1]}
	}

	switch decl.Op {
	case "mov":
		if dest, ok := wantDest(true); ok && arity(1) {
			return ir.Assign{Dest: dest, Src: args[0]}
		}
	case "sload":
		if dest, ok := wantDest(true); ok && arity(1) {
			return ir.SLoad{Dest: dest, Slot: args[0]}
		}
	case "sstore":
		if _, ok := wantDest(false); ok && arity(2) {
			return ir.SStore{Slot: args[0], Value: args[1]}
		}
	case "keccak":
		dest, ok := wantDest(true)
		if ok && len(args) == 0 {
			c.errorf(decl.Pos, "keccak needs at least one operand")
			return nil
		}
		if ok {
			return ir.Keccak{Dest: dest, Args: args}
		}
	case "caller":
		if dest, ok := wantDest(true); ok && arity(0) {
			return ir.Caller{Dest: dest}
		}
	case "call", "call.ext":
		dest, _ := wantDest(decl.Dest != nil)
		return ir.Call{Dest: dest, Callee: *decl.Callee, Args: args, External: decl.Op == "call.ext"}
	case "emit":
		if _, ok := wantDest(false); ok {
			return ir.Emit{Event: *decl.Callee, Args: args}
		}
	default:
		c.errorf(decl.Pos, "unknown opcode %s", decl.Op)
	}
	return nil
}

func (c *converter) terminator(decl *TerminatorDecl) ir.Terminator {
	switch {
	case decl.Jump != nil:
		return ir.Jump{Target: *decl.Jump}
	case decl.Branch != nil:
		return ir.Branch{Cond: c.operand(decl.Branch.Cond), Then: decl.Branch.Then, Else: decl.Branch.Else}
	case decl.Return != nil:
		if decl.Return.Value == nil {
			return ir.Return{}
		}
		return ir.Return{Value: c.operand(decl.Return.Value)}
	default:
		if decl.Abort.Reason == nil {
			return ir.Abort{}
		}
		return ir.Abort{Reason: *decl.Abort.Reason}
	}
}

func (c *converter) operands(decls []*Operand) []ir.Value {
	if len(decls) == 0 {
		return nil
	}
	out := make([]ir.Value, len(decls))
	for i, d := range decls {
		out[i] = c.operand(d)
	}
	return out
}

func (c *converter) operand(decl *Operand) ir.Value {
	if decl.Register != nil {
		return c.register(decl.Pos, *decl.Register)
	}

	var (
		v   *uint256.Int
		err error
	)
	// both parsers reject leading zeros
	if digits, hex := strings.CutPrefix(*decl.Int, "0x"); hex {
		v, err = uint256.FromHex("0x" + trimZeros(digits))
	} else {
		v, err = uint256.FromDecimal(trimZeros(digits))
	}
	if err != nil {
		c.errorf(decl.Pos, "constant %s does not fit in 256 bits", *decl.Int)
		return ir.ConstInt(0)
	}
	return ir.ConstFrom(v)
}

func (c *converter) register(pos lexer.Position, text string) ir.Register {
	n, err := strconv.Atoi(strings.TrimPrefix(text, "%"))
	if err != nil {
		c.errorf(pos, "invalid register %s", text)
		return 0
	}
	return ir.Register(n)
}

func (c *converter) typeRef(ref *TypeRef) types.Type {
	arity := func(n int) bool {
		if len(ref.Args) != n {
			c.errorf(ref.Pos, "%s takes %d type argument(s), got %d", ref.Name, n, len(ref.Args))
			return false
		}
		return true
	}

	switch ref.Name {
	case builtins.Mapping:
		if !arity(2) {
			return types.ErrorT
		}
		return types.Mapping{Key: c.typeRef(ref.Args[0]), Value: c.typeRef(ref.Args[1])}
	case builtins.List:
		if !arity(1) {
			return types.ErrorT
		}
		return types.Array{Elem: c.typeRef(ref.Args[0])}
	}

	if !arity(0) {
		return types.ErrorT
	}
	if t, ok := types.FromBuiltin(ref.Name); ok {
		return t
	}
	return types.Named{Name: ref.Name, Kind: types.StructKind}
}

func trimZeros(digits string) string {
	if trimmed := strings.TrimLeft(digits, "0"); trimmed != "" {
		return trimmed
	}
	return "0"
}
