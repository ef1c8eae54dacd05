package ir

import (
	"quorlin/internal/types"
)

func c(v uint64) Const { return ConstInt(v) }

func r(n int) Register { return Register(n) }

func add(dest, left, right Value) Arith {
	return Arith{Op: OpAdd, Dest: dest.(Register), Left: left, Right: right}
}

func mul(dest, left, right Value) Arith {
	return Arith{Op: OpMul, Dest: dest.(Register), Left: left, Right: right}
}

// singleBlock wraps straight-line code in a module with one free function
func singleBlock(term Terminator, insts ...Instruction) *Module {
	b := NewFunctionBuilder("f")
	b.Returns(types.Uint256)
	b.Block("entry")
	for _, inst := range insts {
		b.Append(inst)
	}
	b.Terminate(term)
	return &Module{Name: "test", Functions: []*Function{b.Build()}}
}

func entry(m *Module) []Instruction {
	f := m.Functions[0]
	return f.Blocks[f.Entry].Instructions
}

// tokenModule is a small contract touching storage, events and calls
func tokenModule() *Module {
	contract := &Contract{
		Name: "Token",
		StateVars: []*StateVar{
			{Name: "total", Type: types.Uint256},
			{Name: "decimals", Type: types.Int{Bits: 8}, Constant: true},
			{Name: "balances", Type: types.Mapping{Key: types.AddrT, Value: types.Uint256}},
		},
		Events: []*Event{{
			Name: "Transfer",
			Params: []*EventParam{
				{Name: "from", Type: types.AddrT, Indexed: true},
				{Name: "to", Type: types.AddrT, Indexed: true},
				{Name: "value", Type: types.Uint256},
			},
		}},
	}
	contract.StorageLayout = ComputeLayout(contract.StateVars)

	b := NewFunctionBuilder("transfer")
	to := b.Param("to", types.AddrT)
	amount := b.Param("amount", types.Uint256)
	b.Returns(types.BoolT)
	b.Block("entry")
	sender := b.Caller()
	slot := b.Keccak(sender, c(1))
	balance := b.SLoad(slot)
	b.Local("balance", balance)
	ok := b.Compare(CmpGe, balance, amount)
	b.Branch(ok, "send", "fail")

	b.Block("send")
	rest := b.Arith(OpSub, balance, amount, true)
	b.SStore(slot, rest)
	b.Emit("Transfer", sender, to, amount)
	b.Return(c(1))

	b.Block("fail")
	b.Abort("insufficient balance")
	contract.Functions = []*Function{b.Build()}

	helper := NewFunctionBuilder("double")
	x := helper.Param("x", types.Uint256)
	helper.Returns(types.Uint256)
	helper.Block("entry")
	helper.Return(helper.Mul(x, c(2)))

	return &Module{Name: "token", Contracts: []*Contract{contract}, Functions: []*Function{helper.Build()}}
}
