package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelsOrder(t *testing.T) {
	b := NewFunctionBuilder("f")
	b.Block("start")
	b.Branch(c(1), "left", "right")
	b.Block("right")
	b.Jump("join")
	b.Block("zombie")
	b.Jump("join")
	b.Block("left")
	b.Jump("join")
	b.Block("join")
	b.Return(nil)
	b.Block("dead")
	b.Abort("")
	f := b.Build()

	assert.Equal(t, []string{"start", "left", "right", "join", "dead", "zombie"}, f.Labels())
}

func TestRebuildEdges(t *testing.T) {
	b := NewFunctionBuilder("f")
	b.Block("entry")
	b.Branch(c(1), "body", "body")
	b.Block("body")
	b.Jump("entry")
	f := b.Build()

	assert.Equal(t, []string{"body"}, f.Blocks["entry"].Successors)
	assert.Equal(t, []string{"body"}, f.Blocks["entry"].Predecessors)
	assert.Equal(t, []string{"entry"}, f.Blocks["body"].Predecessors)
	assert.Equal(t, []string{"entry"}, f.Blocks["body"].Successors)
}

func TestReachable(t *testing.T) {
	m := tokenModule()
	f := m.Contracts[0].Functions[0]
	f.Blocks["orphan"] = &BasicBlock{Label: "orphan", Terminator: Jump{Target: "send"}}

	reachable := f.Reachable()
	assert.True(t, reachable["entry"])
	assert.True(t, reachable["send"])
	assert.True(t, reachable["fail"])
	assert.False(t, reachable["orphan"])
}

func TestBuilderAllocatesAfterExplicitRegisters(t *testing.T) {
	b := NewFunctionBuilder("f")
	b.ParamAt(4, "x", nil)
	b.Block("entry")
	next := b.Add(r(4), c(1))
	b.Return(nil)

	assert.Equal(t, Register(5), next)
	assert.Equal(t, Register(6), b.Build().NextRegister)
}

func TestBuilderRejectsDuplicateBlock(t *testing.T) {
	b := NewFunctionBuilder("f")
	b.Block("entry")
	assert.Panics(t, func() { b.Block("entry") })
}
