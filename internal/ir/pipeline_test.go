package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorlin/internal/errors"
)

func TestNewPipelineSelectsPassesByLevel(t *testing.T) {
	names := func(level int) []string {
		var out []string
		for _, p := range NewPipeline(Options{Level: level}).Passes() {
			out = append(out, p.Name())
		}
		return out
	}

	assert.Empty(t, names(0))
	assert.Equal(t, []string{"constant-folding"}, names(1))
	assert.Equal(t, []string{"constant-folding", "dead-code-elimination"}, names(2))
	assert.Equal(t, []string{"constant-folding", "dead-code-elimination", "common-subexpression-elimination"}, names(3))
	assert.Equal(t, names(3), names(7))
}

func TestOptimizeFoldsAndRemovesDeadCode(t *testing.T) {
	m := singleBlock(Return{Value: r(0)},
		add(r(0), c(2), c(3)),
		mul(r(1), r(0), c(1)),
	)

	out := Optimize(m, 2)
	assert.Equal(t, []Instruction{Assign{Dest: 0, Src: c(5)}}, entry(out))
	assert.Equal(t, Return{Value: r(0)}, out.Functions[0].Blocks["entry"].Terminator)
}

func TestOptimizeLevelZeroIsIdentity(t *testing.T) {
	m := tokenModule()
	out := Optimize(m, 0)

	assert.Equal(t, Print(m), Print(out))
	assert.NotSame(t, m.Contracts[0], out.Contracts[0])
}

func TestHigherLevelRemovesMore(t *testing.T) {
	m := singleBlock(Return{Value: r(0)},
		Assign{Dest: 0, Src: c(1)},
		Assign{Dest: 1, Src: c(2)},
	)

	level1 := Optimize(m, 1)
	level2 := Optimize(m, 2)
	assert.Less(t, level2.InstructionCount(), level1.InstructionCount())
}

func TestOptimizeDoesNotModifyInput(t *testing.T) {
	m := tokenModule()
	m.Functions = append(m.Functions, singleBlock(Return{Value: r(1)},
		add(r(0), c(2), c(3)),
		mul(r(1), r(0), c(1)),
		mul(r(2), r(1), c(0)),
		add(r(3), r(1), r(0)),
	).Functions[0])
	before := Print(m)
	count := m.InstructionCount()

	for level := 0; level <= MaxLevel; level++ {
		_ = Optimize(m, level)
		assert.Equal(t, before, Print(m), "level %d", level)
		assert.Equal(t, count, m.InstructionCount(), "level %d", level)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	m := tokenModule()
	for i := 0; i < 8; i++ {
		m.Functions = append(m.Functions, singleBlock(Return{Value: r(2)},
			add(r(0), c(uint64(i)), c(1)),
			mul(r(1), r(0), c(1)),
			add(r(2), r(1), r(0)),
			add(r(3), r(0), r(1)),
		).Functions[0])
	}

	sequential, err := NewPipeline(Options{Level: 3}).Run(m)
	require.NoError(t, err)
	parallel, err := NewPipeline(Options{Level: 3, Parallel: true}).Run(m)
	require.NoError(t, err)

	assert.Equal(t, Print(sequential), Print(parallel))
}

func TestFixedPointConverges(t *testing.T) {
	m := tokenModule()

	once, err := NewPipeline(Options{Level: 3}).Run(m)
	require.NoError(t, err)
	fixed, err := NewPipeline(Options{Level: 3, FixedPoint: true, MaxIterations: 4}).Run(m)
	require.NoError(t, err)

	assert.Equal(t, Print(Optimize(once, 3)), Print(fixed))
}

func TestRunRejectsMalformedInput(t *testing.T) {
	m := singleBlock(Return{Value: r(9)}, Assign{Dest: 0, Src: c(1)})

	_, err := NewPipeline(Options{Level: 2, Verify: true}).Run(m)
	require.Error(t, err)

	var list errors.List
	require.ErrorAs(t, err, &list)
	assert.True(t, list.HasKind(errors.KindIRMalformed))
}

func TestOptimizeAbortsOnUndefinedRegister(t *testing.T) {
	m := singleBlock(Return{Value: r(0)}, add(r(0), r(42), c(1)))

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		Optimize(m, 2)
	}()

	ice, ok := recovered.(*errors.InternalError)
	require.True(t, ok, "expected an internal compiler error, got %v", recovered)
	assert.Contains(t, ice.Message, "%42")
	assert.Contains(t, ice.Message, "never defined")
}

type breakingPass struct{}

func (breakingPass) Name() string        { return "breaking" }
func (breakingPass) Description() string { return "drops every terminator" }
func (breakingPass) RunOnFunction(f *Function) *Function {
	out := RewriteBlocks(f, func(b *BasicBlock) []Instruction { return b.Instructions })
	for _, b := range out.Blocks {
		b.Terminator = nil
	}
	return out
}

func TestRunReportsBrokenPassAsInternalError(t *testing.T) {
	p := NewPipeline(Options{Level: 1, Verify: true})
	p.AddPass(breakingPass{})

	_, err := p.Run(tokenModule())
	var ice *errors.InternalError
	require.ErrorAs(t, err, &ice)
	assert.Contains(t, ice.Message, "breaking")
}
