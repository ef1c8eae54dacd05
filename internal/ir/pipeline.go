package ir

import (
	"github.com/tliron/commonlog"

	"quorlin/internal/errors"
)

var log = commonlog.GetLogger("quorlin.ir")

// DefaultMaxIterations bounds fixed-point iteration
const DefaultMaxIterations = 10

// MaxLevel is the highest optimization level with its own passes
const MaxLevel = 3

// Options controls the optimization pipeline
type Options struct {
	// Level selects the passes: 0 none, 1 folding, 2 adds dead code
	// elimination, 3 adds common subexpression elimination
	Level int
	// FixedPoint repeats the pass sequence until the module stops changing
	FixedPoint bool
	// MaxIterations caps FixedPoint; zero means DefaultMaxIterations
	MaxIterations int
	// Parallel rewrites the functions of a module concurrently
	Parallel bool
	// Verify checks the module before the first pass and after every pass
	Verify bool
}

// Pipeline runs the passes selected by an optimization level
type Pipeline struct {
	options Options
	passes  []Pass
}

// NewPipeline creates a pipeline for the given options
func NewPipeline(options Options) *Pipeline {
	pipeline := &Pipeline{options: options}

	if options.Level >= 1 {
		pipeline.AddPass(ConstantFolding{})
	}
	if options.Level >= 2 {
		pipeline.AddPass(DeadCodeElimination{})
	}
	if options.Level >= 3 {
		pipeline.AddPass(CommonSubexpressionElimination{})
	}
	return pipeline
}

// AddPass appends a pass to the pipeline
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// Passes returns the passes in execution order
func (p *Pipeline) Passes() []Pass {
	return append([]Pass(nil), p.passes...)
}

// Run applies the passes to m and returns the optimized module. The input
// is never modified. A malformed input is reported as an error when
// verification is enabled; a pass producing malformed IR is an internal
// compiler error.
func (p *Pipeline) Run(m *Module) (result *Module, err error) {
	defer func() { err = errors.RecoverInternal(recover(), err) }()

	if p.options.Verify {
		if err := Verify(m); err != nil {
			return nil, err
		}
	}

	if len(p.passes) == 0 {
		log.Debugf("level %d: no passes", p.options.Level)
		return Clone(m), nil
	}

	iterations := 1
	if p.options.FixedPoint {
		iterations = p.options.MaxIterations
		if iterations <= 0 {
			iterations = DefaultMaxIterations
		}
	}

	current := m
	for i := 1; i <= iterations; i++ {
		before := Print(current)
		current = p.runOnce(current)
		if !p.options.FixedPoint {
			break
		}
		if Print(current) == before {
			log.Debugf("fixed point reached after %d iteration(s)", i)
			break
		}
		if i == iterations {
			log.Warningf("no fixed point after %d iterations", iterations)
		}
	}

	log.Infof("module %q: %d -> %d instructions at level %d",
		m.Name, m.InstructionCount(), current.InstructionCount(), p.options.Level)
	return current, nil
}

func (p *Pipeline) runOnce(m *Module) *Module {
	for _, pass := range p.passes {
		before := m.InstructionCount()
		m = RunPass(pass, m, p.options.Parallel)
		log.Debugf("%s: %d -> %d instructions", pass.Name(), before, m.InstructionCount())

		if p.options.Verify {
			if err := Verify(m); err != nil {
				errors.ICE("%s produced malformed IR: %s", pass.Name(), err)
			}
		}
	}
	return m
}

// Optimize applies the passes for level once each, in order: constant
// folding at level 1 and above, dead code elimination at 2 and above and
// common subexpression elimination at 3 and above. The input must already
// be well formed; malformed IR panics with an internal compiler error.
func Optimize(m *Module, level int) *Module {
	out, err := NewPipeline(Options{Level: level, Verify: true}).Run(m)
	if err != nil {
		errors.ICE("optimize: %s", err)
	}
	return out
}
