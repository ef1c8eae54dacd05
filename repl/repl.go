// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"quorlin/internal/errors"
	"quorlin/internal/ir"
	"quorlin/internal/ir/irtext"
)

const PROMPT = ">> "

// CONTINUATION is shown while a module is being entered
const CONTINUATION = ".. "

// Start reads textual IR modules from in, one per blank-line-terminated
// chunk, and writes each optimized at level to out. Input left at end of
// stream is processed before returning.
func Start(in io.Reader, out io.Writer, level int) {
	scanner := bufio.NewScanner(in)
	var chunk []string

	fmt.Fprint(out, PROMPT)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			chunk = append(chunk, line)
			fmt.Fprint(out, CONTINUATION)
			continue
		}
		if len(chunk) > 0 {
			run(out, strings.Join(chunk, "\n")+"\n", level)
			chunk = nil
		}
		fmt.Fprint(out, PROMPT)
	}

	if len(chunk) > 0 {
		run(out, strings.Join(chunk, "\n")+"\n", level)
	}
}

func run(out io.Writer, source string, level int) {
	m, err := irtext.Parse("<repl>", source)
	if err != nil {
		printErrors(out, source, err)
		return
	}

	optimized, err := ir.NewPipeline(ir.Options{Level: level, Verify: true}).Run(m)
	if err != nil {
		printErrors(out, source, err)
		return
	}

	fmt.Fprintf(out, "\n%s", ir.Print(optimized))
	fmt.Fprintf(out, "; %d -> %d instructions\n", m.InstructionCount(), optimized.InstructionCount())
}

func printErrors(out io.Writer, source string, err error) {
	reporter := errors.NewErrorReporter("<repl>", source)
	switch e := err.(type) {
	case errors.List:
		fmt.Fprint(out, reporter.FormatList(e))
	case *errors.InternalError:
		fmt.Fprint(out, reporter.FormatError(e.ToCompilerError()))
	default:
		fmt.Fprintf(out, "error: %v\n", err)
	}
}
