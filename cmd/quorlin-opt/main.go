// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/holiman/uint256"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"quorlin/internal/config"
	"quorlin/internal/errors"
	"quorlin/internal/ir"
	"quorlin/internal/ir/irtext"
)

func main() {
	var (
		level      = flag.Int("O", 2, "optimization level (0-3)")
		configPath = flag.String("config", "", "YAML configuration file")
		fixedPoint = flag.Bool("fixed-point", false, "repeat the passes until the module stops changing")
		parallel   = flag.Bool("parallel", false, "optimize functions concurrently")
		noVerify   = flag.Bool("no-verify", false, "skip IR verification")
		verbosity  = flag.Int("v", 0, "log verbosity")
		output     = flag.String("o", "", "write the optimized module to this file instead of stdout")
		topics     = flag.Bool("topics", false, "list event signatures and topics instead of the module")
		layout     = flag.Bool("layout", false, "list the storage layout of every contract instead of the module")
		key        = flag.String("key", "", "with -layout, also show the mapping slots for this key (decimal or 0x hex)")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: quorlin-opt [flags] <file.qir>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	// flags given on the command line win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "O":
			cfg.Optimizer.Level = *level
		case "fixed-point":
			cfg.Optimizer.FixedPoint = *fixedPoint
		case "parallel":
			cfg.Optimizer.Parallel = *parallel
		case "no-verify":
			cfg.Optimizer.Verify = !*noVerify
		case "v":
			cfg.Log.Verbosity = *verbosity
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())

	startTime := time.Now()

	module, source, err := irtext.ParseFile(path)
	if err != nil {
		report(path, source, err)
		os.Exit(1)
	}

	if *topics {
		printTopics(module)
		return
	}
	if *layout {
		var mappingKey *uint256.Int
		if *key != "" {
			if mappingKey, err = parseKey(*key); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
		printLayout(module, mappingKey)
		return
	}

	optimized, err := ir.NewPipeline(cfg.PipelineOptions()).Run(module)
	if err != nil {
		report(path, source, err)
		color.Red("Optimization failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	text := ir.Print(optimized)
	if *output != "" {
		if err := os.WriteFile(*output, []byte(text), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Print(text)
	}

	fmt.Fprintln(os.Stderr, color.GreenString("Optimized %s at -O%d in %s (%d -> %d instructions)",
		path, cfg.Optimizer.Level, formatDuration(time.Since(startTime)),
		module.InstructionCount(), optimized.InstructionCount()))
}

// report prints diagnostics with source context, or the bare error
func report(path, source string, err error) {
	reporter := errors.NewErrorReporter(path, source)
	switch e := err.(type) {
	case errors.List:
		fmt.Fprint(os.Stderr, reporter.FormatList(e))
	case *errors.InternalError:
		fmt.Fprint(os.Stderr, reporter.FormatError(e.ToCompilerError()))
	default:
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
	}
}

func printTopics(m *ir.Module) {
	for _, c := range m.Contracts {
		for _, e := range c.Events {
			fmt.Printf("%s.%s %s\n", c.Name, e.Signature(), e.TopicHex())
		}
	}
}

func printLayout(m *ir.Module, key *uint256.Int) {
	for _, c := range m.Contracts {
		for _, info := range c.Layout(key) {
			fmt.Printf("%s.%s: %s @ %s\n", c.Name, info.Name, info.Type, info.Base.V.Hex())
			if info.Data != nil {
				fmt.Printf("  data @ %s\n", info.Data.Hex())
			}
			if info.Element != nil {
				fmt.Printf("  [%s] @ %s\n", key.Hex(), info.Element.Hex())
			}
		}
	}
}

func parseKey(text string) (*uint256.Int, error) {
	b, ok := new(big.Int).SetString(text, 0)
	if !ok || b.Sign() < 0 {
		return nil, fmt.Errorf("invalid key %q", text)
	}
	k, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("key %q does not fit in 256 bits", text)
	}
	return k, nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
