// Package irtext reads the textual IR written by ir.Print. The format is
// the exchange format between the lowering stage, the optimizer tools and
// the tests; Parse(ir.Print(m)) rebuilds a module that prints identically.
package irtext

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"quorlin/internal/ast"
	"quorlin/internal/errors"
	"quorlin/internal/ir"
)

var parser = participle.MustBuild[File](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Parse reads a module from source. Syntax and structure errors are
// returned as an errors.List of IRSyntax diagnostics.
func Parse(filename, source string) (*ir.Module, error) {
	file, err := parser.ParseString(filename, source)
	if err != nil {
		return nil, errors.List{syntaxError(filename, err)}
	}

	c := &converter{filename: filename}
	m := c.module(file)
	if len(c.errors) > 0 {
		return nil, c.errors
	}
	return m, nil
}

// ParseFile reads a module from disk
func ParseFile(path string) (*ir.Module, string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	m, err := Parse(path, string(source))
	return m, string(source), err
}

func syntaxError(filename string, err error) errors.CompilerError {
	pe, ok := err.(participle.Error)
	if !ok {
		return errors.IRSyntax(err.Error(), ast.Position{Filename: filename, Line: 1, Column: 1})
	}
	return errors.IRSyntax(pe.Message(), position(pe.Position()))
}

func position(pos lexer.Position) ast.Position {
	return ast.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
