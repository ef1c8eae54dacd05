package lsp

import (
	"regexp"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"quorlin/internal/errors"
	"quorlin/internal/ir"
	"quorlin/internal/ir/irtext"
)

// Check parses and verifies a document. It returns the diagnostics to
// publish (never nil) and the module when the text parsed.
func Check(path, text string) ([]protocol.Diagnostic, *ir.Module) {
	m, err := irtext.Parse(path, text)
	if err != nil {
		return ConvertErrors(err, text, "quorlin-irtext"), nil
	}
	if err := ir.Verify(m); err != nil {
		return ConvertErrors(err, text, "quorlin-verify"), m
	}
	return []protocol.Diagnostic{}, m
}

// ConvertErrors transforms compiler diagnostics into LSP diagnostics.
// Structural errors carry no position; they are attached to the header of
// the function they name.
func ConvertErrors(err error, text, source string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	list, ok := err.(errors.List)
	if !ok {
		return append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(source),
			Message:  err.Error(),
		})
	}

	for _, e := range list {
		line, column := e.Position.Line-1, e.Position.Column-1
		if e.Position.Line == 0 {
			line, column = functionLine(text, e.Name), 0
		}
		if line < 0 {
			line = 0
		}
		if column < 0 {
			column = 0
		}
		length := e.Length
		if length <= 0 {
			length = 1
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(line), Character: uint32(column)},
				End:   protocol.Position{Line: uint32(line), Character: uint32(column + length)},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Code:     &protocol.IntegerOrString{Value: e.Code},
			Source:   ptrString(source),
			Message:  e.Message,
		})
	}
	return diagnostics
}

// functionLine finds the zero-based line declaring a function named
// "name" or "Contract.name", or 0 when it is not found
func functionLine(text, name string) int {
	if name == "" {
		return 0
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	header := regexp.MustCompile(`^\s*fn\s+` + regexp.QuoteMeta(name) + `\(`)
	for i, line := range strings.Split(text, "\n") {
		if header.MatchString(line) {
			return i
		}
	}
	return 0
}
