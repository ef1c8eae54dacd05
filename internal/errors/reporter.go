package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"quorlin/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Kind        Kind
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error

	// Structured payload for tooling; empty when not applicable
	Name     string // offending identifier, member or operator
	Expected string // expected type or count
	Found    string // actual type or count
}

func (e CompilerError) Error() string {
	return fmt.Sprintf("%s: %s[%s]: %s", e.Position, e.Level, e.Code, e.Message)
}

// List is an ordered collection of diagnostics returned as a single error
type List []CompilerError

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d errors:", len(l)))
	for _, e := range l {
		b.WriteString("\n  " + e.Error())
	}
	return b.String()
}

// Kinds returns the tag of every diagnostic, in order
func (l List) Kinds() []Kind {
	kinds := make([]Kind, len(l))
	for i, e := range l {
		kinds[i] = e.Kind
	}
	return kinds
}

// HasKind reports whether any diagnostic carries the given tag
func (l List) HasKind(k Kind) bool {
	for _, e := range l {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// ErrorReporter handles consistent error formatting and suggestions
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders one diagnostic: a header, the location, up to three
// source lines with the offending span underlined, then suggestions, notes
// and help. Diagnostics without a position (IR verification and internal
// errors) get the file and, when known, the function they refer to.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var out strings.Builder
	accent := levelStyle(err.Level)
	gutter := gutterWidth(err.Position.Line)
	pad := strings.Repeat(" ", gutter)
	bar := faint("│")

	if err.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", accent(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", accent(string(err.Level)), err.Message)
	}

	if err.Position.Line > 0 {
		fmt.Fprintf(&out, "%s %s %s:%d:%d\n", pad, faint("-->"), er.fileOf(err.Position), err.Position.Line, err.Position.Column)
		fmt.Fprintf(&out, "%s %s\n", pad, bar)
		er.writeSource(&out, err, gutter, accent)
	} else {
		location := er.filename
		if err.Kind == KindIRMalformed && err.Name != "" {
			location += " (fn " + err.Name + ")"
		}
		fmt.Fprintf(&out, "%s %s %s\n", pad, faint("-->"), location)
	}

	if err.Expected != "" && err.Found != "" {
		fmt.Fprintf(&out, "%s %s expected %s, found %s\n", pad, faint("="), bold(err.Expected), bold(err.Found))
	}

	hint := color.New(color.FgCyan).SprintFunc()
	for i, suggestion := range err.Suggestions {
		label := "     "
		if i == 0 {
			fmt.Fprintf(&out, "%s %s\n", pad, bar)
			label = "help:"
		}
		fmt.Fprintf(&out, "%s %s %s\n", pad, hint(label), suggestion.Message)
		if suggestion.Replacement != "" {
			for _, line := range strings.Split(suggestion.Replacement, "\n") {
				fmt.Fprintf(&out, "%s %s %s\n", pad, hint("│"), hint(line))
			}
		}
	}

	note := color.New(color.FgBlue).SprintFunc()
	for _, n := range err.Notes {
		fmt.Fprintf(&out, "%s %s %s %s\n", pad, faint("="), note("note:"), n)
	}
	if err.HelpText != "" {
		fmt.Fprintf(&out, "%s %s %s %s\n", pad, faint("="), color.GreenString("help:"), err.HelpText)
	}

	out.WriteString("\n")
	return out.String()
}

// writeSource prints the error line between its neighbours with a marker
// under the reported span
func (er *ErrorReporter) writeSource(out *strings.Builder, err CompilerError, gutter int, accent func(...interface{}) string) {
	line := err.Position.Line
	bar := faint("│")
	number := func(n int) string { return fmt.Sprintf("%*d", gutter, n) }

	if line > 1 && line-2 < len(er.lines) {
		fmt.Fprintf(out, "%s %s %s\n", faint(number(line-1)), bar, er.lines[line-2])
	}
	if line > len(er.lines) {
		return
	}
	fmt.Fprintf(out, "%s %s %s\n", bold(number(line)), bar, er.lines[line-1])

	width := err.Length
	if width <= 0 {
		width = 1
	}
	marker := strings.Repeat(" ", max(0, err.Position.Column-1)) + accent(strings.Repeat("^", width))
	fmt.Fprintf(out, "%s %s %s\n", strings.Repeat(" ", gutter), bar, marker)

	if line < len(er.lines) {
		fmt.Fprintf(out, "%s %s %s\n", faint(number(line+1)), bar, er.lines[line])
	}
}

// fileOf prefers the file recorded in the position, so diagnostics from
// another file are not attributed to the one being reported
func (er *ErrorReporter) fileOf(pos ast.Position) string {
	if pos.Filename != "" {
		return pos.Filename
	}
	return er.filename
}

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

// levelStyle colours the severity label and the marker
func levelStyle(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// gutterWidth is the width of the line number column, at least three
func gutterWidth(line int) int {
	return max(3, len(strconv.Itoa(line)))
}

// FormatList formats every diagnostic of l in order
func (er *ErrorReporter) FormatList(l List) string {
	var result strings.Builder
	for _, err := range l {
		result.WriteString(er.FormatError(err))
	}
	return result.String()
}
