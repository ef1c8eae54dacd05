package errors

import (
	"fmt"
	"sort"
	"strings"

	"quorlin/internal/ast"
	"quorlin/internal/builtins"
)

var noPosition ast.Position

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder. The kind is derived
// from the code when the code belongs to a known kind.
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	kind, _ := KindForCode(code)
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Kind:     kind,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithKind overrides the diagnostic tag
func (b *SemanticErrorBuilder) WithKind(kind Kind) *SemanticErrorBuilder {
	b.err.Kind = kind
	return b
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithName records the offending identifier
func (b *SemanticErrorBuilder) WithName(name string) *SemanticErrorBuilder {
	b.err.Name = name
	return b
}

// WithTypes records the expected and actual types (or counts)
func (b *SemanticErrorBuilder) WithTypes(expected, found string) *SemanticErrorBuilder {
	b.err.Expected = expected
	b.err.Found = found
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

func (b *SemanticErrorBuilder) withSimilar(similar []string) *SemanticErrorBuilder {
	switch len(similar) {
	case 0:
		return b
	case 1:
		return b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		return b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}
}

// Common semantic error constructors with suggestions

// UndefinedVariable creates an error for undefined variables with suggestions
func UndefinedVariable(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name)).
		WithName(name)

	if len(similarNames) > 0 {
		builder = builder.withSimilar(similarNames)
	} else {
		builder = builder.WithSuggestion("make sure the variable is declared before use").
			WithNote("variables must be declared with 'let' or 'let mut'")
	}

	return builder.Build()
}

// UndefinedFunction creates an error for undefined functions with suggestions
func UndefinedFunction(name string, pos ast.Position, similarNames []string) CompilerError {
	return NewSemanticError(ErrorUndefinedFunction, fmt.Sprintf("function '%s' is not defined", name), pos).
		WithLength(len(name)).
		WithName(name).
		withSimilar(similarNames).
		WithHelp("functions must be declared in this module or provided by the standard library").
		Build()
}

// UndefinedType creates an error for type names that resolve to nothing
func UndefinedType(name, reason string, pos ast.Position, similarNames []string) CompilerError {
	return NewSemanticError(ErrorUndefinedType, reason, pos).
		WithLength(len(name)).
		WithName(name).
		withSimilar(similarNames).
		Build()
}

// CannotInferType reports a declaration with neither annotation nor initializer
func CannotInferType(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorUndefinedType, fmt.Sprintf("cannot infer type of '%s'", name), pos).
		WithLength(len(name)).
		WithName(name).
		WithSuggestion(fmt.Sprintf("add a type annotation: 'let %s: <type>'", name)).
		WithNote("a declaration needs a type annotation or an initializer").
		Build()
}

// TypeMismatch creates an error for type mismatches with conversion suggestions
func TypeMismatch(expected, actual string, pos ast.Position) CompilerError {
	builder := NewSemanticError(ErrorTypeMismatch, fmt.Sprintf("type mismatch: expected %s, found %s", expected, actual), pos).
		WithTypes(expected, actual)

	if isIntegerName(expected) && isIntegerName(actual) {
		builder = builder.WithSuggestion(fmt.Sprintf("consider an explicit conversion to %s", expected)).
			WithNote("integer types of different width or signedness are never converted implicitly")
	} else if expected == "bool" && actual != "bool" {
		builder = builder.WithSuggestion("use a comparison operator to create a boolean value")
	}

	return builder.Build()
}

// InvalidOperation creates an error for invalid operations with type-specific suggestions.
// rightType is empty for unary operators.
func InvalidOperation(op, leftType, rightType string, pos ast.Position) CompilerError {
	message := fmt.Sprintf("invalid operation: %s %s %s", leftType, op, rightType)
	if rightType == "" {
		message = fmt.Sprintf("invalid operation: %s %s", op, leftType)
	}
	builder := NewSemanticError(ErrorInvalidOperation, message, pos).
		WithName(op).
		WithTypes(leftType, rightType)

	switch op {
	case "+", "-", "*", "/", "%", "**":
		builder = builder.WithSuggestion("arithmetic operations require integer operands").
			WithNote("integer types are: uint8 .. uint256, int8 .. int256")
	case "and", "or", "not":
		builder = builder.WithSuggestion("logical operations require boolean operands").
			WithSuggestion("use comparison operators (==, !=, <, >, <=, >=) to create boolean values")
	case "==", "!=", "<", "<=", ">", ">=":
		builder = builder.WithSuggestion("comparison operands must be of compatible types")
	}

	return builder.Build()
}

// DuplicateDefinition reports a name declared twice in the same scope.
// pos is the location of the rejected (second) declaration.
func DuplicateDefinition(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateDefinition, fmt.Sprintf("duplicate definition of '%s'", name), pos).
		WithLength(len(name)).
		WithName(name).
		WithSuggestion("rename or remove one of the declarations").
		WithNote("a name can be shadowed in an inner scope but not redeclared in the same one").
		Build()
}

// InvalidAssignment reports an assignment to something that cannot be assigned
func InvalidAssignment(target, reason string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidAssignment, fmt.Sprintf("cannot assign to %s: %s", target, reason), pos).
		WithName(target).
		Build()
}

// ImmutableAssignment reports an assignment to an immutable binding
func ImmutableAssignment(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidAssignment, fmt.Sprintf("cannot assign to immutable variable '%s'", name), pos).
		WithLength(len(name)).
		WithName(name).
		WithHelp(fmt.Sprintf("variable '%s' is declared as immutable", name)).
		WithSuggestion(fmt.Sprintf("change 'let %s' to 'let mut %s' to make it mutable", name, name)).
		Build()
}

// WrongNumberOfArguments reports a call arity mismatch
func WrongNumberOfArguments(functionName string, expected, actual int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorWrongNumberOfArguments,
		fmt.Sprintf("function '%s' expects %d argument(s), found %d", functionName, expected, actual), pos).
		WithName(functionName).
		WithTypes(fmt.Sprint(expected), fmt.Sprint(actual)).
		Build()
}

// NotCallable reports a call whose callee is not a function
func NotCallable(name, what string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorNotCallable, fmt.Sprintf("'%s' is a %s, not a function", name, what), pos).
		WithLength(len(name)).
		WithName(name).
		Build()
}

// CannotIndex reports indexing into a non-container type
func CannotIndex(typeName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorCannotIndex, fmt.Sprintf("cannot index into a value of type %s", typeName), pos).
		WithTypes("list or mapping", typeName).
		WithNote("only list[T] and mapping[K, V] values support indexing").
		Build()
}

// NoSuchAttribute reports access to a member that the type does not have
func NoSuchAttribute(typeName, attr string, pos ast.Position, available []string) CompilerError {
	builder := NewSemanticError(ErrorNoSuchAttribute, fmt.Sprintf("type '%s' has no attribute '%s'", typeName, attr), pos).
		WithLength(len(attr)).
		WithName(attr).
		WithTypes("", typeName)

	if len(available) > 0 {
		builder = builder.withSimilar(SimilarNames(attr, available)).
			WithNote(fmt.Sprintf("available attributes: %s", strings.Join(available, ", ")))
	}

	return builder.Build()
}

// NoSuchModuleMember reports a standard library module without the named function
func NoSuchModuleMember(module, member string, pos ast.Position, available []string) CompilerError {
	builder := NewSemanticError(ErrorNoSuchAttribute, fmt.Sprintf("module '%s' has no function '%s'", module, member), pos).
		WithLength(len(member)).
		WithName(member)

	if len(available) > 0 {
		builder = builder.withSimilar(SimilarNames(member, available)).
			WithNote(fmt.Sprintf("module %s provides: %s", module, strings.Join(available, ", ")))
	}

	return builder.Build()
}

// InvalidReturnType reports a return that does not match the declared return type.
// expected or actual is "()" when the respective side has no value.
func InvalidReturnType(functionName, expected, actual string, pos ast.Position) CompilerError {
	builder := NewSemanticError(ErrorInvalidReturnType,
		fmt.Sprintf("function '%s' returns %s, found %s", functionName, expected, actual), pos).
		WithName(functionName).
		WithTypes(expected, actual)

	switch {
	case expected == "()":
		builder = builder.WithSuggestion("remove the returned value or declare a return type")
	case actual == "()":
		builder = builder.WithSuggestion(fmt.Sprintf("return a value of type %s", expected))
	}

	return builder.Build()
}

// BreakOutsideLoop reports `break` with no enclosing loop
func BreakOutsideLoop(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorBreakOutsideLoop, "'break' outside of a loop", pos).
		WithLength(len("break")).
		Build()
}

// ContinueOutsideLoop reports `continue` with no enclosing loop
func ContinueOutsideLoop(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorContinueOutsideLoop, "'continue' outside of a loop", pos).
		WithLength(len("continue")).
		Build()
}

// IRSyntax reports a syntax error in textual IR
func IRSyntax(message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorIRSyntax, message, pos).Build()
}

// IRMalformed reports IR that violates a structural invariant
func IRMalformed(function, message string) CompilerError {
	return NewSemanticError(ErrorIRMalformed, fmt.Sprintf("in function '%s': %s", function, message), noPosition).
		WithName(function).
		Build()
}

// Helper functions

func isIntegerName(typeName string) bool {
	return builtins.IsIntegerType(typeName)
}

// SimilarNames returns the candidates within a small edit distance of target, sorted
func SimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	sort.Strings(similar)
	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
