package errors

import "fmt"

// InternalError is a broken compiler invariant, never a user mistake
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal compiler error: " + e.Message
}

// ToCompilerError renders the failure as a diagnostic for reporting
func (e *InternalError) ToCompilerError() CompilerError {
	return NewSemanticError(ErrorInternal, e.Message, noPosition).
		WithKind(KindInternal).
		WithNote("this is a bug in the compiler, please report it").
		Build()
}

// ICE aborts the current phase with an internal compiler error
func ICE(format string, args ...any) {
	panic(&InternalError{Message: fmt.Sprintf(format, args...)})
}

// RecoverInternal converts a recovered ICE panic into an error and re-panics
// on anything else. Use as: defer func() { err = RecoverInternal(recover(), err) }().
func RecoverInternal(r any, prev error) error {
	if r == nil {
		return prev
	}
	if ice, ok := r.(*InternalError); ok {
		return ice
	}
	panic(r)
}
