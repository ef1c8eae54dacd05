package errors

// Error codes for the Quorlin compiler middle-end.
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Semantic analysis errors
// E0100-E0199: IR text syntax errors
// E0200-E0299: Type system errors
// E0600-E0699: Flow control errors
// E0900-E0999: Internal and tooling errors

const (
	// E0001: Variable resolution errors
	ErrorUndefinedVariable = "E0001"

	// E0002: Function resolution errors
	ErrorUndefinedFunction = "E0002"

	// E0003: Type compatibility errors
	ErrorTypeMismatch = "E0003"

	// E0004: Function return type errors
	ErrorInvalidReturnType = "E0004"

	// E0005: Struct/contract member access errors
	ErrorNoSuchAttribute = "E0005"

	// E0009: Same name declared twice in one scope
	ErrorDuplicateDefinition = "E0009"

	// E0013: Function call arity errors
	ErrorWrongNumberOfArguments = "E0013"

	// E0014: Assignment validation errors
	ErrorInvalidAssignment = "E0014"

	// E0015: Unary/Binary operation errors
	ErrorInvalidOperation = "E0015"

	// E0100: Textual IR could not be parsed
	ErrorIRSyntax = "E0100"

	// E0200: Unknown type names
	ErrorUndefinedType = "E0200"

	// E0201: Calling something that is not a function
	ErrorNotCallable = "E0201"

	// E0202: Indexing a value that is neither array nor mapping
	ErrorCannotIndex = "E0202"

	// E0602: break outside loop
	ErrorBreakOutsideLoop = "E0602"

	// E0603: continue outside loop
	ErrorContinueOutsideLoop = "E0603"

	// E0900: Internal compiler error
	ErrorInternal = "E0900"

	// E0901: IR violates structural invariants
	ErrorIRMalformed = "E0901"
)

// Kind is the closed set of diagnostic tags
type Kind int

const (
	KindUndefinedVariable Kind = iota
	KindUndefinedFunction
	KindUndefinedType
	KindTypeMismatch
	KindInvalidOperation
	KindDuplicateDefinition
	KindInvalidAssignment
	KindWrongNumberOfArguments
	KindNotCallable
	KindCannotIndex
	KindNoSuchAttribute
	KindInvalidReturnType
	KindBreakOutsideLoop
	KindContinueOutsideLoop

	KindInternal
	KindIRSyntax
	KindIRMalformed
)

var kindInfo = map[Kind]struct {
	name string
	code string
}{
	KindUndefinedVariable:      {"UndefinedVariable", ErrorUndefinedVariable},
	KindUndefinedFunction:      {"UndefinedFunction", ErrorUndefinedFunction},
	KindUndefinedType:          {"UndefinedType", ErrorUndefinedType},
	KindTypeMismatch:           {"TypeMismatch", ErrorTypeMismatch},
	KindInvalidOperation:       {"InvalidOperation", ErrorInvalidOperation},
	KindDuplicateDefinition:    {"DuplicateDefinition", ErrorDuplicateDefinition},
	KindInvalidAssignment:      {"InvalidAssignment", ErrorInvalidAssignment},
	KindWrongNumberOfArguments: {"WrongNumberOfArguments", ErrorWrongNumberOfArguments},
	KindNotCallable:            {"NotCallable", ErrorNotCallable},
	KindCannotIndex:            {"CannotIndex", ErrorCannotIndex},
	KindNoSuchAttribute:        {"NoSuchAttribute", ErrorNoSuchAttribute},
	KindInvalidReturnType:      {"InvalidReturnType", ErrorInvalidReturnType},
	KindBreakOutsideLoop:       {"BreakOutsideLoop", ErrorBreakOutsideLoop},
	KindContinueOutsideLoop:    {"ContinueOutsideLoop", ErrorContinueOutsideLoop},
	KindInternal:               {"InternalError", ErrorInternal},
	KindIRSyntax:               {"IRSyntax", ErrorIRSyntax},
	KindIRMalformed:            {"IRMalformed", ErrorIRMalformed},
}

func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return "Unknown"
}

// Code returns the stable error code for the kind
func (k Kind) Code() string {
	return kindInfo[k].code
}

// KindForCode maps an error code back to its kind
func KindForCode(code string) (Kind, bool) {
	for k, info := range kindInfo {
		if info.code == code {
			return k, true
		}
	}
	return 0, false
}

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedVariable:
		return "Variable is used but not defined in the current scope"
	case ErrorUndefinedFunction:
		return "Function is called but not defined"
	case ErrorUndefinedType:
		return "Type name does not refer to a known type"
	case ErrorTypeMismatch:
		return "Expression type does not match expected type"
	case ErrorInvalidOperation:
		return "Operation not supported for these operand types"
	case ErrorDuplicateDefinition:
		return "Name is already defined in this scope"
	case ErrorInvalidAssignment:
		return "Invalid assignment target"
	case ErrorWrongNumberOfArguments:
		return "Function called with the wrong number of arguments"
	case ErrorNotCallable:
		return "Called value is not a function"
	case ErrorCannotIndex:
		return "Value cannot be indexed"
	case ErrorNoSuchAttribute:
		return "Type has no member with this name"
	case ErrorInvalidReturnType:
		return "Function return value type does not match declared return type"
	case ErrorBreakOutsideLoop:
		return "'break' used outside of a loop"
	case ErrorContinueOutsideLoop:
		return "'continue' used outside of a loop"
	case ErrorIRSyntax:
		return "Textual IR could not be parsed"
	case ErrorInternal:
		return "Internal compiler error"
	case ErrorIRMalformed:
		return "IR violates structural invariants"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Semantic Analysis"
	case code >= "E0100" && code < "E0200":
		return "IR Syntax"
	case code >= "E0200" && code < "E0300":
		return "Type System"
	case code >= "E0600" && code < "E0700":
		return "Flow Control"
	case code >= "E0900" && code < "E1000":
		return "Internal"
	default:
		return "Unknown"
	}
}
