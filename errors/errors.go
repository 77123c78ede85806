package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // module loading and descriptor construction
	PhaseMetadata Phase = "metadata" // function metadata lookup
	PhaseInvoke   Phase = "invoke"   // invocation of compiled code
	PhaseTensor   Phase = "tensor"   // tensor construction and staging
	PhaseValue    Phase = "value"    // value tagging and extraction
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindArityMismatch Kind = "arity_mismatch"
	KindTypeMismatch  Kind = "type_mismatch"
	KindInvalidInput  Kind = "invalid_input"
	KindMissingExport Kind = "missing_export"
	KindAllocation    Kind = "allocation"
	KindTrap          Kind = "trap"
)

// Error is the structured error type used throughout the runtime
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Function string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Function != "" {
		b.WriteString(" in ")
		b.WriteString(e.Function)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// NotFound creates a not-found error for a named entity
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// MissingExport creates an error for a module lacking a required export
func MissingExport(function, export string) *Error {
	return &Error{
		Phase:    PhaseLoad,
		Kind:     KindMissingExport,
		Function: function,
		Detail:   fmt.Sprintf("module does not export %q", export),
	}
}

// ArityMismatch creates an error for a slot count disagreeing with metadata.
// direction is "input" or "output".
func ArityMismatch(function, direction string, want, got int32) *Error {
	return &Error{
		Phase:    PhaseInvoke,
		Kind:     KindArityMismatch,
		Function: function,
		Detail:   fmt.Sprintf("declared %d %s slots, got %d", want, direction, got),
	}
}

// TypeMismatch creates an error for a declared signature disagreeing with the
// compiled module
func TypeMismatch(function, detail string) *Error {
	return &Error{
		Phase:    PhaseLoad,
		Kind:     KindTypeMismatch,
		Function: function,
		Detail:   detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// AllocationFailed creates an error for a failed guest-memory allocation
func AllocationFailed(function string, size uint32, cause error) *Error {
	return &Error{
		Phase:    PhaseInvoke,
		Kind:     KindAllocation,
		Function: function,
		Detail:   fmt.Sprintf("failed to allocate %d bytes", size),
		Cause:    cause,
	}
}

// Trap creates an error for compiled code aborting mid-call
func Trap(function string, cause error) *Error {
	return &Error{
		Phase:    PhaseInvoke,
		Kind:     KindTrap,
		Function: function,
		Detail:   "compiled code trapped",
		Cause:    cause,
	}
}

// Load wraps a module loading failure
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
