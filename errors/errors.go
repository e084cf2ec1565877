// Package errors provides the failure taxonomy for pipeline components.
// Every failure the engine raises is an *Error carrying a machine-readable
// code, the ID of the component that raised it, and an optional cause chain
// compatible with the standard library's errors.Is and errors.As.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified engine error type.
type Error struct {
	// Code is the machine-readable failure code.
	Code Code `json:"code"`
	// ComponentID identifies the component that raised the failure.
	// Empty when the failure is not attributable to a single component.
	ComponentID string `json:"component_id,omitempty"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// Details contains additional context for the failure.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error returns the string representation of the failure.
func (e *Error) Error() string {
	switch {
	case e.ComponentID != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %s (cause: %v)", e.Code, e.ComponentID, e.Message, e.Cause)
	case e.ComponentID != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.ComponentID, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying cause of the failure.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an Error with the given code.
func New(code Code, componentID, message string) *Error {
	return &Error{Code: code, ComponentID: componentID, Message: message}
}

// --- Constructors ---

// StageProcessing creates a processing failure raised by the named component.
func StageProcessing(componentID, message string) *Error {
	return New(CodeStageProcessing, componentID, message)
}

// Termination creates a deliberate whole-run abort raised by the named
// component.
func Termination(componentID, message string) *Error {
	return New(CodeTermination, componentID, message)
}

// Initialization creates a configuration failure for Initialize.
func Initialization(componentID, message string) *Error {
	return New(CodeInitialization, componentID, message)
}

// InvalidDefinition creates a pipeline definition failure.
func InvalidDefinition(message string) *Error {
	return New(CodeInvalidDefinition, "", message)
}

// Misuse creates a lifecycle misuse failure.
func Misuse(componentID, message string) *Error {
	return New(CodeMisuse, componentID, message)
}

// --- Predicates ---

// AsError returns the outermost *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost *Error in err's chain, or the
// empty code when err carries none.
func CodeOf(err error) Code {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// IsProcessing reports whether err is a processing failure (including
// termination). Concurrency stages use this to re-raise a sub-pipeline's
// failure unchanged instead of masking it.
func IsProcessing(err error) bool {
	if e, ok := AsError(err); ok {
		return isProcessingCode(e.Code)
	}
	return false
}

// IsTermination reports whether err is a deliberate termination.
func IsTermination(err error) bool {
	return CodeOf(err) == CodeTermination
}

// IsInitialization reports whether err is an initialization configuration
// failure.
func IsInitialization(err error) bool {
	code := CodeOf(err)
	return code == CodeInitialization || code == CodeInvalidDefinition
}

// IsMisuse reports whether err is a lifecycle misuse failure.
func IsMisuse(err error) bool {
	return CodeOf(err) == CodeMisuse
}
