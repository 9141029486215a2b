// Package errors provides coded errors for the game engine. Every
// recoverable failure carries a Code so the command boundary can turn it
// into a player-facing reply instead of letting it escape to the host.
package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an engine error
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates a command had the wrong arity or a
	// token of the wrong type
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a referenced participant or resource does
	// not exist
	CodeNotFound Code = "not_found"

	// CodeInvalidExpression indicates a malformed dice expression
	CodeInvalidExpression Code = "invalid_expression"

	// CodeUnknownCommand indicates an unrecognized command keyword
	CodeUnknownCommand Code = "unknown_command"

	// CodeNoSlotAvailable indicates a spell cast with no remaining slot
	// at the required tier
	CodeNoSlotAvailable Code = "no_slot_available"

	// CodeNotInCombat indicates a combat operation attempted while no
	// combat is active
	CodeNotInCombat Code = "not_in_combat"

	// CodeInternal indicates an internal engine error
	CodeInternal Code = "internal"
)

// Error is an engine error with a code and optional metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, preserving the code of an
// already-coded error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var gmErr *Error
	if errors.As(err, &gmErr) {
		return &Error{
			Code:    gmErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(gmErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Helper constructors for the engine's error taxonomy

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// InvalidExpression creates an invalid dice expression error
func InvalidExpression(message string) *Error {
	return New(CodeInvalidExpression, message)
}

// InvalidExpressionf creates a formatted invalid dice expression error
func InvalidExpressionf(format string, args ...any) *Error {
	return Newf(CodeInvalidExpression, format, args...)
}

// UnknownCommandf creates a formatted unknown command error
func UnknownCommandf(format string, args ...any) *Error {
	return Newf(CodeUnknownCommand, format, args...)
}

// NoSlotAvailablef creates a formatted no slot available error
func NoSlotAvailablef(format string, args ...any) *Error {
	return Newf(CodeNoSlotAvailable, format, args...)
}

// NotInCombat creates a not in combat error
func NotInCombat(message string) *Error {
	return New(CodeNotInCombat, message)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Error checking functions

// Is checks if the error has a specific code
func Is(err error, code Code) bool {
	var gmErr *Error
	if errors.As(err, &gmErr) {
		return gmErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsInvalidExpression checks if the error is an invalid expression error
func IsInvalidExpression(err error) bool {
	return Is(err, CodeInvalidExpression)
}

// IsUnknownCommand checks if the error is an unknown command error
func IsUnknownCommand(err error) bool {
	return Is(err, CodeUnknownCommand)
}

// IsNoSlotAvailable checks if the error is a no slot available error
func IsNoSlotAvailable(err error) bool {
	return Is(err, CodeNoSlotAvailable)
}

// IsNotInCombat checks if the error is a not in combat error
func IsNotInCombat(err error) bool {
	return Is(err, CodeNotInCombat)
}

// IsRecoverable reports whether the error is one of the taxonomy codes the
// command boundary converts into a player-facing reply.
func IsRecoverable(err error) bool {
	switch GetCode(err) {
	case CodeInvalidArgument, CodeNotFound, CodeInvalidExpression,
		CodeUnknownCommand, CodeNoSlotAvailable, CodeNotInCombat:
		return true
	default:
		return false
	}
}

// GetCode returns the error code
func GetCode(err error) Code {
	var gmErr *Error
	if errors.As(err, &gmErr) {
		return gmErr.Code
	}
	return CodeUnknown
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
