package domain

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes registry errors.
type ErrorCode string

const (
	// CodeValidation indicates malformed operator input. No state was changed.
	CodeValidation ErrorCode = "VALIDATION"

	// CodeNotFound indicates an unknown registration, VIN, ticket or person.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeOwnerMismatch indicates the claimed current owner of a vehicle
	// does not match the registry.
	CodeOwnerMismatch ErrorCode = "OWNER_MISMATCH"

	// CodeUnauthorized indicates the acting user's role may not run the workflow.
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// CodeIntegrity indicates a write was rejected by a store constraint.
	CodeIntegrity ErrorCode = "INTEGRITY"
)

// Error is the error type returned by registry workflows.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Field names the offending input, for validation errors.
	Field string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports a malformed input field.
func NewValidationError(field, message string) *Error {
	return &Error{Code: CodeValidation, Field: field, Message: message}
}

// NewNotFoundError reports a missing record, e.g. NewNotFoundError("ticket", 110).
func NewNotFoundError(kind string, key any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %v not found", kind, key)}
}

// NewOwnerMismatchError reports a bill of sale whose claimed seller is not
// the registered owner.
func NewOwnerMismatchError(claimed, registered NamePair) *Error {
	return &Error{
		Code:    CodeOwnerMismatch,
		Message: fmt.Sprintf("claimed owner %q is not the registered owner %q", claimed, registered),
	}
}

// NewUnauthorizedError reports a workflow the role may not run.
func NewUnauthorizedError(role Role, workflow string) *Error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf("role %q may not %s", role, workflow)}
}

// NewIntegrityError wraps a constraint violation raised by the store.
func NewIntegrityError(message string, err error) *Error {
	return &Error{Code: CodeIntegrity, Message: message, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsOwnerMismatch reports whether err is an owner-mismatch error.
func IsOwnerMismatch(err error) bool { return CodeOf(err) == CodeOwnerMismatch }

// IsUnauthorized reports whether err is a role error.
func IsUnauthorized(err error) bool { return CodeOf(err) == CodeUnauthorized }
