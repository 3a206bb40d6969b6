// Package errors defines the fatal error taxonomy of the generation
// engine. Only structural profile problems abort a run; every other
// condition (bounds violations, degenerate geometry, applied defaults)
// is accumulated into the generation report instead.
package errors

import "fmt"

// ErrorCode represents the category of a fatal error.
type ErrorCode string

const (
	// Profile structure errors
	ErrProfileMode       ErrorCode = "PROFILE_MODE"
	ErrProfileKinematics ErrorCode = "PROFILE_KINEMATICS"
	ErrProfileEnvelope   ErrorCode = "PROFILE_ENVELOPE"
	ErrProfileParam      ErrorCode = "PROFILE_PARAM"

	// Profile file errors
	ErrConfigSection    ErrorCode = "CONFIG_SECTION"
	ErrConfigOption     ErrorCode = "CONFIG_OPTION"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Input errors
	ErrGeometryInput ErrorCode = "GEOMETRY_INPUT"
)

// StructuralError is the unified fatal error type. A run either fully
// succeeds (possibly with warnings in the report) or fails with one of
// these before any instruction is emitted.
type StructuralError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Section is the profile section or context (if applicable)
	Section string

	// Option is the profile option name (if applicable)
	Option string

	// Err wraps the underlying error
	Err error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("[%s:%s] %s", e.Code, e.Section, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *StructuralError) Unwrap() error {
	return e.Err
}

// New creates a new StructuralError.
func New(code ErrorCode, message string) *StructuralError {
	return &StructuralError{Code: code, Message: message}
}

// Newf creates a new StructuralError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *StructuralError {
	return &StructuralError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code ErrorCode, message string) *StructuralError {
	return &StructuralError{Code: code, Message: message, Err: err}
}

// SetSection sets the context section.
func (e *StructuralError) SetSection(section string) *StructuralError {
	e.Section = section
	return e
}

// SetOption sets the profile option.
func (e *StructuralError) SetOption(option string) *StructuralError {
	e.Option = option
	return e
}

// ModeError creates an error for a missing or unrecognized mode tag.
func ModeError(mode string) *StructuralError {
	if mode == "" {
		return New(ErrProfileMode, "profile mode must be specified")
	}
	return Newf(ErrProfileMode, "unrecognized profile mode %q", mode)
}

// KinematicsError creates an error for an unrecognized kinematics tag.
func KinematicsError(kinematics string) *StructuralError {
	return Newf(ErrProfileKinematics, "unrecognized kinematics %q", kinematics)
}

// EnvelopeMismatchError creates an error for an envelope shape that is
// inconsistent with the declared kinematics.
func EnvelopeMismatchError(kinematics, shape string) *StructuralError {
	return Newf(ErrProfileEnvelope, "kinematics %q is inconsistent with %s envelope", kinematics, shape)
}

// Is checks if the error matches the given error code.
func Is(err error, code ErrorCode) bool {
	if se, ok := err.(*StructuralError); ok {
		return se.Code == code
	}
	return false
}

// IsProfile checks if the error is a profile structure error.
func IsProfile(err error) bool {
	return Is(err, ErrProfileMode) ||
		Is(err, ErrProfileKinematics) ||
		Is(err, ErrProfileEnvelope) ||
		Is(err, ErrProfileParam)
}

// IsConfig checks if the error is a profile file error.
func IsConfig(err error) bool {
	return Is(err, ErrConfigSection) ||
		Is(err, ErrConfigOption) ||
		Is(err, ErrConfigValidation)
}
