// Package errors defines the tool's error taxonomy. Usage and config
// errors are fatal and terminate the run with a nonzero status; upstream
// and filesystem failures carry their cause so callers can report it
// unmodified.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// Usage errors - invalid command-line input (state code, chamber, year)
	ErrorTypeUsage ErrorType = iota
	// Config errors - missing or invalid configuration, absent credentials
	ErrorTypeConfig
	// Network errors - timeout or connection failure reaching the upstream
	ErrorTypeNetwork
	// External errors - non-success response from the upstream API
	ErrorTypeExternal
	// FileSystem errors - output path, permission, or write failures
	ErrorTypeFileSystem
	// Internal errors - unexpected internal state
	ErrorTypeInternal
)

// Severity represents how critical an error is
type Severity int

const (
	// SeverityLow - can continue with degraded functionality
	SeverityLow Severity = iota
	// SeverityMedium - should be addressed but not fatal
	SeverityMedium
	// SeverityHigh - significant issue, may impact functionality
	SeverityHigh
	// SeverityCritical - must be addressed, stops execution
	SeverityCritical
)

// Error represents a structured error with context
type Error struct {
	Type     ErrorType
	Severity Severity
	Message  string
	Cause    error
	Context  map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Is checks if this error matches the target error type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// DetailedString returns a detailed error message with context
func (e *Error) DetailedString() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] [%s] %s\n",
		severityString(e.Severity),
		typeString(e.Type),
		e.Message))

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Caused by: %v\n", e.Cause))
	}

	if len(e.Context) > 0 {
		sb.WriteString("Context:\n")
		for k, v := range e.Context {
			sb.WriteString(fmt.Sprintf("  %s: %v\n", k, v))
		}
	}

	return sb.String()
}

func typeString(t ErrorType) string {
	switch t {
	case ErrorTypeUsage:
		return "USAGE"
	case ErrorTypeConfig:
		return "CONFIG"
	case ErrorTypeNetwork:
		return "NETWORK"
	case ErrorTypeExternal:
		return "EXTERNAL"
	case ErrorTypeFileSystem:
		return "FILESYSTEM"
	case ErrorTypeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

func severityString(s Severity) string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// New creates a new error with the given type, severity, and message
func New(errType ErrorType, severity Severity, message string) *Error {
	return &Error{
		Type:     errType,
		Severity: severity,
		Message:  message,
		Context:  make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, severity Severity, message string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Type:     errType,
		Severity: severity,
		Message:  message,
		Cause:    err,
		Context:  make(map[string]interface{}),
	}
}

// Convenience constructors for common error types

// UsageError creates a usage error
func UsageError(message string) *Error {
	return New(ErrorTypeUsage, SeverityCritical, message)
}

// UsageErrorf creates a usage error with formatting
func UsageErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeUsage, SeverityCritical, fmt.Sprintf(format, args...))
}

// ConfigError creates a configuration error
func ConfigError(message string) *Error {
	return New(ErrorTypeConfig, SeverityCritical, message)
}

// NetworkErrorf wraps a network error with formatting
func NetworkErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeNetwork, SeverityHigh, fmt.Sprintf(format, args...))
}

// ExternalError wraps an upstream API error
func ExternalError(err error, message string) *Error {
	return Wrap(err, ErrorTypeExternal, SeverityHigh, message)
}

// ExternalErrorf creates an upstream API error with formatting
func ExternalErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeExternal, SeverityHigh, fmt.Sprintf(format, args...))
}

// FileSystemErrorf wraps a filesystem error with formatting
func FileSystemErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeFileSystem, SeverityHigh, fmt.Sprintf(format, args...))
}

// InternalErrorf creates an internal error with formatting
func InternalErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeInternal, SeverityCritical, fmt.Sprintf(format, args...))
}

// GetType returns the type of an error
func GetType(err error) ErrorType {
	if err == nil {
		return ErrorTypeInternal
	}

	if e, ok := err.(*Error); ok {
		return e.Type
	}

	return ErrorTypeInternal
}

// IsUsage reports whether err is a usage error.
func IsUsage(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrorTypeUsage
	}
	return false
}
