package errors

import (
	stderrors "errors"
	"fmt"
)

// Detail keys attached to registry errors.
const (
	DetailToken    = "token"
	DetailPackage  = "package"
	DetailProperty = "property"
	DetailField    = "field"
)

// AppError is the unified registry error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates the operation cannot continue.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic fatal detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// --- Registry Error Constructors ---

// Setup creates a new AppError for a package that could not be built.
func Setup(pkg, reason string) *AppError {
	return &AppError{
		Code: ErrCodeSetup, Message: fmt.Sprintf("Error while setting up package `%s`: %s", pkg, reason),
		Fatal:   true,
		Details: map[string]any{DetailPackage: pkg},
	}
}

// Mounting creates a new AppError for a provider that could not be installed.
// tok is the canonical token name and may be empty when the provider has none.
func Mounting(pkg, tok, reason string) *AppError {
	details := map[string]any{DetailPackage: pkg}
	if tok != "" {
		details[DetailToken] = tok
	}
	return &AppError{
		Code: ErrCodeMounting, Message: fmt.Sprintf("Error while mounting package `%s`: %s", pkg, reason),
		Fatal: true, Details: details,
	}
}

// Injection creates a new AppError for a token with no registered provider.
func Injection(tok, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInjection, Message: reason,
		Fatal:   true,
		Details: map[string]any{DetailToken: tok},
	}
}

// InvalidConfig creates a new AppError for settings that failed validation.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details[DetailField] = field
	}
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid configuration: %s", reason),
		Fatal: false, Details: details,
	}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// IsSetup reports whether err is a setup error.
func IsSetup(err error) bool { return CodeOf(err) == ErrCodeSetup }

// IsMounting reports whether err is a mounting error.
func IsMounting(err error) bool { return CodeOf(err) == ErrCodeMounting }

// IsInjection reports whether err is an injection error.
func IsInjection(err error) bool { return CodeOf(err) == ErrCodeInjection }
