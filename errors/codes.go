package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Registry lifecycle errors
const (
	// ErrCodeSetup indicates a package could not be built from its entries.
	ErrCodeSetup ErrorCode = "SETUP_ERROR"
	// ErrCodeMounting indicates a provider could not be installed in the registry.
	ErrCodeMounting ErrorCode = "MOUNTING_ERROR"
	// ErrCodeInjection indicates a requested token has no registered provider.
	ErrCodeInjection ErrorCode = "INJECTION_ERROR"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates settings failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeSetup:         true,
	ErrCodeMounting:      true,
	ErrCodeInjection:     true,
	ErrCodeInvalidConfig: false,
}

// IsFatalCode returns true if the code aborts the registry operation that raised it.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
