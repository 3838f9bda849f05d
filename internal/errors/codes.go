package errors

// Common error codes
const (
	// Usage errors
	ErrUsage ErrorCode = "invalid_usage"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Display server errors
	ErrConnection  ErrorCode = "connection_failed"
	ErrUnsupported ErrorCode = "screensaver_unsupported"
	ErrAllocation  ErrorCode = "allocation_failed"
	ErrQuery       ErrorCode = "query_failed"

	// Lifecycle errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrUsage:           "invalid usage",
	ErrInvalidConfig:   "invalid configuration",
	ErrReadConfig:      "failed to read config file",
	ErrInvalidLogLevel: "invalid log level",
	ErrConnection:      "couldn't open display",
	ErrUnsupported:     "screen saver extension not supported",
	ErrAllocation:      "couldn't allocate screen saver info",
	ErrQuery:           "couldn't query screen saver info",
	ErrInitFailed:      "initialization failed",
	ErrShutdownFailed:  "shutdown failed",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
