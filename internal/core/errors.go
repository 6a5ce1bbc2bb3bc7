package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeBadRequest          = "bad_request"
	ErrCodeDuplicateConnection = "duplicate_connection"
	ErrCodeNotJoined           = "not_joined"
)

var (
	// ErrDuplicateConnection is returned when a connection id is
	// registered twice. The connection lifecycle should make this
	// impossible, but the registry still refuses.
	ErrDuplicateConnection = errors.New("connection already registered")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
