package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds shared by the gateway client, the transport and the CLI
var (
	ErrValidation = new(ErrCodeValidation, "validation error")
	ErrGateway    = new(ErrCodeGateway, "gateway error")
	ErrHTTPClient = new(ErrCodeHTTPClient, "http client error")
	ErrSystem     = new(ErrCodeSystemError, "system error")
)

const (
	ErrCodeValidation  = "validation_error"
	ErrCodeGateway     = "gateway_error"
	ErrCodeHTTPClient  = "http_client_error"
	ErrCodeSystemError = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is matches on the error code so that wrapped and typed errors compare
// equal to the sentinel of their kind
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates an InternalError for the given code and operation
func New(code, op, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Op:      op,
		Message: message,
	}
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsGateway checks if an error was reported by the remote gateway
func IsGateway(err error) bool {
	return errors.Is(err, ErrGateway)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// IsSystem checks if an error is a system error
func IsSystem(err error) bool {
	return errors.Is(err, ErrSystem)
}

// GetHint returns the first user-facing hint attached to err, if any
func GetHint(err error) string {
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		return ""
	}
	return hints[0]
}
