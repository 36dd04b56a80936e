package cryptapi

import (
	goerrors "errors"

	ierr "github.com/flexprice/cryptapi/internal/errors"
)

// GatewayError is returned for missing required arguments and for requests the
// gateway answered with status "error". Transport failures are reported separately,
// see ierr.IsHTTPClient.
type GatewayError struct {
	*ierr.InternalError
	// Endpoint is set for errors reported by the gateway
	Endpoint string
	// Response holds the decoded error body for errors reported by the gateway
	Response Response
}

func (e *GatewayError) Unwrap() error {
	return e.InternalError.Unwrap()
}

func (e *GatewayError) Error() string {
	return e.InternalError.Error()
}

func newMissingArgumentError(op, message string) *GatewayError {
	return &GatewayError{
		InternalError: ierr.New(ierr.ErrCodeValidation, op, message),
	}
}

func newRemoteError(endpoint string, resp Response) *GatewayError {
	return &GatewayError{
		InternalError: ierr.New(ierr.ErrCodeGateway, "", resp.ErrorMessage()),
		Endpoint:      endpoint,
		Response:      resp,
	}
}

// IsGatewayError checks if an error is a GatewayError
func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if goerrors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}
