package cryptapi

import (
	ierr "github.com/flexprice/cryptapi/internal/errors"
	"github.com/flexprice/cryptapi/internal/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Params is the flat set of query parameters sent with a request
type Params map[string]any

// toQuery stringifies every value for the query string
func (p Params) toQuery() (map[string]string, error) {
	query := make(map[string]string, len(p))
	for key, value := range p {
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Parameter %q must be a scalar value", key).
				Mark(ierr.ErrValidation)
		}
		query[key] = s
	}
	return query, nil
}

// Response is a decoded gateway JSON object, returned verbatim to callers
type Response map[string]any

// Status returns the gateway status field, "success" or "error"
func (r Response) Status() string {
	return r.String("status")
}

// IsError reports whether the gateway flagged the response as failed
func (r Response) IsError() bool {
	return r.Status() == StatusError
}

// ErrorMessage returns the gateway error message of a failed response
func (r Response) ErrorMessage() string {
	return r.String("error")
}

// String returns the field as a string, empty when missing
func (r Response) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// As decodes the response into one of the typed views, e.g. *AddressResponse
func (r Response) As(v any) error {
	return utils.Into(r, v)
}

// Decode returns the typed view of a response, for example Decode[LogsResponse](resp)
func Decode[T any](r Response) (T, error) {
	return utils.ToStruct[T](r)
}

func decodeResponse(body []byte) (Response, error) {
	var data Response
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Gateway returned a malformed response").
			WithReportableDetails(map[string]any{
				"body": string(body),
			}).
			Mark(ierr.ErrHTTPClient)
	}
	if data == nil {
		return nil, ierr.NewError("empty response body").
			WithHint("Gateway returned a malformed response").
			Mark(ierr.ErrHTTPClient)
	}
	return data, nil
}
