package utils

import (
	ierr "github.com/flexprice/cryptapi/internal/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ToStruct converts a decoded JSON object into a typed struct
func ToStruct[T any](value map[string]any) (T, error) {
	var result T
	if err := Into(value, &result); err != nil {
		return result, err
	}
	return result, nil
}

// Into re-encodes value and decodes it into target, which must be a pointer.
// Decimal fields accept both JSON strings and numbers. A nil value leaves target untouched.
func Into(value map[string]any, target any) error {
	if value == nil {
		return nil
	}

	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal map to JSON").
			Mark(ierr.ErrSystem)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to unmarshal JSON to struct").
			Mark(ierr.ErrSystem)
	}

	return nil
}
