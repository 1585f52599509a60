package oauth2

import "encoding/json"

// DecodeResult decodes a response body that holds either a success message of
// type T or an error response. Exactly one of the first two results is set
// when err is nil. If neither shape matches, the error from decoding T is returned.
func DecodeResult[T any](data []byte) (T, *ErrorResponse, error) {
	var success T
	successErr := json.Unmarshal(data, &success)
	if successErr == nil {
		return success, nil, nil
	}

	var zero T
	var failure ErrorResponse
	if err := json.Unmarshal(data, &failure); err != nil {
		return zero, nil, successErr
	}
	return zero, &failure, nil
}
