package errors

import (
	"errors"
	"fmt"
)

// ErrNotJSONObject is returned when a document must be a JSON object but is not.
var ErrNotJSONObject = errors.New("not a JSON object")

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
