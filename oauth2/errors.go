package oauth2

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyValue              = errors.New("empty value")
	ErrUnknownTokenType        = errors.New("unknown token type")
	ErrUnknownErrorCode        = errors.New("unknown error code")
	ErrMissingField            = errors.New("missing field")
	ErrRepeatedParameter       = errors.New("parameter included more than once")
	ErrUnsupportedResponseType = errors.New("unsupported response type")
	ErrUnsupportedResponseMode = errors.New("unsupported response mode")
	ErrNilToken                = errors.New("nil token")
)

// InvalidCharactersError reports the characters of a value that fall outside
// the character set it was validated against, in order of appearance.
type InvalidCharactersError struct {
	Characters string
}

func (e *InvalidCharactersError) Error() string {
	return fmt.Sprintf("contains invalid characters: %q", e.Characters)
}

// DecodeError is returned for input that is not well-formed enough to decode,
// such as invalid JSON or a discriminator of the wrong type.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed input: %v", e.Err)
	}
	return fmt.Sprintf("malformed input: field %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FieldError is returned when a decoded message violates a field constraint.
// Field is the wire name of the offending parameter.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// SchemaError lists the JSON schema violations of a grant request.
type SchemaError struct {
	GrantType GrantType
	Problems  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s request does not match its schema: %s", e.GrantType, strings.Join(e.Problems, "; "))
}
