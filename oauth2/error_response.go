package oauth2

import (
	"encoding/json"
	"fmt"
	"net/url"

	xoauth2 "golang.org/x/oauth2"

	"github.com/jrsteele09/go-oauth2-models/internal/errors"
)

// ErrorResponse is an error returned by the authorization or token endpoint.
// RFC 6749 sections 4.1.2.1, 4.2.2.1 and 5.2
type ErrorResponse struct {
	// Code is a single ASCII error code.
	// REQUIRED
	Code ErrorCode `json:"error" validate:"error_code"`

	// Description is human-readable text for the client developer.
	// Restricted to TextCharacters.
	Description string `json:"error_description,omitempty"`

	// URI identifies a web page with more information about the error.
	// Restricted to URLCharacters.
	URI string `json:"error_uri,omitempty"`

	// State echoes the state of the authorization request, when there was one.
	State string `json:"state,omitempty"`
}

var _ error = ErrorResponse{}

// NewErrorResponse builds an error response from untrusted text. An empty
// description or uri is treated as absent.
func NewErrorResponse(code ErrorCode, description, uri string) (ErrorResponse, error) {
	if !code.IsKnown() {
		return ErrorResponse{}, fmt.Errorf("%w: %q", ErrUnknownErrorCode, code)
	}
	if err := validateErrorText(description, uri); err != nil {
		return ErrorResponse{}, err
	}
	return ErrorResponse{Code: code, Description: description, URI: uri}, nil
}

func validateErrorText(description, uri string) error {
	if err := TextCharacters.Validate(description); err != nil {
		return errors.Wrapf(err, "error_description")
	}
	if uri == "" {
		return nil
	}
	if err := URLCharacters.Validate(uri); err != nil {
		return errors.Wrapf(err, "error_uri")
	}
	if _, err := url.Parse(uri); err != nil {
		return errors.Wrapf(err, "error_uri")
	}
	return nil
}

func (e ErrorResponse) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("oauth2: %s", e.Code)
	}
	return fmt.Sprintf("oauth2: %s: %s", e.Code, e.Description)
}

func (e ErrorResponse) Validate() error {
	return validateStruct(&e)
}

func (e *ErrorResponse) UnmarshalJSON(data []byte) error {
	type wire ErrorResponse
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	resp := ErrorResponse(w)
	if err := resp.Validate(); err != nil {
		return err
	}
	*e = resp
	return nil
}

// ParseErrorResponse decodes an error response delivered as query or form parameters.
func ParseErrorResponse(values url.Values) (ErrorResponse, error) {
	var resp ErrorResponse
	if err := DecodeForm(values, &resp); err != nil {
		return ErrorResponse{}, err
	}
	return resp, nil
}

// ErrorResponseFromRetrieveError recovers the RFC 6749 error carried by a
// failed x/oauth2 token exchange. It reports false when the server sent no
// recognisable error code.
func ErrorResponseFromRetrieveError(err *xoauth2.RetrieveError) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}
	code := ErrorCode(err.ErrorCode)
	if !code.IsKnown() {
		return ErrorResponse{}, false
	}
	return ErrorResponse{Code: code, Description: err.ErrorDescription, URI: err.ErrorURI}, true
}

// AccessTokenError is a token endpoint error response. Unlike ErrorResponse
// it only admits the codes of RFC 6749 section 5.2 and carries no state.
type AccessTokenError struct {
	Code        ErrorCode `json:"error" validate:"token_error_code"`
	Description string    `json:"error_description,omitempty"`
	URI         string    `json:"error_uri,omitempty"`
}

var _ error = AccessTokenError{}

func NewAccessTokenError(code ErrorCode, description, uri string) (AccessTokenError, error) {
	if !code.IsTokenEndpointCode() {
		return AccessTokenError{}, fmt.Errorf("%w: %q is not a token endpoint error", ErrUnknownErrorCode, code)
	}
	if err := validateErrorText(description, uri); err != nil {
		return AccessTokenError{}, err
	}
	return AccessTokenError{Code: code, Description: description, URI: uri}, nil
}

func (e AccessTokenError) Error() string {
	return ErrorResponse{Code: e.Code, Description: e.Description}.Error()
}

func (e AccessTokenError) Validate() error {
	return validateStruct(&e)
}

func (e *AccessTokenError) UnmarshalJSON(data []byte) error {
	type wire AccessTokenError
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	resp := AccessTokenError(w)
	if err := resp.Validate(); err != nil {
		return err
	}
	*e = resp
	return nil
}

// ErrorResponse widens the error to the general error response shape.
func (e AccessTokenError) ErrorResponse() ErrorResponse {
	return ErrorResponse{Code: e.Code, Description: e.Description, URI: e.URI}
}
