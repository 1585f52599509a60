package oauth2

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// AuthCodeAuthResponse is the successful authorization response of the code flow.
// RFC 6749 section 4.1.2
type AuthCodeAuthResponse struct {
	// Code is the authorization code, redeemed later at the token endpoint.
	// REQUIRED
	Code string `json:"code" validate:"required"`

	// State is required if it was present in the request and must be echoed unchanged.
	State string `json:"state,omitempty"`
}

func (r AuthCodeAuthResponse) Validate() error {
	return validateStruct(&r)
}

func (r *AuthCodeAuthResponse) UnmarshalJSON(data []byte) error {
	type wire AuthCodeAuthResponse
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	resp := AuthCodeAuthResponse(w)
	if err := resp.Validate(); err != nil {
		return err
	}
	*r = resp
	return nil
}

// ParseAuthCodeAuthResponse decodes the callback query of the code flow.
// Callers should check for an "error" parameter first; see ParseErrorResponse.
func ParseAuthCodeAuthResponse(values url.Values) (AuthCodeAuthResponse, error) {
	var resp AuthCodeAuthResponse
	if err := DecodeForm(values, &resp); err != nil {
		return AuthCodeAuthResponse{}, err
	}
	return resp, nil
}

// RedirectURL appends message to redirectURI in the query or the fragment,
// as the code and implicit flows respectively require.
func RedirectURL(redirectURI string, mode ResponseModeType, message any) (string, error) {
	if err := validateRedirectURI(redirectURI); err != nil {
		return "", err
	}
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", err
	}
	values, err := EncodeForm(message)
	if err != nil {
		return "", err
	}

	switch mode {
	case QueryResponseMode:
		query := u.Query()
		for key := range values {
			query.Set(key, values.Get(key))
		}
		u.RawQuery = query.Encode()
	case FragmentResponseMode:
		return u.String() + "#" + values.Encode(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedResponseMode, mode)
	}
	return u.String(), nil
}

// NewState returns a random value for the state parameter.
func NewState() string {
	return uuid.NewString()
}
