package oauth2

import (
	"encoding/json"
	"net/url"

	xoauth2 "golang.org/x/oauth2"
)

// AuthRequest is the authorization request a client sends through the
// resource owner's user agent. RFC 6749 sections 4.1.1 and 4.2.1
type AuthRequest struct {
	// ResponseType selects the flow: "code" or "token".
	// REQUIRED
	ResponseType ResponseType `json:"response_type" validate:"oneof=code token"`

	// ClientID is the client identifier issued at registration (section 2.2).
	// REQUIRED
	ClientID string `json:"client_id" validate:"required"`

	// RedirectURI is where the user agent is sent back to.
	// Must be absolute and must not carry a fragment (section 3.1.2).
	// Example: "https://client.example.com/cb"
	RedirectURI string `json:"redirect_uri,omitempty" validate:"omitempty,redirect_uri"`

	Scope Scope `json:"scope,omitzero"`

	// State is an opaque value echoed back in the response, used against CSRF.
	// RECOMMENDED
	State string `json:"state,omitempty"`
}

func NewAuthRequest(responseType ResponseType, clientID string) AuthRequest {
	return AuthRequest{ResponseType: responseType, ClientID: clientID}
}

func (r AuthRequest) Validate() error {
	return validateStruct(&r)
}

func (r *AuthRequest) UnmarshalJSON(data []byte) error {
	type wire AuthRequest
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	req := AuthRequest(w)
	if err := req.Validate(); err != nil {
		return err
	}
	*r = req
	return nil
}

// ParseAuthRequest decodes the query parameters of an authorization request.
func ParseAuthRequest(values url.Values) (AuthRequest, error) {
	var req AuthRequest
	if err := DecodeForm(values, &req); err != nil {
		return AuthRequest{}, err
	}
	return req, nil
}

// Response is the successful authorization code response to this request,
// carrying its state.
func (r AuthRequest) Response(code string) AuthCodeAuthResponse {
	return AuthCodeAuthResponse{Code: code, State: r.State}
}

// ErrorResponse is an error response to this request, carrying its state.
func (r AuthRequest) ErrorResponse(code ErrorCode, description, uri string) (ErrorResponse, error) {
	resp, err := NewErrorResponse(code, description, uri)
	if err != nil {
		return ErrorResponse{}, err
	}
	resp.State = r.State
	return resp, nil
}

// AuthCodeURL renders the request as a URL on the authorization endpoint.
// Only the code flow is supported.
func (r AuthRequest) AuthCodeURL(authURL string) (string, error) {
	if r.ResponseType != CodeResponseType {
		return "", ErrUnsupportedResponseType
	}
	if err := r.Validate(); err != nil {
		return "", err
	}
	cfg := xoauth2.Config{
		ClientID:    r.ClientID,
		RedirectURL: r.RedirectURI,
		Endpoint:    xoauth2.Endpoint{AuthURL: authURL},
		Scopes:      r.Scope.Items(),
	}
	return cfg.AuthCodeURL(r.State), nil
}
