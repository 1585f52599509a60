package oauth2

import "encoding/json"

// AuthCodeAccessTokenRequest redeems an authorization code at the token endpoint.
// RFC 6749 section 4.1.3
type AuthCodeAccessTokenRequest struct {
	// Type is always "authorization_code".
	Type GrantType `json:"grant_type" validate:"eq=authorization_code"`

	// Code is the authorization code received from the authorization server.
	// REQUIRED
	Code string `json:"code" validate:"required"`

	// RedirectURI must match the redirect_uri of the authorization request, if one was sent.
	// Example: "https://client.example.com/cb"
	RedirectURI string `json:"redirect_uri,omitempty" validate:"omitempty,url"`

	// ClientID identifies a public client that does not authenticate (section 3.2.1).
	ClientID string `json:"client_id,omitempty"`

	// ClientSecret is only sent by clients using request-body authentication (section 2.3.1).
	ClientSecret string `json:"client_secret,omitempty"`
}

func NewAuthCodeAccessTokenRequest(code string) *AuthCodeAccessTokenRequest {
	return &AuthCodeAccessTokenRequest{Type: AuthorizationCodeGrant, Code: code}
}

func (r *AuthCodeAccessTokenRequest) GrantType() GrantType { return AuthorizationCodeGrant }
func (*AuthCodeAccessTokenRequest) isGrantRequest()        {}

func (r *AuthCodeAccessTokenRequest) Validate() error {
	return validateStruct(r)
}

func (r *AuthCodeAccessTokenRequest) UnmarshalJSON(data []byte) error {
	type wire AuthCodeAccessTokenRequest
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	req := AuthCodeAccessTokenRequest(w)
	if err := req.Validate(); err != nil {
		return err
	}
	*r = req
	return nil
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
// RFC 6749 section 6
type RefreshTokenRequest struct {
	// Type is always "refresh_token".
	Type GrantType `json:"grant_type" validate:"eq=refresh_token"`

	// RefreshToken is the refresh token issued to the client.
	// REQUIRED
	RefreshToken string `json:"refresh_token" validate:"required"`

	// Scope may narrow the originally granted scope but never widen it.
	// Omitted means the original scope.
	Scope Scope `json:"scope,omitzero"`

	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

func NewRefreshTokenRequest(refreshToken string, scope Scope) *RefreshTokenRequest {
	return &RefreshTokenRequest{Type: RefreshTokenGrant, RefreshToken: refreshToken, Scope: scope}
}

func (r *RefreshTokenRequest) GrantType() GrantType { return RefreshTokenGrant }
func (*RefreshTokenRequest) isGrantRequest()        {}

func (r *RefreshTokenRequest) Validate() error {
	return validateStruct(r)
}

func (r *RefreshTokenRequest) UnmarshalJSON(data []byte) error {
	type wire RefreshTokenRequest
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	req := RefreshTokenRequest(w)
	if err := req.Validate(); err != nil {
		return err
	}
	*r = req
	return nil
}

// PasswordAccessTokenRequest carries the resource owner's credentials.
// RFC 6749 section 4.3.2
type PasswordAccessTokenRequest struct {
	// Type is always "password".
	Type GrantType `json:"grant_type" validate:"eq=password"`

	// Username is the resource owner username.
	// REQUIRED
	Username string `json:"username" validate:"required"`

	// Password is the resource owner password.
	// REQUIRED
	Password string `json:"password" validate:"required"`

	Scope Scope `json:"scope,omitzero"`

	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

func NewPasswordAccessTokenRequest(username, password string, scope Scope) *PasswordAccessTokenRequest {
	return &PasswordAccessTokenRequest{Type: PasswordGrant, Username: username, Password: password, Scope: scope}
}

func (r *PasswordAccessTokenRequest) GrantType() GrantType { return PasswordGrant }
func (*PasswordAccessTokenRequest) isGrantRequest()        {}

func (r *PasswordAccessTokenRequest) Validate() error {
	return validateStruct(r)
}

func (r *PasswordAccessTokenRequest) UnmarshalJSON(data []byte) error {
	type wire PasswordAccessTokenRequest
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	req := PasswordAccessTokenRequest(w)
	if err := req.Validate(); err != nil {
		return err
	}
	*r = req
	return nil
}

// ClientCredentialsAccessTokenRequest is sent by a client acting on its own behalf.
// The client authenticates separately, usually with HTTP Basic.
// RFC 6749 section 4.4.2
type ClientCredentialsAccessTokenRequest struct {
	// Type is always "client_credentials".
	Type GrantType `json:"grant_type" validate:"eq=client_credentials"`

	Scope Scope `json:"scope,omitzero"`

	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

func NewClientCredentialsAccessTokenRequest(scope Scope) *ClientCredentialsAccessTokenRequest {
	return &ClientCredentialsAccessTokenRequest{Type: ClientCredentialsGrant, Scope: scope}
}

func (r *ClientCredentialsAccessTokenRequest) GrantType() GrantType { return ClientCredentialsGrant }
func (*ClientCredentialsAccessTokenRequest) isGrantRequest()        {}

func (r *ClientCredentialsAccessTokenRequest) Validate() error {
	return validateStruct(r)
}

func (r *ClientCredentialsAccessTokenRequest) UnmarshalJSON(data []byte) error {
	type wire ClientCredentialsAccessTokenRequest
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	req := ClientCredentialsAccessTokenRequest(w)
	if err := req.Validate(); err != nil {
		return err
	}
	*r = req
	return nil
}
