package oauth2

import (
	"encoding/json"
	"time"

	xoauth2 "golang.org/x/oauth2"

	"github.com/jrsteele09/go-oauth2-models/internal/utils"
)

// AccessTokenResponse is the successful response of the token endpoint.
// RFC 6749 section 5.1, also used by the implicit grant (section 4.2.2).
type AccessTokenResponse struct {
	// AccessToken is the token used to access protected resources.
	// Example: "2YotnFZFEjr1zCsicMWpAA"
	// REQUIRED
	AccessToken string `json:"access_token" validate:"required"`

	// TokenType indicates how to use the access token.
	// Example: "bearer"
	// Decoding is case-insensitive, so "Bearer" is accepted.
	// REQUIRED
	TokenType TokenType `json:"token_type" validate:"required"`

	// ExpiresIn is the lifetime of the access token.
	// Example: 3600
	// Note: Omitted means the server did not say; nil is distinct from zero.
	ExpiresIn *TokenExpiration `json:"expires_in,omitempty"`

	// RefreshToken is used to obtain new access tokens.
	// Example: "tGzv3JOkF0XG5Qx2TlKWIA"
	// Usage: Send to the token endpoint with grant_type=refresh_token
	RefreshToken string `json:"refresh_token,omitempty"`

	// Scope indicates the access token's granted permissions.
	// Note: Only required when it differs from the requested scope.
	Scope Scope `json:"scope,omitzero"`

	// IDToken is the OpenID Connect ID token.
	// Only present: When "openid" scope was requested
	IDToken string `json:"id_token,omitempty"`
}

func NewAccessTokenResponse(accessToken string, tokenType TokenType) AccessTokenResponse {
	return AccessTokenResponse{AccessToken: accessToken, TokenType: tokenType}
}

func (r AccessTokenResponse) Validate() error {
	return validateStruct(&r)
}

func (r *AccessTokenResponse) UnmarshalJSON(data []byte) error {
	type wire AccessTokenResponse
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	resp := AccessTokenResponse(w)
	if err := resp.Validate(); err != nil {
		return err
	}
	*r = resp
	return nil
}

// Token converts the response into an x/oauth2 token, anchoring expires_in at now.
// The scope and id_token travel as extra fields.
func (r AccessTokenResponse) Token(now time.Time) *xoauth2.Token {
	tok := &xoauth2.Token{
		AccessToken:  r.AccessToken,
		TokenType:    string(r.TokenType),
		RefreshToken: r.RefreshToken,
	}
	if r.ExpiresIn != nil {
		tok.ExpiresIn = r.ExpiresIn.InSeconds()
		tok.Expiry = r.ExpiresIn.ProjectedInstant(Future, now)
	}

	extra := map[string]any{}
	if !r.Scope.IsEmpty() {
		extra["scope"] = r.Scope.String()
	}
	if r.IDToken != "" {
		extra["id_token"] = r.IDToken
	}
	if len(extra) > 0 {
		tok = tok.WithExtra(extra)
	}
	return tok
}

// AccessTokenResponseFromToken is the inverse of Token. An absolute expiry is
// turned back into a lifetime relative to now.
func AccessTokenResponseFromToken(tok *xoauth2.Token, now time.Time) (AccessTokenResponse, error) {
	if tok == nil {
		return AccessTokenResponse{}, ErrNilToken
	}
	tokenType, err := ParseTokenType(tok.Type())
	if err != nil {
		return AccessTokenResponse{}, err
	}
	resp := AccessTokenResponse{
		AccessToken:  tok.AccessToken,
		TokenType:    tokenType,
		RefreshToken: tok.RefreshToken,
	}

	switch {
	case !tok.Expiry.IsZero():
		resp.ExpiresIn = utils.Ptr(Until(tok.Expiry, now))
	case tok.ExpiresIn != 0:
		resp.ExpiresIn = utils.Ptr(Seconds(tok.ExpiresIn))
	}

	if scope, err := scopeFromValue(tok.Extra("scope")); err == nil {
		resp.Scope = scope
	}
	if idToken, ok := tok.Extra("id_token").(string); ok {
		resp.IDToken = idToken
	}
	if err := resp.Validate(); err != nil {
		return AccessTokenResponse{}, err
	}
	return resp, nil
}

// ExpiresInOrDefault is the advertised lifetime, or fallback when the server omitted it.
func (r AccessTokenResponse) ExpiresInOrDefault(fallback TokenExpiration) TokenExpiration {
	return utils.ValueOr(r.ExpiresIn, fallback)
}
