// Package oauth2 models the messages exchanged by OAuth 2.0 clients and
// servers as described in RFC 6749, together with the value types they carry.
package oauth2

import (
	"fmt"
	"slices"
	"strings"
)

// ResponseType represents the OAuth 2.0 response type.
// Determines what is returned from the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow.
	// Used in: Authorization Code Grant (RFC 6749 section 4.1)
	// Returns an authorization code that must be exchanged for tokens at the token endpoint.
	// Example: /authorize?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"

	// TokenResponseType indicates the implicit flow.
	// Used in: Implicit Grant (RFC 6749 section 4.2)
	// The access token is returned directly in the redirect URI fragment.
	TokenResponseType ResponseType = "token"
)

// ResponseModeType denotes how the authorization response parameters are returned to the client.
type ResponseModeType string

const (
	// QueryResponseMode returns parameters in the URL query string.
	// Used in: Authorization Code Grant (RFC 6749 section 4.1.2)
	// Example: https://client.example.com/callback?code=ABC123&state=xyz
	QueryResponseMode ResponseModeType = "query"

	// FragmentResponseMode returns parameters in the URL fragment (after #).
	// Used in: Implicit Grant (RFC 6749 section 4.2.2)
	// Example: https://client.example.com/callback#access_token=ABC123&state=xyz
	FragmentResponseMode ResponseModeType = "fragment"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
// Determines what credentials are required to obtain tokens.
// Values outside the constants below are extension grants (RFC 6749 section 4.5).
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Used in: Authorization Code Grant (RFC 6749 section 4.1.3)
	// Token request includes: code, redirect_uri (if sent to the authorization endpoint)
	AuthorizationCodeGrant GrantType = "authorization_code"

	// RefreshTokenGrant exchanges a refresh token for new tokens.
	// Used in: Refreshing an Access Token (RFC 6749 section 6)
	// Token request includes: refresh_token, scope (optional, may only narrow)
	RefreshTokenGrant GrantType = "refresh_token"

	// PasswordGrant exchanges the resource owner's credentials for tokens.
	// Used in: Resource Owner Password Credentials Grant (RFC 6749 section 4.3)
	// Token request includes: username, password, scope
	PasswordGrant GrantType = "password"

	// ClientCredentialsGrant allows machine-to-machine authentication.
	// Used in: Client Credentials Grant (RFC 6749 section 4.4)
	// Token request includes: scope
	// Example: Microservice calling another microservice
	ClientCredentialsGrant GrantType = "client_credentials"
)

// TokenType tells the client how to present the access token (RFC 6749 section 7.1).
// Decoding is case-insensitive; the canonical form is lower case.
type TokenType string

const (
	// BearerTokenType is defined by RFC 6750.
	// Usage: "Authorization: Bearer <access_token>"
	BearerTokenType TokenType = "bearer"

	// MACTokenType is the message authentication code token type.
	MACTokenType TokenType = "mac"
)

// ParseTokenType accepts any casing of a known token type.
func ParseTokenType(s string) (TokenType, error) {
	switch t := TokenType(strings.ToLower(s)); t {
	case BearerTokenType, MACTokenType:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTokenType, s)
}

func (t *TokenType) UnmarshalText(text []byte) error {
	parsed, err := ParseTokenType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ErrorCode is the value of the "error" parameter of an error response.
type ErrorCode string

const (
	// InvalidRequestError: the request is missing a required parameter, includes an
	// unsupported or repeated parameter, or is otherwise malformed.
	// Used in: authorization and token endpoint errors
	InvalidRequestError ErrorCode = "invalid_request"

	// InvalidClientError: client authentication failed.
	// Used in: token endpoint errors only
	InvalidClientError ErrorCode = "invalid_client"

	// InvalidGrantError: the authorization grant or refresh token is invalid, expired,
	// revoked, or was issued to another client.
	// Used in: token endpoint errors only
	InvalidGrantError ErrorCode = "invalid_grant"

	// UnauthorizedClientError: the client is not authorized to use this grant or response type.
	// Used in: authorization and token endpoint errors
	UnauthorizedClientError ErrorCode = "unauthorized_client"

	// UnsupportedGrantTypeError: the grant type is not supported by the authorization server.
	// Used in: token endpoint errors only
	UnsupportedGrantTypeError ErrorCode = "unsupported_grant_type"

	// InvalidScopeError: the requested scope is invalid, unknown, or malformed.
	// Used in: authorization and token endpoint errors
	InvalidScopeError ErrorCode = "invalid_scope"

	// AccessDeniedError: the resource owner or authorization server denied the request.
	// Used in: authorization endpoint errors only
	AccessDeniedError ErrorCode = "access_denied"

	// UnsupportedResponseTypeError: the server does not support this response type.
	// Used in: authorization endpoint errors only
	UnsupportedResponseTypeError ErrorCode = "unsupported_response_type"

	// ServerErrorError: the server encountered an unexpected condition.
	// Used in: authorization endpoint errors only
	ServerErrorError ErrorCode = "server_error"

	// TemporarilyUnavailableError: the server is overloaded or under maintenance.
	// Used in: authorization endpoint errors only
	TemporarilyUnavailableError ErrorCode = "temporarily_unavailable"
)

// RFC 6749 section 5.2
var tokenEndpointErrorCodes = []ErrorCode{
	InvalidRequestError,
	InvalidClientError,
	InvalidGrantError,
	UnauthorizedClientError,
	UnsupportedGrantTypeError,
	InvalidScopeError,
}

// RFC 6749 sections 4.1.2.1 and 4.2.2.1
var authorizationErrorCodes = []ErrorCode{
	InvalidRequestError,
	UnauthorizedClientError,
	AccessDeniedError,
	UnsupportedResponseTypeError,
	InvalidScopeError,
	ServerErrorError,
	TemporarilyUnavailableError,
}

// TokenEndpointErrorCodes lists the codes a token endpoint may return.
func TokenEndpointErrorCodes() []ErrorCode {
	return slices.Clone(tokenEndpointErrorCodes)
}

// AuthorizationErrorCodes lists the codes an authorization endpoint may return.
func AuthorizationErrorCodes() []ErrorCode {
	return slices.Clone(authorizationErrorCodes)
}

func (c ErrorCode) IsTokenEndpointCode() bool {
	return slices.Contains(tokenEndpointErrorCodes, c)
}

func (c ErrorCode) IsAuthorizationCode() bool {
	return slices.Contains(authorizationErrorCodes, c)
}

// IsKnown reports whether c is one of the codes defined by RFC 6749.
func (c ErrorCode) IsKnown() bool {
	return c.IsTokenEndpointCode() || c.IsAuthorizationCode()
}
