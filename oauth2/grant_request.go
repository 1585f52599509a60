package oauth2

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jrsteele09/go-oauth2-models/internal/config"
	internalerrors "github.com/jrsteele09/go-oauth2-models/internal/errors"
)

const grantTypeKey = "grant_type"

// GrantRequest is a decoded token endpoint request. The concrete type is one of
// *AuthCodeAccessTokenRequest, *RefreshTokenRequest, *PasswordAccessTokenRequest,
// *ClientCredentialsAccessTokenRequest or *UnknownGrantRequest.
type GrantRequest interface {
	GrantType() GrantType
	isGrantRequest()
}

var (
	_ GrantRequest = (*AuthCodeAccessTokenRequest)(nil)
	_ GrantRequest = (*RefreshTokenRequest)(nil)
	_ GrantRequest = (*PasswordAccessTokenRequest)(nil)
	_ GrantRequest = (*ClientCredentialsAccessTokenRequest)(nil)
	_ GrantRequest = (*UnknownGrantRequest)(nil)
)

// UnknownGrantRequest holds a request whose grant_type is not one of the
// built-in grants, typically an extension grant (RFC 6749 section 4.5).
type UnknownGrantRequest struct {
	Type GrantType

	// Payload is the complete request as JSON, grant_type included.
	Payload json.RawMessage
}

func (r *UnknownGrantRequest) GrantType() GrantType { return r.Type }
func (*UnknownGrantRequest) isGrantRequest()        {}

// Decode unmarshals the payload into an application defined request type.
func (r *UnknownGrantRequest) Decode(v any) error {
	return json.Unmarshal(r.Payload, v)
}

// ErrorResponse is the unsupported_grant_type response a token endpoint
// returns when it does not handle this grant.
func (r *UnknownGrantRequest) ErrorResponse() ErrorResponse {
	resp, err := NewErrorResponse(UnsupportedGrantTypeError, fmt.Sprintf("unknown grant type: %s", r.Type), "")
	if err != nil {
		return ErrorResponse{Code: UnsupportedGrantTypeError}
	}
	return resp
}

// grantVariants are the built-in grants in dispatch order.
var grantVariants = []struct {
	grantType  GrantType
	newRequest func() GrantRequest
}{
	{AuthorizationCodeGrant, func() GrantRequest { return &AuthCodeAccessTokenRequest{} }},
	{RefreshTokenGrant, func() GrantRequest { return &RefreshTokenRequest{} }},
	{PasswordGrant, func() GrantRequest { return &PasswordAccessTokenRequest{} }},
	{ClientCredentialsGrant, func() GrantRequest { return &ClientCredentialsAccessTokenRequest{} }},
}

func newGrantRequest(grantType GrantType) (GrantRequest, bool) {
	for _, variant := range grantVariants {
		if variant.grantType == grantType {
			return variant.newRequest(), true
		}
	}
	return nil, false
}

// GrantDecoder turns token endpoint request bodies into GrantRequest values.
// It holds no mutable state and is safe for concurrent use.
type GrantDecoder struct {
	logger         zerolog.Logger
	logLevel       zerolog.Level
	validateSchema bool
}

type GrantDecoderOption func(*GrantDecoder)

func WithLogger(logger zerolog.Logger) GrantDecoderOption {
	return func(d *GrantDecoder) {
		d.logger = logger
	}
}

// WithLogLevel sets the level dispatch events are logged at.
func WithLogLevel(level zerolog.Level) GrantDecoderOption {
	return func(d *GrantDecoder) {
		d.logLevel = level
	}
}

// WithSchemaValidation checks built-in grant requests against their JSON
// schema before decoding. Violations are returned as *SchemaError.
func WithSchemaValidation(enabled bool) GrantDecoderOption {
	return func(d *GrantDecoder) {
		d.validateSchema = enabled
	}
}

func NewGrantDecoder(options ...GrantDecoderOption) *GrantDecoder {
	cfg := config.New()
	d := &GrantDecoder{
		logger:         zerolog.Nop(),
		logLevel:       cfg.GetLogLevel(),
		validateSchema: cfg.GetValidateSchema(),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

var defaultGrantDecoder = NewGrantDecoder()

// DecodeGrantRequest decodes a JSON token request with the default decoder.
func DecodeGrantRequest(data []byte) (GrantRequest, error) {
	return defaultGrantDecoder.Decode(data)
}

// Decode reads grant_type from a JSON object and decodes the whole document as
// the matching request. A grant_type that matches no built-in grant yields an
// *UnknownGrantRequest rather than an error. Errors raised by the selected
// request type are returned as they are.
func (d *GrantDecoder) Decode(data []byte) (GrantRequest, error) {
	grantType, err := peekGrantType(data)
	if err != nil {
		d.logFailure(err)
		return nil, err
	}

	req, known := newGrantRequest(grantType)
	d.logDispatch(grantType, known)
	if !known {
		return &UnknownGrantRequest{Type: grantType, Payload: slices.Clone(data)}, nil
	}

	if d.validateSchema {
		if err := validateGrantSchema(grantType, gojsonschema.NewBytesLoader(data)); err != nil {
			d.logFailure(err)
			return nil, err
		}
	}
	if err := json.Unmarshal(data, req); err != nil {
		d.logFailure(err)
		return nil, err
	}
	return req, nil
}

// DecodeMap decodes an already parsed request, such as the result of
// unmarshalling JSON into map[string]any.
func (d *GrantDecoder) DecodeMap(fields map[string]any) (GrantRequest, error) {
	raw, ok := fields[grantTypeKey]
	if !ok {
		err := &DecodeError{Field: grantTypeKey, Err: ErrMissingField}
		d.logFailure(err)
		return nil, err
	}
	s, ok := raw.(string)
	if !ok {
		err := &DecodeError{Field: grantTypeKey, Err: fmt.Errorf("expected a string, got %T", raw)}
		d.logFailure(err)
		return nil, err
	}
	grantType := GrantType(s)

	req, known := newGrantRequest(grantType)
	d.logDispatch(grantType, known)
	if !known {
		payload, err := json.Marshal(fields)
		if err != nil {
			return nil, &DecodeError{Err: err}
		}
		return &UnknownGrantRequest{Type: grantType, Payload: payload}, nil
	}

	if d.validateSchema {
		if err := validateGrantSchema(grantType, gojsonschema.NewGoLoader(fields)); err != nil {
			d.logFailure(err)
			return nil, err
		}
	}
	if err := DecodeFields(fields, req); err != nil {
		d.logFailure(err)
		return nil, err
	}
	return req, nil
}

// DecodeForm decodes an application/x-www-form-urlencoded token request, the
// encoding RFC 6749 section 4.1.3 prescribes.
func (d *GrantDecoder) DecodeForm(values url.Values) (GrantRequest, error) {
	fields, err := formFields(values)
	if err != nil {
		d.logFailure(err)
		return nil, err
	}
	return d.DecodeMap(fields)
}

func peekGrantType(data []byte) (GrantType, error) {
	if !gjson.ValidBytes(data) {
		return "", &DecodeError{Err: errors.New("invalid JSON")}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return "", &DecodeError{Err: internalerrors.ErrNotJSONObject}
	}
	var field gjson.Result
	seen := 0
	doc.ForEach(func(key, value gjson.Result) bool {
		if key.Str == grantTypeKey {
			field = value
			seen++
		}
		return seen < 2
	})
	switch {
	case seen == 0:
		return "", &DecodeError{Field: grantTypeKey, Err: ErrMissingField}
	case seen > 1:
		return "", &DecodeError{Field: grantTypeKey, Err: ErrRepeatedParameter}
	}
	if field.Type != gjson.String {
		return "", &DecodeError{Field: grantTypeKey, Err: fmt.Errorf("expected a string, got %s", field.Type)}
	}
	return GrantType(field.Str), nil
}

func (d *GrantDecoder) logDispatch(grantType GrantType, known bool) {
	d.logger.WithLevel(d.logLevel).
		Str("grant_type", string(grantType)).
		Bool("known", known).
		Msg("Dispatching grant request")
}

func (d *GrantDecoder) logFailure(err error) {
	d.logger.WithLevel(d.logLevel).Err(err).Msg("Failed to decode grant request")
}
