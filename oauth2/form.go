package oauth2

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/jrsteele09/go-oauth2-models/internal/errors"
)

var (
	scopeType      = reflect.TypeOf(Scope{})
	expirationType = reflect.TypeOf(TokenExpiration{})
	tokenTypeType  = reflect.TypeOf(TokenType(""))
)

// wireValueHook gives the value types the same lenient rules in a generic
// tree as they have in JSON.
func wireValueHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case scopeType:
		return scopeFromValue(data)
	case expirationType:
		return expirationFromValue(data)
	case tokenTypeType:
		if s, ok := data.(string); ok {
			return ParseTokenType(s)
		}
	}
	return data, nil
}

// DecodeFields decodes a generic key/value tree, such as a parsed JSON object,
// into message and validates it. Keys are the wire parameter names.
func DecodeFields(fields map[string]any, message any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(wireValueHook),
		TagName:    "json",
		Result:     message,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(fields); err != nil {
		return &DecodeError{Err: err}
	}
	return validateStruct(message)
}

// DecodeForm decodes an application/x-www-form-urlencoded body into message.
// Parameters without a value are treated as omitted and repeated parameters
// are rejected (RFC 6749 section 3.1).
func DecodeForm(values url.Values, message any) error {
	fields, err := formFields(values)
	if err != nil {
		return err
	}
	return DecodeFields(fields, message)
}

func formFields(values url.Values) (map[string]any, error) {
	fields := make(map[string]any, len(values))
	for key, vs := range values {
		if len(vs) > 1 {
			return nil, &DecodeError{Field: key, Err: ErrRepeatedParameter}
		}
		if len(vs) == 0 || vs[0] == "" {
			continue
		}
		fields[key] = vs[0]
	}
	return fields, nil
}

// EncodeForm renders message as form parameters using the same names and
// omission rules as its JSON encoding.
func EncodeForm(message any) (url.Values, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, err
	}
	fields, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	for key, value := range fields {
		switch v := value.(type) {
		case nil:
		case string:
			values.Set(key, v)
		case json.Number:
			values.Set(key, v.String())
		case bool:
			values.Set(key, strconv.FormatBool(v))
		default:
			return nil, fmt.Errorf("parameter %s: %T cannot be form encoded", key, v)
		}
	}
	return values, nil
}

// decodeObject parses a JSON object keeping numbers exact.
func decodeObject(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if fields == nil {
		return nil, &DecodeError{Err: errors.ErrNotJSONObject}
	}
	return fields, nil
}
