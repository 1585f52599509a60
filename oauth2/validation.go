package oauth2

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// structValidator reports field errors by their wire names.
var structValidator = sync.OnceValues(func() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"error_code": func(fl validator.FieldLevel) bool {
			return ErrorCode(fl.Field().String()).IsKnown()
		},
		"token_error_code": func(fl validator.FieldLevel) bool {
			return ErrorCode(fl.Field().String()).IsTokenEndpointCode()
		},
		"redirect_uri": func(fl validator.FieldLevel) bool {
			return validateRedirectURI(fl.Field().String()) == nil
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, err
		}
	}
	return v, nil
})

func validateStruct(message any) error {
	validate, err := structValidator()
	if err != nil {
		return err
	}
	err = validate.Struct(message)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return fieldError(validationErrors[0])
	}
	return err
}

func fieldError(fe validator.FieldError) *FieldError {
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "required field is missing"
	case "eq":
		reason = fmt.Sprintf("must be %q", fe.Param())
	case "oneof":
		reason = fmt.Sprintf("must be one of [%s]", fe.Param())
	case "url":
		reason = "must be an absolute URI"
	case "error_code":
		reason = fmt.Sprintf("%v: %q", ErrUnknownErrorCode, fe.Value())
	case "token_error_code":
		reason = fmt.Sprintf("%q is not a token endpoint error code", fe.Value())
	case "redirect_uri":
		reason = "must be an absolute URI without a fragment"
		if err := validateRedirectURI(fmt.Sprint(fe.Value())); err != nil {
			reason = err.Error()
		}
	default:
		reason = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return &FieldError{Field: fe.Field(), Reason: reason}
}

// validateRedirectURI applies RFC 6749 section 3.1.2: an absolute URI without a fragment.
func validateRedirectURI(redirectURI string) error {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return fmt.Errorf("invalid redirect uri: %w", err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("redirect uri must be absolute")
	}
	if u.Fragment != "" || strings.Contains(redirectURI, "#") {
		return fmt.Errorf("redirect uri must not contain a fragment")
	}
	return nil
}
