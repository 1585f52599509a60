package oauth2_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	xoauth2 "golang.org/x/oauth2"

	"github.com/jrsteele09/go-oauth2-models/internal/utils"
	"github.com/jrsteele09/go-oauth2-models/oauth2"
)

func TestAccessTokenResponseJSON(t *testing.T) {
	t.Run("unregistered token type", func(t *testing.T) {
		var resp oauth2.AccessTokenResponse
		err := json.Unmarshal([]byte(`{
			"access_token":"2YotnFZFEjr1zCsicMWpAA",
			"token_type":"example",
			"expires_in":3600,
			"refresh_token":"tGzv3JOkF0XG5Qx2TlKWIA"
		}`), &resp)
		require.ErrorIs(t, err, oauth2.ErrUnknownTokenType)
	})

	t.Run("token type is case insensitive", func(t *testing.T) {
		for _, tokenType := range []string{"bearer", "Bearer", "BEARER"} {
			var resp oauth2.AccessTokenResponse
			err := json.Unmarshal([]byte(`{"access_token":"a","token_type":"`+tokenType+`"}`), &resp)
			require.NoError(t, err, tokenType)
			require.Equal(t, oauth2.BearerTokenType, resp.TokenType)
		}

		tokenType, err := oauth2.ParseTokenType("MAC")
		require.NoError(t, err)
		require.Equal(t, oauth2.MACTokenType, tokenType)
	})

	t.Run("fractional expires_in is truncated", func(t *testing.T) {
		var resp oauth2.AccessTokenResponse
		require.NoError(t, json.Unmarshal([]byte(`{"access_token":"a","token_type":"bearer","expires_in":100.5}`), &resp))
		require.Equal(t, utils.Ptr(oauth2.Seconds(100)), resp.ExpiresIn)
	})

	t.Run("absent expires_in stays nil", func(t *testing.T) {
		var resp oauth2.AccessTokenResponse
		require.NoError(t, json.Unmarshal([]byte(`{"access_token":"a","token_type":"bearer"}`), &resp))
		require.Nil(t, resp.ExpiresIn)
		require.Equal(t, oauth2.OneHour, resp.ExpiresInOrDefault(oauth2.OneHour))
	})

	t.Run("encode", func(t *testing.T) {
		scope, err := oauth2.NewScope("read")
		require.NoError(t, err)

		resp := oauth2.NewAccessTokenResponse("a", oauth2.BearerTokenType)
		resp.ExpiresIn = utils.Ptr(oauth2.Minutes(15))
		resp.Scope = scope

		data, err := json.Marshal(resp)
		require.NoError(t, err)
		require.JSONEq(t, `{"access_token":"a","token_type":"bearer","expires_in":900,"scope":"read"}`, string(data))
	})

	t.Run("required fields", func(t *testing.T) {
		var resp oauth2.AccessTokenResponse
		err := json.Unmarshal([]byte(`{"token_type":"bearer"}`), &resp)
		var fieldErr *oauth2.FieldError
		require.True(t, errors.As(err, &fieldErr))
		require.Equal(t, "access_token", fieldErr.Field)

		err = json.Unmarshal([]byte(`{"access_token":"a"}`), &resp)
		require.True(t, errors.As(err, &fieldErr))
		require.Equal(t, "token_type", fieldErr.Field)
	})
}

func TestAccessTokenResponseToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	scope, err := oauth2.NewScope("openid", "profile")
	require.NoError(t, err)

	resp := oauth2.AccessTokenResponse{
		AccessToken:  "a",
		TokenType:    oauth2.BearerTokenType,
		ExpiresIn:    utils.Ptr(oauth2.OneHour),
		RefreshToken: "r",
		Scope:        scope,
		IDToken:      "eyJ",
	}

	tok := resp.Token(now)
	require.Equal(t, "a", tok.AccessToken)
	require.Equal(t, "Bearer", tok.Type())
	require.Equal(t, "r", tok.RefreshToken)
	require.Equal(t, now.Add(time.Hour), tok.Expiry)
	require.Equal(t, int64(3600), tok.ExpiresIn)
	require.Equal(t, "openid profile", tok.Extra("scope"))
	require.Equal(t, "eyJ", tok.Extra("id_token"))

	back, err := oauth2.AccessTokenResponseFromToken(tok, now)
	require.NoError(t, err)
	require.Equal(t, resp, back)

	t.Run("relative expiry", func(t *testing.T) {
		back, err := oauth2.AccessTokenResponseFromToken(&xoauth2.Token{AccessToken: "a", ExpiresIn: 60}, now)
		require.NoError(t, err)
		require.Equal(t, oauth2.BearerTokenType, back.TokenType)
		require.Equal(t, utils.Ptr(oauth2.Minutes(1)), back.ExpiresIn)
	})

	t.Run("unknown token type", func(t *testing.T) {
		_, err := oauth2.AccessTokenResponseFromToken(&xoauth2.Token{AccessToken: "a", TokenType: "DPoP"}, now)
		require.ErrorIs(t, err, oauth2.ErrUnknownTokenType)
	})

	t.Run("nil token", func(t *testing.T) {
		back, err := oauth2.AccessTokenResponseFromToken(nil, now)
		require.ErrorIs(t, err, oauth2.ErrNilToken)
		require.Equal(t, oauth2.AccessTokenResponse{}, back)
	})

	t.Run("missing access token", func(t *testing.T) {
		_, err := oauth2.AccessTokenResponseFromToken(&xoauth2.Token{}, now)
		var fieldErr *oauth2.FieldError
		require.True(t, errors.As(err, &fieldErr))
	})
}
