package oauth2_test

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-oauth2-models/oauth2"
)

func TestAuthRequestJSON(t *testing.T) {
	t.Run("decode", func(t *testing.T) {
		var req oauth2.AuthRequest
		err := json.Unmarshal([]byte(`{
			"response_type": "code",
			"client_id": "s6BhdRkqt3",
			"redirect_uri": "https://client.example.com/cb",
			"scope": "openid profile",
			"state": "xyz"
		}`), &req)
		require.NoError(t, err)
		require.Equal(t, oauth2.CodeResponseType, req.ResponseType)
		require.Equal(t, "s6BhdRkqt3", req.ClientID)
		require.True(t, req.Scope.RequestsOpenID())
		require.Equal(t, "xyz", req.State)
	})

	t.Run("encode omits absent fields", func(t *testing.T) {
		data, err := json.Marshal(oauth2.NewAuthRequest(oauth2.TokenResponseType, "client"))
		require.NoError(t, err)
		require.JSONEq(t, `{"response_type":"token","client_id":"client"}`, string(data))
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
			field string
		}{
			{"unknown response type", `{"response_type":"id_token","client_id":"c"}`, "response_type"},
			{"missing client id", `{"response_type":"code"}`, "client_id"},
			{"redirect with fragment", `{"response_type":"code","client_id":"c","redirect_uri":"https://c.example.com/cb#frag"}`, "redirect_uri"},
			{"relative redirect", `{"response_type":"code","client_id":"c","redirect_uri":"/cb"}`, "redirect_uri"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var req oauth2.AuthRequest
				err := json.Unmarshal([]byte(tt.input), &req)
				var fieldErr *oauth2.FieldError
				require.True(t, errors.As(err, &fieldErr), "got %v", err)
				require.Equal(t, tt.field, fieldErr.Field)
			})
		}
	})
}

func TestParseAuthRequest(t *testing.T) {
	values, err := url.ParseQuery("response_type=code&client_id=s6BhdRkqt3&state=xyz&redirect_uri=https%3A%2F%2Fclient%2Eexample%2Ecom%2Fcb&scope=read+write")
	require.NoError(t, err)

	req, err := oauth2.ParseAuthRequest(values)
	require.NoError(t, err)
	require.Equal(t, "https://client.example.com/cb", req.RedirectURI)
	require.True(t, req.Scope.EqualItems([]string{"read", "write"}))

	encoded, err := oauth2.EncodeForm(req)
	require.NoError(t, err)
	require.Equal(t, values, encoded)
}

func TestAuthRequestResponses(t *testing.T) {
	req := oauth2.NewAuthRequest(oauth2.CodeResponseType, "client")
	req.State = "af0ifjsldkj"

	resp := req.Response("SplxlOBeZQQYbYS6WxSbIA")
	require.Equal(t, oauth2.AuthCodeAuthResponse{Code: "SplxlOBeZQQYbYS6WxSbIA", State: "af0ifjsldkj"}, resp)

	errResp, err := req.ErrorResponse(oauth2.AccessDeniedError, "The user said no", "")
	require.NoError(t, err)
	require.Equal(t, oauth2.ErrorResponse{
		Code:        oauth2.AccessDeniedError,
		Description: "The user said no",
		State:       "af0ifjsldkj",
	}, errResp)

	_, err = req.ErrorResponse(oauth2.AccessDeniedError, "nö", "")
	var invalid *oauth2.InvalidCharactersError
	require.True(t, errors.As(err, &invalid))
}

func TestAuthCodeURL(t *testing.T) {
	scope, err := oauth2.NewScope("openid", "email")
	require.NoError(t, err)

	req := oauth2.AuthRequest{
		ResponseType: oauth2.CodeResponseType,
		ClientID:     "s6BhdRkqt3",
		RedirectURI:  "https://client.example.com/cb",
		Scope:        scope,
		State:        "xyz",
	}
	raw, err := req.AuthCodeURL("https://server.example.com/authorize")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "server.example.com", u.Host)
	require.Equal(t, "/authorize", u.Path)

	parsed, err := oauth2.ParseAuthRequest(u.Query())
	require.NoError(t, err)
	require.Equal(t, req, parsed)

	t.Run("implicit flow is not supported", func(t *testing.T) {
		req.ResponseType = oauth2.TokenResponseType
		_, err := req.AuthCodeURL("https://server.example.com/authorize")
		require.ErrorIs(t, err, oauth2.ErrUnsupportedResponseType)
	})
}

func TestAuthCodeAuthResponse(t *testing.T) {
	t.Run("parse callback", func(t *testing.T) {
		resp, err := oauth2.ParseAuthCodeAuthResponse(url.Values{"code": {"abc"}, "state": {"xyz"}})
		require.NoError(t, err)
		require.Equal(t, oauth2.AuthCodeAuthResponse{Code: "abc", State: "xyz"}, resp)
	})

	t.Run("code is required", func(t *testing.T) {
		var resp oauth2.AuthCodeAuthResponse
		err := json.Unmarshal([]byte(`{"state":"xyz"}`), &resp)
		var fieldErr *oauth2.FieldError
		require.True(t, errors.As(err, &fieldErr))
		require.Equal(t, "code", fieldErr.Field)
	})

	t.Run("redirect in query", func(t *testing.T) {
		raw, err := oauth2.RedirectURL("https://client.example.com/cb?tenant=a", oauth2.QueryResponseMode,
			oauth2.AuthCodeAuthResponse{Code: "abc", State: "x y"})
		require.NoError(t, err)
		require.Equal(t, "https://client.example.com/cb?code=abc&state=x+y&tenant=a", raw)
	})

	t.Run("redirect in fragment", func(t *testing.T) {
		resp := oauth2.NewAccessTokenResponse("2YotnFZFEjr1zCsicMWpAA", oauth2.BearerTokenType)
		resp.ExpiresIn = &oauth2.OneHour
		raw, err := oauth2.RedirectURL("https://client.example.com/cb", oauth2.FragmentResponseMode, resp)
		require.NoError(t, err)
		require.Equal(t, "https://client.example.com/cb#access_token=2YotnFZFEjr1zCsicMWpAA&expires_in=3600&token_type=bearer", raw)
	})

	t.Run("redirect rejects fragments and unknown modes", func(t *testing.T) {
		_, err := oauth2.RedirectURL("https://client.example.com/cb#x", oauth2.QueryResponseMode, oauth2.AuthCodeAuthResponse{Code: "abc"})
		require.Error(t, err)

		_, err = oauth2.RedirectURL("https://client.example.com/cb", "form_post", oauth2.AuthCodeAuthResponse{Code: "abc"})
		require.ErrorIs(t, err, oauth2.ErrUnsupportedResponseMode)
	})
}

func TestNewState(t *testing.T) {
	a, b := oauth2.NewState(), oauth2.NewState()
	require.NotEqual(t, a, b)
	require.Len(t, a, 36)
	require.NoError(t, oauth2.URLCharacters.Validate(a))
}
