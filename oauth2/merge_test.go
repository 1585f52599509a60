package oauth2_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-oauth2-models/oauth2"
)

func TestMergeJSON(t *testing.T) {
	t.Run("later values win", func(t *testing.T) {
		resp := oauth2.NewAccessTokenResponse("a", oauth2.BearerTokenType)
		data, err := oauth2.MergeJSON(resp, map[string]any{"token_type": "mac", "custom": true})
		require.NoError(t, err)
		require.JSONEq(t, `{"access_token":"a","token_type":"mac","custom":true}`, string(data))
	})

	t.Run("structs and maps combine", func(t *testing.T) {
		type tenant struct {
			Tenant string `json:"tenant"`
		}
		data, err := oauth2.MergeJSON(
			oauth2.NewClientCredentialsAccessTokenRequest(oauth2.EmptyScope()),
			tenant{Tenant: "acme"},
		)
		require.NoError(t, err)
		require.JSONEq(t, `{"grant_type":"client_credentials","tenant":"acme"}`, string(data))
	})

	t.Run("non objects are rejected", func(t *testing.T) {
		_, err := oauth2.MergeJSON(map[string]any{"a": 1}, []int{1})
		require.Error(t, err)

		_, err = oauth2.MergeJSON(nil)
		require.Error(t, err)
	})

	t.Run("no values is an empty object", func(t *testing.T) {
		data, err := oauth2.MergeJSON()
		require.NoError(t, err)
		require.Equal(t, `{}`, string(data))
	})

	t.Run("merge objects", func(t *testing.T) {
		merged := oauth2.MergeObjects(
			map[string]json.RawMessage{"a": json.RawMessage(`1`), "b": json.RawMessage(`2`)},
			map[string]json.RawMessage{"b": json.RawMessage(`3`)},
		)
		require.Equal(t, map[string]json.RawMessage{"a": json.RawMessage(`1`), "b": json.RawMessage(`3`)}, merged)
	})
}
