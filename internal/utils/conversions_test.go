package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-oauth2-models/internal/utils"
)

func TestToStringSlice(t *testing.T) {
	got, err := utils.ToStringSlice([]any{"a", "b", ""})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", ""}, got)

	_, err = utils.ToStringSlice([]any{"a", 1.0})
	require.Error(t, err)
	require.Contains(t, err.Error(), "element 1 is float64")
}

func TestPointerHelpers(t *testing.T) {
	require.Equal(t, 3, *utils.Ptr(3))
	require.Equal(t, 3, utils.ValueOr(utils.Ptr(3), 7))
	require.Equal(t, "fallback", utils.ValueOr(nil, "fallback"))
}
