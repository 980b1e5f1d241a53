package meta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMethodSet(t *testing.T) {
	set := NewMethodSet(MethodGet, MethodGetMetadata)
	require.True(t, set.Has(MethodGet))
	require.True(t, set.Has(MethodGetMetadata))
	require.Equal(t, "get,getMetadata", set.String())

	set = set.Without(MethodGet)
	require.False(t, set.Has(MethodGet))
	require.True(t, set.Has(MethodGetMetadata))
	require.Equal(t, "getMetadata", set.String())

	require.False(t, NewMethodSet().Has(MethodGetMetadata))
}

func TestMethodString(t *testing.T) {
	require.Equal(t, "get", MethodGet.String())
	require.Equal(t, "getMetadata", MethodGetMetadata.String())
	require.Equal(t, "unknown", Method(0).String())
}
