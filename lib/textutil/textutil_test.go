package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"  Castelo   Branco\n", "castelo branco"},
		{"LISBOA", "lisboa"},
		{"\tViseu ", "viseu"},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, NormalizeName(test.in))
	}
}

func TestMatch(t *testing.T) {
	matchers := []string{"lisboa", "castelo branco"}

	require.True(t, MatchExact("Lisboa", matchers))
	require.False(t, MatchExact("Lisboa e Vale do Tejo", matchers))

	require.True(t, MatchSubstring("Lisboa e Vale do Tejo", matchers))
	require.True(t, MatchSubstring("Castelo  Branco", matchers))
	require.False(t, MatchSubstring("Porto", matchers))
}

func TestFind(t *testing.T) {
	matchers := []string{"lisboa", "castelo branco"}

	district, ok := FindExact("LISBOA", matchers)
	require.True(t, ok)
	require.Equal(t, "lisboa", district)

	_, ok = FindExact("Faro", matchers)
	require.False(t, ok)

	district, ok = FindSubstring("Distrito de Castelo  Branco", matchers)
	require.True(t, ok)
	require.Equal(t, "castelo branco", district)

	_, ok = FindSubstring("", matchers)
	require.False(t, ok)
}
