package contracts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testFilter(t *testing.T, mode, strategy string) *districtFilter {
	cfg := &Config{
		Keywords: []string{"iot"},
		Districts: map[string]int{
			"Lisboa": 11,
			"Porto":  13,
		},
		MatchMode:     mode,
		MatchStrategy: strategy,
	}
	require.NoError(t, cfg.Validate())
	return newDistrictFilter(cfg)
}

func TestFilterAcceptAny(t *testing.T) {
	filter := testFilter(t, MatchAny, MatchExact)

	cases := []struct {
		name      string
		locations []string
		district  string
		accepted  bool
	}{
		{
			name:      "single match",
			locations: []string{"Portugal, Lisboa, Lisboa"},
			district:  "Lisboa",
			accepted:  true,
		},
		{
			name:      "case insensitive",
			locations: []string{"portugal, LISBOA"},
			district:  "Lisboa",
			accepted:  true,
		},
		{
			name:      "one of several lots matches",
			locations: []string{"Portugal, Faro", "Portugal, Porto"},
			district:  "Porto",
			accepted:  true,
		},
		{
			name:      "no lot matches",
			locations: []string{"Portugal, Faro", "Portugal, Beja"},
			accepted:  false,
		},
		{
			name:     "no locations at all",
			accepted: false,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			district, ok := filter.Accept(test.locations)
			require.Equal(t, test.accepted, ok)
			require.Equal(t, test.district, district)
		})
	}
}

func TestFilterAcceptAll(t *testing.T) {
	filter := testFilter(t, MatchAll, MatchExact)

	district, ok := filter.Accept([]string{"Portugal, Lisboa", "Portugal, Porto"})
	require.True(t, ok)
	require.Equal(t, "Lisboa", district)

	_, ok = filter.Accept([]string{"Portugal, Lisboa", "Portugal, Faro"})
	require.False(t, ok)
}

func TestFilterSubstringStrategy(t *testing.T) {
	exact := testFilter(t, MatchAny, MatchExact)
	substring := testFilter(t, MatchAny, MatchSubstring)

	// the portal sometimes qualifies the district inside one part
	locations := []string{"Portugal, Distrito de Lisboa"}

	_, ok := exact.Accept(locations)
	require.False(t, ok)

	district, ok := substring.Accept(locations)
	require.True(t, ok)
	require.Equal(t, "Lisboa", district)
}

func TestFilterNearMissDoesNotAccept(t *testing.T) {
	filter := testFilter(t, MatchAny, MatchExact)

	// "Lisbon" is close to "Lisboa" but must still be rejected
	_, ok := filter.Accept([]string{"Portugal, Lisbon"})
	require.False(t, ok)
}
