package contracts

import (
	"encoding/json"
	"testing"

	"basegov/lib/scrapers/basegov"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in       string
		expected string
		ok       bool
	}{
		{"05-06-2023", "05/06/2023", true},
		{"2023-06-05", "05/06/2023", true},
		{"05/06/2023", "05/06/2023", true},
		{"2023-06-05T14:30:00", "05/06/2023", true},
		{"", "", true},
		{"sometime in june", "sometime in june", false},
	}

	for _, test := range cases {
		value, ok := normalizeDate(test.in)
		require.Equal(t, test.expected, value, "input %q", test.in)
		require.Equal(t, test.ok, ok, "input %q", test.in)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"1.250.000,00 €", 1250000, true},
		{"1.250.000,00€", 1250000, true},
		{"950,50", 950.5, true},
		{"2.500 €", 2500, true},
		{"1.250.000", 1250000, true},
		{"1520000.5", 1520000.5, true},
		{"1520000", 1520000, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, test := range cases {
		value, ok := parsePrice(test.in)
		require.Equal(t, test.ok, ok, "input %q", test.in)
		if test.ok {
			require.InDelta(t, test.expected, value, 0.001, "input %q", test.in)
		}
	}
}

func TestNewRecordDefaultsMissingFields(t *testing.T) {
	var detail basegov.ContractDetail
	err := json.Unmarshal([]byte(`{"id": 7}`), &detail)
	require.NoError(t, err)

	record := newRecord(detail, "iot", "https://example.com/7")

	require.Equal(t, int64(7), record.ID)
	require.Equal(t, "iot", record.Keyword)
	require.Empty(t, record.Description)
	require.Empty(t, record.ContractingEntity)
	require.Empty(t, record.SigningDate)
	require.False(t, record.PriceValid)
}

func TestNewRecordJoinsEntities(t *testing.T) {
	detail := basegov.ContractDetail{
		ID: 8,
		Contracted: []basegov.Entity{
			{Description: "Empresa A"},
			{Description: "Empresa B"},
		},
	}
	record := newRecord(detail, "iot", "")
	require.Equal(t, "Empresa A; Empresa B", record.ContractedEntity)
}

// a location arriving as a singleton list and as the equivalent scalar
// must normalize to the same filter outcome
func TestNormalizationEquivalence(t *testing.T) {
	cfg := &Config{
		Keywords:  []string{"iot"},
		Districts: map[string]int{"Lisboa": 11},
	}
	require.NoError(t, cfg.Validate())
	filter := newDistrictFilter(cfg)

	var scalar, list basegov.ContractDetail
	require.NoError(t, json.Unmarshal(
		[]byte(`{"executionPlace": "Portugal, Lisboa"}`), &scalar))
	require.NoError(t, json.Unmarshal(
		[]byte(`{"executionPlace": ["Portugal, Lisboa"]}`), &list))

	scalarDistrict, scalarOk := filter.Accept(scalar.ExecutionLocations())
	listDistrict, listOk := filter.Accept(list.ExecutionLocations())

	require.Equal(t, scalarOk, listOk)
	require.Equal(t, scalarDistrict, listDistrict)
	require.True(t, scalarOk)
}
