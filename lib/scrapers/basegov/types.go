package basegov

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"basegov/lib/htmlutil"
)

// FlexString absorbs the portal's inconsistent field shapes: the same field
// may arrive as a string, a number, a single-element list or a longer list
// depending on the contract. Scalars pass through, singleton lists unwrap,
// longer lists are joined with "; ".
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	err := dec.Decode(&raw)
	if err != nil {
		return err
	}

	*s = FlexString(flatten(raw))
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

func flatten(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			flat := flatten(item)
			if flat != "" {
				parts = append(parts, flat)
			}
		}
		return strings.Join(parts, "; ")
	default:
		encoded, _ := json.Marshal(v)
		return string(encoded)
	}
}

// Entity is one contracting/contracted party row.
type Entity struct {
	ID          FlexString `json:"id"`
	Description string     `json:"description"`
	Nif         FlexString `json:"nif"`
}

type SearchItem struct {
	ID              int64      `json:"id"`
	Description     FlexString `json:"description"`
	PublicationDate FlexString `json:"publicationDate"`
}

type SearchResponse struct {
	Total int          `json:"total"`
	Items []SearchItem `json:"items"`
}

// ContractDetail is the raw detail endpoint response for one contract id.
type ContractDetail struct {
	ID                      int64      `json:"id"`
	Description             FlexString `json:"description"`
	ExecutionPlace          FlexString `json:"executionPlace"`
	Contracting             []Entity   `json:"contracting"`
	Contracted              []Entity   `json:"contracted"`
	SigningDate             FlexString `json:"signingDate"`
	PublicationDate         FlexString `json:"publicationDate"`
	InitialContractualPrice FlexString `json:"initialContractualPrice"`
	CpvDesignation          FlexString `json:"cpvDesignation"`
	ContractingProcedure    FlexString `json:"contractingProcedureType"`
}

// multi-lot contracts separate per-lot locations with <BR/> tags
var lotSeparator = regexp.MustCompile(`(?i)<br\s*/?>|\s*\|\s*`)

// ExecutionLocations splits the executionPlace field into one location
// string per contract lot, e.g. "Portugal, Lisboa, Lisboa". Already-joined
// list shapes (see FlexString) split on the join delimiter as well.
func (d ContractDetail) ExecutionLocations() []string {
	var locations []string
	for _, lot := range lotSeparator.Split(d.ExecutionPlace.String(), -1) {
		for _, part := range strings.Split(lot, ";") {
			part = htmlutil.StripMarkup(part)
			if part != "" {
				locations = append(locations, part)
			}
		}
	}
	return locations
}
