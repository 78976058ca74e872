package contracts

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"basegov/lib/htmlutil"
	"basegov/lib/scrapers/basegov"
)

// Record is one normalized, filtered contract as it appears in the report.
type Record struct {
	ID       int64
	District string
	// the full execution location string as published
	Location string
	// the keyword that first discovered this contract
	Keyword           string
	Description       string
	ContractingEntity string
	ContractedEntity  string
	Price             float64
	PriceValid        bool
	SigningDate       string
	PublicationDate   string
	Link              string
}

// ordered date-format table, first format that parses wins. day-first
// shapes come before ISO ones since the portal is day-first when ambiguous.
var dateFormats = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"2006-01-02T15:04:05",
	"02-01-2006 15:04",
}

const canonicalDateFormat = "02/01/2006"

// normalizeDate returns the canonical dd/mm/yyyy rendering of a raw date
// field. fields matching no known format are passed through as raw text
// so the row survives, with ok=false to let the caller flag it.
func normalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	for _, format := range dateFormats {
		parsed, err := time.Parse(format, raw)
		if err == nil {
			return parsed.Format(canonicalDateFormat), true
		}
	}
	return raw, false
}

var thousandsDots = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// parsePrice handles the portal's "1.234.567,89 €" money strings as well as
// plain numeric shapes.
func parsePrice(raw string) (float64, bool) {
	raw = strings.ReplaceAll(raw, "€", "")
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return 0, false
	}
	if strings.Contains(raw, ",") {
		// portuguese notation: '.' is the thousands separator
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	} else if thousandsDots.MatchString(raw) {
		// "2.500" without a decimal comma is still portuguese thousands
		// grouping, not a decimal point
		raw = strings.ReplaceAll(raw, ".", "")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// joins every entity description, the portal splits a single award across
// several rows for consortiums
func joinEntities(entities []basegov.Entity) string {
	var names []string
	for _, e := range entities {
		name := htmlutil.StripMarkup(e.Description)
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, "; ")
}

// newRecord applies the normalization rules to a raw detail response.
// missing fields default to empty values, a malformed field never drops
// the record.
func newRecord(detail basegov.ContractDetail, keyword, link string) Record {
	signing, ok := normalizeDate(detail.SigningDate.String())
	if !ok {
		slog.Warn("unparseable signing date left as raw text",
			"contract", detail.ID, "value", signing)
	}
	publication, ok := normalizeDate(detail.PublicationDate.String())
	if !ok {
		slog.Warn("unparseable publication date left as raw text",
			"contract", detail.ID, "value", publication)
	}

	price, priceValid := parsePrice(detail.InitialContractualPrice.String())

	return Record{
		ID:                detail.ID,
		Location:          strings.Join(detail.ExecutionLocations(), "; "),
		Keyword:           keyword,
		Description:       htmlutil.StripMarkup(detail.Description.String()),
		ContractingEntity: joinEntities(detail.Contracting),
		ContractedEntity:  joinEntities(detail.Contracted),
		Price:             price,
		PriceValid:        priceValid,
		SigningDate:       signing,
		PublicationDate:   publication,
		Link:              link,
	}
}
