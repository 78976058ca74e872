package contracts

import (
	"log/slog"
	"strings"

	"basegov/lib/textutil"

	"github.com/antzucaro/matchr"
)

// districtFilter decides whether a record's execution locations fall inside
// the configured target districts. runs on normalized records only, raw
// location shapes must be flattened first.
type districtFilter struct {
	// display name per normalized name, used to report which district
	// matched
	names      map[string]string
	normalized []string
	strategy   string
	mode       string
}

func newDistrictFilter(cfg *Config) *districtFilter {
	f := &districtFilter{
		names:    map[string]string{},
		strategy: cfg.MatchStrategy,
		mode:     cfg.MatchMode,
	}
	for _, name := range cfg.districtNames() {
		normalized := textutil.NormalizeName(name)
		f.names[normalized] = name
		f.normalized = append(f.normalized, normalized)
	}
	return f
}

// matchLocation matches one location string ("Portugal, Lisboa, Lisboa")
// against the target districts, checking each comma-separated part.
func (f *districtFilter) matchLocation(location string) (string, bool) {
	for _, part := range strings.Split(location, ",") {
		var district string
		var ok bool
		if f.strategy == MatchSubstring {
			district, ok = textutil.FindSubstring(part, f.normalized)
		} else {
			district, ok = textutil.FindExact(part, f.normalized)
		}
		if ok {
			return f.names[district], true
		}
	}
	return "", false
}

// Accept returns the matched district display name and whether the record
// passes the filter. mode "any" accepts on the first matching location,
// mode "all" requires every location to match.
func (f *districtFilter) Accept(locations []string) (string, bool) {
	if len(locations) == 0 {
		return "", false
	}

	matched := ""
	for _, location := range locations {
		district, ok := f.matchLocation(location)
		if ok && matched == "" {
			matched = district
		}
		if ok && f.mode == MatchAny {
			return matched, true
		}
		if !ok && f.mode == MatchAll {
			f.logNearMiss(location)
			return "", false
		}
	}
	if matched == "" {
		for _, location := range locations {
			f.logNearMiss(location)
		}
		return "", false
	}
	return matched, true
}

const nearMissThreshold = 0.85

// a rejected location that is almost a target district usually means a
// spelling variant upstream, surface it at debug level
func (f *districtFilter) logNearMiss(location string) {
	best := 0.0
	bestDistrict := ""
	for _, part := range strings.Split(location, ",") {
		part = textutil.NormalizeName(part)
		for _, district := range f.normalized {
			similarity := matchr.JaroWinkler(part, district, false)
			if similarity > best {
				best = similarity
				bestDistrict = f.names[district]
			}
		}
	}
	if best >= nearMissThreshold && best < 1 {
		slog.Debug("rejected location nearly matches a target district",
			"location", location,
			"district", bestDistrict,
			"similarity", best)
	}
}
