package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases, trims and collapses inner whitespace so that
// names coming from different upstream fields compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

// FindExact returns the matcher the normalized name equals, if any.
// matchers are expected to be normalized already.
func FindExact(name string, matchers []string) (string, bool) {
	name = NormalizeName(name)
	for _, m := range matchers {
		if name == m {
			return m, true
		}
	}
	return "", false
}

// FindSubstring returns the matcher the normalized name contains, if any.
func FindSubstring(name string, matchers []string) (string, bool) {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return m, true
		}
	}
	return "", false
}

func MatchExact(name string, matchers []string) bool {
	_, ok := FindExact(name, matchers)
	return ok
}

func MatchSubstring(name string, matchers []string) bool {
	_, ok := FindSubstring(name, matchers)
	return ok
}
