package match

import (
	"fmt"
	"strings"
)

// SearchStyle selects how strictly a query should match. Its semantics
// belong to the matching service; gnmatch carries it as an opaque value.
type SearchStyle string

const (
	Strict   SearchStyle = "STRICT"
	Fuzzy    SearchStyle = "FUZZY"
	MatchAll SearchStyle = "MATCH_ALL"
)

// ParseSearchStyle converts a string to a SearchStyle. Empty string gives
// empty style (service default). The error is a plain one, the CLI wraps
// it into a gn.Error with errcode.SearchStyleError.
func ParseSearchStyle(s string) (SearchStyle, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch SearchStyle(s) {
	case "", Strict, Fuzzy, MatchAll:
		return SearchStyle(s), nil
	}
	return "", fmt.Errorf("unknown search style '%s'", s)
}

func (s SearchStyle) String() string {
	return string(s)
}
