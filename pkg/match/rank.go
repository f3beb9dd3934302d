package match

import "strings"

// rankIDs follow the numbering of the ALA name matching index, higher
// numbers are lower ranks.
var rankIDs = map[string]int{
	"kingdom":     1000,
	"subkingdom":  1100,
	"phylum":      2000,
	"division":    2000,
	"subphylum":   2100,
	"class":       3000,
	"subclass":    3100,
	"order":       4000,
	"suborder":    4100,
	"superfamily": 4500,
	"family":      5000,
	"subfamily":   5100,
	"tribe":       5500,
	"genus":       6000,
	"subgenus":    6100,
	"species":     7000,
	"subspecies":  8000,
	"variety":     8010,
	"form":        8020,
}

// RankID returns the numeric id of a rank name, or 0 for unknown ranks.
func RankID(rank string) int {
	return rankIDs[strings.ToLower(strings.TrimSpace(rank))]
}
