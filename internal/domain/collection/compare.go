package collection

import (
	"cmp"
	"strings"
)

// Comparison selects how a column's values are ordered.
type Comparison int

const (
	// CompareText orders case-insensitively; missing values are "".
	CompareText Comparison = iota
	// CompareNumeric coerces to numbers; missing or invalid values are 0.
	CompareNumeric
	// CompareDate coerces to timestamps; missing values are the epoch.
	CompareDate
	// CompareRank maps enumerated values through a rank table by exact match; unknown values are 0.
	CompareRank
)

// String returns the comparison name.
func (c Comparison) String() string {
	switch c {
	case CompareNumeric:
		return "numeric"
	case CompareDate:
		return "date"
	case CompareRank:
		return "rank"
	default:
		return "text"
	}
}

// Compare orders two raw field values under the given comparison.
// ranks is only consulted for CompareRank.
// PRE: none
// POST: returns -1, 0 or +1
func Compare(kind Comparison, ranks map[string]int, a, b any) int {
	switch kind {
	case CompareNumeric:
		return cmp.Compare(toNumber(a), toNumber(b))
	case CompareDate:
		return toTime(a).Compare(toTime(b))
	case CompareRank:
		return cmp.Compare(rankOf(ranks, a), rankOf(ranks, b))
	default:
		return strings.Compare(strings.ToLower(Display(a)), strings.ToLower(Display(b)))
	}
}

func rankOf(ranks map[string]int, v any) int {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	return ranks[s]
}
