package collection

import "slices"

// Direction is the sort direction. Values match the "dir" query parameter.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort indicator glyphs shown next to column headers.
const (
	IndicatorNone       = "↕"
	IndicatorAscending  = "↑"
	IndicatorDescending = "↓"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortState is the active column and direction of a view.
// The zero value means insertion order.
type SortState struct {
	Column string
	Dir    Direction
}

// Active reports whether a column is selected.
func (s SortState) Active() bool {
	return s.Column != ""
}

// Toggle returns the state after activating column's header.
// PRE: column is non-empty
// POST: same column flips direction; a new column starts ascending
// INVARIANT: s is not mutated
func (s SortState) Toggle(column string) SortState {
	if s.Active() && s.Column == column {
		return SortState{Column: column, Dir: s.direction().Flip()}
	}
	return SortState{Column: column, Dir: Ascending}
}

// Indicator returns the header glyph for column.
func (s SortState) Indicator(column string) string {
	if !s.Active() || s.Column != column {
		return IndicatorNone
	}
	if s.direction() == Descending {
		return IndicatorDescending
	}
	return IndicatorAscending
}

func (s SortState) direction() Direction {
	if s.Dir == Descending {
		return Descending
	}
	return Ascending
}

// Sorted returns a newly ordered copy of records.
// Equal keys keep their relative order from records.
// PRE: none
// POST: records is not mutated; an inactive state or unknown column yields insertion order
func Sorted(records []Record, schema Schema, state SortState) []Record {
	out := slices.Clone(records)
	if !state.Active() {
		return out
	}
	col, ok := schema.Column(state.Column)
	if !ok {
		return out
	}
	desc := state.direction() == Descending
	slices.SortStableFunc(out, func(a, b Record) int {
		c := Compare(col.Compare, col.Ranks, a[col.Name], b[col.Name])
		if desc {
			return -c
		}
		return c
	})
	return out
}
