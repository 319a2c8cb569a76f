package collection_test

import (
	"testing"

	"octofit/internal/domain/collection"
)

// TestSortState_Toggle tests the header activation rule.
func TestSortState_Toggle(t *testing.T) {
	tests := []struct {
		name   string
		state  collection.SortState
		column string
		want   collection.SortState
	}{
		{
			name:   "first activation is ascending",
			state:  collection.SortState{},
			column: "name",
			want:   collection.SortState{Column: "name", Dir: collection.Ascending},
		},
		{
			name:   "same column flips to descending",
			state:  collection.SortState{Column: "name", Dir: collection.Ascending},
			column: "name",
			want:   collection.SortState{Column: "name", Dir: collection.Descending},
		},
		{
			name:   "same column flips back to ascending",
			state:  collection.SortState{Column: "name", Dir: collection.Descending},
			column: "name",
			want:   collection.SortState{Column: "name", Dir: collection.Ascending},
		},
		{
			name:   "new column resets to ascending",
			state:  collection.SortState{Column: "name", Dir: collection.Descending},
			column: "email",
			want:   collection.SortState{Column: "email", Dir: collection.Ascending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Toggle(tt.column); got != tt.want {
				t.Errorf("Toggle(%q) = %+v, want %+v", tt.column, got, tt.want)
			}
		})
	}
}

// TestSortState_ToggleTwiceRestores verifies two activations of one column restore the direction.
func TestSortState_ToggleTwiceRestores(t *testing.T) {
	start := collection.SortState{Column: "rank", Dir: collection.Ascending}
	if got := start.Toggle("rank").Toggle("rank"); got != start {
		t.Errorf("double toggle = %+v, want %+v", got, start)
	}
}

// TestSortState_Indicator tests header glyphs.
func TestSortState_Indicator(t *testing.T) {
	s := collection.SortState{Column: "name", Dir: collection.Ascending}
	if got := s.Indicator("name"); got != collection.IndicatorAscending {
		t.Errorf("active asc indicator = %q", got)
	}
	if got := s.Indicator("email"); got != collection.IndicatorNone {
		t.Errorf("inactive indicator = %q", got)
	}
	s.Dir = collection.Descending
	if got := s.Indicator("name"); got != collection.IndicatorDescending {
		t.Errorf("active desc indicator = %q", got)
	}
	if got := (collection.SortState{}).Indicator("name"); got != collection.IndicatorNone {
		t.Errorf("unsorted indicator = %q", got)
	}
}

func testSchema() collection.Schema {
	return collection.Schema{
		Entity:   "things",
		Endpoint: "/api/things/",
		Columns: []collection.Column{
			{Name: "id"},
			{Name: "name"},
			{Name: "score", Compare: collection.CompareNumeric},
			{Name: "when", Compare: collection.CompareDate},
			{Name: "level", Compare: collection.CompareRank, Ranks: map[string]int{"low": 1, "mid": 2, "high": 3}},
		},
	}
}

func ids(records []collection.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Text("id")
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestSorted tests ordering per comparison kind.
func TestSorted(t *testing.T) {
	records := []collection.Record{
		{"id": "a", "name": "bob", "score": "10", "when": "2024-03-01T00:00:00Z", "level": "high"},
		{"id": "b", "name": "Alice", "score": 2.5, "when": "2023-01-01", "level": "low"},
		{"id": "c", "name": "carol", "level": "mid"},
		{"id": "d", "name": "alice", "score": "oops", "when": "not a date", "level": "extreme"},
	}

	tests := []struct {
		name  string
		state collection.SortState
		want  []string
	}{
		{name: "unsorted keeps insertion order", state: collection.SortState{}, want: []string{"a", "b", "c", "d"}},
		{name: "unknown column keeps insertion order", state: collection.SortState{Column: "nope", Dir: collection.Ascending}, want: []string{"a", "b", "c", "d"}},
		{name: "text ascending case-insensitive stable", state: collection.SortState{Column: "name", Dir: collection.Ascending}, want: []string{"b", "d", "a", "c"}},
		{name: "text descending", state: collection.SortState{Column: "name", Dir: collection.Descending}, want: []string{"c", "a", "b", "d"}},
		{name: "numeric missing and invalid are zero", state: collection.SortState{Column: "score", Dir: collection.Ascending}, want: []string{"c", "d", "b", "a"}},
		{name: "numeric descending", state: collection.SortState{Column: "score", Dir: collection.Descending}, want: []string{"a", "b", "c", "d"}},
		{name: "date missing and invalid are epoch", state: collection.SortState{Column: "when", Dir: collection.Ascending}, want: []string{"c", "d", "b", "a"}},
		{name: "rank unknown is zero", state: collection.SortState{Column: "level", Dir: collection.Ascending}, want: []string{"d", "b", "c", "a"}},
		{name: "rank descending", state: collection.SortState{Column: "level", Dir: collection.Descending}, want: []string{"a", "c", "b", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(collection.Sorted(records, testSchema(), tt.state))
			if !equalStrings(got, tt.want) {
				t.Errorf("Sorted() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSorted_DoesNotMutateInput verifies the input slice keeps its order.
func TestSorted_DoesNotMutateInput(t *testing.T) {
	records := []collection.Record{{"id": "2"}, {"id": "1"}}
	collection.Sorted(records, testSchema(), collection.SortState{Column: "id", Dir: collection.Ascending})
	if got := ids(records); !equalStrings(got, []string{"2", "1"}) {
		t.Errorf("input mutated: %v", got)
	}
}

// TestSorted_Permutation verifies sorting neither drops nor duplicates rows.
func TestSorted_Permutation(t *testing.T) {
	records := []collection.Record{{"id": "x", "score": 3}, {"id": "y", "score": 1}, {"id": "z", "score": 3}, {"id": "w"}}
	got := collection.Sorted(records, testSchema(), collection.SortState{Column: "score", Dir: collection.Descending})
	if len(got) != len(records) {
		t.Fatalf("len = %d, want %d", len(got), len(records))
	}
	seen := map[string]int{}
	for _, r := range got {
		seen[r.Text("id")]++
	}
	for _, r := range records {
		if seen[r.Text("id")] != 1 {
			t.Errorf("id %s appears %d times", r.Text("id"), seen[r.Text("id")])
		}
	}
	// Ties keep insertion order in both directions.
	if want := []string{"x", "z", "y", "w"}; !equalStrings(ids(got), want) {
		t.Errorf("Sorted() = %v, want %v", ids(got), want)
	}
}

// TestSorted_DistinctKeysReverse verifies descending is the reverse of ascending for distinct keys.
func TestSorted_DistinctKeysReverse(t *testing.T) {
	records := []collection.Record{{"id": "1", "score": 5}, {"id": "2", "score": 1}, {"id": "3", "score": 9}}
	asc := ids(collection.Sorted(records, testSchema(), collection.SortState{Column: "score", Dir: collection.Ascending}))
	desc := ids(collection.Sorted(records, testSchema(), collection.SortState{Column: "score", Dir: collection.Descending}))
	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("asc %v is not the reverse of desc %v", asc, desc)
		}
	}
}
