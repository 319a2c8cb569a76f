package leaderboard_test

import (
	"testing"

	"octofit/internal/domain/collection"
	"octofit/internal/domain/leaderboard"
)

// TestSchema_DefaultSort verifies the leaderboard opens sorted by rank ascending.
func TestSchema_DefaultSort(t *testing.T) {
	s := leaderboard.Schema()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := collection.SortState{Column: leaderboard.FieldRank, Dir: collection.Ascending}
	if s.DefaultSort != want {
		t.Errorf("DefaultSort = %+v, want %+v", s.DefaultSort, want)
	}

	v := collection.NewView(s)
	v.Resolve([]collection.Record{
		{"rank": 3, "user": "c"},
		{"rank": 1, "user": "a"},
		{"rank": 2, "user": "b"},
	})
	snap := v.Snapshot()
	for i, want := range []string{"a", "b", "c"} {
		if got := snap.Rows[i].Text("user"); got != want {
			t.Errorf("row %d user = %s, want %s", i, got, want)
		}
	}
	// Activating rank once flips the default to descending.
	if err := v.Toggle(leaderboard.FieldRank); err != nil {
		t.Fatal(err)
	}
	if got := v.Snapshot().Sort.Dir; got != collection.Descending {
		t.Errorf("dir after toggle = %s, want desc", got)
	}
}

// TestSchema_Podium tests rank badges and row highlighting.
func TestSchema_Podium(t *testing.T) {
	s := leaderboard.Schema()
	col, _ := s.Column(leaderboard.FieldRank)
	tests := []struct {
		rank     int
		wantTone collection.Tone
		wantRow  collection.Tone
		wantIcon string
	}{
		{1, collection.ToneWarning, collection.ToneActive, collection.IconTrophy},
		{2, collection.ToneSecondary, collection.ToneActive, collection.IconTrophy},
		{3, collection.ToneDanger, collection.ToneActive, collection.IconTrophy},
		{4, collection.ToneLight, collection.ToneNone, collection.IconNone},
	}
	for _, tt := range tests {
		r := collection.Record{"rank": tt.rank}
		cell := col.Cell(r)
		if cell.Tone != tt.wantTone || cell.Icon != tt.wantIcon {
			t.Errorf("rank %d cell = %+v", tt.rank, cell)
		}
		if got := s.RowTone(r); got != tt.wantRow {
			t.Errorf("rank %d row tone = %q, want %q", tt.rank, got, tt.wantRow)
		}
	}
	if got := col.Cell(collection.Record{"rank": 7}).Text; got != "#7" {
		t.Errorf("rank text = %q, want #7", got)
	}
}
