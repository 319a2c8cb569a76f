package activity_test

import (
	"testing"

	"octofit/internal/domain/activity"
	"octofit/internal/domain/collection"
)

// TestSchema_Validate verifies the activity schema is well formed.
func TestSchema_Validate(t *testing.T) {
	if err := activity.Schema().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

// TestToneFor tests activity type badge tones.
func TestToneFor(t *testing.T) {
	tests := map[string]collection.Tone{
		"running":  collection.ToneDanger,
		"cycling":  collection.TonePrimary,
		"swimming": collection.ToneInfo,
		"walking":  collection.ToneSuccess,
		"yoga":     collection.ToneWarning,
		"strength": collection.ToneDark,
		"rowing":   collection.ToneSecondary,
	}
	for in, want := range tests {
		if got := activity.ToneFor(in); got != want {
			t.Errorf("ToneFor(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestSchema_Formatting tests distance and duration cells.
func TestSchema_Formatting(t *testing.T) {
	s := activity.Schema()
	dist, _ := s.Column(activity.FieldDistance)
	dur, _ := s.Column(activity.FieldDuration)

	if got := dist.Cell(collection.Record{"distance": 5.2}).Text; got != "5.2 km" {
		t.Errorf("distance = %q", got)
	}
	if got := dist.Cell(collection.Record{}).Text; got != collection.Placeholder {
		t.Errorf("missing distance = %q", got)
	}
	if got := dur.Cell(collection.Record{"duration": 45}).Text; got != "45 min" {
		t.Errorf("duration = %q", got)
	}
}

// TestSchema_SortByDistance verifies missing distances sort as zero.
func TestSchema_SortByDistance(t *testing.T) {
	records := []collection.Record{
		{"id": 1, "distance": 10},
		{"id": 2},
		{"id": 3, "distance": "2.5"},
	}
	got := collection.Sorted(records, activity.Schema(), collection.SortState{Column: activity.FieldDistance, Dir: collection.Ascending})
	want := []string{"2", "3", "1"}
	for i, r := range got {
		if r.Text("id") != want[i] {
			t.Errorf("position %d = %s, want %s", i, r.Text("id"), want[i])
		}
	}
}
