package workout

import "octofit/internal/domain/collection"

// Endpoint is the API path for the workout collection.
const Endpoint = "/api/workouts/"

// Field names
const (
	FieldID               = "id"
	FieldName             = "name"
	FieldDescription      = "description"
	FieldDifficulty       = "difficulty"
	FieldDuration         = "duration"
	FieldCaloriesEstimate = "calories_estimate"
)

// Difficulty levels
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// DifficultyRanks orders difficulty levels. Unknown levels rank 0.
var DifficultyRanks = map[string]int{
	DifficultyBeginner:     1,
	DifficultyIntermediate: 2,
	DifficultyAdvanced:     3,
}

var difficultyTones = map[string]collection.Tone{
	DifficultyBeginner:     collection.ToneSuccess,
	DifficultyIntermediate: collection.ToneWarning,
	DifficultyAdvanced:     collection.ToneDanger,
}

// Schema returns the workouts table.
func Schema() collection.Schema {
	return collection.Schema{
		Entity:     "workouts",
		Title:      "Workouts",
		Summary:    "Discover workout plans",
		Endpoint:   Endpoint,
		CountLabel: "Total workouts",
		Icon:       collection.IconStar,
		Columns: []collection.Column{
			{Name: FieldID, Label: "ID"},
			{Name: FieldName, Label: "Name", Format: formatName},
			{Name: FieldDescription, Label: "Description", Format: formatDescription},
			{Name: FieldDifficulty, Label: "Difficulty", Compare: collection.CompareRank, Ranks: DifficultyRanks, Format: formatDifficulty},
			{Name: FieldDuration, Label: "Duration (min)", Compare: collection.CompareNumeric, Format: formatDuration},
			{Name: FieldCaloriesEstimate, Label: "Calories/Session", Compare: collection.CompareNumeric, Format: formatCalories},
		},
	}
}

func formatName(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldName), Emphasis: true}
}

func formatDescription(r collection.Record) collection.Cell {
	return collection.Cell{Text: collection.Or(r.Text(FieldDescription), collection.Placeholder), Muted: true}
}

func formatDifficulty(r collection.Record) collection.Cell {
	d := r.Text(FieldDifficulty)
	tone, ok := difficultyTones[d]
	if !ok {
		return collection.Cell{Text: d, Tone: collection.ToneSecondary}
	}
	return collection.Cell{Text: d, Tone: tone, Icon: collection.IconStar}
}

func formatDuration(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldDuration) + " min"}
}

func formatCalories(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldCaloriesEstimate), Emphasis: true}
}
