package activity

import "octofit/internal/domain/collection"

// Endpoint is the API path for the activity collection.
const Endpoint = "/api/activities/"

// Field names
const (
	FieldID             = "id"
	FieldUser           = "user"
	FieldActivityType   = "activity_type"
	FieldDuration       = "duration"
	FieldDistance       = "distance"
	FieldCaloriesBurned = "calories_burned"
	FieldDate           = "date"
)

// Known activity types
const (
	TypeRunning  = "running"
	TypeCycling  = "cycling"
	TypeSwimming = "swimming"
	TypeWalking  = "walking"
	TypeYoga     = "yoga"
	TypeStrength = "strength"
)

// TypeTones maps activity types to badge tones. Unknown types are secondary.
var TypeTones = map[string]collection.Tone{
	TypeRunning:  collection.ToneDanger,
	TypeCycling:  collection.TonePrimary,
	TypeSwimming: collection.ToneInfo,
	TypeWalking:  collection.ToneSuccess,
	TypeYoga:     collection.ToneWarning,
	TypeStrength: collection.ToneDark,
}

// Schema returns the activities table.
func Schema() collection.Schema {
	return collection.Schema{
		Entity:     "activities",
		Title:      "Activities",
		Summary:    "Track fitness activities",
		Endpoint:   Endpoint,
		CountLabel: "Total activities",
		Icon:       collection.IconStar,
		Columns: []collection.Column{
			{Name: FieldID, Label: "ID"},
			{Name: FieldUser, Label: "User", Format: formatUser},
			{Name: FieldActivityType, Label: "Activity Type", Format: formatType},
			{Name: FieldDuration, Label: "Duration (min)", Compare: collection.CompareNumeric, Format: formatDuration},
			{Name: FieldDistance, Label: "Distance (km)", Compare: collection.CompareNumeric, Format: formatDistance},
			{Name: FieldCaloriesBurned, Label: "Calories", Compare: collection.CompareNumeric, Format: formatCalories},
			{Name: FieldDate, Label: "Date", Compare: collection.CompareDate, Format: collection.DateFormatter(FieldDate)},
		},
	}
}

// ToneFor returns the badge tone for an activity type.
func ToneFor(activityType string) collection.Tone {
	if tone, ok := TypeTones[activityType]; ok {
		return tone
	}
	return collection.ToneSecondary
}

func formatUser(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldUser), Emphasis: true}
}

func formatType(r collection.Record) collection.Cell {
	t := r.Text(FieldActivityType)
	return collection.Cell{Text: t, Tone: ToneFor(t)}
}

func formatDuration(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldDuration) + " min"}
}

func formatDistance(r collection.Record) collection.Cell {
	if r.Number(FieldDistance) == 0 {
		return collection.Cell{Text: collection.Placeholder}
	}
	return collection.Cell{Text: r.Text(FieldDistance) + " km"}
}

func formatCalories(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldCaloriesBurned), Emphasis: true}
}
