package leaderboard

import "octofit/internal/domain/collection"

// Endpoint is the API path for the leaderboard collection.
const Endpoint = "/api/leaderboard/"

// Field names
const (
	FieldID              = "id"
	FieldRank            = "rank"
	FieldUser            = "user"
	FieldTeam            = "team"
	FieldTotalPoints     = "total_points"
	FieldTotalCalories   = "total_calories"
	FieldTotalActivities = "total_activities"
	FieldUpdatedAt       = "updated_at"
)

// PodiumSize is the number of highlighted top ranks.
const PodiumSize = 3

// Schema returns the leaderboard table, sorted by rank ascending until a header is activated.
func Schema() collection.Schema {
	return collection.Schema{
		Entity:     "leaderboard",
		Title:      "Leaderboard",
		Summary:    "Check top performers",
		Endpoint:   Endpoint,
		CountLabel: "Total entries",
		Icon:       collection.IconTrophy,
		Columns: []collection.Column{
			{Name: FieldRank, Label: "Rank", Compare: collection.CompareNumeric, Format: formatRank},
			{Name: FieldUser, Label: "User", Format: formatUser},
			{Name: FieldTeam, Label: "Team", Format: formatTeam},
			{Name: FieldTotalPoints, Label: "Total Points", Compare: collection.CompareNumeric, Format: formatPoints},
			{Name: FieldTotalCalories, Label: "Total Calories", Compare: collection.CompareNumeric},
			{Name: FieldTotalActivities, Label: "Total Activities", Compare: collection.CompareNumeric, Format: formatActivities},
			{Name: FieldUpdatedAt, Label: "Last Updated", Compare: collection.CompareDate, Format: collection.DateFormatter(FieldUpdatedAt)},
		},
		DefaultSort: collection.SortState{Column: FieldRank, Dir: collection.Ascending},
		RowTone:     rowTone,
	}
}

// OnPodium reports whether a record holds one of the top ranks.
func OnPodium(r collection.Record) bool {
	rank := r.Number(FieldRank)
	return rank >= 1 && rank <= PodiumSize
}

func rowTone(r collection.Record) collection.Tone {
	if OnPodium(r) {
		return collection.ToneActive
	}
	return collection.ToneNone
}

func formatRank(r collection.Record) collection.Cell {
	cell := collection.Cell{Text: "#" + r.Text(FieldRank)}
	switch r.Number(FieldRank) {
	case 1:
		cell.Tone = collection.ToneWarning
	case 2:
		cell.Tone = collection.ToneSecondary
	case 3:
		cell.Tone = collection.ToneDanger
	default:
		cell.Tone = collection.ToneLight
	}
	if OnPodium(r) {
		cell.Icon = collection.IconTrophy
	}
	return cell
}

func formatUser(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldUser), Emphasis: true}
}

func formatTeam(r collection.Record) collection.Cell {
	team := r.Text(FieldTeam)
	if team == "" {
		return collection.Cell{Text: collection.Placeholder, Muted: true}
	}
	return collection.Cell{Text: team, Tone: collection.TonePrimary}
}

func formatPoints(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldTotalPoints), Emphasis: true}
}

func formatActivities(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldTotalActivities), Tone: collection.ToneInfo}
}
