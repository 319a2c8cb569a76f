package team

import "octofit/internal/domain/collection"

// Endpoint is the API path for the team collection.
const Endpoint = "/api/teams/"

// Field names
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCreatedAt   = "created_at"
)

// Schema returns the teams table.
func Schema() collection.Schema {
	return collection.Schema{
		Entity:     "teams",
		Title:      "Teams",
		Summary:    "Browse competitive teams",
		Endpoint:   Endpoint,
		CountLabel: "Total teams",
		Icon:       collection.IconShield,
		Columns: []collection.Column{
			{Name: FieldID, Label: "ID"},
			{Name: FieldName, Label: "Team Name", Format: formatName},
			{Name: FieldDescription, Label: "Description", Format: formatDescription},
			{Name: FieldCreatedAt, Label: "Created", Compare: collection.CompareDate, Format: formatCreatedAt},
		},
	}
}

func formatName(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldName), Emphasis: true, Icon: collection.IconShield}
}

func formatDescription(r collection.Record) collection.Cell {
	desc := r.Text(FieldDescription)
	if desc == "" {
		return collection.Cell{Text: "No description", Muted: true}
	}
	return collection.Cell{Text: desc, Muted: true}
}

func formatCreatedAt(r collection.Record) collection.Cell {
	return collection.Cell{
		Text: collection.Or(r.DateText(FieldCreatedAt), collection.Placeholder),
		Tone: collection.ToneInfo,
		Icon: collection.IconCalendar,
	}
}
