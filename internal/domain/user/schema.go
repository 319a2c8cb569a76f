package user

import "octofit/internal/domain/collection"

// Endpoint is the API path for the user collection.
const Endpoint = "/api/users/"

// Field names
const (
	FieldID        = "id"
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldTeam      = "team"
)

// Schema returns the users table. All columns compare as text.
func Schema() collection.Schema {
	return collection.Schema{
		Entity:     "users",
		Title:      "Users",
		Summary:    "View and manage user profiles",
		Endpoint:   Endpoint,
		CountLabel: "Total users",
		Icon:       collection.IconPerson,
		Columns: []collection.Column{
			{Name: FieldID, Label: "ID", Format: formatID},
			{Name: FieldUsername, Label: "Username", Format: formatUsername},
			{Name: FieldEmail, Label: "Email", Format: formatEmail},
			{Name: FieldFirstName, Label: "First Name", Format: nameFormatter(FieldFirstName)},
			{Name: FieldLastName, Label: "Last Name", Format: nameFormatter(FieldLastName)},
			{Name: FieldTeam, Label: "Team", Format: formatTeam},
		},
	}
}

func formatID(r collection.Record) collection.Cell {
	return collection.Cell{Text: "#" + r.Text(FieldID), Tone: collection.ToneSecondary}
}

func formatUsername(r collection.Record) collection.Cell {
	return collection.Cell{Text: r.Text(FieldUsername), Emphasis: true, Icon: collection.IconPerson}
}

func formatEmail(r collection.Record) collection.Cell {
	email := r.Text(FieldEmail)
	if email == "" {
		return collection.Cell{Text: collection.Placeholder, Muted: true}
	}
	return collection.Cell{Text: email, Href: "mailto:" + email, Icon: collection.IconEnvelope}
}

func nameFormatter(field string) collection.Formatter {
	return func(r collection.Record) collection.Cell {
		name := r.Text(field)
		if name == "" {
			return collection.Cell{Text: "Not set", Muted: true}
		}
		return collection.Cell{Text: name}
	}
}

func formatTeam(r collection.Record) collection.Cell {
	team := r.Text(FieldTeam)
	if team == "" {
		return collection.Cell{Text: "No Team", Muted: true}
	}
	return collection.Cell{Text: team, Tone: collection.TonePrimary, Icon: collection.IconShield}
}
