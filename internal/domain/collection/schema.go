package collection

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tone is the colour family of a badge or highlighted row.
type Tone string

const (
	ToneNone      Tone = ""
	TonePrimary   Tone = "primary"
	ToneSecondary Tone = "secondary"
	ToneSuccess   Tone = "success"
	ToneDanger    Tone = "danger"
	ToneWarning   Tone = "warning"
	ToneInfo      Tone = "info"
	ToneDark      Tone = "dark"
	ToneLight     Tone = "light"
	ToneActive    Tone = "active"
)

// Icon names understood by the renderers.
const (
	IconNone     = ""
	IconTrophy   = "trophy"
	IconStar     = "star"
	IconPerson   = "person"
	IconEnvelope = "envelope"
	IconShield   = "shield"
	IconCalendar = "calendar"
)

// Cell is the presentation-neutral output of a column formatter.
type Cell struct {
	Text     string
	Tone     Tone // non-empty renders as a badge
	Emphasis bool
	Muted    bool
	Href     string
	Icon     string
}

// Formatter renders one column of a record.
type Formatter func(Record) Cell

// Column describes one sortable table column.
type Column struct {
	Name    string
	Label   string // derived from Name when empty
	Compare Comparison
	Ranks   map[string]int // CompareRank only
	Format  Formatter      // plain field text when nil
}

// Title returns the header label.
func (c Column) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return LabelFor(c.Name)
}

// Cell formats the column for a record.
func (c Column) Cell(r Record) Cell {
	if c.Format != nil {
		return c.Format(r)
	}
	return Cell{Text: r.Text(c.Name)}
}

var titleCaser = cases.Title(language.English)

// LabelFor derives a header label from a field name, e.g. "calories_burned" -> "Calories Burned".
func LabelFor(field string) string {
	return titleCaser.String(strings.ReplaceAll(field, "_", " "))
}

// Schema configures a Sortable Collection View for one entity type.
type Schema struct {
	Entity      string // route segment, e.g. "users"
	Title       string
	Summary     string // one-line description for navigation cards
	Endpoint    string // API path, e.g. "/api/users/"
	CountLabel  string // e.g. "Total users"
	Icon        string
	Columns     []Column
	DefaultSort SortState
	RowTone     func(Record) Tone // optional row highlight
}

// Schema validation errors.
var (
	ErrMissingEntity   = errors.New("schema entity is required")
	ErrMissingEndpoint = errors.New("schema endpoint is required")
	ErrNoColumns       = errors.New("schema needs at least one column")
)

// Validate checks the schema is usable.
// PRE: Schema struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: column names are unique; a default sort column must exist
func (s Schema) Validate() error {
	if s.Entity == "" {
		return ErrMissingEntity
	}
	if s.Endpoint == "" {
		return ErrMissingEndpoint
	}
	if len(s.Columns) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name == "" {
			return fmt.Errorf("%s: column name is required", s.Entity)
		}
		if seen[c.Name] {
			return fmt.Errorf("%s: duplicate column %q", s.Entity, c.Name)
		}
		seen[c.Name] = true
	}
	if s.DefaultSort.Active() && !seen[s.DefaultSort.Column] {
		return fmt.Errorf("%s: default sort column %q is not in the schema", s.Entity, s.DefaultSort.Column)
	}
	return nil
}

// Column looks up a column by name.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in display order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}
