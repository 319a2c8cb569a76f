package collection

// DateLayout is the display format for date columns.
const DateLayout = "Jan 2, 2006"

// Placeholder is shown for empty optional values.
const Placeholder = "-"

// DateText formats a date field, or returns "" when the field is missing or unparseable.
func (r Record) DateText(field string) string {
	if !r.Has(field) || r.Text(field) == "" {
		return ""
	}
	ts := r.Time(field)
	if ts.Equal(epoch) {
		return ""
	}
	return ts.Format(DateLayout)
}

// Or returns s, or fallback when s is empty.
func Or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// PlainFormatter renders a field as plain text with a placeholder when empty.
func PlainFormatter(field string) Formatter {
	return func(r Record) Cell {
		return Cell{Text: Or(r.Text(field), Placeholder)}
	}
}

// DateFormatter renders a date field, muted, with a placeholder when empty.
func DateFormatter(field string) Formatter {
	return func(r Record) Cell {
		return Cell{Text: Or(r.DateText(field), Placeholder), Muted: true}
	}
}
