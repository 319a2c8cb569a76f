package tui

import (
	"github.com/charmbracelet/lipgloss"

	"octofit/internal/domain/collection"
)

// Palette is the colour set used by the terminal dashboard.
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Danger    string
	Warning   string
	Info      string
	Dark      string
	Light     string
	Muted     string
	Text      string
	Border    string
	Highlight string
}

// DefaultPalette mirrors the browser badge colours.
func DefaultPalette() Palette {
	return Palette{
		Primary:   "#0D6EFD",
		Secondary: "#6C757D",
		Success:   "#198754",
		Danger:    "#DC3545",
		Warning:   "#FFC107",
		Info:      "#0DCAF0",
		Dark:      "#212529",
		Light:     "#ADB5BD",
		Muted:     "#626262",
		Text:      "#CCCCCC",
		Border:    "#444444",
		Highlight: "#3B3A1F",
	}
}

// Styles holds the compiled lipgloss styles.
type Styles struct {
	Title      lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Count      lipgloss.Style
	Error      lipgloss.Style
	Header     lipgloss.Style
	CursorHead lipgloss.Style
	Cell       lipgloss.Style
	ActiveRow  lipgloss.Style
	Border     lipgloss.Style
	Muted      lipgloss.Style
	Emphasis   lipgloss.Style
	StatusBar  lipgloss.Style
	CardTitle  lipgloss.Style
	Spinner    lipgloss.Style
	tones      map[collection.Tone]lipgloss.Style
}

// Compile builds styles from a palette.
func (p Palette) Compile() *Styles {
	s := &Styles{}

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(p.Primary)).
		Padding(0, 1)
	s.Tab = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Muted)).
		Padding(0, 1)
	s.ActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(p.Primary)).
		Padding(0, 1)
	s.Count = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text))
	s.Error = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Danger)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Danger)).
		Padding(0, 1)
	s.Header = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	s.CursorHead = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(p.Primary)).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	s.ActiveRow = lipgloss.NewStyle().
		Background(lipgloss.Color(p.Highlight)).
		Padding(0, 1)
	s.Border = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Border))
	s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted))
	s.Emphasis = lipgloss.NewStyle().Bold(true)
	s.StatusBar = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Muted)).
		MarginTop(1)
	s.CardTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary))
	s.Spinner = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning))

	s.tones = map[collection.Tone]lipgloss.Style{
		collection.TonePrimary:   badge(p.Primary, "#FAFAFA"),
		collection.ToneSecondary: badge(p.Secondary, "#FAFAFA"),
		collection.ToneSuccess:   badge(p.Success, "#FAFAFA"),
		collection.ToneDanger:    badge(p.Danger, "#FAFAFA"),
		collection.ToneWarning:   badge(p.Warning, p.Dark),
		collection.ToneInfo:      badge(p.Info, p.Dark),
		collection.ToneDark:      badge(p.Dark, "#FAFAFA"),
		collection.ToneLight:     badge(p.Light, p.Dark),
	}
	return s
}

func badge(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg))
}

// Badge returns the style for a cell tone; ok is false for an unknown tone.
func (s *Styles) Badge(t collection.Tone) (lipgloss.Style, bool) {
	st, ok := s.tones[t]
	return st, ok
}

var defaultStyles = DefaultPalette().Compile()

// DefaultStyles returns the shared default style set.
func DefaultStyles() *Styles {
	return defaultStyles
}

// iconGlyphs maps icon names to terminal glyphs.
var iconGlyphs = map[string]string{
	collection.IconTrophy:   "★",
	collection.IconStar:     "☆",
	collection.IconEnvelope: "✉",
	collection.IconShield:   "◆",
	collection.IconCalendar: "◷",
	collection.IconPerson:   "●",
}

// Glyph returns the terminal glyph for an icon name, or "".
func Glyph(icon string) string {
	return iconGlyphs[icon]
}
