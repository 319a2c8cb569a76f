// Package tui is the terminal front end: the same Sortable Collection Views
// as the browser, driven by a bubbletea event loop.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"octofit/internal/application/listutil"
	"octofit/internal/domain/collection"
)

// Fetcher retrieves a collection from the REST API.
type Fetcher interface {
	FetchCollection(ctx context.Context, endpoint string) ([]collection.Record, error)
}

// homeTab is the index of the landing tab.
const homeTab = 0

// chromeLines is the number of screen lines used around the table:
// title, tabs, blank, count, blank, table borders and header (4), page line, status bar (2).
const chromeLines = 12

// minPageRows keeps the table usable on very short terminals.
const minPageRows = 5

// fetchedMsg carries the outcome of a view's single fetch.
type fetchedMsg struct {
	view    *collection.View
	records []collection.Record
	err     error
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	ctx     context.Context
	fetcher Fetcher
	schemas []collection.Schema
	styles  *Styles

	active  int // 0 is home; i+1 is schemas[i]
	view    *collection.View
	cursor  int // header column under the cursor
	page    int
	spinner spinner.Model

	width  int
	height int

	start tea.Cmd // run once by Init
}

// New builds the dashboard model on the home tab.
// PRE: every schema has been validated
// POST: no view is active and nothing has been fetched
func New(ctx context.Context, fetcher Fetcher, schemas []collection.Schema) Model {
	styles := DefaultStyles()
	return Model{
		ctx:     ctx,
		fetcher: fetcher,
		schemas: schemas,
		styles:  styles,
		active:  homeTab,
		page:    1,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.start
}

// Activate switches to tab i, tearing down the previous view and starting a
// fresh one with a single fetch.
// PRE: 0 <= i <= len(schemas)
// POST: the previous view is closed; a non-home tab has a loading view
func (m Model) Activate(i int) (Model, tea.Cmd) {
	if m.view != nil {
		m.view.Close()
		m.view = nil
	}
	m.active = i
	m.cursor = 0
	m.page = 1
	if i == homeTab {
		return m, nil
	}

	schema := m.schemas[i-1]
	view := collection.NewView(schema)
	m.view = view
	slog.Debug("view_opened", "entity", schema.Entity)
	return m, tea.Batch(m.fetch(view), m.spinner.Tick)
}

// fetch returns the command that performs a view's only request.
func (m Model) fetch(view *collection.View) tea.Cmd {
	ctx, fetcher, endpoint := m.ctx, m.fetcher, view.Schema().Endpoint
	return func() tea.Msg {
		records, err := fetcher.FetchCollection(ctx, endpoint)
		return fetchedMsg{view: view, records: records, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.page = m.pageInfo().Page
		return m, nil

	case fetchedMsg:
		m.applyFetch(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyFetch resolves the view the fetch belongs to. Results for a view that
// was torn down are dropped.
func (m Model) applyFetch(msg fetchedMsg) {
	entity := msg.view.Schema().Entity
	var applied bool
	if msg.err != nil {
		applied = msg.view.Fail(msg.err)
	} else {
		applied = msg.view.Resolve(msg.records)
	}
	if !applied {
		slog.Debug("fetch_discarded", "entity", entity)
		return
	}
	if msg.err != nil {
		slog.Warn("fetch_failed", "entity", entity, "error", msg.err)
		return
	}
	slog.Debug("view_resolved", "entity", entity, "count", len(msg.records))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		if m.view != nil {
			m.view.Close()
		}
		return m, tea.Quit
	case "tab":
		return m.Activate((m.active + 1) % m.tabCount())
	case "shift+tab":
		return m.Activate((m.active + m.tabCount() - 1) % m.tabCount())
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if i := int(key[0] - '1'); i < m.tabCount() {
			return m.Activate(i)
		}
		return m, nil
	}

	if m.view == nil {
		return m, nil
	}
	columns := len(m.view.Schema().Columns)
	switch key {
	case "left", "h":
		m.cursor = (m.cursor + columns - 1) % columns
	case "right", "l":
		m.cursor = (m.cursor + 1) % columns
	case "enter", "s":
		col := m.view.Schema().Columns[m.cursor].Name
		if err := m.view.Toggle(col); err != nil {
			slog.Debug("sort_ignored", "entity", m.view.Schema().Entity, "column", col, "error", err)
		}
	case "pgdown", "n":
		m.page++
		m.page = m.pageInfo().Page
	case "pgup", "p":
		m.page--
		m.page = m.pageInfo().Page
	}
	return m, nil
}

func (m Model) tabCount() int {
	return len(m.schemas) + 1
}

func (m Model) loading() bool {
	return m.view != nil && m.view.Snapshot().State == collection.StateLoading
}

// Active returns the index of the current tab.
func (m Model) Active() int {
	return m.active
}

// CurrentView returns the active view, or nil on the home tab.
func (m Model) CurrentView() *collection.View {
	return m.view
}

// Cursor returns the header column under the cursor.
func (m Model) Cursor() int {
	return m.cursor
}

// perPage returns how many rows fit on screen.
func (m Model) perPage() int {
	if m.height == 0 {
		return listutil.DefaultPerPage
	}
	return max(m.height-chromeLines, minPageRows)
}

func (m Model) pageInfo() listutil.PageInfo {
	total := 0
	if m.view != nil {
		total = m.view.Snapshot().Total
	}
	return listutil.NewPageInfo(m.page, m.perPage(), total)
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.styles
	title := s.Title.Render("OctoFit Tracker")
	var body string
	if m.view == nil {
		body = m.homeView()
	} else {
		body = m.collectionView()
	}
	help := s.StatusBar.Render("1-6/tab switch • ←/→ column • enter sort • pgup/pgdn page • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, title, m.tabsView(), "", body, help)
}

func (m Model) tabsView() string {
	s := m.styles
	labels := make([]string, 0, m.tabCount())
	names := append([]string{"Home"}, titles(m.schemas)...)
	for i, name := range names {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == m.active {
			labels = append(labels, s.ActiveTab.Render(label))
		} else {
			labels = append(labels, s.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

func titles(schemas []collection.Schema) []string {
	out := make([]string, len(schemas))
	for i, sc := range schemas {
		out[i] = sc.Title
	}
	return out
}

func (m Model) homeView() string {
	s := m.styles
	var b strings.Builder
	b.WriteString("Track your activities, join a team and climb the leaderboard.\n\n")
	for i, sc := range m.schemas {
		fmt.Fprintf(&b, "%s  %s\n", s.CardTitle.Render(fmt.Sprintf("[%d] %s", i+2, sc.Title)), s.Muted.Render(sc.Summary))
	}
	fmt.Fprintf(&b, "%s  %s", s.CardTitle.Render("More Coming Soon"), s.Muted.Render("New features are on the way"))
	return b.String()
}

func (m Model) collectionView() string {
	s := m.styles
	snap := m.view.Snapshot()
	switch snap.State {
	case collection.StateLoading:
		return fmt.Sprintf("%s Loading %s...", m.spinner.View(), strings.ToLower(snap.Schema.Title))
	case collection.StateError:
		return s.Error.Render(ErrorLine(snap))
	}

	t := snap.Table()
	p := m.pageInfo()
	rows := listutil.Window(t.Rows, p)
	out := []string{
		s.Count.Render(CountLine(snap)),
		"",
		renderTable(s, t, rows, tableOptions{cursor: m.cursor}),
	}
	if p.ShowPagination() {
		out = append(out, s.Muted.Render(fmt.Sprintf("rows %d-%d of %d • page %d/%d", p.StartRow(), p.EndRow(), p.Total, p.Page, p.TotalPages)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// Run starts the interactive dashboard and blocks until the user quits.
// initial selects the first tab; out-of-range values open on home.
func Run(ctx context.Context, fetcher Fetcher, schemas []collection.Schema, initial int) error {
	m := New(ctx, fetcher, schemas)
	if initial > homeTab && initial <= len(schemas) {
		m, m.start = m.Activate(initial)
	}
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
