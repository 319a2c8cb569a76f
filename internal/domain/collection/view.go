package collection

import (
	"errors"
	"sync"
)

// State is the render state of a view.
type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateLoaded  State = "loaded"
)

// View errors.
var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotLoaded     = errors.New("view is not loaded")
)

// View is the Sortable Collection View: one collection, its sort state and
// its render state. A View is created per activation and is safe for
// concurrent use.
type View struct {
	schema Schema

	mu      sync.Mutex
	state   State
	message string
	records []Record
	sort    SortState
	closed  bool

	done     chan struct{}
	doneOnce sync.Once
}

// NewView creates a view in the loading state with the schema's default sort.
// PRE: schema has been validated
// POST: State is loading, collection is empty
func NewView(schema Schema) *View {
	return &View{
		schema: schema,
		state:  StateLoading,
		sort:   schema.DefaultSort,
		done:   make(chan struct{}),
	}
}

// Schema returns the view's schema.
func (v *View) Schema() Schema {
	return v.schema
}

// Resolve replaces the collection and moves the view to loaded.
// PRE: records came from a successful fetch
// POST: Returns false and changes nothing if the view was closed
func (v *View) Resolve(records []Record) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return false
	}
	if records == nil {
		records = []Record{}
	}
	v.records = records
	v.state = StateLoaded
	v.message = ""
	v.markDone()
	return true
}

// Fail moves the view to the error state carrying err's message.
// PRE: err is non-nil
// POST: Returns false and changes nothing if the view was closed; collection is empty
func (v *View) Fail(err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return false
	}
	v.records = nil
	v.state = StateError
	v.message = err.Error()
	v.markDone()
	return true
}

// Toggle applies a header activation to the sort state.
// PRE: view is loaded
// POST: sort state updated; collection untouched
func (v *View) Toggle(column string) error {
	if _, ok := v.schema.Column(column); !ok {
		return ErrUnknownColumn
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != StateLoaded {
		return ErrNotLoaded
	}
	v.sort = v.sort.Toggle(column)
	return nil
}

// SetSort replaces the sort state, e.g. from a bookmarked URL.
// Unknown columns reset to the schema default.
func (v *View) SetSort(s SortState) {
	if s.Active() {
		if _, ok := v.schema.Column(s.Column); !ok {
			s = v.schema.DefaultSort
		}
	}
	v.mu.Lock()
	v.sort = s
	v.mu.Unlock()
}

// Close tears the view down. Later Resolve and Fail calls are ignored.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.records = nil
	v.markDone()
}

// Closed reports whether the view has been torn down.
func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Done is closed once the view leaves the loading state or is closed.
func (v *View) Done() <-chan struct{} {
	return v.done
}

func (v *View) markDone() {
	v.doneOnce.Do(func() { close(v.done) })
}

// Snapshot is a point-in-time copy of a view, ready to render.
type Snapshot struct {
	Schema  Schema
	State   State
	Message string
	Sort    SortState
	Rows    []Record // sorted for display
	Total   int
}

// Snapshot captures the current state with rows in display order.
// INVARIANT: the stored collection is not reordered
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	records := v.records
	snap := Snapshot{
		Schema:  v.schema,
		State:   v.state,
		Message: v.message,
		Sort:    v.sort,
		Total:   len(v.records),
	}
	v.mu.Unlock()

	if snap.State == StateLoaded {
		snap.Rows = Sorted(records, v.schema, snap.Sort)
	}
	return snap
}

// Header is one rendered column header.
type Header struct {
	Column    string
	Label     string
	Indicator string
	Active    bool
}

// Row is one rendered table row.
type Row struct {
	Tone  Tone
	Cells []Cell
}

// Table is the renderer-neutral form of a loaded snapshot.
type Table struct {
	Headers []Header
	Rows    []Row
}

// Table formats the snapshot's rows through the schema.
// PRE: none
// POST: Rows is empty unless the snapshot is loaded
func (s Snapshot) Table() Table {
	t := Table{Headers: make([]Header, len(s.Schema.Columns))}
	for i, c := range s.Schema.Columns {
		t.Headers[i] = Header{
			Column:    c.Name,
			Label:     c.Title(),
			Indicator: s.Sort.Indicator(c.Name),
			Active:    s.Sort.Active() && s.Sort.Column == c.Name,
		}
	}
	t.Rows = make([]Row, 0, len(s.Rows))
	for _, r := range s.Rows {
		row := Row{Cells: make([]Cell, len(s.Schema.Columns))}
		if s.Schema.RowTone != nil {
			row.Tone = s.Schema.RowTone(r)
		}
		for i, c := range s.Schema.Columns {
			row.Cells[i] = c.Cell(r)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
