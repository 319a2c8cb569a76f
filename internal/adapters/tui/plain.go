package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"octofit/internal/domain/collection"
)

// RunPlain activates one view, waits for its single fetch and prints it as a
// plain table for non-interactive output.
// PRE: schema has been validated
// POST: on fetch failure writes "Error: <message>" and returns the error
func RunPlain(ctx context.Context, fetcher Fetcher, schema collection.Schema, sort collection.SortState, out io.Writer) error {
	view := collection.NewView(schema)
	defer view.Close()
	if sort.Active() {
		view.SetSort(sort)
	}

	records, err := fetcher.FetchCollection(ctx, schema.Endpoint)
	if err != nil {
		view.Fail(err)
		slog.Warn("fetch_failed", "entity", schema.Entity, "error", err)
	} else {
		view.Resolve(records)
	}

	snap := view.Snapshot()
	if snap.State == collection.StateError {
		fmt.Fprintln(out, ErrorLine(snap))
		return fmt.Errorf("%s: %w", schema.Entity, err)
	}
	fmt.Fprintln(out, snap.Schema.Title)
	fmt.Fprintln(out, CountLine(snap))
	fmt.Fprintln(out)
	_, werr := io.WriteString(out, PlainTable(snap.Table()))
	return werr
}
