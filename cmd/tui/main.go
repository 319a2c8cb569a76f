package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"octofit/internal/adapters/api"
	"octofit/internal/adapters/tui"
	"octofit/internal/application/catalog"
	"octofit/internal/application/listutil"
	"octofit/internal/config"
)

var errNoView = errors.New("non-interactive output needs -view (one of: users, teams, activities, workouts, leaderboard)")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "octofit:", err)
		os.Exit(1)
	}
}

func run() error {
	entity := flag.String("view", "", "open this view (users, teams, activities, workouts, leaderboard)")
	sortCol := flag.String("sort", "", "initial sort column")
	sortDir := flag.String("dir", "asc", "initial sort direction (asc or desc)")
	plain := flag.Bool("plain", false, "print a plain table even on a terminal")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := catalog.Validate(); err != nil {
		return err
	}
	client, err := api.NewClient(cfg.BaseURL(), cfg.FetchTimeout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schemas := catalog.All()
	interactive := !*plain && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		initial := 0
		for i, s := range schemas {
			if s.Entity == *entity {
				initial = i + 1
			}
		}
		return tui.Run(ctx, client, schemas, initial)
	}

	if *entity == "" {
		return errNoView
	}
	schema, ok := catalog.Lookup(*entity)
	if !ok {
		return fmt.Errorf("unknown view %q", *entity)
	}
	params := listutil.ParseSortParams(url.Values{"sort": {*sortCol}, "dir": {*sortDir}}, schema.ColumnNames())
	return tui.RunPlain(ctx, client, schema, params.State(), os.Stdout)
}

// setupLogging sends logs to OCTOFIT_LOG_FILE, or discards them so the
// terminal belongs to the UI.
func setupLogging(cfg *config.Config) (func(), error) {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, opts)))
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, opts)))
	return func() { _ = f.Close() }, nil
}
