package views

import (
	"log/slog"
	"time"
)

// StartSweeper starts a background goroutine that periodically tears down idle views.
// PRE: interval > 0; stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed
func StartSweeper(r *Registry, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := r.Sweep(); n > 0 {
					slog.Info("views_swept", "removed", n, "live", r.Len())
				}
			case <-stopCh:
				slog.Info("view_sweeper_stopped")
				return
			}
		}
	}()
}
