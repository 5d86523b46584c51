package workers

import (
	"context"
	"log/slog"
	"time"

	"support-bot/session"
)

// Janitor periodically sweeps expired sessions out of the store so
// abandoned conversations do not pile up in memory.
type Janitor struct {
	store    *session.Store
	interval time.Duration
	log      *slog.Logger
}

func NewJanitor(store *session.Store, interval time.Duration, log *slog.Logger) *Janitor {
	return &Janitor{store: store, interval: interval, log: log}
}

func (w *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case <-ticker.C:
			if removed := w.store.Sweep(); removed > 0 {
				w.log.Info("Expired sessions evicted", "count", removed, "live", w.store.Len())
			}
		}
	}
}
