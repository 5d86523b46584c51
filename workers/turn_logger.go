package workers

import (
	"context"
	"log/slog"

	"support-bot/contract"
	"support-bot/domain"
)

// TurnLogger drains the turn channel and fans each record out to the
// registered sinks (disk log, search index). The response path only
// ever pushes into the channel, so a slow sink delays persistence,
// never the user-facing reply.
type TurnLogger struct {
	turns <-chan domain.TurnRecord
	sinks []contract.TurnSink
	log   *slog.Logger
}

func NewTurnLogger(turns <-chan domain.TurnRecord, log *slog.Logger, sinks ...contract.TurnSink) *TurnLogger {
	return &TurnLogger{turns: turns, sinks: sinks, log: log}
}

func (w *TurnLogger) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case record, ok := <-w.turns:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			w.consume(ctx, record)
		}
	}
}

func (w *TurnLogger) consume(ctx context.Context, record domain.TurnRecord) {
	for _, sink := range w.sinks {
		if err := sink.Consume(ctx, record); err != nil {
			w.log.Warn("Turn sink failed", "turn", record.ID, "error", err)
		}
	}
}

// drain flushes whatever is still buffered at shutdown so recorded
// turns are not lost. Uses a background context: the parent is
// already canceled.
func (w *TurnLogger) drain() {
	for {
		select {
		case record, ok := <-w.turns:
			if !ok {
				return
			}
			w.consume(context.Background(), record)
		default:
			return
		}
	}
}
