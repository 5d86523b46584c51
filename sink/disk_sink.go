// Package sink contains the turn record consumers fed by the
// TurnLogger worker.
package sink

import (
	"context"
	"log/slog"

	"support-bot/domain"
	"support-bot/repositories"
)

// DiskSink appends turn records to the badger log.
type DiskSink struct {
	repository repositories.ITurnRepository
	log        *slog.Logger
}

func NewDiskSink(repository repositories.ITurnRepository, log *slog.Logger) DiskSink {
	return DiskSink{repository: repository, log: log}
}

func (d DiskSink) Consume(_ context.Context, record domain.TurnRecord) error {
	return d.repository.StoreTurn(record)
}
