package sink

import (
	"context"
	"log/slog"

	"support-bot/analytics"
	"support-bot/domain"
)

// IndexSink feeds turn records into the analytics search index.
type IndexSink struct {
	index *analytics.TurnIndex
	log   *slog.Logger
}

func NewIndexSink(index *analytics.TurnIndex, log *slog.Logger) IndexSink {
	return IndexSink{index: index, log: log}
}

func (s IndexSink) Consume(_ context.Context, record domain.TurnRecord) error {
	return s.index.Index(record)
}
