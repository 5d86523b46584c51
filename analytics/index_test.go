package analytics

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"support-bot/domain"
)

func testIndex(t *testing.T) *TurnIndex {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })
	return NewTurnIndex(writer, slog.Default())
}

func indexedRecord(text string, intent domain.IntentLabel, confidence float64) domain.TurnRecord {
	return domain.TurnRecord{
		ID:         uuid.New(),
		SessionID:  "s1",
		Text:       text,
		Response:   "ok",
		Intent:     intent,
		Confidence: confidence,
		At:         time.Now().UTC(),
	}
}

func TestTurnIndex_SearchText(t *testing.T) {
	req := require.New(t)
	idx := testIndex(t)

	req.NoError(idx.Index(indexedRecord("where is my refund", domain.IntentRefund, 0.87)))
	req.NoError(idx.Index(indexedRecord("track my package", domain.IntentTrackOrder, 0.92)))

	hits, total, err := idx.SearchText(context.Background(), "refund", 10)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(hits, 1)
	req.Equal("where is my refund", hits[0].Text)
	req.Equal(domain.IntentRefund, hits[0].Intent)
	req.InDelta(0.87, hits[0].Confidence, 1e-9)
}

func TestTurnIndex_LowConfidence(t *testing.T) {
	req := require.New(t)
	idx := testIndex(t)

	req.NoError(idx.Index(indexedRecord("gibberish input", domain.IntentGreeting, 0.12)))
	req.NoError(idx.Index(indexedRecord("clear question", domain.IntentPricing, 0.95)))

	hits, total, err := idx.LowConfidence(context.Background(), 0.5, 10)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(hits, 1)
	req.Equal("gibberish input", hits[0].Text)
}

func TestTurnIndex_ByIntent(t *testing.T) {
	req := require.New(t)
	idx := testIndex(t)

	req.NoError(idx.Index(indexedRecord("how much is the laptop", domain.IntentPricing, 0.9)))
	req.NoError(idx.Index(indexedRecord("how much is shipping", domain.IntentShipping, 0.8)))

	hits, total, err := idx.ByIntent(context.Background(), domain.IntentPricing, 10)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Equal("how much is the laptop", hits[0].Text)
}

func TestTurnIndex_ReindexingSameIDOverwrites(t *testing.T) {
	req := require.New(t)
	idx := testIndex(t)

	record := indexedRecord("first version", domain.IntentGreeting, 0.7)
	req.NoError(idx.Index(record))
	record.Text = "second version"
	req.NoError(idx.Index(record))

	hits, total, err := idx.SearchText(context.Background(), "version", 10)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Equal("second version", hits[0].Text)
}
