// Package analytics maintains a full-text index of the turn log and
// derives offline reports from it: intent distribution, confidence
// statistics and retraining candidates. Nothing here runs in the
// response path.
package analytics

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/blugelabs/bluge"

	"support-bot/domain"
)

// TurnIndex wraps a bluge index of completed turns. Indexing is
// idempotent per turn id, re-consuming a record overwrites it.
type TurnIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewTurnIndex(writer *bluge.Writer, log *slog.Logger) *TurnIndex {
	return &TurnIndex{writer: writer, log: log}
}

// Index adds one turn record to the search index.
func (i *TurnIndex) Index(record domain.TurnRecord) error {
	doc := bluge.NewDocument(record.ID.String()).
		AddField(bluge.NewTextField("text", record.Text).StoreValue()).
		AddField(bluge.NewKeywordField("session", record.SessionID).StoreValue()).
		AddField(bluge.NewKeywordField("intent", string(record.Intent)).StoreValue()).
		AddField(bluge.NewNumericField("confidence", record.Confidence)).
		AddField(bluge.NewStoredOnlyField("confidence_raw",
			[]byte(strconv.FormatFloat(record.Confidence, 'f', -1, 64)))).
		AddField(bluge.NewDateTimeField("at", record.At))
	return i.writer.Update(doc.ID(), doc)
}

// Hit is one search result.
type Hit struct {
	ID         string
	SessionID  string
	Text       string
	Intent     domain.IntentLabel
	Confidence float64
}

// SearchText finds turns whose utterance matches the query terms.
func (i *TurnIndex) SearchText(ctx context.Context, terms string, limit int) ([]Hit, uint64, error) {
	query := bluge.NewMatchQuery(terms).SetField("text")
	return i.search(ctx, bluge.NewTopNSearch(limit, query).WithStandardAggregations())
}

// LowConfidence finds the turns the classifier was least sure about,
// the primary source of new training patterns.
func (i *TurnIndex) LowConfidence(ctx context.Context, below float64, limit int) ([]Hit, uint64, error) {
	query := bluge.NewNumericRangeInclusiveQuery(0, below, true, false).SetField("confidence")
	return i.search(ctx, bluge.NewTopNSearch(limit, query).WithStandardAggregations())
}

// ByIntent finds the indexed turns classified under one label.
func (i *TurnIndex) ByIntent(ctx context.Context, intent domain.IntentLabel, limit int) ([]Hit, uint64, error) {
	query := bluge.NewTermQuery(string(intent)).SetField("intent")
	return i.search(ctx, bluge.NewTopNSearch(limit, query).WithStandardAggregations())
}

func (i *TurnIndex) search(ctx context.Context, req bluge.SearchRequest) ([]Hit, uint64, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("Closing index reader failed", "error", err)
		}
	}()
	return searchReader(ctx, reader, req)
}

// TurnSearch queries an existing index without holding the writer
// lock, for the offline report tool.
type TurnSearch struct {
	reader *bluge.Reader
}

func NewTurnSearch(reader *bluge.Reader) *TurnSearch {
	return &TurnSearch{reader: reader}
}

func (s *TurnSearch) LowConfidence(ctx context.Context, below float64, limit int) ([]Hit, uint64, error) {
	query := bluge.NewNumericRangeInclusiveQuery(0, below, true, false).SetField("confidence")
	return searchReader(ctx, s.reader, bluge.NewTopNSearch(limit, query).WithStandardAggregations())
}

func (s *TurnSearch) Text(ctx context.Context, terms string, limit int) ([]Hit, uint64, error) {
	query := bluge.NewMatchQuery(terms).SetField("text")
	return searchReader(ctx, s.reader, bluge.NewTopNSearch(limit, query).WithStandardAggregations())
}

func searchReader(ctx context.Context, reader *bluge.Reader, req bluge.SearchRequest) ([]Hit, uint64, error) {
	dmi, err := reader.Search(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	var hits []Hit
	for {
		match, err := dmi.Next()
		if err != nil {
			return nil, 0, err
		}
		if match == nil {
			break
		}
		var hit Hit
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.ID = string(value)
			case "session":
				hit.SessionID = string(value)
			case "text":
				hit.Text = string(value)
			case "intent":
				hit.Intent = domain.IntentLabel(value)
			case "confidence_raw":
				if f, err := strconv.ParseFloat(string(value), 64); err == nil {
					hit.Confidence = f
				}
			}
			return true
		})
		if err != nil {
			return nil, 0, err
		}
		hits = append(hits, hit)
	}
	return hits, dmi.Aggregations().Count(), nil
}
