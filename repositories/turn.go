//go:generate go run go.uber.org/mock/mockgen -source=turn.go -destination=../mocks/mock_turn_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"support-bot/domain"
)

type ITurnRepository interface {
	StoreTurn(record domain.TurnRecord) error
	GetTurns(sessionID string, cursor *string) ([]domain.TurnRecord, *string, error)
	ForEach(fn func(record domain.TurnRecord) error) error
}

// TurnRepository persists the write-only turn log in BadgerDB.
type TurnRepository struct {
	db         *badger.DB
	log        *slog.Logger
	limitTurns *int
}

func NewTurnRepository(db *badger.DB, log *slog.Logger, limitTurns *int) TurnRepository {
	return TurnRepository{db: db, log: log, limitTurns: limitTurns}
}

// diskTurn is the stored shape of a TurnRecord.
type diskTurn struct {
	ID         string  `json:"id"`
	SessionID  string  `json:"session_id"`
	Text       string  `json:"text"`
	Response   string  `json:"response"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language,omitempty"`
	Flagged    bool    `json:"flagged,omitempty"`
	At         int64   `json:"at"`
}

// StoreTurn persists a record. The key is formatted as
// "turn:{session_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using the UUID as a collision
//     disconnector if two turns land on the same nanosecond.
func (r TurnRepository) StoreTurn(record domain.TurnRecord) error {
	key := fmt.Sprintf("turn:%s:%019d:%s",
		record.SessionID,
		record.At.UnixNano(),
		record.ID,
	)
	bytes, err := json.Marshal(fromRecord(record))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetTurns retrieves the turns of one session with a reverse prefix
// scan (newest first). Thanks to the padded timestamp in the key the
// iteration order is the chronological order. The returned cursor
// resumes the scan on the next call.
func (r TurnRepository) GetTurns(sessionID string, cursor *string) ([]domain.TurnRecord, *string, error) {
	var rawTurns [][]byte
	var lastKey string
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("turn:%s:", sessionID)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the newest possible timestamp, then walk back.
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if r.limitTurns != nil && len(rawTurns) == *r.limitTurns {
				r.log.Debug(fmt.Sprintf("Maximum of %d turns reached", *r.limitTurns))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefixStr):])
			err := item.Value(func(value []byte) error {
				rawTurns = append(rawTurns, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	records := make([]domain.TurnRecord, 0, len(rawTurns))
	for _, raw := range rawTurns {
		record, err := DecodeTurn(raw)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, record)
	}
	return records, &lastKey, nil
}

// ForEach streams every stored turn to fn, used by the offline
// analytics report. Never called in the response path.
func (r TurnRepository) ForEach(fn func(record domain.TurnRecord) error) error {
	return r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("turn:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				record, err := DecodeTurn(value)
				if err != nil {
					return err
				}
				return fn(record)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func fromRecord(record domain.TurnRecord) diskTurn {
	return diskTurn{
		ID:         record.ID.String(),
		SessionID:  record.SessionID,
		Text:       record.Text,
		Response:   record.Response,
		Intent:     string(record.Intent),
		Confidence: record.Confidence,
		Language:   record.Language,
		Flagged:    record.Flagged,
		At:         record.At.UnixNano(),
	}
}

// DecodeTurn decodes one stored turn value, shared with the badger
// debug inspector.
func DecodeTurn(raw []byte) (domain.TurnRecord, error) {
	var d diskTurn
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.TurnRecord{}, err
	}
	parsedID, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.TurnRecord{}, err
	}
	return domain.TurnRecord{
		ID:         parsedID,
		SessionID:  d.SessionID,
		Text:       d.Text,
		Response:   d.Response,
		Intent:     domain.IntentLabel(d.Intent),
		Confidence: d.Confidence,
		Language:   d.Language,
		Flagged:    d.Flagged,
		At:         time.Unix(0, d.At).UTC(),
	}, nil
}
