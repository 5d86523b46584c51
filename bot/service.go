//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=../mocks/mock_bot_service.go -package=mocks

// Package bot is the facade external consumers call: a stateless
// Classify and a stateful Respond keyed by session id.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"support-bot/domain"
	"support-bot/errors"
	"support-bot/policy"
	"support-bot/session"
)

type IBotService interface {
	Classify(text string) domain.ClassificationResult
	Respond(ctx context.Context, sessionID, text string) (Reply, error)
}

// Reply is the outcome of one Respond call.
type Reply struct {
	Response   string
	Intent     domain.IntentLabel
	Confidence float64
	Entities   domain.Entities
}

type respondRequest struct {
	SessionID string `validate:"max=128"`
}

var validate = validator.New()

// Service wires the policy, the session store and the asynchronous
// turn emission. Classification failures never surface as errors;
// the error return of Respond is reserved for caller contract
// violations (missing or malformed session id).
type Service struct {
	policy           *policy.Policy
	store            *session.Store
	turns            chan<- domain.TurnRecord
	maxContentLength int
	log              *slog.Logger
}

func NewService(p *policy.Policy, store *session.Store, turns chan<- domain.TurnRecord, maxContentLength int, log *slog.Logger) *Service {
	return &Service{
		policy:           p,
		store:            store,
		turns:            turns,
		maxContentLength: maxContentLength,
		log:              log,
	}
}

// Classify is the stateless operation: no session, no side effects.
func (s *Service) Classify(text string) domain.ClassificationResult {
	return s.policy.Classify(s.truncate(text))
}

// Respond executes one dialogue turn for the session. The store
// serializes concurrent calls for the same session id; different
// sessions proceed in parallel.
func (s *Service) Respond(ctx context.Context, sessionID, text string) (Reply, error) {
	if sessionID == "" {
		return Reply{}, errors.ErrMissingSessionID
	}
	if err := validate.Struct(respondRequest{SessionID: sessionID}); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", errors.ErrInvalidSessionID, err)
	}
	text = s.truncate(text)

	var out policy.Outcome
	s.store.Update(sessionID, func(sctx *session.Context) {
		out = s.policy.Respond(ctx, sctx, text)
	})

	s.emit(domain.TurnRecord{
		ID:         uuid.New(),
		SessionID:  sessionID,
		Text:       out.LoggedText,
		Response:   out.Response,
		Intent:     out.Result.Intent,
		Confidence: out.Result.Confidence,
		Language:   out.Language,
		Flagged:    out.Flagged,
		At:         time.Now().UTC(),
	})

	return Reply{
		Response:   out.Response,
		Intent:     out.Result.Intent,
		Confidence: out.Result.Confidence,
		Entities:   out.Entities,
	}, nil
}

// emit pushes the record to the log worker without ever blocking the
// response path. A full buffer drops the record with a diagnostic.
func (s *Service) emit(record domain.TurnRecord) {
	if s.turns == nil {
		return
	}
	select {
	case s.turns <- record:
	default:
		s.log.Warn("Dropping turn record", "error", errors.ErrTurnBufferFull, "session", record.SessionID)
	}
}

func (s *Service) truncate(text string) string {
	if s.maxContentLength <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= s.maxContentLength {
		return text
	}
	return string(runes[:s.maxContentLength])
}
