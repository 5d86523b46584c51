package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sender distinguishes who produced a message within a session.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Turn is one entry of a session's bounded history.
type Turn struct {
	Sender     Sender
	Text       string
	Intent     IntentLabel
	Confidence float64
	At         time.Time
}

// TurnRecord is the write-only log entry emitted after each completed
// exchange. The core never reads it back to make a decision.
type TurnRecord struct {
	ID         uuid.UUID
	SessionID  string
	Text       string // censored form when the screener flagged it
	Response   string
	Intent     IntentLabel
	Confidence float64
	Language   string
	Flagged    bool
	At         time.Time
}
