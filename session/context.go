// Package session holds per-conversation bounded memory: recent
// turns, last intent, extracted entities and the dialogue state.
// Each context is owned by its session; the store serializes
// concurrent access so a double-submit never corrupts history.
package session

import (
	"time"

	"support-bot/domain"
)

// State of the dialogue policy for one session.
type State string

const (
	// StateIdle means no follow-up question is pending.
	StateIdle State = "idle"
	// StateAwaitingClarification means the previous turn asked a
	// disambiguating question for PendingIntent.
	StateAwaitingClarification State = "awaiting_clarification"
)

// Context is the typed per-session record. All mutation happens
// inside Store.Update which holds the session lock.
type Context struct {
	ID              string
	History         []domain.Turn
	LastIntent      domain.IntentLabel
	Entities        domain.Entities
	State           State
	PendingIntent   domain.IntentLabel
	ClarifyAttempts int
	CreatedAt       time.Time
	LastActiveAt    time.Time
}

func newContext(id string, now time.Time) *Context {
	return &Context{
		ID:           id,
		Entities:     domain.Entities{},
		State:        StateIdle,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Append adds a turn to the history, evicting the oldest entries
// FIFO so the history never exceeds cap.
func (c *Context) Append(turn domain.Turn, cap int) {
	c.History = append(c.History, turn)
	if cap > 0 && len(c.History) > cap {
		c.History = c.History[len(c.History)-cap:]
	}
}

// AwaitClarification records that the bot asked a follow-up
// question for intent.
func (c *Context) AwaitClarification(intent domain.IntentLabel) {
	c.State = StateAwaitingClarification
	c.PendingIntent = intent
	c.ClarifyAttempts++
}

// ResolveClarification returns the session to Idle.
func (c *Context) ResolveClarification() {
	c.State = StateIdle
	c.PendingIntent = ""
	c.ClarifyAttempts = 0
}
