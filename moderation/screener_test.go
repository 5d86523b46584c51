package moderation

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestScreener(t *testing.T, blocklist []string) *Screener {
	t.Helper()
	s, err := NewScreener(blocklist, '*', slog.Default())
	require.NoError(t, err)
	return s
}

func TestScreen_CleanTextPassesThrough(t *testing.T) {
	req := require.New(t)
	s := newTestScreener(t, []string{"idiot", "stupid bot"})

	result := s.Screen("Where is my order ORD-2024-001?")
	req.False(result.Flagged)
	req.Equal("Where is my order ORD-2024-001?", result.Censored)
	req.Empty(result.Terms)
}

func TestScreen_MasksBlockedTerm(t *testing.T) {
	req := require.New(t)
	s := newTestScreener(t, []string{"idiot"})

	result := s.Screen("you idiot, answer me")
	req.True(result.Flagged)
	req.NotContains(result.Censored, "idiot")
	req.Contains(result.Censored, "*")
	req.Equal([]string{"idiot"}, result.Terms)
}

func TestScreen_MatchesAcrossCaseAndPunctuation(t *testing.T) {
	req := require.New(t)
	s := newTestScreener(t, []string{"stupid bot"})

	cases := []string{
		"STUPID BOT",
		"stupid-bot",
		"s t u p i d b o t",
	}
	for _, input := range cases {
		result := s.Screen(input)
		req.True(result.Flagged, "should flag %q", input)
	}
}

func TestScreen_EmptyAndNoiseOnlyInput(t *testing.T) {
	req := require.New(t)
	s := newTestScreener(t, []string{"idiot"})

	req.False(s.Screen("").Flagged)
	req.False(s.Screen("?!...").Flagged)
}

func TestNewScreener_EmptyBlocklist(t *testing.T) {
	req := require.New(t)
	s := newTestScreener(t, nil)

	result := s.Screen("anything goes")
	req.False(result.Flagged)
	req.Equal("anything goes", result.Censored)
}
