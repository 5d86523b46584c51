package policy

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"support-bot/domain"
	"support-bot/enrichment"
	"support-bot/moderation"
	"support-bot/session"
	"support-bot/training"
)

func testCorpus() training.Corpus {
	return training.Corpus{Intents: []training.Intent{
		{
			Tag:       domain.IntentGreeting,
			Patterns:  []string{"hi", "hello", "hi there", "hey", "good morning"},
			Responses: []string{"Hello! How can I help you today?"},
		},
		{
			Tag:       domain.IntentTrackOrder,
			Patterns:  []string{"track my order", "where is my order", "order status", "check my order status", "has my order shipped"},
			Responses: []string{"Order {order_number} is currently: {order_status}. {order_info}"},
		},
		{
			Tag:       domain.IntentPricing,
			Patterns:  []string{"how much does it cost", "what is the price", "price of the laptop", "how much is it"},
			Responses: []string{"The {product} costs ${price}."},
		},
		{
			Tag:       domain.IntentHumanAgent,
			Patterns:  []string{"talk to a human", "connect me with an agent", "speak to a real person"},
			Responses: []string{"Let me connect you with a human support agent."},
		},
	}}
}

func newTestPolicy(t *testing.T) *Policy {
	t.Helper()
	req := require.New(t)

	artifact, err := training.Train(testCorpus(), 0.1, slog.Default())
	req.NoError(err)

	screener, err := moderation.NewScreener([]string{"idiot"}, '*', slog.Default())
	req.NoError(err)

	return New(
		Config{
			ConfidenceThreshold: 0.5,
			MaxClarifyAttempts:  1,
			HistoryCap:          10,
			EnrichmentTimeout:   time.Second,
		},
		artifact.Vectorizer,
		artifact.Model,
		artifact.Templates,
		screener,
		enrichment.NewMemoryOrderService(),
		enrichment.NewMemoryProductCatalog(),
		enrichment.NewMemoryShippingService(),
		slog.Default(),
	)
}

func newSession(id string) *session.Context {
	return &session.Context{ID: id, Entities: domain.Entities{}, State: session.StateIdle}
}

func TestClassify(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)

	cases := []struct {
		name     string
		input    string
		expected domain.IntentLabel
	}{
		{"greeting", "hi there", domain.IntentGreeting},
		{"tracking", "track my order", domain.IntentTrackOrder},
		{"pricing", "how much does it cost", domain.IntentPricing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := p.Classify(tc.input)
			req.Equal(tc.expected, result.Intent)
			req.GreaterOrEqual(result.Confidence, 0.5)
		})
	}
}

func TestClassify_EmptyAndGibberish(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)

	result := p.Classify("")
	req.Zero(result.Confidence)

	result = p.Classify("asdf qwerty zxcvb")
	req.Zero(result.Confidence)
}

func TestRespond_Greeting(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	out := p.Respond(context.Background(), sctx, "Hi there!")
	req.Equal(domain.IntentGreeting, out.Result.Intent)
	req.GreaterOrEqual(out.Result.Confidence, 0.5)
	req.Equal("Hello! How can I help you today?", out.Response)
	req.Equal(session.StateIdle, sctx.State)
	// User turn plus bot turn.
	req.Len(sctx.History, 2)
	req.Equal(domain.IntentGreeting, sctx.LastIntent)
}

func TestRespond_TrackOrderWithNumber(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	out := p.Respond(context.Background(), sctx, "Track my order ORD-2024-001")
	req.Equal(domain.IntentTrackOrder, out.Result.Intent)
	req.Contains(out.Response, "ORD-2024-001")
	req.Equal("ORD-2024-001", out.Entities[domain.EntityOrderNumber])
	req.Equal(session.StateIdle, sctx.State)
}

func TestRespond_GibberishFallsBack(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	out := p.Respond(context.Background(), sctx, "asdf qwerty zxcvb")
	req.Zero(out.Result.Confidence)
	req.Contains(fallbackReplies, out.Response)
	req.Equal(session.StateIdle, sctx.State)
}

func TestRespond_ClarificationFlow(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	// Turn 1: pricing intent without a product opens a clarification.
	out := p.Respond(context.Background(), sctx, "How much does it cost?")
	req.Equal(domain.IntentPricing, out.Result.Intent)
	req.Equal(session.StateAwaitingClarification, sctx.State)
	req.Equal(domain.IntentPricing, sctx.PendingIntent)
	req.Contains(out.Response, "Which product")

	// Turn 2: the answer supplies the slot and resolves the intent.
	out = p.Respond(context.Background(), sctx, "the laptop")
	req.Equal(domain.IntentPricing, out.Result.Intent)
	req.Equal(1.0, out.Result.Confidence)
	req.Contains(out.Response, "999.99")
	req.Contains(out.Response, "Laptop")
	req.Equal(session.StateIdle, sctx.State)
	req.Zero(sctx.ClarifyAttempts)
}

func TestRespond_ClarificationGivesUpAfterRetry(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	out := p.Respond(context.Background(), sctx, "Where is my order?")
	req.Equal(session.StateAwaitingClarification, sctx.State)
	req.Contains(out.Response, "order number")

	// The retry still does not supply an order number: hand off.
	out = p.Respond(context.Background(), sctx, "no clue, sorry")
	req.Contains(humanAgentReplies, out.Response)
	req.Equal(session.StateIdle, sctx.State)
	req.Zero(sctx.ClarifyAttempts)
}

func TestRespond_ClarificationResolvedByEntity(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	p.Respond(context.Background(), sctx, "Where is my order?")
	req.Equal(session.StateAwaitingClarification, sctx.State)

	out := p.Respond(context.Background(), sctx, "it's ORD-2024-001")
	req.Equal(domain.IntentTrackOrder, out.Result.Intent)
	req.Contains(out.Response, "ORD-2024-001")
	req.Equal(session.StateIdle, sctx.State)
}

func TestRespond_AbuseShortCircuits(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	// Even a pending clarification is dropped on abuse.
	p.Respond(context.Background(), sctx, "How much does it cost?")
	req.Equal(session.StateAwaitingClarification, sctx.State)

	out := p.Respond(context.Background(), sctx, "you idiot")
	req.True(out.Flagged)
	req.Equal(abuseReply, out.Response)
	req.Equal(domain.IntentHumanAgent, out.Result.Intent)
	req.NotContains(out.LoggedText, "idiot")
	req.Equal(session.StateIdle, sctx.State)
}

func TestRespond_NonEnglishIsDeclined(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	out := p.Respond(context.Background(), sctx, "Bonjour, je voudrais suivre ma commande s'il vous plaît, merci beaucoup")
	req.Equal(nonEnglishReply, out.Response)
	req.NotEmpty(out.Language)
	req.NotEqual("en", out.Language)
}

func TestRespond_HumanAgentIntent(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	out := p.Respond(context.Background(), sctx, "connect me with an agent")
	req.Equal(domain.IntentHumanAgent, out.Result.Intent)
	req.Contains(humanAgentReplies, out.Response)
}

func TestRespond_EntityCarriesAcrossTurns(t *testing.T) {
	req := require.New(t)
	p := newTestPolicy(t)
	sctx := newSession("s1")

	p.Respond(context.Background(), sctx, "hello, my order is ORD-2024-007")
	req.Equal("ORD-2024-007", sctx.Entities[domain.EntityOrderNumber])

	// The slot from turn 1 answers turn 2 without clarification.
	out := p.Respond(context.Background(), sctx, "track my order")
	req.Equal(domain.IntentTrackOrder, out.Result.Intent)
	req.Contains(out.Response, "ORD-2024-007")
	req.Equal(session.StateIdle, sctx.State)
}

func TestTemplates_Fill(t *testing.T) {
	req := require.New(t)

	values := map[string]string{"product": "Laptop", "price": "999.99"}
	req.Equal("The Laptop costs $999.99.", fill("The {product} costs ${price}.", values))

	// Unknown placeholders stay untouched.
	req.Equal("Hello {name}", fill("Hello {name}", nil))
}

func TestTemplates_PickFillable(t *testing.T) {
	req := require.New(t)

	candidates := []string{
		"Order {order_number} is {order_status}.",
		"We ship worldwide.",
	}

	// Without values only the static template qualifies.
	response, ok := pickFillable(candidates, nil)
	req.True(ok)
	req.Equal("We ship worldwide.", response)

	// With values both qualify; the result is always fully resolved.
	values := map[string]string{"order_number": "ORD-2024-001", "order_status": "Shipped"}
	response, ok = pickFillable(candidates, values)
	req.True(ok)
	req.NotContains(response, "{")

	_, ok = pickFillable([]string{"needs {thing}"}, nil)
	req.False(ok)
}
