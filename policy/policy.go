// Package policy implements the dialogue state machine: given the
// classifier's verdict and the session context it decides whether to
// answer directly, ask a clarifying follow-up, or fall back, and
// renders the response text.
package policy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"

	"support-bot/classifier"
	"support-bot/domain"
	"support-bot/entities"
	"support-bot/enrichment"
	"support-bot/moderation"
	"support-bot/nlp"
	"support-bot/session"
)

// Texts shorter than this are too ambiguous for language detection
// ("ok", "si", "no" trip it constantly).
const minLangDetectLen = 20

type Config struct {
	// ConfidenceThreshold below which the fallback path is taken.
	ConfidenceThreshold float64
	// MaxClarifyAttempts before giving up on a pending intent and
	// offering a human agent.
	MaxClarifyAttempts int
	// HistoryCap bounds the per-session turn history (FIFO).
	HistoryCap int
	// EnrichmentTimeout bounds every external lookup.
	EnrichmentTimeout time.Duration
}

// Policy is safe for concurrent use: the trained artifacts are
// read-only and all session mutation happens on the context passed
// in, which the store keeps locked for the duration of the turn.
type Policy struct {
	cfg       Config
	vec       *nlp.Vectorizer
	model     *classifier.Model
	templates map[domain.IntentLabel][]string
	screener  *moderation.Screener
	orders    enrichment.IOrderService
	catalog   enrichment.IProductCatalog
	shipping  enrichment.IShippingService
	log       *slog.Logger
}

func New(
	cfg Config,
	vec *nlp.Vectorizer,
	model *classifier.Model,
	templates map[domain.IntentLabel][]string,
	screener *moderation.Screener,
	orders enrichment.IOrderService,
	catalog enrichment.IProductCatalog,
	shipping enrichment.IShippingService,
	log *slog.Logger,
) *Policy {
	return &Policy{
		cfg:       cfg,
		vec:       vec,
		model:     model,
		templates: templates,
		screener:  screener,
		orders:    orders,
		catalog:   catalog,
		shipping:  shipping,
		log:       log,
	}
}

// Classify runs the stateless pipeline: normalize, vectorize,
// predict. Empty or out-of-vocabulary input yields the most frequent
// training intent with confidence 0, which routes to fallback.
func (p *Policy) Classify(text string) domain.ClassificationResult {
	tokens := nlp.Normalize(text)
	if len(tokens) == 0 {
		return domain.ClassificationResult{Intent: p.model.Fallback, Confidence: 0}
	}
	vec, err := p.vec.Transform(tokens)
	if err != nil {
		// Unfitted vectorizer is a startup bug; degrade to fallback.
		p.log.Error("Vectorizer transform failed", "error", err)
		return domain.ClassificationResult{Intent: p.model.Fallback, Confidence: 0}
	}
	return p.model.Predict(vec)
}

// Outcome of one dialogue turn.
type Outcome struct {
	Response string
	Result   domain.ClassificationResult
	// Entities after merging this turn's extraction into the session.
	Entities domain.Entities
	Language string
	Flagged  bool
	// LoggedText is the censored form persisted in the turn log.
	LoggedText string
}

// Respond executes one turn against an exclusively-owned session
// context. It never returns an error: every failure degrades to a
// textual response and a logged diagnostic.
func (p *Policy) Respond(ctx context.Context, sctx *session.Context, text string) Outcome {
	out := Outcome{LoggedText: text, Language: detectLanguage(text)}

	// Abusive input short-circuits everything, including a pending
	// clarification, and is stored censored.
	screened := p.screener.Screen(text)
	if screened.Flagged {
		out.Flagged = true
		out.LoggedText = screened.Censored
		out.Result = domain.ClassificationResult{Intent: domain.IntentHumanAgent, Confidence: 1}
		out.Response = abuseReply
		sctx.ResolveClarification()
		p.commit(sctx, out)
		return out
	}

	if out.Language != "" && out.Language != "en" {
		out.Result = domain.ClassificationResult{Intent: p.model.Fallback, Confidence: 0}
		out.Response = nonEnglishReply
		p.commit(sctx, out)
		return out
	}

	extracted := entities.Extract(text)
	sctx.Entities = sctx.Entities.Merge(extracted)

	if sctx.State == session.StateAwaitingClarification {
		out = p.resumeClarification(ctx, sctx, text, out)
	} else {
		out = p.handleIdle(ctx, sctx, text, out)
	}

	out.Entities = sctx.Entities.Merge(nil)
	p.commit(sctx, out)
	return out
}

// handleIdle is the Idle transition: classify, gate on the threshold,
// then answer or open a clarification.
func (p *Policy) handleIdle(ctx context.Context, sctx *session.Context, text string, out Outcome) Outcome {
	result := p.Classify(text)
	out.Result = result

	if result.Confidence < p.cfg.ConfidenceThreshold {
		out.Response = pick(fallbackReplies)
		return out
	}

	if result.Intent == domain.IntentHumanAgent {
		out.Response = pick(humanAgentReplies)
		return out
	}

	spec := intentSpecs[result.Intent]
	p.resolveProduct(ctx, sctx, text, spec)

	if missing := spec.missing(sctx.Entities); len(missing) > 0 {
		sctx.AwaitClarification(result.Intent)
		out.Response = spec.clarify
		return out
	}

	out.Response = p.answer(ctx, sctx, result.Intent)
	return out
}

// resumeClarification treats the new text primarily as supplying the
// slot missing for the pending intent. After MaxClarifyAttempts
// failed retries the policy gives up and offers a human agent.
func (p *Policy) resumeClarification(ctx context.Context, sctx *session.Context, text string, out Outcome) Outcome {
	pending := sctx.PendingIntent
	spec := intentSpecs[pending]
	p.resolveProduct(ctx, sctx, text, spec)

	// Slot supplied by context, not by the classifier.
	out.Result = domain.ClassificationResult{Intent: pending, Confidence: 1}

	if missing := spec.missing(sctx.Entities); len(missing) > 0 {
		if sctx.ClarifyAttempts >= p.cfg.MaxClarifyAttempts {
			p.log.Debug("Clarification exhausted", "session", sctx.ID, "intent", pending)
			sctx.ResolveClarification()
			out.Response = pick(humanAgentReplies)
			return out
		}
		sctx.AwaitClarification(pending)
		out.Response = spec.clarify
		return out
	}

	sctx.ResolveClarification()
	out.Response = p.answer(ctx, sctx, pending)
	return out
}

// answer renders the final response for an intent whose required
// slots are all present, calling enrichment services as needed.
func (p *Policy) answer(ctx context.Context, sctx *session.Context, intent domain.IntentLabel) string {
	values := placeholderValues(sctx.Entities)

	if err := p.enrich(ctx, intent, sctx.Entities, values); err != nil {
		p.log.Warn("Enrichment failed, degrading", "intent", intent, "error", err)
		return serviceDownReply
	}

	candidates := p.templates[intent]
	if response, ok := pickFillable(candidates, values); ok {
		return response
	}
	p.log.Warn("No fillable template", "intent", intent)
	return pick(fallbackReplies)
}

// enrich fills intent-specific placeholder values from the external
// services. Each call is bounded by the configured timeout.
func (p *Policy) enrich(ctx context.Context, intent domain.IntentLabel, ents domain.Entities, values map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.EnrichmentTimeout)
	defer cancel()

	switch intent {
	case domain.IntentTrackOrder:
		status, err := p.orders.Status(ctx, ents[domain.EntityOrderNumber])
		if err != nil {
			return err
		}
		values["order_status"] = status.Status
		values["order_info"] = status.Info

	case domain.IntentPricing, domain.IntentProductInfo:
		name, ok := ents[domain.EntityProduct]
		if !ok {
			return nil // product_info answers generically without a product
		}
		product, err := p.catalog.Price(ctx, name)
		if err != nil {
			return err
		}
		values["product"] = product.Name
		values["price"] = fmt.Sprintf("%.2f", product.Price)
		values["product_description"] = product.Description

	case domain.IntentShipping:
		options, err := p.shipping.Options(ctx)
		if err != nil {
			return err
		}
		parts := make([]string, 0, len(options))
		for _, o := range options {
			parts = append(parts, fmt.Sprintf("%s (%s, %s)", o.Name, o.Duration, o.Cost))
		}
		values["shipping_options"] = strings.Join(parts, ", ")
	}
	return nil
}

// resolveProduct tries to recognize a catalog product mentioned in
// the text when the intent needs one. Porter stems are prefixes of
// the full word in practice, so a substring match against the
// catalog works ("headphon" -> "Headphones").
func (p *Policy) resolveProduct(ctx context.Context, sctx *session.Context, text string, spec intentSpec) {
	if _, ok := sctx.Entities[domain.EntityProduct]; ok {
		return
	}
	needsProduct := false
	for _, e := range spec.required {
		if e == domain.EntityProduct {
			needsProduct = true
		}
	}
	if !needsProduct {
		return
	}

	lookupCtx, cancel := context.WithTimeout(ctx, p.cfg.EnrichmentTimeout)
	defer cancel()
	for _, token := range nlp.Normalize(text) {
		matches, err := p.catalog.Search(lookupCtx, token)
		if err != nil {
			p.log.Warn("Product lookup failed", "error", err)
			return
		}
		if len(matches) > 0 {
			sctx.Entities[domain.EntityProduct] = matches[0].Name
			return
		}
	}
}

// commit appends the user and bot turns to the bounded history and
// records the last intent.
func (p *Policy) commit(sctx *session.Context, out Outcome) {
	now := time.Now().UTC()
	sctx.Append(domain.Turn{
		Sender:     domain.SenderUser,
		Text:       out.LoggedText,
		Intent:     out.Result.Intent,
		Confidence: out.Result.Confidence,
		At:         now,
	}, p.cfg.HistoryCap)
	sctx.Append(domain.Turn{
		Sender: domain.SenderBot,
		Text:   out.Response,
		At:     now,
	}, p.cfg.HistoryCap)
	sctx.LastIntent = out.Result.Intent
}

func placeholderValues(ents domain.Entities) map[string]string {
	values := make(map[string]string, len(ents))
	for k, v := range ents {
		values[string(k)] = v
	}
	return values
}

func detectLanguage(text string) string {
	if utf8.RuneCountInString(text) < minLangDetectLen {
		return ""
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
