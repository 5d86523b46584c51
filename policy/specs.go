package policy

import "support-bot/domain"

// intentSpec declares what an intent needs before a direct answer is
// possible, and the question to ask when it is missing. Intents
// absent from this table answer directly from their templates.
type intentSpec struct {
	required []domain.EntityType
	clarify  string
}

var intentSpecs = map[domain.IntentLabel]intentSpec{
	domain.IntentTrackOrder: {
		required: []domain.EntityType{domain.EntityOrderNumber},
		clarify:  "I can check that for you. What's your order number? It looks like ORD-2024-001.",
	},
	domain.IntentRefund: {
		required: []domain.EntityType{domain.EntityOrderNumber},
		clarify:  "I can help with a refund. Which order number does it concern?",
	},
	domain.IntentPricing: {
		required: []domain.EntityType{domain.EntityProduct},
		clarify:  "Happy to help with pricing. Which product are you interested in?",
	},
}

func (s intentSpec) missing(ents domain.Entities) []domain.EntityType {
	var missing []domain.EntityType
	for _, e := range s.required {
		if _, ok := ents[e]; !ok {
			missing = append(missing, e)
		}
	}
	return missing
}
