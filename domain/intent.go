// Package domain contains the core concepts of the support bot.
// Intents form a closed taxonomy fixed at training time.
package domain

// IntentLabel identifies one category of user need.
// The set of valid labels is defined by the training corpus and
// never grows at serving time.
type IntentLabel string

// Tags present in the shipped corpus. The classifier itself is
// label-driven; these constants exist for the dialogue policy table.
const (
	IntentGreeting    IntentLabel = "greeting"
	IntentGoodbye     IntentLabel = "goodbye"
	IntentThanks      IntentLabel = "thanks"
	IntentProductInfo IntentLabel = "product_info"
	IntentPricing     IntentLabel = "pricing"
	IntentPayment     IntentLabel = "payment"
	IntentShipping    IntentLabel = "shipping"
	IntentTrackOrder  IntentLabel = "track_order"
	IntentReturns     IntentLabel = "returns"
	IntentRefund      IntentLabel = "refund_request"
	IntentComplaint   IntentLabel = "complaints"
	IntentAccount     IntentLabel = "account"
	IntentHumanAgent  IntentLabel = "human_agent"
)

// TrainingExample is a single labeled utterance from the corpus.
// Immutable after load.
type TrainingExample struct {
	RawText string
	Label   IntentLabel
}

// ClassificationResult is the classifier's verdict for one utterance.
// Confidence is the normalized posterior of the chosen label, in [0,1].
// Derived data, never persisted as source of truth.
type ClassificationResult struct {
	Intent     IntentLabel
	Confidence float64
}
