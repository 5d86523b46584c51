// Package classifier implements the multinomial Naive Bayes model
// mapping TF-IDF vectors to a probability distribution over intents.
package classifier

import (
	"math"
	"sort"

	"support-bot/domain"
	"support-bot/errors"
)

const defaultAlpha = 0.1

// Model is a trained multinomial Naive Bayes classifier.
// Read-only during serving; retraining produces a new Model.
// Fields are exported for artifact persistence.
type Model struct {
	// Labels in deterministic (lexicographic) order.
	Labels []domain.IntentLabel `json:"labels"`
	// LogPriors per label, from label frequencies in the corpus.
	LogPriors map[domain.IntentLabel]float64 `json:"log_priors"`
	// LogLikelihoods per label: one smoothed log-likelihood per feature.
	LogLikelihoods map[domain.IntentLabel][]float64 `json:"log_likelihoods"`
	// Fallback is the most frequent training label, returned with
	// confidence 0 when an input vectorizes to all zeros.
	Fallback domain.IntentLabel `json:"fallback"`
	Alpha    float64            `json:"alpha"`
}

// Train fits a model from vectorized examples. Additive smoothing with
// alpha avoids zero probability for features unseen under a label; a
// non-positive alpha selects the default. Deterministic given the same
// vectors and labels.
func Train(vectors [][]float64, labels []domain.IntentLabel, alpha float64) (*Model, error) {
	if len(vectors) == 0 || len(vectors) != len(labels) {
		return nil, errors.ErrEmptyCorpus
	}
	if alpha <= 0 {
		alpha = defaultAlpha
	}

	dim := len(vectors[0])
	counts := make(map[domain.IntentLabel][]float64)
	docs := make(map[domain.IntentLabel]int)
	for i, vec := range vectors {
		label := labels[i]
		if counts[label] == nil {
			counts[label] = make([]float64, dim)
		}
		for f, x := range vec {
			counts[label][f] += x
		}
		docs[label]++
	}

	ordered := make([]domain.IntentLabel, 0, len(counts))
	for label := range counts {
		ordered = append(ordered, label)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	m := &Model{
		Labels:         ordered,
		LogPriors:      make(map[domain.IntentLabel]float64, len(ordered)),
		LogLikelihoods: make(map[domain.IntentLabel][]float64, len(ordered)),
		Alpha:          alpha,
	}

	total := float64(len(vectors))
	best := 0
	for _, label := range ordered {
		m.LogPriors[label] = math.Log(float64(docs[label]) / total)

		var sum float64
		for _, c := range counts[label] {
			sum += c
		}
		denom := math.Log(sum + alpha*float64(dim))
		lik := make([]float64, dim)
		for f, c := range counts[label] {
			lik[f] = math.Log(c+alpha) - denom
		}
		m.LogLikelihoods[label] = lik

		// Ties resolved by label order, which is already deterministic.
		if docs[label] > best {
			best = docs[label]
			m.Fallback = label
		}
	}
	return m, nil
}

// Predict computes the posterior per label in log-space and returns
// the arg-max label with its normalized probability. An all-zero
// vector signals out-of-vocabulary input and fails soft: the most
// frequent training label with confidence 0.
func (m *Model) Predict(vector []float64) domain.ClassificationResult {
	if isZero(vector) {
		return domain.ClassificationResult{Intent: m.Fallback, Confidence: 0}
	}

	scores := make([]float64, len(m.Labels))
	for i, label := range m.Labels {
		score := m.LogPriors[label]
		lik := m.LogLikelihoods[label]
		for f, x := range vector {
			if x != 0 {
				score += x * lik[f]
			}
		}
		scores[i] = score
	}

	bestIdx := 0
	for i, s := range scores {
		if s > scores[bestIdx] {
			bestIdx = i
		}
	}

	// Normalize with log-sum-exp to avoid underflow.
	maxScore := scores[bestIdx]
	var denom float64
	for _, s := range scores {
		denom += math.Exp(s - maxScore)
	}
	return domain.ClassificationResult{
		Intent:     m.Labels[bestIdx],
		Confidence: 1 / denom,
	}
}

func isZero(vector []float64) bool {
	for _, x := range vector {
		if x != 0 {
			return false
		}
	}
	return true
}
