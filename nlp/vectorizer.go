package nlp

import (
	"math"
	"sort"

	"support-bot/errors"
)

// Vectorizer maps token sequences to fixed-length TF-IDF vectors.
// The vocabulary is built once by Fit over the training corpus and is
// immutable afterwards; tokens unseen at fit time contribute nothing
// at transform time. Fields are exported so a trained vectorizer can
// be persisted inside the model artifact.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// Fit builds the vocabulary and inverse-document-frequency weights
// from the normalized training documents. Tokens are indexed in
// lexicographic order so the same corpus always produces the same
// vocabulary layout.
func (v *Vectorizer) Fit(docs [][]string) error {
	if len(docs) == 0 {
		return errors.ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// Smoothed IDF, keeps weights strictly positive even for
		// terms present in every document.
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return nil
}

// Transform maps a token sequence to a TF-IDF vector of dimension
// |Vocabulary|, L2-normalized. Out-of-vocabulary tokens are ignored.
func (v *Vectorizer) Transform(tokens []string) ([]float64, error) {
	if len(v.Vocabulary) == 0 {
		return nil, errors.ErrVocabularyNotFitted
	}

	vec := make([]float64, len(v.Vocabulary))
	for _, tok := range tokens {
		if idx, ok := v.Vocabulary[tok]; ok {
			vec[idx] += v.IDF[idx]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Size returns the vocabulary dimension.
func (v *Vectorizer) Size() int {
	return len(v.Vocabulary)
}
