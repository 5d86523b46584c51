package training

import (
	"fmt"
	"log/slog"
	"time"

	"support-bot/classifier"
	"support-bot/domain"
	"support-bot/errors"
	"support-bot/nlp"
)

// Train runs the full pipeline: normalize every pattern, fit the
// TF-IDF vocabulary on the corpus, then fit the Naive Bayes model.
// Patterns that normalize to nothing (pure stopwords or punctuation)
// are skipped with a warning, they would only add zero vectors.
func Train(c Corpus, alpha float64, log *slog.Logger) (*Artifact, error) {
	examples := c.Examples()
	if len(examples) == 0 {
		return nil, errors.ErrEmptyCorpus
	}

	var docs [][]string
	var labels []domain.IntentLabel
	for _, ex := range examples {
		tokens := nlp.Normalize(ex.RawText)
		if len(tokens) == 0 {
			log.Warn("Skipping pattern with no usable tokens",
				"pattern", ex.RawText, "tag", ex.Label)
			continue
		}
		docs = append(docs, tokens)
		labels = append(labels, ex.Label)
	}
	if len(docs) == 0 {
		return nil, errors.ErrEmptyCorpus
	}

	vectorizer := nlp.NewVectorizer()
	if err := vectorizer.Fit(docs); err != nil {
		return nil, fmt.Errorf("fitting vectorizer: %w", err)
	}

	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vec, err := vectorizer.Transform(doc)
		if err != nil {
			return nil, fmt.Errorf("vectorizing corpus: %w", err)
		}
		vectors[i] = vec
	}

	model, err := classifier.Train(vectors, labels, alpha)
	if err != nil {
		return nil, fmt.Errorf("training classifier: %w", err)
	}

	log.Info("Model trained",
		"examples", len(docs),
		"vocabulary", vectorizer.Size(),
		"labels", len(model.Labels))

	return &Artifact{
		Version:    artifactVersion,
		TrainedAt:  time.Now().UTC(),
		Vectorizer: vectorizer,
		Model:      model,
		Templates:  c.Templates(),
	}, nil
}
