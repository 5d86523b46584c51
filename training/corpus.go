// Package training loads the intents corpus, fits the classification
// pipeline and persists the resulting model artifact.
package training

import (
	"encoding/json"
	"fmt"
	"os"

	"support-bot/domain"
	"support-bot/errors"
)

// Intent is one corpus entry: a tag, its labeled example utterances
// and the candidate responses served for it. Placeholders like
// {order_number} are filled by the dialogue policy at serving time.
type Intent struct {
	Tag       domain.IntentLabel `json:"tag"`
	Patterns  []string           `json:"patterns"`
	Responses []string           `json:"responses"`
}

// Corpus is the full intents file, immutable after load.
type Corpus struct {
	Intents []Intent `json:"intents"`
}

// LoadCorpus reads and decodes the intents JSON file.
func LoadCorpus(path string) (Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	var c Corpus
	if err := json.Unmarshal(raw, &c); err != nil {
		return Corpus{}, fmt.Errorf("decoding corpus %s: %w", path, err)
	}
	if len(c.Intents) == 0 {
		return Corpus{}, errors.ErrEmptyCorpus
	}
	return c, nil
}

// Examples flattens the corpus into labeled training examples,
// preserving file order.
func (c Corpus) Examples() []domain.TrainingExample {
	var examples []domain.TrainingExample
	for _, intent := range c.Intents {
		for _, pattern := range intent.Patterns {
			examples = append(examples, domain.TrainingExample{
				RawText: pattern,
				Label:   intent.Tag,
			})
		}
	}
	return examples
}

// Templates extracts the per-intent response candidates.
func (c Corpus) Templates() map[domain.IntentLabel][]string {
	templates := make(map[domain.IntentLabel][]string, len(c.Intents))
	for _, intent := range c.Intents {
		templates[intent.Tag] = intent.Responses
	}
	return templates
}

// Counts returns the number of training patterns per label.
func (c Corpus) Counts() map[domain.IntentLabel]int {
	counts := make(map[domain.IntentLabel]int, len(c.Intents))
	for _, intent := range c.Intents {
		counts[intent.Tag] = len(intent.Patterns)
	}
	return counts
}
