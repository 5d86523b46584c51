package analytics

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"support-bot/domain"
	"support-bot/repositories"
)

// LearnedIntent groups high-confidence utterances under the tag they
// were classified as, in the same shape as the training corpus so
// the export can be reviewed and merged back into it.
type LearnedIntent struct {
	Tag      domain.IntentLabel `json:"tag"`
	Patterns []string           `json:"patterns"`
	Learned  bool               `json:"learned"`
}

type learnedExport struct {
	LearnedIntents []LearnedIntent `json:"learned_intents"`
}

// ExportTrainingCandidates collects logged user turns the classifier
// was confident about and writes them grouped by intent. Flagged
// (censored) turns are excluded. Returns the number of exported tags.
func ExportTrainingCandidates(repo repositories.ITurnRepository, minConfidence float64, path string) (int, error) {
	patterns := make(map[domain.IntentLabel]map[string]struct{})
	err := repo.ForEach(func(record domain.TurnRecord) error {
		if record.Flagged || record.Confidence < minConfidence || record.Text == "" {
			return nil
		}
		if patterns[record.Intent] == nil {
			patterns[record.Intent] = make(map[string]struct{})
		}
		patterns[record.Intent][record.Text] = struct{}{}
		return nil
	})
	if err != nil {
		return 0, err
	}

	var export learnedExport
	tags := make([]domain.IntentLabel, 0, len(patterns))
	for tag := range patterns {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	for _, tag := range tags {
		unique := make([]string, 0, len(patterns[tag]))
		for p := range patterns[tag] {
			unique = append(unique, p)
		}
		sort.Strings(unique)
		export.LearnedIntents = append(export.LearnedIntents, LearnedIntent{
			Tag:      tag,
			Patterns: unique,
			Learned:  true,
		})
	}

	raw, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encoding learned intents: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(export.LearnedIntents), nil
}
