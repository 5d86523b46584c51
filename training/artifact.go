package training

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"support-bot/classifier"
	"support-bot/domain"
	"support-bot/errors"
	"support-bot/nlp"
)

const artifactVersion = 1

// Artifact bundles everything the serving path needs: the fitted
// vectorizer, the trained model and the response templates. It is
// loaded once at process start and held read-only; retraining writes
// a whole new artifact (no incremental update).
type Artifact struct {
	Version    int                              `json:"version"`
	TrainedAt  time.Time                        `json:"trained_at"`
	Vectorizer *nlp.Vectorizer                  `json:"vectorizer"`
	Model      *classifier.Model                `json:"model"`
	Templates  map[domain.IntentLabel][]string  `json:"templates"`
}

// Save writes the artifact as indented JSON, creating the directory
// if needed. The write goes through a temp file and rename so a
// concurrent reader never observes a half-written artifact.
func (a *Artifact) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}
	raw, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadArtifact reads a previously trained artifact. A missing file
// maps to ErrModelUnavailable so callers can abort startup with a
// clear diagnostic instead of serving broken classifications.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run the train command first)", errors.ErrModelUnavailable, path)
		}
		return nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decoding artifact %s: %w", path, err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", errors.ErrArtifactVersionUnknown, a.Version, artifactVersion)
	}
	if a.Vectorizer == nil || a.Model == nil {
		return nil, fmt.Errorf("%w: artifact %s is incomplete", errors.ErrModelUnavailable, path)
	}
	return &a, nil
}
