package analytics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"support-bot/domain"
	"support-bot/mocks"
)

func repoWith(ctrl *gomock.Controller, records []domain.TurnRecord) *mocks.MockITurnRepository {
	repo := mocks.NewMockITurnRepository(ctrl)
	repo.EXPECT().
		ForEach(gomock.Any()).
		DoAndReturn(func(fn func(domain.TurnRecord) error) error {
			for _, r := range records {
				if err := fn(r); err != nil {
					return err
				}
			}
			return nil
		}).
		AnyTimes()
	return repo
}

func TestBuildReport(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := []domain.TurnRecord{
		{SessionID: "s1", Intent: domain.IntentGreeting, Confidence: 0.9},
		{SessionID: "s1", Intent: domain.IntentTrackOrder, Confidence: 0.8},
		{SessionID: "s2", Intent: domain.IntentTrackOrder, Confidence: 0.2},
		{SessionID: "s2", Intent: domain.IntentHumanAgent, Confidence: 1, Flagged: true},
	}

	report, err := BuildReport(repoWith(ctrl, records), 0.5)
	req.NoError(err)

	req.Equal(4, report.TotalTurns)
	req.Equal(2, report.Sessions)
	req.Equal(1, report.Flagged)
	req.InDelta(0.725, report.AvgConfidence, 1e-9)

	// Intents in deterministic lexicographic order.
	req.Len(report.ByIntent, 3)
	req.Equal(domain.IntentGreeting, report.ByIntent[0].Intent)
	req.Equal(domain.IntentHumanAgent, report.ByIntent[1].Intent)
	req.Equal(domain.IntentTrackOrder, report.ByIntent[2].Intent)

	tracking := report.ByIntent[2]
	req.Equal(2, tracking.Turns)
	req.InDelta(0.5, tracking.AvgConfidence, 1e-9)
	req.Equal(1, tracking.Fallbacks)
}

func TestBuildReport_EmptyLog(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	report, err := BuildReport(repoWith(ctrl, nil), 0.5)
	req.NoError(err)
	req.Zero(report.TotalTurns)
	req.Zero(report.AvgConfidence)
	req.Empty(report.ByIntent)
}

func TestExportTrainingCandidates(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := []domain.TurnRecord{
		{Intent: domain.IntentPricing, Confidence: 0.95, Text: "how much is the laptop"},
		{Intent: domain.IntentPricing, Confidence: 0.92, Text: "how much is the laptop"}, // duplicate
		{Intent: domain.IntentPricing, Confidence: 0.91, Text: "price of the monitor"},
		{Intent: domain.IntentGreeting, Confidence: 0.3, Text: "low confidence, skipped"},
		{Intent: domain.IntentHumanAgent, Confidence: 1, Text: "you ****", Flagged: true},
	}

	path := filepath.Join(t.TempDir(), "learned.json")
	count, err := ExportTrainingCandidates(repoWith(ctrl, records), 0.8, path)
	req.NoError(err)
	req.Equal(1, count)

	raw, err := os.ReadFile(path)
	req.NoError(err)

	var export struct {
		LearnedIntents []LearnedIntent `json:"learned_intents"`
	}
	req.NoError(json.Unmarshal(raw, &export))
	req.Len(export.LearnedIntents, 1)

	learned := export.LearnedIntents[0]
	req.Equal(domain.IntentPricing, learned.Tag)
	req.True(learned.Learned)
	// Deduplicated and sorted.
	req.Equal([]string{"how much is the laptop", "price of the monitor"}, learned.Patterns)
}
