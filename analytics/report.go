package analytics

import (
	"sort"

	"github.com/samber/lo"

	"support-bot/domain"
	"support-bot/repositories"
)

// IntentStat aggregates the logged turns of one intent.
type IntentStat struct {
	Intent        domain.IntentLabel
	Turns         int
	AvgConfidence float64
	Fallbacks     int
}

// Report is the offline overview of the bot's performance, computed
// from the badger turn log.
type Report struct {
	TotalTurns    int
	Sessions      int
	Flagged       int
	AvgConfidence float64
	ByIntent      []IntentStat
}

// BuildReport scans the whole turn log. Turns below threshold count
// as fallbacks for their predicted intent.
func BuildReport(repo repositories.ITurnRepository, threshold float64) (Report, error) {
	type acc struct {
		turns     int
		sum       float64
		fallbacks int
	}
	byIntent := make(map[domain.IntentLabel]*acc)
	sessions := make(map[string]struct{})

	var report Report
	var confidenceSum float64
	err := repo.ForEach(func(record domain.TurnRecord) error {
		report.TotalTurns++
		confidenceSum += record.Confidence
		sessions[record.SessionID] = struct{}{}
		if record.Flagged {
			report.Flagged++
		}

		a := byIntent[record.Intent]
		if a == nil {
			a = &acc{}
			byIntent[record.Intent] = a
		}
		a.turns++
		a.sum += record.Confidence
		if record.Confidence < threshold {
			a.fallbacks++
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	report.Sessions = len(sessions)
	if report.TotalTurns > 0 {
		report.AvgConfidence = confidenceSum / float64(report.TotalTurns)
	}

	labels := lo.Keys(byIntent)
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	for _, label := range labels {
		a := byIntent[label]
		report.ByIntent = append(report.ByIntent, IntentStat{
			Intent:        label,
			Turns:         a.turns,
			AvgConfidence: a.sum / float64(a.turns),
			Fallbacks:     a.fallbacks,
		})
	}
	return report, nil
}
