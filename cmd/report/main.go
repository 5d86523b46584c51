package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"support-bot/analytics"
	"support-bot/repositories"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config for the offline report tool. Reads the stores the bot
// writes; read-only open so it can run against a live instance.
type Config struct {
	BadgerFilepath      string  `envconfig:"BADGER_FILEPATH" required:"true"`
	BlugeFilepath       string  `envconfig:"BLUGE_FILEPATH" required:"true"`
	LogLevel            string  `envconfig:"LOG_LEVEL" default:"INFO"`
	ConfidenceThreshold float64 `envconfig:"CONFIDENCE_THRESHOLD" default:"0.5"`
	LowConfidenceLimit  int     `envconfig:"LOW_CONFIDENCE_LIMIT" default:"20"`
	// EXPORT_FILEPATH, when set, writes the high-confidence utterances
	// as retraining candidates in the intent corpus shape.
	ExportFilepath string  `envconfig:"EXPORT_FILEPATH"`
	ExportMinScore float64 `envconfig:"EXPORT_MIN_SCORE" default:"0.8"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	db, err := openReadOnly(config.BadgerFilepath)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer db.Close()

	repo := repositories.NewTurnRepository(db, logger, nil)
	report, err := analytics.BuildReport(repo, config.ConfidenceThreshold)
	if err != nil {
		return exitRuntime, fmt.Errorf("report building failed: %w", err)
	}

	renderSummary(report)
	renderIntents(report)

	if err := renderLowConfidence(ctx, config); err != nil {
		// The index may simply not exist yet, the log report above
		// still stands on its own.
		logger.Warn("Low-confidence listing skipped", "error", err)
	}

	if config.ExportFilepath != "" {
		count, err := analytics.ExportTrainingCandidates(repo, config.ExportMinScore, config.ExportFilepath)
		if err != nil {
			return exitRuntime, fmt.Errorf("export failed: %w", err)
		}
		logger.Info("Retraining candidates exported",
			"path", config.ExportFilepath,
			"patterns", count,
		)
	}

	return exitOK, nil
}

func renderSummary(report analytics.Report) {
	fmt.Println("== Turn log ==")
	table := newTable()
	table.SetHeader([]string{"Turns", "Sessions", "Flagged", "Avg Confidence"})
	table.Append([]string{
		strconv.Itoa(report.TotalTurns),
		strconv.Itoa(report.Sessions),
		strconv.Itoa(report.Flagged),
		fmt.Sprintf("%.2f", report.AvgConfidence),
	})
	table.Render()
	fmt.Println()
}

func renderIntents(report analytics.Report) {
	fmt.Println("== Intent distribution ==")
	table := newTable()
	table.SetHeader([]string{"Intent", "Turns", "Avg Confidence", "Fallbacks"})
	for _, stat := range report.ByIntent {
		table.Append([]string{
			string(stat.Intent),
			strconv.Itoa(stat.Turns),
			fmt.Sprintf("%.2f", stat.AvgConfidence),
			strconv.Itoa(stat.Fallbacks),
		})
	}
	table.Render()
	fmt.Println()
}

// renderLowConfidence lists the utterances the classifier was least
// sure about, the primary candidates for new training patterns.
func renderLowConfidence(ctx context.Context, config Config) error {
	reader, err := bluge.OpenReader(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return err
	}
	defer reader.Close()

	search := analytics.NewTurnSearch(reader)
	hits, total, err := search.LowConfidence(ctx, config.ConfidenceThreshold, config.LowConfidenceLimit)
	if err != nil {
		return err
	}

	fmt.Printf("== Low-confidence turns (%d total) ==\n", total)
	table := newTable()
	table.SetHeader([]string{"Session", "Intent", "Confidence", "Text"})
	for _, hit := range hits {
		table.Append([]string{
			hit.SessionID,
			string(hit.Intent),
			fmt.Sprintf("%.2f", hit.Confidence),
			hit.Text,
		})
	}
	table.Render()
	return nil
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func openReadOnly(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
