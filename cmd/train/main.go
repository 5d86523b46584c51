package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mama165/sdk-go/logs"

	"support-bot/training"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// The trainer runs offline, reads the intent corpus and writes the
// model artifact the bot loads at startup.
func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Training terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	intentsPath := flag.String("intents", "intents.json", "Path to the intent corpus")
	modelPath := flag.String("model", "model/artifact.json", "Path of the trained artifact")
	alpha := flag.Float64("alpha", 0.1, "Laplace smoothing factor")
	logLevel := flag.String("log-level", "INFO", "Log level")
	flag.Parse()

	logger := logs.GetLoggerFromString(*logLevel)

	corpus, err := training.LoadCorpus(*intentsPath)
	if err != nil {
		return exitConfig, fmt.Errorf("corpus loading failed: %w", err)
	}

	for tag, count := range corpus.Counts() {
		logger.Debug("Intent loaded", "tag", tag, "patterns", count)
	}

	artifact, err := training.Train(corpus, *alpha, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("training failed: %w", err)
	}

	if err := artifact.Save(*modelPath); err != nil {
		return exitRuntime, fmt.Errorf("artifact writing failed: %w", err)
	}

	logger.Info("Model artifact written",
		"path", *modelPath,
		"intents", len(corpus.Intents),
		"vocabulary", artifact.Vectorizer.Size(),
	)
	return exitOK, nil
}
