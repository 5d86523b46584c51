package internal

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	IntentsFilepath   string  `env:"INTENTS_FILEPATH,required=true"`
	ModelFilepath     string  `env:"MODEL_FILEPATH,required=true"`
	BadgerFilepath    string  `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath     string  `env:"BLUGE_FILEPATH,required=true"`
	BlocklistFilepath string  `env:"BLOCKLIST_FILEPATH"`
	LogLevel          string  `env:"LOG_LEVEL,required=true"`
	MaskCharacter     string  `env:"MASK_CHARACTER,required=true"`
	LimitTurns        *int    `env:"LIMIT_TURNS"`
	DebugPort         int     `env:"DEBUG_PORT"`

	ConfidenceThreshold float64 `env:"CONFIDENCE_THRESHOLD,required=true"`
	MaxClarifyAttempts  int     `env:"MAX_CLARIFY_ATTEMPTS,required=true"`
	HistoryCap          int     `env:"HISTORY_CAP,required=true"`
	BufferSize          int     `env:"BUFFER_SIZE,required=true"`
	MaxContentLength    int     `env:"MAX_CONTENT_LENGTH,required=true"`

	SessionTTL        time.Duration `env:"SESSION_TTL,required=true"`
	SweepInterval     time.Duration `env:"SWEEP_INTERVAL,required=true"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,required=true"`
	EnrichmentTimeout time.Duration `env:"ENRICHMENT_TIMEOUT,required=true"`
}

// MaskRune validates that the configured mask is one single character.
func MaskRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MASK_CHARACTER must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}

// LoadBlocklist reads one term per line, skipping blanks and comments.
// An empty filepath yields an empty blocklist, abuse screening then
// masks nothing.
func LoadBlocklist(filepath string) ([]string, error) {
	if filepath == "" {
		return nil, nil
	}
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("blocklist opening failed: %w", err)
	}
	defer file.Close()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	return terms, scanner.Err()
}
