package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"

	"support-bot/analytics"
	"support-bot/bot"
	"support-bot/domain"
	"support-bot/enrichment"
	"support-bot/internal"
	"support-bot/moderation"
	"support-bot/policy"
	"support-bot/repositories"
	"support-bot/session"
	"support-bot/sink"
	"support-bot/training"
	"support-bot/workers"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bot terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the process lifecycle and
// centralizes error reporting so every defer (database close, index
// flush) executes before the program exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	maskChar, err := internal.MaskRune(config.MaskCharacter)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Trained artifact
	artifact, err := training.LoadArtifact(config.ModelFilepath)
	if err != nil {
		return exitConfig, err
	}
	logger.Info("Model artifact loaded",
		"path", config.ModelFilepath,
		"trained_at", artifact.TrainedAt,
		"vocabulary", artifact.Vectorizer.Size(),
	)

	// 3. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}

	if logger.Enabled(ctx, slog.LevelDebug) && config.DebugPort > 0 {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, TurnMapper)
	}

	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 4. Moderation
	blocklist, err := internal.LoadBlocklist(config.BlocklistFilepath)
	if err != nil {
		return exitConfig, err
	}
	screener, err := moderation.NewScreener(blocklist, maskChar, logger)
	if err != nil {
		return exitConfig, fmt.Errorf("screener init failed: %w", err)
	}

	// 5. Dialogue policy & session store
	dialoguePolicy := policy.New(
		policy.Config{
			ConfidenceThreshold: config.ConfidenceThreshold,
			MaxClarifyAttempts:  config.MaxClarifyAttempts,
			HistoryCap:          config.HistoryCap,
			EnrichmentTimeout:   config.EnrichmentTimeout,
		},
		artifact.Vectorizer,
		artifact.Model,
		artifact.Templates,
		screener,
		enrichment.NewMemoryOrderService(),
		enrichment.NewMemoryProductCatalog(),
		enrichment.NewMemoryShippingService(),
		logger,
	)
	store := session.NewStore(config.SessionTTL, config.HistoryCap, logger)

	// 6. Background workers
	turnChan := make(chan domain.TurnRecord, config.BufferSize)
	turnRepository := repositories.NewTurnRepository(db, logger, config.LimitTurns)
	turnIndex := analytics.NewTurnIndex(blugeWriter, logger)

	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(
		workers.NewJanitor(store, config.SweepInterval, logger),
		workers.NewTurnLogger(turnChan, logger,
			sink.NewDiskSink(turnRepository, logger),
			sink.NewIndexSink(turnIndex, logger),
		),
	)

	service := bot.NewService(dialoguePolicy, store, turnChan, config.MaxContentLength, logger)

	// 7. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	supDone := make(chan struct{})
	go func() {
		defer close(supDone)
		sup.Run(ctx)
	}()

	// 8. Interactive loop
	repl(ctx, stop, service, logger)

	// 9. Final Cleanup (Graceful Shutdown)
	// Closing the channel lets the logger drain buffered turns before
	// the deferred database close runs.
	logger.Info("Shutting down gracefully...")
	close(turnChan)
	<-supDone
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

// repl reads utterances from stdin and prints the bot replies until
// the user quits or a signal cancels the context.
func repl(ctx context.Context, stop context.CancelFunc, service bot.IBotService, logger *slog.Logger) {
	sessionID := fmt.Sprintf("cli-%d", os.Getpid())
	prompt := color.New(color.FgCyan).Render("you> ")
	botTag := color.New(color.BgBlack, color.FgGreen).Render("bot>")

	fmt.Println(color.New(color.FgGreen).Render("Support bot ready. Type 'quit' to leave."))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(prompt)
			if !scanner.Scan() {
				return
			}
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				stop()
				return
			}
			text := strings.TrimSpace(line)
			switch strings.ToLower(text) {
			case "quit", "exit", "bye":
				fmt.Printf("%s Goodbye!\n", botTag)
				stop()
				return
			case "":
				continue
			}

			reply, err := service.Respond(ctx, sessionID, text)
			if err != nil {
				logger.Error("Respond failed", "error", err)
				continue
			}
			fmt.Printf("%s %s\n", botTag, reply.Response)
			logger.Debug("Turn completed",
				"intent", reply.Intent,
				"confidence", fmt.Sprintf("%.2f", reply.Confidence),
				"entities", reply.Entities,
			)
		}
	}
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}

// TurnMapper renders one stored turn for the badger debug inspector.
func TurnMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	record, err := repositories.DecodeTurn(val)
	if err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}

	row.Type = string(record.Intent)
	row.Detail = fmt.Sprintf("%s => %s", record.Text, record.Response)
	row.Scores = fmt.Sprintf("confidence:%.2f", record.Confidence)
	return row
}
