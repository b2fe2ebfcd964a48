package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/fantasy-cricket/internal/app"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/observability"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cliApp := &cli.App{
		Name:  "scraper",
		Usage: "cricbuzz scorecards to fantasy points",
		Commands: []*cli.Command{
			newRunCommand(),
			newScoreCommand(),
			newExportCommand(),
		},
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// runtime is what every command needs before doing work.
type runtime struct {
	cfg    config.Config
	logger *logging.Logger
	close  func()
}

func bootstrap(c *cli.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"command", c.Command.Name,
	)
	logging.SetDefault(logger)

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	return &runtime{
		cfg:    cfg,
		logger: logger,
		close: func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				logger.Warn("uptrace shutdown failed", "error", err)
			}
			if err := stopProfiler(); err != nil {
				logger.Warn("pyroscope stop failed", "error", err)
			}
			_ = logger.Sync()
		},
	}, nil
}

func newRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "scrape new completed matches, score them and store the points",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "compute the leaderboard without writing to the store"},
			&cli.IntFlag{Name: "max-matches", Usage: "process at most this many new matches (0 = all)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the run result as JSON to this file (- for stdout)"},
			&cli.BoolFlag{Name: "with-entries", Usage: "include the raw batting, bowling and fielding entries in the output"},
		},
		Action: func(c *cli.Context) error {
			if c.Int("max-matches") < 0 {
				return fmt.Errorf("--max-matches must be >= 0")
			}

			rt, err := bootstrap(c)
			if err != nil {
				return err
			}
			defer rt.close()

			scraper, err := app.NewScraper(c.Context, rt.cfg, rt.logger)
			if err != nil {
				return fmt.Errorf("build scraper: %w", err)
			}
			defer func() {
				if err := scraper.Close(); err != nil {
					rt.logger.Warn("close store failed", "error", err)
				}
			}()

			result, err := scraper.Pipeline.Run(c.Context, usecase.RunInput{
				DryRun:     c.Bool("dry-run"),
				MaxMatches: c.Int("max-matches"),
			})
			if errors.Is(err, usecase.ErrNothingToReport) {
				rt.logger.Info("nothing to report", "listed_matches", result.ListedMatches, "skipped", len(result.Skipped))
				return nil
			}
			if err != nil {
				return err
			}

			rt.logger.Info("run finished",
				"run_id", result.RunID,
				"processed", len(result.Processed),
				"skipped", len(result.Skipped),
				"players", len(result.Leaderboard),
				"persisted_rows", result.PersistedRows,
				"duration_ms", result.DurationMs,
			)

			output := c.String("output")
			if output == "" {
				return nil
			}
			if !c.Bool("with-entries") {
				result.Batch = usecase.Batch{Matches: result.Batch.Matches}
			}
			return writeJSON(output, result)
		},
	}
}

func newScoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "recompute the leaderboard from an exported batch without network access",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "batch JSON file (a run result written with --with-entries, or a bare batch)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "-", Usage: "leaderboard JSON destination (- for stdout)"},
		},
		Action: func(c *cli.Context) error {
			rt, err := bootstrap(c)
			if err != nil {
				return err
			}
			defer rt.close()

			batch, err := readBatch(c.String("input"))
			if err != nil {
				return err
			}

			rows, err := app.NewOfflineScorer(rt.logger).Score(c.Context, batch)
			if errors.Is(err, usecase.ErrNothingToReport) {
				rt.logger.Info("nothing to report", "input", c.String("input"))
				return nil
			}
			if err != nil {
				return err
			}

			rt.logger.Info("batch scored", "matches", len(batch.Matches), "players", len(rows))
			return writeJSON(c.String("output"), rows)
		},
	}
}

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write stored player points as JSON",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "match", Aliases: []string{"m"}, Usage: "match id to export (repeatable, default all stored matches)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "-", Usage: "JSON destination (- for stdout)"},
		},
		Action: func(c *cli.Context) error {
			rt, err := bootstrap(c)
			if err != nil {
				return err
			}
			defer rt.close()

			if !rt.cfg.PersistEnabled {
				return fmt.Errorf("%w: export needs DB_URL", usecase.ErrInvalidInput)
			}

			scraper, err := app.NewScraper(c.Context, rt.cfg, rt.logger)
			if err != nil {
				return fmt.Errorf("build scraper: %w", err)
			}
			defer func() {
				if err := scraper.Close(); err != nil {
					rt.logger.Warn("close store failed", "error", err)
				}
			}()

			matchIDs := normalizeMatchIDs(c.StringSlice("match"))
			if len(matchIDs) == 0 {
				matchIDs, err = scraper.Matches.ListIDs(c.Context)
				if err != nil {
					return fmt.Errorf("list stored matches: %w", err)
				}
			}

			export, err := collectExport(c.Context, scraper.Points, matchIDs)
			if err != nil {
				return err
			}
			rt.logger.Info("export ready", "matches", len(export.Matches), "rows", len(export.Leaderboard))
			return writeJSON(c.String("output"), export)
		},
	}
}
