package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/external/cricbuzz"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/postgres"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

// Scraper holds the wired pipeline and the stores behind it.
type Scraper struct {
	Pipeline *usecase.PipelineService
	Matches  match.Repository
	Points   fantasy.Repository
	db       *sqlx.DB
}

// NewScraper wires the Cricbuzz client, the stores and the pipeline. Without
// persistence the pipeline runs against in-memory stores.
func NewScraper(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Scraper, error) {
	if logger == nil {
		logger = logging.Default()
	}

	client := cricbuzz.NewClient(cricbuzz.ClientConfig{
		BaseURL:         cfg.CricbuzzBaseURL,
		SeriesPath:      cfg.CricbuzzSeriesPath,
		Timeout:         cfg.CricbuzzTimeout,
		MaxRetries:      cfg.CricbuzzMaxRetries,
		Backoff:         cfg.CricbuzzBackoff,
		MatchPause:      cfg.CricbuzzMatchPause,
		ProfileCacheTTL: cfg.ProfileCacheTTL,
		Logger:          logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:             cfg.CricbuzzCircuitEnabled,
			FailureThreshold:    cfg.CricbuzzCircuitFailureCount,
			Cooldown:            cfg.CricbuzzCircuitOpenTimeout,
			HalfOpenMaxRequests: cfg.CricbuzzCircuitHalfOpenMaxReq,
		},
	})

	out := &Scraper{}
	if cfg.PersistEnabled {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		out.db = db
		out.Matches = postgres.NewMatchRepository(db)
		out.Points = postgres.NewPlayerPointsRepository(db)
		logger.Info("postgres store connected", "db", redactDBURL(cfg.DBURL))
	} else {
		out.Matches = memory.NewMatchRepository()
		out.Points = memory.NewPlayerPointsRepository()
		logger.Info("persistence disabled, using in-memory store")
	}

	out.Pipeline = usecase.NewPipelineService(
		client,
		client,
		out.Matches,
		out.Points,
		idgen.NewRunIDGenerator(),
		logger,
		usecase.PipelineConfig{
			Rules:         fantasy.DefaultRules(),
			MatchWorkers:  cfg.PipelineMaxWorkers,
			LookupWorkers: cfg.DotBallWorkers,
			Persist:       cfg.PersistEnabled,
		},
	)
	return out, nil
}

// NewOfflineScorer builds a pipeline with no source or store, for scoring
// previously exported batches.
func NewOfflineScorer(logger *logging.Logger) *usecase.PipelineService {
	return usecase.NewPipelineService(nil, nil, nil, nil, nil, logger, usecase.PipelineConfig{Rules: fantasy.DefaultRules()})
}

func (s *Scraper) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(max(cfg.PipelineMaxWorkers*2, 4))
	db.SetConnMaxIdleTime(time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, errors.Join(fmt.Errorf("%w: ping postgres: %w", usecase.ErrDependencyUnavailable, err), db.Close())
	}
	return db, nil
}
