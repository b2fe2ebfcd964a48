package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultMatchWorkers  = 2
	defaultLookupWorkers = 4

	skipReasonExisting    = "already processed"
	skipReasonPending     = "result pending"
	skipReasonInvalid     = "invalid descriptor"
	skipReasonUnavailable = "scorecard unavailable"
)

type PipelineConfig struct {
	Rules         fantasy.Rules
	MatchWorkers  int
	LookupWorkers int
	Persist       bool
}

type RunInput struct {
	// DryRun computes the leaderboard without touching the store.
	DryRun bool
	// MaxMatches caps how many new matches are processed; zero means all.
	MaxMatches int
}

type SkippedMatch struct {
	MatchID string `json:"match_id"`
	Reason  string `json:"reason"`
}

type RunResult struct {
	RunID          string                   `json:"run_id"`
	ListedMatches  int                      `json:"listed_matches"`
	Processed      []string                 `json:"processed"`
	Skipped        []SkippedMatch           `json:"skipped"`
	Batch          Batch                    `json:"batch"`
	Leaderboard    []fantasy.LeaderboardRow `json:"leaderboard"`
	PersistedRows  int                      `json:"persisted_rows"`
	AliasConflicts int                      `json:"alias_conflicts"`
	DurationMs     int64                    `json:"duration_ms"`
}

// PipelineService runs listing, scraping, reconciliation, scoring and
// persistence for new completed matches of one series.
type PipelineService struct {
	source     ScorecardSource
	directory  player.Directory
	matchRepo  match.Repository
	pointsRepo fantasy.Repository
	ids        id.Generator
	validate   *validator.Validate
	logger     *logging.Logger
	cfg        PipelineConfig
}

func NewPipelineService(
	source ScorecardSource,
	directory player.Directory,
	matchRepo match.Repository,
	pointsRepo fantasy.Repository,
	ids id.Generator,
	logger *logging.Logger,
	cfg PipelineConfig,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewRunIDGenerator()
	}
	if cfg.MatchWorkers <= 0 {
		cfg.MatchWorkers = defaultMatchWorkers
	}
	if cfg.LookupWorkers <= 0 {
		cfg.LookupWorkers = defaultLookupWorkers
	}
	if cfg.Rules.RunMilestone == 0 {
		cfg.Rules = fantasy.DefaultRules()
	}

	return &PipelineService{
		source:     source,
		directory:  directory,
		matchRepo:  matchRepo,
		pointsRepo: pointsRepo,
		ids:        ids,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger.Named("pipeline"),
		cfg:        cfg,
	}
}

type matchOutcome struct {
	index      int
	descriptor match.Descriptor
	card       scorecard.Scorecard
	potm       *scorecard.PlayerOfMatch
	ok         bool
}

func (s *PipelineService) Run(ctx context.Context, input RunInput) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run", attribute.Bool("dry_run", input.DryRun))
	defer span.End()

	started := time.Now()
	runID, err := s.ids.NewID()
	if err != nil {
		return RunResult{}, fmt.Errorf("generate run id: %w", err)
	}
	logger := s.logger.With("run_id", runID)
	result := RunResult{RunID: runID}
	persist := s.cfg.Persist && !input.DryRun

	existing := make(map[string]struct{})
	if persist {
		ids, err := s.matchRepo.ListIDs(ctx)
		if err != nil {
			return result, fmt.Errorf("%w: list stored matches: %w", ErrDependencyUnavailable, err)
		}
		for _, matchID := range ids {
			existing[matchID] = struct{}{}
		}
		logger.InfoContext(ctx, "loaded stored matches", "count", len(existing))
	}

	listing, err := s.source.FetchListing(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch match listing: %w", err)
	}
	result.ListedMatches = len(listing)

	pending := make([]match.Descriptor, 0, len(listing))
	for _, descriptor := range listing {
		if err := s.validate.Struct(descriptor); err != nil {
			result.Skipped = append(result.Skipped, SkippedMatch{MatchID: descriptor.ID, Reason: skipReasonInvalid})
			logger.WarnContext(ctx, "skipping invalid match descriptor", "match_id", descriptor.ID, "error", err)
			continue
		}
		switch {
		case isExisting(existing, descriptor.ID):
			result.Skipped = append(result.Skipped, SkippedMatch{MatchID: descriptor.ID, Reason: skipReasonExisting})
		case !descriptor.IsComplete():
			result.Skipped = append(result.Skipped, SkippedMatch{MatchID: descriptor.ID, Reason: skipReasonPending})
		default:
			pending = append(pending, descriptor)
		}
	}
	if input.MaxMatches > 0 && len(pending) > input.MaxMatches {
		pending = pending[:input.MaxMatches]
	}
	logger.InfoContext(ctx, "new completed matches to process", "count", len(pending), "listed", len(listing))

	outcomes, err := s.processMatches(ctx, logger, pending)
	if err != nil {
		return result, err
	}

	var batch Batch
	for _, outcome := range outcomes {
		if !outcome.ok {
			result.Skipped = append(result.Skipped, SkippedMatch{MatchID: outcome.descriptor.ID, Reason: skipReasonUnavailable})
			continue
		}
		batch.Add(outcome.descriptor, outcome.card, outcome.potm)
		result.Processed = append(result.Processed, outcome.descriptor.ID)
	}
	result.Batch = batch

	if batch.Empty() {
		logger.WarnContext(ctx, "no player data collected, nothing to score")
		result.DurationMs = time.Since(started).Milliseconds()
		return result, ErrNothingToReport
	}

	rows, conflicts := s.score(ctx, logger, &result.Batch)
	result.Leaderboard = rows
	result.AliasConflicts = conflicts

	if persist {
		persisted, err := s.persist(ctx, logger, result.Batch.Matches, rows)
		result.PersistedRows = persisted
		if err != nil {
			result.DurationMs = time.Since(started).Milliseconds()
			return result, err
		}
	}

	result.DurationMs = time.Since(started).Milliseconds()
	logger.InfoContext(ctx, "pipeline run complete",
		"processed", len(result.Processed),
		"skipped", len(result.Skipped),
		"players", len(rows),
		"persisted_rows", result.PersistedRows,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// Score reconciles and scores a previously exported batch without any
// network or store access.
func (s *PipelineService) Score(ctx context.Context, batch Batch) ([]fantasy.LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Score")
	defer span.End()

	if batch.Empty() {
		return nil, ErrNothingToReport
	}
	rows, _ := s.score(ctx, s.logger, &batch)
	return rows, nil
}

func (s *PipelineService) processMatches(ctx context.Context, logger *logging.Logger, pending []match.Descriptor) ([]matchOutcome, error) {
	if len(pending) == 0 {
		return nil, nil
	}

	workers := pool.NewWithResults[matchOutcome]().
		WithContext(ctx).
		WithMaxGoroutines(s.cfg.MatchWorkers)
	for idx, descriptor := range pending {
		idx, descriptor := idx, descriptor
		workers.Go(func(ctx context.Context) (matchOutcome, error) {
			return s.processMatch(ctx, logger, idx, len(pending), descriptor)
		})
	}

	outcomes, err := workers.Wait()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(outcomes, func(i, j int) bool { return outcomes[i].index < outcomes[j].index })
	return outcomes, nil
}

// processMatch only returns an error for cancellation; every other failure
// skips the match.
func (s *PipelineService) processMatch(ctx context.Context, logger *logging.Logger, idx, total int, descriptor match.Descriptor) (matchOutcome, error) {
	outcome := matchOutcome{index: idx, descriptor: descriptor}
	logger = logger.With("match_id", descriptor.ID)
	logger.InfoContext(ctx, "processing match", "position", idx+1, "total", total, "title", descriptor.Title)

	card, diag, err := s.source.FetchScorecard(ctx, descriptor)
	if err != nil {
		if ctx.Err() != nil {
			return outcome, ctx.Err()
		}
		if stderrors.Is(err, ErrScorecardUnavailable) {
			logger.WarnContext(ctx, "scorecard not available yet, skipping", "error", err)
		} else {
			logger.ErrorContext(ctx, "fetch scorecard failed, skipping", "error", err)
		}
		return outcome, nil
	}
	if diag.MissingTeamHeaders {
		logger.WarnContext(ctx, "scorecard lacks innings headers, using listing teams", "teams", card.TeamNames)
	}
	if diag.DidNotBatSections > 0 && !diag.DidNotBatAttributed {
		logger.WarnContext(ctx, "did-not-bat listings not attributed", "sections", diag.DidNotBatSections)
	}

	stats, err := hydrateScorecard(ctx, &card, s.directory, s.source, s.cfg.LookupWorkers, logger)
	if err != nil {
		if ctx.Err() != nil {
			return outcome, ctx.Err()
		}
		logger.ErrorContext(ctx, "hydrate scorecard failed, skipping", "error", err)
		return outcome, nil
	}

	potm, found, err := s.source.FetchPlayerOfMatch(ctx, descriptor)
	switch {
	case err != nil:
		logger.WarnContext(ctx, "player of the match lookup failed", "error", err)
	case found:
		potm.PlayerName = s.playerOfMatchName(ctx, logger, potm)
		outcome.potm = &potm
	default:
		logger.InfoContext(ctx, "no player of the match on match page")
	}

	logger.InfoContext(ctx, "match parsed",
		"innings", diag.InningsSections,
		"batting_rows", len(card.Batting),
		"bowling_rows", len(card.Bowling),
		"fielders", len(card.Fielding),
		"did_not_bat", len(card.DidNotBat),
		"unresolved_names", stats.UnresolvedNames,
		"failed_dot_lookups", stats.FailedDotLookups,
	)
	outcome.card = card
	outcome.ok = true
	return outcome, nil
}

// playerOfMatchName prefers the profile name behind the award link and falls
// back to the link text.
func (s *PipelineService) playerOfMatchName(ctx context.Context, logger *logging.Logger, potm scorecard.PlayerOfMatch) string {
	if potm.PlayerID == "" {
		return potm.PlayerName
	}
	name, err := s.directory.ResolveNameByID(ctx, potm.PlayerID)
	if err != nil {
		logger.WarnContext(ctx, "player of the match profile lookup failed", "player_id", potm.PlayerID, "error", err)
		return potm.PlayerName
	}
	if !player.IsResolved(name) {
		return potm.PlayerName
	}
	return name
}

func (s *PipelineService) score(ctx context.Context, logger *logging.Logger, batch *Batch) ([]fantasy.LeaderboardRow, int) {
	stats := reconcileNames(ctx, batch, logger)
	logger.InfoContext(ctx, "names reconciled",
		"aliases", stats.Aliases,
		"collisions", stats.Collisions,
		"unresolved_fielders", stats.UnresolvedFielders,
	)

	rows := fantasy.BuildLeaderboard(s.cfg.Rules, batch.leaderboardInput())
	valid := rows[:0]
	for _, row := range rows {
		if err := s.validate.Struct(row); err != nil {
			logger.WarnContext(ctx, "dropping invalid leaderboard row", "player", row.PlayerName, "match_id", row.MatchID, "error", err)
			continue
		}
		if err := row.Validate(); err != nil {
			logger.WarnContext(ctx, "dropping inconsistent leaderboard row", "error", err)
			continue
		}
		valid = append(valid, row)
	}
	return valid, stats.Collisions
}

// persist stores processed matches then their points. Matches already in the
// store or still pending are never written.
func (s *PipelineService) persist(ctx context.Context, logger *logging.Logger, matches []match.Descriptor, rows []fantasy.LeaderboardRow) (int, error) {
	for _, descriptor := range matches {
		if !descriptor.IsComplete() {
			continue
		}
		exists, err := s.matchRepo.Exists(ctx, descriptor.ID)
		if err != nil {
			return 0, fmt.Errorf("%w: check match %s: %w", ErrDependencyUnavailable, descriptor.ID, err)
		}
		if exists {
			logger.InfoContext(ctx, "match already stored, skipping insert", "match_id", descriptor.ID)
			continue
		}
		if err := s.matchRepo.Insert(ctx, match.Record{Descriptor: descriptor, Processed: true}); err != nil {
			return 0, fmt.Errorf("%w: insert match %s: %w", ErrDependencyUnavailable, descriptor.ID, err)
		}
	}

	if len(rows) == 0 {
		return 0, nil
	}
	if err := s.pointsRepo.InsertPlayerPoints(ctx, rows); err != nil {
		return 0, fmt.Errorf("%w: insert player points: %w", ErrDependencyUnavailable, err)
	}
	logger.InfoContext(ctx, "player points stored", "rows", len(rows))
	return len(rows), nil
}

func isExisting(existing map[string]struct{}, matchID string) bool {
	_, ok := existing[matchID]
	return ok
}
