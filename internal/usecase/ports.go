package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

// ScorecardSource fetches the pages one pipeline run reads.
type ScorecardSource interface {
	FetchListing(ctx context.Context) ([]match.Descriptor, error)
	FetchScorecard(ctx context.Context, descriptor match.Descriptor) (scorecard.Scorecard, scorecard.Diagnostics, error)
	FetchPlayerOfMatch(ctx context.Context, descriptor match.Descriptor) (scorecard.PlayerOfMatch, bool, error)
	CountDotBalls(ctx context.Context, ref string) (int, error)
}
