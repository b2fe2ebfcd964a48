package fantasy

import "context"

// Repository describes player points persistence needs from use cases.
type Repository interface {
	InsertPlayerPoints(ctx context.Context, rows []LeaderboardRow) error
	ListByMatch(ctx context.Context, matchID string) ([]LeaderboardRow, error)
	// ListByMatches returns the rows of every given match ordered by total
	// points, highest first.
	ListByMatches(ctx context.Context, matchIDs []string) ([]LeaderboardRow, error)
}
