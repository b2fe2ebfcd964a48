package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
)

type pointsKey struct {
	matchID    string
	playerName string
}

// PlayerPointsRepository keeps rows per match. Like the postgres table it
// derives the total itself and ignores rows already stored for a player.
type PlayerPointsRepository struct {
	mu      sync.RWMutex
	seen    map[pointsKey]struct{}
	byMatch map[string][]fantasy.LeaderboardRow
}

func NewPlayerPointsRepository() *PlayerPointsRepository {
	return &PlayerPointsRepository{
		seen:    make(map[pointsKey]struct{}),
		byMatch: make(map[string][]fantasy.LeaderboardRow),
	}
}

func (r *PlayerPointsRepository) InsertPlayerPoints(_ context.Context, rows []fantasy.LeaderboardRow) error {
	for _, row := range rows {
		if row.MatchID == "" || row.PlayerName == "" {
			return fmt.Errorf("insert player points: match id and player name are required")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		key := pointsKey{matchID: row.MatchID, playerName: row.PlayerName}
		if _, ok := r.seen[key]; ok {
			continue
		}
		r.seen[key] = struct{}{}
		row.TotalPoints = fantasy.Round2(row.BattingPoints + row.BowlingPoints + row.FieldingPoints + row.POTMPoints)
		r.byMatch[row.MatchID] = append(r.byMatch[row.MatchID], row)
	}
	return nil
}

func (r *PlayerPointsRepository) ListByMatch(_ context.Context, matchID string) ([]fantasy.LeaderboardRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]fantasy.LeaderboardRow(nil), r.byMatch[matchID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPoints > out[j].TotalPoints
	})
	return out, nil
}

func (r *PlayerPointsRepository) ListByMatches(_ context.Context, matchIDs []string) ([]fantasy.LeaderboardRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(matchIDs))
	var out []fantasy.LeaderboardRow
	for _, matchID := range matchIDs {
		if _, ok := seen[matchID]; ok {
			continue
		}
		seen[matchID] = struct{}{}
		out = append(out, r.byMatch[matchID]...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPoints > out[j].TotalPoints
	})
	return out, nil
}
