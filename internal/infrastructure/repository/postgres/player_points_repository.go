package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type PlayerPointsRepository struct {
	db *sqlx.DB
}

func NewPlayerPointsRepository(db *sqlx.DB) *PlayerPointsRepository {
	return &PlayerPointsRepository{db: db}
}

// InsertPlayerPoints writes all rows in one transaction. Rows already stored
// for the same match and player are left untouched.
func (r *PlayerPointsRepository) InsertPlayerPoints(ctx context.Context, rows []fantasy.LeaderboardRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx insert player points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	models := playerPointsInsertModels(rows)
	for _, bounds := range chunkBounds(len(models), insertChunkSize) {
		query, args, err := qb.InsertModels("player_points", models[bounds[0]:bounds[1]], "ON CONFLICT (match_id, player_name) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert player points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("insert player points: match row missing: %w", err)
			}
			return fmt.Errorf("insert player points: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert player points: %w", err)
	}
	return nil
}

func (r *PlayerPointsRepository) ListByMatch(ctx context.Context, matchID string) ([]fantasy.LeaderboardRow, error) {
	return r.list(ctx, qb.Eq("match_id", matchID))
}

func (r *PlayerPointsRepository) ListByMatches(ctx context.Context, matchIDs []string) ([]fantasy.LeaderboardRow, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, qb.InStrings("match_id", matchIDs))
}

func (r *PlayerPointsRepository) list(ctx context.Context, where qb.Condition) ([]fantasy.LeaderboardRow, error) {
	query, args, err := qb.Select(
		"match_id", "player_name", "team",
		"batting_points", "bowling_points", "fielding_points", "potm_points", "total_points",
	).
		From("player_points").
		Where(where).
		OrderBy("total_points DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player points query: %w", err)
	}

	var rows []playerPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player points: %w", err)
	}

	out := make([]fantasy.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboardRowFromModel(row))
	}
	return out, nil
}
