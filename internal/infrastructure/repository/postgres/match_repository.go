package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("id").From("matches").OrderBy("match_date", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list match ids: %w", err)
	}
	return ids, nil
}

func (r *MatchRepository) Exists(ctx context.Context, matchID string) (bool, error) {
	query, args, err := qb.Select("id").From("matches").Where(qb.Eq("id", matchID)).Limit(1).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build match exists query: %w", err)
	}

	var id string
	err = r.db.GetContext(ctx, &id, query, args...)
	if isBindParameterMismatch(err) {
		// pgbouncer can hand back a stale unnamed statement once.
		err = r.db.GetContext(ctx, &id, query, args...)
	}
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check match exists: %w", err)
	}
	return true, nil
}

func (r *MatchRepository) Get(ctx context.Context, matchID string) (match.Record, bool, error) {
	query, args, err := qb.Select("id", "title", "teams", "venue", "result", "match_date", "scorecard_url", "processed").
		From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Record{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Record{}, false, nil
		}
		return match.Record{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchRecordFromRow(row), true, nil
}

// Insert stores a match once; a second insert of the same id is a no-op.
func (r *MatchRepository) Insert(ctx context.Context, record match.Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	query, args, err := qb.InsertModel("matches", matchModelFromRecord(record), "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match %s: %w", record.ID, err)
	}
	return nil
}
