package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	order   []string
	records map[string]match.Record
}

func NewMatchRepository(records ...match.Record) *MatchRepository {
	repo := &MatchRepository{records: make(map[string]match.Record, len(records))}
	for _, record := range records {
		_ = repo.Insert(context.Background(), record)
	}
	return repo
}

func (r *MatchRepository) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...), nil
}

func (r *MatchRepository) Exists(_ context.Context, matchID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[matchID]
	return ok, nil
}

func (r *MatchRepository) Get(_ context.Context, matchID string) (match.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[matchID]
	return record, ok, nil
}

func (r *MatchRepository) Insert(_ context.Context, record match.Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; ok {
		return nil
	}
	r.records[record.ID] = record
	r.order = append(r.order, record.ID)
	return nil
}
