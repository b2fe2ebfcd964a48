package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	fantasymock "github.com/riskibarqy/fantasy-cricket/internal/mocks/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDecodeBatch_AcceptsRunResultAndBareBatch(t *testing.T) {
	t.Parallel()

	wrapped := []byte(`{"run_id":"r1","batch":{"batting":[{"match_id":"101","display_name":"Kohli","runs":50}]}}`)
	batch, err := decodeBatch(wrapped)
	require.NoError(t, err)
	require.Len(t, batch.Batting, 1)
	require.Equal(t, "101", batch.Batting[0].MatchID)

	bare := []byte(`{"bowling":[{"match_id":"102","display_name":"Bumrah","wickets":2}]}`)
	batch, err = decodeBatch(bare)
	require.NoError(t, err)
	require.Len(t, batch.Bowling, 1)
	require.Equal(t, 2, batch.Bowling[0].Wickets)
}

func TestDecodeBatch_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := decodeBatch([]byte(`{"batch":`))
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNormalizeMatchIDs(t *testing.T) {
	t.Parallel()

	got := normalizeMatchIDs([]string{"101, 102", " ", "101", "103"})
	require.Equal(t, []string{"101", "102", "103"}, got)
}

func TestCollectExport_MergesMatchesByTotal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	points := memory.NewPlayerPointsRepository()
	require.NoError(t, points.InsertPlayerPoints(ctx, []fantasy.LeaderboardRow{
		{MatchID: "101", PlayerName: "Rohit Sharma", BattingPoints: 12},
		{MatchID: "102", PlayerName: "Jasprit Bumrah", BowlingPoints: 40, POTMPoints: 50},
	}))

	got, err := collectExport(ctx, points, []string{"101", "102"})
	require.NoError(t, err)
	require.Len(t, got.Leaderboard, 2)
	require.Equal(t, "Jasprit Bumrah", got.Leaderboard[0].PlayerName)
	require.Equal(t, 90.0, got.Leaderboard[0].TotalPoints)
}

func TestCollectExport_StoreFailure(t *testing.T) {
	t.Parallel()

	points := fantasymock.NewRepository(t)
	points.On("ListByMatches", mock.Anything, []string{"101"}).Return(nil, errors.New("connection reset")).Once()

	if _, err := collectExport(context.Background(), points, []string{"101"}); err == nil {
		t.Fatalf("expected error from store")
	}
}

func TestWriteJSONThenReadBatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batch.json")
	in := usecase.RunResult{RunID: "r1"}
	in.Batch.Batting = []scorecard.BattingEntry{{MatchID: "101", DisplayName: "Kohli", Runs: 30}}
	require.NoError(t, writeJSON(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"run_id": "r1"`)

	batch, err := readBatch(path)
	require.NoError(t, err)
	require.Len(t, batch.Batting, 1)
	require.Equal(t, 30, batch.Batting[0].Runs)

	if _, err := readBatch(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
