package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

func sampleRecord(id string) match.Record {
	return match.Record{
		Descriptor: match.Descriptor{
			ID:           id,
			Teams:        []string{"India", "Australia"},
			Venue:        "Wankhede",
			Result:       "India won",
			Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			ScorecardURL: "https://www.cricbuzz.com/live-cricket-scorecard/" + id + "/x",
		},
		Processed: true,
	}
}

func TestMatchRepository_InsertIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository(sampleRecord("101"))

	if err := repo.Insert(ctx, sampleRecord("102")); err != nil {
		t.Fatalf("insert match: %v", err)
	}
	changed := sampleRecord("101")
	changed.Venue = "Eden Gardens"
	if err := repo.Insert(ctx, changed); err != nil {
		t.Fatalf("insert duplicate match: %v", err)
	}

	ids, err := repo.ListIDs(ctx)
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != "101" || ids[1] != "102" {
		t.Fatalf("unexpected ids: %+v", ids)
	}

	got, ok, err := repo.Get(ctx, "101")
	if err != nil || !ok {
		t.Fatalf("get match: ok=%v err=%v", ok, err)
	}
	if got.Venue != "Wankhede" {
		t.Fatalf("duplicate insert must not overwrite: got=%s", got.Venue)
	}

	exists, err := repo.Exists(ctx, "999")
	if err != nil || exists {
		t.Fatalf("unexpected exists result: exists=%v err=%v", exists, err)
	}
}

func TestMatchRepository_RejectsInvalidRecord(t *testing.T) {
	t.Parallel()

	repo := NewMatchRepository()
	record := sampleRecord("101")
	record.Teams = []string{"India"}
	if err := repo.Insert(context.Background(), record); err == nil {
		t.Fatalf("expected error for invalid record")
	}
}

func TestPlayerPointsRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerPointsRepository()

	err := repo.InsertPlayerPoints(ctx, []fantasy.LeaderboardRow{
		{MatchID: "101", PlayerName: "A", BattingPoints: 12.5},
		{MatchID: "101", PlayerName: "B", BowlingPoints: 40, POTMPoints: 50},
		{MatchID: "102", PlayerName: "A", FieldingPoints: 10},
	})
	if err != nil {
		t.Fatalf("insert player points: %v", err)
	}
	if err := repo.InsertPlayerPoints(ctx, []fantasy.LeaderboardRow{{MatchID: "101", PlayerName: "A", BattingPoints: 99}}); err != nil {
		t.Fatalf("insert duplicate player points: %v", err)
	}

	rows, err := repo.ListByMatch(ctx, "101")
	if err != nil {
		t.Fatalf("list by match: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("unexpected row count: got=%d want=2", len(rows))
	}
	if rows[0].PlayerName != "B" || rows[0].TotalPoints != 90 {
		t.Fatalf("unexpected top row: %+v", rows[0])
	}
	if rows[1].TotalPoints != 12.5 {
		t.Fatalf("duplicate insert must not overwrite: %+v", rows[1])
	}

	merged, err := repo.ListByMatches(ctx, []string{"102", "101", "102"})
	if err != nil {
		t.Fatalf("list by matches: %v", err)
	}
	if len(merged) != 3 || merged[0].PlayerName != "B" || merged[2].MatchID != "102" {
		t.Fatalf("unexpected merged rows: %+v", merged)
	}

	if err := repo.InsertPlayerPoints(ctx, []fantasy.LeaderboardRow{{PlayerName: "C"}}); err == nil {
		t.Fatalf("expected error for missing match id")
	}
}
