package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

func TestMatchModelRoundTrip(t *testing.T) {
	t.Parallel()

	record := match.Record{
		Descriptor: match.Descriptor{
			ID:           "115059",
			Title:        "Mumbai Indians vs Delhi Capitals, 1st Match",
			Teams:        []string{"Mumbai Indians", "Delhi Capitals"},
			Venue:        "Wankhede Stadium",
			Result:       "Delhi Capitals won by 2 wkts",
			Date:         time.Date(2025, 2, 14, 14, 30, 0, 0, time.UTC),
			ScorecardURL: "https://www.cricbuzz.com/live-cricket-scorecard/115059/mi-vs-dc",
		},
		Processed: true,
	}

	model := matchModelFromRecord(record)
	if len(model.Teams) != 2 || model.Teams[0] != "Mumbai Indians" || model.Teams[1] != "Delhi Capitals" {
		t.Fatalf("unexpected teams column: %v", model.Teams)
	}

	got := matchRecordFromRow(model)
	if got.Teams[1] != "Delhi Capitals" || !got.Processed || !got.Date.Equal(record.Date) {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestMatchModelKeepsTeamNamesContainingVs(t *testing.T) {
	t.Parallel()

	record := match.Record{Descriptor: match.Descriptor{
		ID:    "9",
		Teams: []string{"Invincibles vs Titans XI", "Rest of the World"},
	}}

	model := matchModelFromRecord(record)
	value, err := model.Teams.Value()
	if err != nil {
		t.Fatalf("encode teams: %v", err)
	}
	if value != `{"Invincibles vs Titans XI","Rest of the World"}` {
		t.Fatalf("unexpected teams array literal: %v", value)
	}

	var decoded pq.StringArray
	if err := decoded.Scan([]byte(value.(string))); err != nil {
		t.Fatalf("decode teams: %v", err)
	}
	got := matchRecordFromRow(matchTableModel{ID: "9", Teams: decoded})
	if len(got.Teams) != 2 || got.Teams[0] != "Invincibles vs Titans XI" || got.Teams[1] != "Rest of the World" {
		t.Fatalf("unexpected round trip teams: %v", got.Teams)
	}
}

func TestPlayerPointsInsertOmitsTotal(t *testing.T) {
	t.Parallel()

	rows := []fantasy.LeaderboardRow{
		{MatchID: "1", PlayerName: "A", Team: "X", BattingPoints: 10, TotalPoints: 10},
		{MatchID: "1", PlayerName: "B", Team: "Y", BowlingPoints: 20, TotalPoints: 20},
	}

	query, args, err := qb.InsertModels("player_points", playerPointsInsertModels(rows), "ON CONFLICT (match_id, player_name) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	if strings.Contains(query, "total_points") {
		t.Fatalf("generated column must not be inserted: %s", query)
	}
	if len(args) != 14 {
		t.Fatalf("unexpected arg count: got=%d want=14", len(args))
	}
}

func TestLeaderboardRowFromModel(t *testing.T) {
	t.Parallel()

	got := leaderboardRowFromModel(playerPointsTableModel{
		playerPointsInsertModel: playerPointsInsertModel{MatchID: "1", PlayerName: "A", FieldingPoints: 10, POTMPoints: 50},
		TotalPoints:             60,
	})
	if err := got.Validate(); err != nil {
		t.Fatalf("unexpected invalid row: %v", err)
	}
}
