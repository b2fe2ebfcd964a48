package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "match_date").
		From("matches").
		Where(Eq("processed", true), In("id", []any{"101", "102"})).
		OrderBy("match_date DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, match_date FROM matches WHERE processed = $1 AND id IN ($2, $3) ORDER BY match_date DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != true || args[2] != "102" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderInStrings(t *testing.T) {
	query, args, err := Select("player_name").
		From("player_points").
		Where(InStrings("match_id", []string{"101", "102"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT player_name FROM player_points WHERE match_id IN ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "102" {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, args, err = Select("player_name").From("player_points").Where(InStrings("match_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT player_name FROM player_points WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected empty IN query: %s %+v", query, args)
	}
}

func TestInsertBuilderMultiRow(t *testing.T) {
	query, args, err := InsertInto("matches").
		Columns("id", "venue").
		Values("101", "Wankhede").
		Values("102", "Eden Gardens").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO matches (id, venue) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "Eden Gardens" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderRejectsRaggedRows(t *testing.T) {
	_, _, err := InsertInto("matches").Columns("id", "venue").Values("101").ToSQL()
	if err == nil {
		t.Fatalf("expected error for ragged row")
	}
}

type pointsModel struct {
	MatchID    string  `db:"match_id"`
	PlayerName string  `db:"player_name"`
	Total      float64 `db:"-"`
	internal   string
}

func TestInsertModels(t *testing.T) {
	query, args, err := InsertModels("player_points", []any{
		pointsModel{MatchID: "101", PlayerName: "A", Total: 1, internal: "x"},
		&pointsModel{MatchID: "101", PlayerName: "B"},
	}, "")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO player_points (match_id, player_name) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[1] != "A" || args[3] != "B" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels("player_points", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
