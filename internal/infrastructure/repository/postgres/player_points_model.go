package postgres

import "github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"

// playerPointsInsertModel omits total_points, which the table derives.
type playerPointsInsertModel struct {
	MatchID        string  `db:"match_id"`
	PlayerName     string  `db:"player_name"`
	Team           string  `db:"team"`
	BattingPoints  float64 `db:"batting_points"`
	BowlingPoints  float64 `db:"bowling_points"`
	FieldingPoints float64 `db:"fielding_points"`
	POTMPoints     float64 `db:"potm_points"`
}

type playerPointsTableModel struct {
	playerPointsInsertModel
	TotalPoints float64 `db:"total_points"`
}

func playerPointsInsertModels(rows []fantasy.LeaderboardRow) []any {
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerPointsInsertModel{
			MatchID:        row.MatchID,
			PlayerName:     row.PlayerName,
			Team:           row.Team,
			BattingPoints:  row.BattingPoints,
			BowlingPoints:  row.BowlingPoints,
			FieldingPoints: row.FieldingPoints,
			POTMPoints:     row.POTMPoints,
		})
	}
	return out
}

func leaderboardRowFromModel(row playerPointsTableModel) fantasy.LeaderboardRow {
	return fantasy.LeaderboardRow{
		MatchID:        row.MatchID,
		PlayerName:     row.PlayerName,
		Team:           row.Team,
		BattingPoints:  row.BattingPoints,
		BowlingPoints:  row.BowlingPoints,
		FieldingPoints: row.FieldingPoints,
		POTMPoints:     row.POTMPoints,
		TotalPoints:    row.TotalPoints,
	}
}
