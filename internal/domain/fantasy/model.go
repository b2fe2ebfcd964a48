package fantasy

import (
	"fmt"
	"math"
)

// LeaderboardRow is one player's fantasy total for one match.
type LeaderboardRow struct {
	MatchID        string  `json:"match_id" db:"match_id" validate:"required"`
	PlayerName     string  `json:"player_name" db:"player_name" validate:"required"`
	Team           string  `json:"team" db:"team"`
	BattingPoints  float64 `json:"batting_points" db:"batting_points"`
	BowlingPoints  float64 `json:"bowling_points" db:"bowling_points"`
	FieldingPoints float64 `json:"fielding_points" db:"fielding_points"`
	POTMPoints     float64 `json:"potm_points" db:"potm_points"`
	TotalPoints    float64 `json:"total_points" db:"total_points"`
}

func (r LeaderboardRow) Validate() error {
	if r.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if r.PlayerName == "" {
		return fmt.Errorf("player name is required")
	}
	want := Round2(r.BattingPoints + r.BowlingPoints + r.FieldingPoints + r.POTMPoints)
	if math.Abs(want-r.TotalPoints) > 0.005 {
		return fmt.Errorf("total points mismatch for %s in %s: got %.2f want %.2f", r.PlayerName, r.MatchID, r.TotalPoints, want)
	}

	return nil
}

// Round2 rounds half away from zero to two decimals.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
