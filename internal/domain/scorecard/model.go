package scorecard

// Innings is one team's batting turn. A match carries two of them; the
// batting side of one is the bowling side of the other.
type Innings struct {
	MatchID     string `json:"match_id"`
	Order       int    `json:"order"`
	BattingTeam string `json:"batting_team"`
	BowlingTeam string `json:"bowling_team"`
}

// BattingEntry is one parsed batting row (or a did-not-bat listing).
type BattingEntry struct {
	MatchID       string  `json:"match_id"`
	Innings       int     `json:"innings"`
	Team          string  `json:"team"`
	DisplayName   string  `json:"display_name"`
	CanonicalName string  `json:"canonical_name"`
	ProfileRef    string  `json:"profile_ref,omitempty"`
	NameResolved  bool    `json:"name_resolved"`
	Runs          int     `json:"runs"`
	Balls         int     `json:"balls"`
	Fours         int     `json:"fours"`
	Sixes         int     `json:"sixes"`
	StrikeRate    float64 `json:"strike_rate"`
	DismissalText string  `json:"dismissal_text"`
	DidNotBat     bool    `json:"did_not_bat,omitempty"`
}

type BowlingEntry struct {
	MatchID       string  `json:"match_id"`
	Innings       int     `json:"innings"`
	Team          string  `json:"team"`
	DisplayName   string  `json:"display_name"`
	CanonicalName string  `json:"canonical_name"`
	ProfileRef    string  `json:"profile_ref,omitempty"`
	NameResolved  bool    `json:"name_resolved"`
	Overs         float64 `json:"overs"`
	Maidens       int     `json:"maidens"`
	RunsConceded  int     `json:"runs_conceded"`
	Wickets       int     `json:"wickets"`
	NoBalls       int     `json:"no_balls"`
	Wides         int     `json:"wides"`
	Economy       float64 `json:"economy"`
	DotBalls      int     `json:"dot_balls"`
	DotBallRef    string  `json:"dot_ball_ref,omitempty"`
}

// FieldingCredit accumulates one fielder's dismissals within an innings.
// Team is the bowling side of that innings.
type FieldingCredit struct {
	MatchID     string `json:"match_id"`
	Innings     int    `json:"innings"`
	Team        string `json:"team"`
	FielderName string `json:"fielder_name"`
	Catches     int    `json:"catches"`
	Stumpings   int    `json:"stumpings"`
	RunOuts     int    `json:"run_outs"`
}

type PlayerOfMatch struct {
	MatchID    string `json:"match_id"`
	PlayerName string `json:"player_name"`
	PlayerID   string `json:"player_id"`
}

// Scorecard is everything extracted from one match's scorecard document.
type Scorecard struct {
	MatchID   string           `json:"match_id"`
	TeamNames []string         `json:"team_names"`
	Innings   []Innings        `json:"innings"`
	Batting   []BattingEntry   `json:"batting"`
	Bowling   []BowlingEntry   `json:"bowling"`
	Fielding  []FieldingCredit `json:"fielding"`
	DidNotBat []BattingEntry   `json:"did_not_bat"`
}

// BattingByInnings returns the batting rows of innings order n.
func (s Scorecard) BattingByInnings(n int) []BattingEntry {
	out := make([]BattingEntry, 0)
	for _, item := range s.Batting {
		if item.Innings == n {
			out = append(out, item)
		}
	}
	return out
}

func (s Scorecard) BowlingByInnings(n int) []BowlingEntry {
	out := make([]BowlingEntry, 0)
	for _, item := range s.Bowling {
		if item.Innings == n {
			out = append(out, item)
		}
	}
	return out
}

// Diagnostics records the non-fatal anomalies met while parsing one document.
type Diagnostics struct {
	InningsSections     int
	SkippedBattingRows  int
	SkippedBowlingRows  int
	DidNotBatSections   int
	DidNotBatAttributed bool
	MissingTeamHeaders  bool
}

// TeamForInnings returns the batting team of innings n, or "Unknown" when the
// document did not name enough teams.
func TeamForInnings(teamNames []string, n int) string {
	if n < 1 || n > len(teamNames) {
		return UnknownTeam
	}
	return teamNames[n-1]
}

// OpposingTeam returns the side fielding while innings n is batted.
func OpposingTeam(teamNames []string, n int) string {
	if n == 1 {
		return TeamForInnings(teamNames, 2)
	}
	return TeamForInnings(teamNames, 1)
}

const UnknownTeam = "Unknown"
