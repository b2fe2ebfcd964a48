package fantasy

import (
	"sort"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

// LeaderboardInput is the reconciled stat set of a batch of matches.
type LeaderboardInput struct {
	Batting        []scorecard.BattingEntry
	Bowling        []scorecard.BowlingEntry
	Fielding       []scorecard.FieldingCredit
	PlayersOfMatch []scorecard.PlayerOfMatch
}

type playerKey struct {
	name    string
	matchID string
}

type tally struct {
	team     string
	batting  int
	bowling  int
	fielding int
	potm     int
}

// BuildLeaderboard merges per-discipline points into one row per player and
// match. Only players who appear in a batting or bowling entry get a row;
// batting decides the team when both do. Rows are ordered by total points,
// descending, keeping first-appearance order on ties.
func BuildLeaderboard(rules Rules, in LeaderboardInput) []LeaderboardRow {
	order := make([]playerKey, 0, len(in.Batting)+len(in.Bowling))
	tallies := make(map[playerKey]*tally, cap(order))

	register := func(key playerKey, team string) *tally {
		item, ok := tallies[key]
		if !ok {
			item = &tally{team: team}
			tallies[key] = item
			order = append(order, key)
		}
		return item
	}

	for _, entry := range in.Batting {
		item := register(playerKey{name: BattingName(entry), matchID: entry.MatchID}, entry.Team)
		item.batting += rules.BattingPoints(entry)
	}
	for _, entry := range in.Bowling {
		item := register(playerKey{name: BowlingName(entry), matchID: entry.MatchID}, entry.Team)
		item.bowling += rules.BowlingPoints(entry)
	}
	for _, credit := range in.Fielding {
		if item, ok := tallies[playerKey{name: credit.FielderName, matchID: credit.MatchID}]; ok {
			item.fielding += rules.FieldingPoints(credit)
		}
	}
	for _, potm := range in.PlayersOfMatch {
		if item, ok := tallies[playerKey{name: potm.PlayerName, matchID: potm.MatchID}]; ok {
			item.potm += rules.PlayerOfMatchPoints
		}
	}

	rows := make([]LeaderboardRow, 0, len(order))
	for _, key := range order {
		item := tallies[key]
		row := LeaderboardRow{
			MatchID:        key.matchID,
			PlayerName:     key.name,
			Team:           item.team,
			BattingPoints:  float64(item.batting),
			BowlingPoints:  float64(item.bowling),
			FieldingPoints: float64(item.fielding),
			POTMPoints:     float64(item.potm),
		}
		row.TotalPoints = Round2(row.BattingPoints + row.BowlingPoints + row.FieldingPoints + row.POTMPoints)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPoints > rows[j].TotalPoints
	})
	return rows
}

// BattingName is the name a batting entry is scored under.
func BattingName(entry scorecard.BattingEntry) string {
	if entry.CanonicalName != "" {
		return entry.CanonicalName
	}
	return entry.DisplayName
}

func BowlingName(entry scorecard.BowlingEntry) string {
	if entry.CanonicalName != "" {
		return entry.CanonicalName
	}
	return entry.DisplayName
}
