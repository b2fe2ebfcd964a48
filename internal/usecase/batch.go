package usecase

import (
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

// Batch accumulates every stat collected in one run, in match order.
type Batch struct {
	Matches        []match.Descriptor         `json:"matches"`
	Batting        []scorecard.BattingEntry   `json:"batting"`
	Bowling        []scorecard.BowlingEntry   `json:"bowling"`
	Fielding       []scorecard.FieldingCredit `json:"fielding"`
	PlayersOfMatch []scorecard.PlayerOfMatch  `json:"players_of_match"`
}

// Add folds one parsed match into the batch. Did-not-bat players join the
// batting rows with zero stats so they still earn a leaderboard row.
func (b *Batch) Add(descriptor match.Descriptor, card scorecard.Scorecard, potm *scorecard.PlayerOfMatch) {
	b.Matches = append(b.Matches, descriptor)
	b.Batting = append(b.Batting, card.Batting...)
	b.Batting = append(b.Batting, card.DidNotBat...)
	b.Bowling = append(b.Bowling, card.Bowling...)
	b.Fielding = append(b.Fielding, card.Fielding...)
	if potm != nil {
		b.PlayersOfMatch = append(b.PlayersOfMatch, *potm)
	}
}

func (b Batch) Empty() bool {
	return len(b.Batting) == 0 && len(b.Bowling) == 0 && len(b.Fielding) == 0 && len(b.PlayersOfMatch) == 0
}

// NamePairs lists a display/canonical pair for every batting and bowling
// entry. Entries whose profile lookup failed pair the display name with
// itself and come first, so a profile name wins any alias they share.
func (b Batch) NamePairs() []player.NamePair {
	resolved := make([]player.NamePair, 0, len(b.Batting)+len(b.Bowling))
	out := make([]player.NamePair, 0, len(b.Batting)+len(b.Bowling))
	add := func(display, canonical string, ok bool) {
		pair := player.NamePair{DisplayName: display, CanonicalName: canonical}
		if ok {
			resolved = append(resolved, pair)
			return
		}
		out = append(out, pair)
	}
	for _, entry := range b.Batting {
		add(entry.DisplayName, fantasy.BattingName(entry), entry.NameResolved)
	}
	for _, entry := range b.Bowling {
		add(entry.DisplayName, fantasy.BowlingName(entry), entry.NameResolved)
	}
	return append(out, resolved...)
}

func (b Batch) leaderboardInput() fantasy.LeaderboardInput {
	return fantasy.LeaderboardInput{
		Batting:        b.Batting,
		Bowling:        b.Bowling,
		Fielding:       b.Fielding,
		PlayersOfMatch: b.PlayersOfMatch,
	}
}
