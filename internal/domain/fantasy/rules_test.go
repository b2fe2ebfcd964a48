package fantasy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

func TestStrikeRatePoints(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	tests := []struct {
		name  string
		balls int
		sr    float64
		want  int
	}{
		{name: "too few balls", balls: 9, sr: 10, want: 0},
		{name: "very slow", balls: 10, sr: 49.99, want: -15},
		{name: "slow", balls: 20, sr: 50, want: -10},
		{name: "below par", balls: 20, sr: 99, want: -5},
		{name: "par", balls: 20, sr: 100, want: 0},
		{name: "quick", balls: 20, sr: 125, want: 5},
		{name: "fast", balls: 20, sr: 150, want: 10},
		{name: "explosive", balls: 20, sr: 200, want: 15},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := rules.StrikeRatePoints(tc.balls, tc.sr); got != tc.want {
				t.Fatalf("unexpected strike rate points: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestMilestonePoints(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	tests := []struct {
		runs int
		want int
	}{
		{runs: 24, want: 0},
		{runs: 25, want: 10},
		{runs: 49, want: 10},
		{runs: 50, want: 20},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("%d runs", tc.runs), func(t *testing.T) {
			t.Parallel()
			if got := rules.MilestonePoints(tc.runs); got != tc.want {
				t.Fatalf("unexpected milestone points: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestWicketBonus(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	tests := []struct {
		wickets int
		want    int
	}{
		{wickets: 0, want: 0},
		{wickets: 1, want: 0},
		{wickets: 2, want: 10},
		{wickets: 5, want: 40},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("%d wickets", tc.wickets), func(t *testing.T) {
			t.Parallel()
			if got := rules.WicketBonus(tc.wickets); got != tc.want {
				t.Fatalf("unexpected wicket bonus: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestEconomyPoints(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	tests := []struct {
		overs   float64
		economy float64
		want    int
	}{
		{overs: 0.5, economy: 30, want: 0},
		{overs: 1, economy: 5.00, want: 20},
		{overs: 4, economy: 5.01, want: 15},
		{overs: 4, economy: 7.00, want: 10},
		{overs: 4, economy: 8.00, want: 5},
		{overs: 4, economy: 9.00, want: 0},
		{overs: 4, economy: 10.00, want: -5},
		{overs: 4, economy: 12.00, want: -10},
		{overs: 4, economy: 12.01, want: -20},
	}

	for _, tc := range tests {
		if got := rules.EconomyPoints(tc.overs, tc.economy); got != tc.want {
			t.Fatalf("unexpected economy points for overs=%v econ=%v: got=%d want=%d", tc.overs, tc.economy, got, tc.want)
		}
	}
}

func TestBattingPoints(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	entry := scorecard.BattingEntry{Runs: 52, Balls: 30, Fours: 6, Sixes: 2, StrikeRate: 173.33}
	// 52 + 6 + 4 + 10 (sr) + 20 (two milestones)
	if got := rules.BattingPoints(entry); got != 92 {
		t.Fatalf("unexpected batting points: got=%d want=92", got)
	}

	duck := scorecard.BattingEntry{Runs: 0, Balls: 3}
	if got := rules.BattingPoints(duck); got != 0 {
		t.Fatalf("unexpected batting points for short innings: got=%d want=0", got)
	}
}

func TestBowlingPoints(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	entry := scorecard.BowlingEntry{
		Overs:    4,
		Maidens:  1,
		Wickets:  3,
		NoBalls:  1,
		Wides:    3,
		Economy:  5.5,
		DotBalls: 12,
	}
	// 60 + 20 + 15 - 2 - 1 + 20 + 24
	if got := rules.BowlingPoints(entry); got != 136 {
		t.Fatalf("unexpected bowling points: got=%d want=136", got)
	}

	wicketless := scorecard.BowlingEntry{Overs: 0.3, Economy: 24}
	if got := rules.BowlingPoints(wicketless); got != 0 {
		t.Fatalf("unexpected bowling points: got=%d want=0", got)
	}
}

func TestFieldingPoints(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	credit := scorecard.FieldingCredit{Catches: 2, Stumpings: 1, RunOuts: 1}
	if got := rules.FieldingPoints(credit); got != 40 {
		t.Fatalf("unexpected fielding points: got=%d want=40", got)
	}
}

func TestRulesValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}

	rules := DefaultRules()
	rules.EconomyBands = []Band{{Below: 6}, {Below: 5}}
	if err := rules.Validate(); !errors.Is(err, ErrInvalidBands) {
		t.Fatalf("expected ErrInvalidBands, got=%v", err)
	}

	rules = DefaultRules()
	rules.WidesPerPenalty = 0
	if err := rules.Validate(); !errors.Is(err, ErrInvalidWideUnit) {
		t.Fatalf("expected ErrInvalidWideUnit, got=%v", err)
	}
}
