package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

var (
	ErrInvalidBands     = errors.New("scoring bands must be ordered by ascending bound")
	ErrInvalidMilestone = errors.New("run milestone must be greater than zero")
	ErrInvalidWideUnit  = errors.New("wides per penalty must be greater than zero")
)

// Band awards Points to any value strictly below Below. Bands are checked in
// order and the first match wins.
type Band struct {
	Below  float64
	Points int
}

// Rules stores the fantasy scoring rulebook.
type Rules struct {
	RunPoints      int
	FourBonus      int
	SixBonus       int
	RunMilestone   int
	MilestoneBonus int

	StrikeRateMinBalls int
	StrikeRateBands    []Band
	StrikeRateCeiling  int

	WicketPoints     int
	MaidenPoints     int
	ExtraWicketBonus int
	NoBallPenalty    int
	WidesPerPenalty  int
	DotBallPoints    int

	EconomyMinOvers float64
	EconomyBands    []Band
	EconomyCeiling  int

	CatchPoints    int
	StumpingPoints int
	RunOutPoints   int

	PlayerOfMatchPoints int
}

func DefaultRules() Rules {
	return Rules{
		RunPoints:      1,
		FourBonus:      1,
		SixBonus:       2,
		RunMilestone:   25,
		MilestoneBonus: 10,

		StrikeRateMinBalls: 10,
		StrikeRateBands: []Band{
			{Below: 50, Points: -15},
			{Below: 75, Points: -10},
			{Below: 100, Points: -5},
			{Below: 125, Points: 0},
			{Below: 150, Points: 5},
			{Below: 200, Points: 10},
		},
		StrikeRateCeiling: 15,

		WicketPoints:     20,
		MaidenPoints:     20,
		ExtraWicketBonus: 10,
		NoBallPenalty:    2,
		WidesPerPenalty:  2,
		DotBallPoints:    2,

		EconomyMinOvers: 1,
		EconomyBands: []Band{
			{Below: 5.01, Points: 20},
			{Below: 6.01, Points: 15},
			{Below: 7.01, Points: 10},
			{Below: 8.01, Points: 5},
			{Below: 9.01, Points: 0},
			{Below: 10.01, Points: -5},
			{Below: 12.01, Points: -10},
		},
		EconomyCeiling: -20,

		CatchPoints:    10,
		StumpingPoints: 10,
		RunOutPoints:   10,

		PlayerOfMatchPoints: 50,
	}
}

func (r Rules) Validate() error {
	if r.RunMilestone <= 0 {
		return ErrInvalidMilestone
	}
	if r.WidesPerPenalty <= 0 {
		return ErrInvalidWideUnit
	}
	for _, bands := range [][]Band{r.StrikeRateBands, r.EconomyBands} {
		for idx := 1; idx < len(bands); idx++ {
			if bands[idx].Below <= bands[idx-1].Below {
				return fmt.Errorf("%w: %v after %v", ErrInvalidBands, bands[idx].Below, bands[idx-1].Below)
			}
		}
	}

	return nil
}

func bandPoints(value float64, bands []Band, ceiling int) int {
	for _, band := range bands {
		if value < band.Below {
			return band.Points
		}
	}
	return ceiling
}

// StrikeRatePoints is zero below the minimum balls faced.
func (r Rules) StrikeRatePoints(balls int, strikeRate float64) int {
	if balls < r.StrikeRateMinBalls {
		return 0
	}
	return bandPoints(strikeRate, r.StrikeRateBands, r.StrikeRateCeiling)
}

// EconomyPoints is zero below the minimum overs bowled.
func (r Rules) EconomyPoints(overs, economy float64) int {
	if overs < r.EconomyMinOvers {
		return 0
	}
	return bandPoints(economy, r.EconomyBands, r.EconomyCeiling)
}

func (r Rules) MilestonePoints(runs int) int {
	if runs <= 0 {
		return 0
	}
	return (runs / r.RunMilestone) * r.MilestoneBonus
}

// WicketBonus rewards every wicket after the first.
func (r Rules) WicketBonus(wickets int) int {
	return max(0, (wickets-1)*r.ExtraWicketBonus)
}

func (r Rules) BattingPoints(entry scorecard.BattingEntry) int {
	return entry.Runs*r.RunPoints +
		entry.Fours*r.FourBonus +
		entry.Sixes*r.SixBonus +
		r.StrikeRatePoints(entry.Balls, entry.StrikeRate) +
		r.MilestonePoints(entry.Runs)
}

func (r Rules) BowlingPoints(entry scorecard.BowlingEntry) int {
	return entry.Wickets*r.WicketPoints +
		entry.Maidens*r.MaidenPoints +
		r.EconomyPoints(entry.Overs, entry.Economy) -
		entry.NoBalls*r.NoBallPenalty -
		entry.Wides/r.WidesPerPenalty +
		r.WicketBonus(entry.Wickets) +
		entry.DotBalls*r.DotBallPoints
}

func (r Rules) FieldingPoints(credit scorecard.FieldingCredit) int {
	return credit.Catches*r.CatchPoints +
		credit.Stumpings*r.StumpingPoints +
		credit.RunOuts*r.RunOutPoints
}
