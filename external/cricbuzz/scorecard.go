package cricbuzz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

const (
	sectionSelector     = "div.cb-col.cb-col-100.cb-ltst-wgt-hdr"
	rowSelector         = "div.cb-col.cb-col-100.cb-scrd-itms"
	inningsHeadSelector = "div.cb-col.cb-col-100.cb-scrd-hdr-rw"
	didNotBatLinkSel    = "a.cb-text-link"
	didNotBatMarker     = "Did not Bat"

	minBattingColumns = 7
	minBowlingColumns = 8
	dotBallColumn     = 8
)

// ParseScorecard extracts batting, bowling, fielding and did-not-bat data
// from a scorecard document. Canonical names are left equal to display names
// and dot balls at zero; both are filled in later from profile and highlight
// pages. fallbackTeams covers documents that name fewer than two innings.
func ParseScorecard(matchID string, body []byte, fallbackTeams []string) (scorecard.Scorecard, scorecard.Diagnostics, error) {
	var diag scorecard.Diagnostics

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return scorecard.Scorecard{}, diag, fmt.Errorf("%w: match %s: parse document: %w", usecase.ErrScorecardUnavailable, matchID, err)
	}

	sections := doc.Find(sectionSelector)
	if sections.Length() == 0 {
		return scorecard.Scorecard{}, diag, fmt.Errorf("%w: match %s has no scorecard sections", usecase.ErrScorecardUnavailable, matchID)
	}

	teams := parseTeamNames(doc, fallbackTeams, &diag)
	out := scorecard.Scorecard{
		MatchID:   matchID,
		TeamNames: teams,
		Batting:   make([]scorecard.BattingEntry, 0, 22),
		Bowling:   make([]scorecard.BowlingEntry, 0, 12),
	}

	battingInnings := 0
	bowlingInnings := 0
	sections.Each(func(_ int, section *goquery.Selection) {
		text := section.Text()
		switch {
		case strings.Contains(text, "Batter") || strings.Contains(text, "Batsman"):
			battingInnings++
			out.Innings = append(out.Innings, scorecard.Innings{
				MatchID:     matchID,
				Order:       battingInnings,
				BattingTeam: scorecard.TeamForInnings(teams, battingInnings),
				BowlingTeam: scorecard.OpposingTeam(teams, battingInnings),
			})
			batting, fielding := parseBattingSection(section, matchID, battingInnings, teams, &diag)
			out.Batting = append(out.Batting, batting...)
			out.Fielding = append(out.Fielding, fielding...)
		case strings.Contains(text, "Bowler"):
			bowlingInnings++
			out.Bowling = append(out.Bowling, parseBowlingSection(section, matchID, bowlingInnings, teams, &diag)...)
		}
	})
	diag.InningsSections = battingInnings
	if battingInnings == 0 {
		return scorecard.Scorecard{}, diag, fmt.Errorf("%w: match %s has no innings", usecase.ErrScorecardUnavailable, matchID)
	}

	out.DidNotBat = parseDidNotBat(doc, matchID, teams, &diag)
	return out, diag, nil
}

func parseTeamNames(doc *goquery.Document, fallback []string, diag *scorecard.Diagnostics) []string {
	teams := make([]string, 0, 2)
	doc.Find(inningsHeadSelector).Each(func(_ int, header *goquery.Selection) {
		head, _, found := strings.Cut(header.Text(), "Innings")
		if !found {
			return
		}
		if name := strings.TrimSpace(head); name != "" {
			teams = append(teams, name)
		}
	})

	if len(teams) < 2 {
		diag.MissingTeamHeaders = true
		for idx := len(teams); idx < 2; idx++ {
			name := scorecard.UnknownTeam
			if idx < len(fallback) && strings.TrimSpace(fallback[idx]) != "" {
				name = strings.TrimSpace(fallback[idx])
			}
			teams = append(teams, name)
		}
	}
	return teams
}

func parseBattingSection(section *goquery.Selection, matchID string, innings int, teams []string, diag *scorecard.Diagnostics) ([]scorecard.BattingEntry, []scorecard.FieldingCredit) {
	team := scorecard.TeamForInnings(teams, innings)
	tally := scorecard.NewFieldingTally(matchID, innings, scorecard.OpposingTeam(teams, innings))
	rows := make([]scorecard.BattingEntry, 0, 11)

	section.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("div")
		if cols.Length() < minBattingColumns {
			diag.SkippedBattingRows++
			return
		}

		nameCol := cols.Eq(0)
		display := scorecard.CleanDisplayName(nameCol.Text())
		if display == "" {
			diag.SkippedBattingRows++
			return
		}
		profileRef, _ := nameCol.Find("a").First().Attr("href")
		dismissal := strings.ToLower(strings.TrimSpace(cols.Eq(1).Text()))

		rows = append(rows, scorecard.BattingEntry{
			MatchID:       matchID,
			Innings:       innings,
			Team:          team,
			DisplayName:   display,
			CanonicalName: display,
			ProfileRef:    strings.TrimSpace(profileRef),
			Runs:          scorecard.ParseInt(cols.Eq(2).Text()),
			Balls:         scorecard.ParseInt(cols.Eq(3).Text()),
			Fours:         scorecard.ParseInt(cols.Eq(4).Text()),
			Sixes:         scorecard.ParseInt(cols.Eq(5).Text()),
			StrikeRate:    scorecard.ParseFloat(cols.Eq(6).Text()),
			DismissalText: dismissal,
		})
		tally.Add(scorecard.ResolveDismissal(dismissal))
	})

	return rows, tally.Credits()
}

func parseBowlingSection(section *goquery.Selection, matchID string, innings int, teams []string, diag *scorecard.Diagnostics) []scorecard.BowlingEntry {
	team := scorecard.OpposingTeam(teams, innings)
	rows := make([]scorecard.BowlingEntry, 0, 8)

	section.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("div")
		if cols.Length() < minBowlingColumns {
			diag.SkippedBowlingRows++
			return
		}

		nameCol := cols.Eq(0)
		display := scorecard.CleanDisplayName(nameCol.Text())
		if display == "" {
			diag.SkippedBowlingRows++
			return
		}
		profileRef, _ := nameCol.Find("a").First().Attr("href")

		var dotRef string
		if cols.Length() > dotBallColumn {
			dotRef, _ = cols.Eq(dotBallColumn).Find("a").First().Attr("href")
		}

		rows = append(rows, scorecard.BowlingEntry{
			MatchID:       matchID,
			Innings:       innings,
			Team:          team,
			DisplayName:   display,
			CanonicalName: display,
			ProfileRef:    strings.TrimSpace(profileRef),
			Overs:         scorecard.ParseFloat(cols.Eq(1).Text()),
			Maidens:       scorecard.ParseInt(cols.Eq(2).Text()),
			RunsConceded:  scorecard.ParseInt(cols.Eq(3).Text()),
			Wickets:       scorecard.ParseInt(cols.Eq(4).Text()),
			NoBalls:       scorecard.ParseInt(cols.Eq(5).Text()),
			Wides:         scorecard.ParseInt(cols.Eq(6).Text()),
			Economy:       scorecard.ParseFloat(cols.Eq(7).Text()),
			DotBallRef:    strings.TrimSpace(dotRef),
		})
	})

	return rows
}

// parseDidNotBat attributes did-not-bat listings only when the document has
// exactly one per innings; the i-th listing belongs to the i-th team.
func parseDidNotBat(doc *goquery.Document, matchID string, teams []string, diag *scorecard.Diagnostics) []scorecard.BattingEntry {
	var sections []*goquery.Selection
	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		if strings.Contains(row.Text(), didNotBatMarker) {
			sections = append(sections, row)
		}
	})
	diag.DidNotBatSections = len(sections)
	if len(sections) != 2 {
		return nil
	}
	diag.DidNotBatAttributed = true

	out := make([]scorecard.BattingEntry, 0, 8)
	for idx, section := range sections {
		innings := idx + 1
		team := scorecard.TeamForInnings(teams, innings)
		section.Find(didNotBatLinkSel).Each(func(_ int, link *goquery.Selection) {
			display := scorecard.CleanDisplayName(strings.TrimRight(strings.TrimSpace(link.Text()), ","))
			if display == "" {
				return
			}
			href, _ := link.Attr("href")
			out = append(out, scorecard.BattingEntry{
				MatchID:       matchID,
				Innings:       innings,
				Team:          team,
				DisplayName:   display,
				CanonicalName: display,
				ProfileRef:    strings.TrimSpace(href),
				DidNotBat:     true,
			})
		})
	}
	return out
}
