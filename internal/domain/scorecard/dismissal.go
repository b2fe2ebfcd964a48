package scorecard

import (
	"regexp"
	"strings"
)

type CreditKind string

const (
	CreditCatch    CreditKind = "catch"
	CreditStumping CreditKind = "stumping"
	CreditRunOut   CreditKind = "run_out"
)

// Credit is one fielding contribution read off a dismissal description.
type Credit struct {
	Fielder string
	Kind    CreditKind
}

var (
	caughtBowledMarkers = []string{"c & b", "c and b"}

	caughtPattern        = regexp.MustCompile(`(?:^|\s)c\s+(.*?)\s+b\s+`)
	stumpedBeforePattern = regexp.MustCompile(`(?:^|\s)st\s+(.*?)\s+b\s+`)
	stumpedPattern       = regexp.MustCompile(`(?:^|\s)st\s+([\p{L}\p{N}_]+ [\p{L}\p{N}_]+)`)
	runOutPattern        = regexp.MustCompile(`run out\s*\(([^)]+)\)`)
)

// ResolveDismissal extracts fielding credits from a lower-cased dismissal
// description. Caught-and-bowled yields a single catch for the bowler and
// nothing else. Otherwise catch, stumping and run-out forms are matched
// independently. Bowled, lbw, not out, retired and did-not-bat yield nothing.
// In a stumping the " b " bowler marker ends the keeper's name, so
// "st verma b singh" credits "verma".
func ResolveDismissal(text string) []Credit {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	for _, marker := range caughtBowledMarkers {
		if idx := strings.Index(text, marker); idx >= 0 {
			rest := text[idx+len(marker):]
			if next := strings.Index(rest, marker); next >= 0 {
				rest = rest[:next]
			}
			fielder := cleanFielder(rest)
			if fielder == "" {
				return nil
			}
			return []Credit{{Fielder: fielder, Kind: CreditCatch}}
		}
	}

	credits := make([]Credit, 0, 2)
	if match := caughtPattern.FindStringSubmatch(text); match != nil {
		if fielder := cleanFielder(match[1]); fielder != "" {
			credits = append(credits, Credit{Fielder: fielder, Kind: CreditCatch})
		}
	}

	stumped := stumpedBeforePattern.FindStringSubmatch(text)
	if stumped == nil {
		stumped = stumpedPattern.FindStringSubmatch(text)
	}
	if stumped != nil {
		if fielder := cleanFielder(stumped[1]); fielder != "" {
			credits = append(credits, Credit{Fielder: fielder, Kind: CreditStumping})
		}
	}

	if match := runOutPattern.FindStringSubmatch(text); match != nil {
		for _, name := range strings.Split(match[1], "/") {
			if fielder := cleanFielder(name); fielder != "" {
				credits = append(credits, Credit{Fielder: fielder, Kind: CreditRunOut})
			}
		}
	}

	if len(credits) == 0 {
		return nil
	}
	return credits
}

// cleanFielder drops the substitute and keeper markers some scorecards put
// in front of a fielder's name.
func cleanFielder(raw string) string {
	name := strings.ReplaceAll(raw, "(sub)", "")
	name = strings.ReplaceAll(name, "†", "")
	return strings.Join(strings.Fields(name), " ")
}

// FieldingTally folds credits for one innings into per-fielder totals,
// keeping first-seen order.
type FieldingTally struct {
	matchID string
	innings int
	team    string
	order   []string
	byName  map[string]*FieldingCredit
}

func NewFieldingTally(matchID string, innings int, team string) *FieldingTally {
	return &FieldingTally{
		matchID: matchID,
		innings: innings,
		team:    team,
		byName:  make(map[string]*FieldingCredit),
	}
}

// Add records credits under the title-cased fielder name.
func (t *FieldingTally) Add(credits []Credit) {
	for _, credit := range credits {
		name := ProperName(credit.Fielder)
		if name == "" {
			continue
		}
		entry, ok := t.byName[name]
		if !ok {
			entry = &FieldingCredit{
				MatchID:     t.matchID,
				Innings:     t.innings,
				Team:        t.team,
				FielderName: name,
			}
			t.byName[name] = entry
			t.order = append(t.order, name)
		}
		switch credit.Kind {
		case CreditCatch:
			entry.Catches++
		case CreditStumping:
			entry.Stumpings++
		case CreditRunOut:
			entry.RunOuts++
		}
	}
}

func (t *FieldingTally) Credits() []FieldingCredit {
	out := make([]FieldingCredit, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.byName[name])
	}
	return out
}
