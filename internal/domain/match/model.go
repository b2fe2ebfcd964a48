package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	ResultPending = "Result Pending"
	UnknownVenue  = "Unknown Venue"
	UnknownTeam   = "Unknown"

	// DateLayout is the UTC format dates are stored and exported in.
	DateLayout = "2006-01-02T15:04:05Z"
)

// FallbackDate stands in for a match whose listing carried no usable timestamp.
var FallbackDate = time.Unix(0, 0).UTC()

// Descriptor is one match as found in a series listing.
type Descriptor struct {
	ID           string    `json:"id" validate:"required"`
	Title        string    `json:"title"`
	Teams        []string  `json:"teams" validate:"len=2,dive,required"`
	Venue        string    `json:"venue" validate:"required"`
	Result       string    `json:"result" validate:"required"`
	Date         time.Time `json:"date"`
	ScorecardURL string    `json:"scorecard_url" validate:"required"`
}

// DateISO renders the match date in DateLayout.
func (d Descriptor) DateISO() string {
	return d.Date.UTC().Format(DateLayout)
}

// TeamsLabel joins the teams for display.
func (d Descriptor) TeamsLabel() string {
	return strings.Join(d.Teams, " vs ")
}

// IsComplete reports whether the listing carried a final result.
func (d Descriptor) IsComplete() bool {
	return d.Result != "" && d.Result != ResultPending
}

func (d Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if len(d.Teams) != 2 {
		return fmt.Errorf("match %s must have exactly two teams", d.ID)
	}
	if d.ScorecardURL == "" {
		return fmt.Errorf("match %s scorecard url is required", d.ID)
	}

	return nil
}

// ParseTeams reads the two sides from a listing title such as
// "India vs Australia, 1st T20I". Titles without " vs " yield two unknowns.
func ParseTeams(title string) []string {
	head, _, _ := strings.Cut(title, ",")
	home, away, ok := strings.Cut(head, " vs ")
	if !ok {
		return []string{UnknownTeam, UnknownTeam}
	}
	if rest, _, found := strings.Cut(away, " vs "); found {
		away = rest
	}
	return []string{strings.TrimSpace(home), strings.TrimSpace(away)}
}

// Record is the persisted form of a processed match.
type Record struct {
	Descriptor
	Processed bool
}
