package cricbuzz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
)

const (
	potmBlockSelector   = "div.cb-col.cb-col-50.cb-mom-itm"
	potmLinkSelector    = "a.cb-link-undrln"
	profileNameSelector = "h1.cb-font-40"
	commentarySelector  = "div.cb-mr-bottom-10.cb-col.cb-col-100.cb-events"
	ballLineSelector    = "div.cb-col.cb-com-ln.cb-col-90"
)

// dotBallKeywords mark a delivery that added nothing to the batter's score.
var dotBallKeywords = []string{"no run", "byes", "leg byes", "out"}

// ParsePlayerOfMatch reads the award block of a match page. The bool is
// false when the page carries no award.
func ParsePlayerOfMatch(matchID string, body []byte) (scorecard.PlayerOfMatch, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return scorecard.PlayerOfMatch{}, false, fmt.Errorf("parse match page: %w", err)
	}

	link := doc.Find(potmBlockSelector).First().Find(potmLinkSelector).First()
	if link.Length() == 0 {
		return scorecard.PlayerOfMatch{}, false, nil
	}
	href, _ := link.Attr("href")
	name := strings.TrimSpace(link.Text())
	if name == "" {
		return scorecard.PlayerOfMatch{}, false, nil
	}

	return scorecard.PlayerOfMatch{
		MatchID:    matchID,
		PlayerName: name,
		PlayerID:   secondToLastSegment(strings.TrimSpace(href)),
	}, true, nil
}

// ParseProfileName returns the heading of a player profile page, or
// player.UnresolvedName when it has none.
func ParseProfileName(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse profile page: %w", err)
	}

	name := strings.Join(strings.Fields(doc.Find(profileNameSelector).First().Text()), " ")
	if name == "" {
		return player.UnresolvedName, nil
	}
	return name, nil
}

// CountDotBalls counts commentary events on a bowler highlights page whose
// description matches one of dotBallKeywords.
func CountDotBalls(body []byte) (int, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("parse highlights page: %w", err)
	}

	count := 0
	doc.Find(commentarySelector).Each(func(_ int, event *goquery.Selection) {
		line := event.Find(ballLineSelector).First()
		if line.Length() == 0 {
			return
		}
		text := strings.ToLower(line.Text())
		for _, keyword := range dotBallKeywords {
			if strings.Contains(text, keyword) {
				count++
				return
			}
		}
	})
	return count, nil
}
