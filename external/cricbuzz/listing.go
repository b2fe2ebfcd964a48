package cricbuzz

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	listingBlockSelector = "div.cb-col-100.cb-col.cb-series-matches"
	listingLinkSelector  = "a.text-hvr-underline"
)

// ParseListing reads match descriptors from a series matches page, in page
// order. Blocks without a match link are dropped. A page with no match
// blocks at all is reported as ErrListingUnavailable.
func ParseListing(body []byte, baseURL string) ([]match.Descriptor, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse listing: %w", usecase.ErrListingUnavailable, err)
	}

	blocks := doc.Find(listingBlockSelector)
	if blocks.Length() == 0 {
		return nil, fmt.Errorf("%w: no match blocks found", usecase.ErrListingUnavailable)
	}

	out := make([]match.Descriptor, 0, blocks.Length())
	blocks.Each(func(_ int, block *goquery.Selection) {
		link := block.Find(listingLinkSelector).First()
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		matchID := secondToLastSegment(href)
		if matchID == "" {
			return
		}

		title := strings.TrimSpace(link.Text())
		out = append(out, match.Descriptor{
			ID:           matchID,
			Title:        title,
			Teams:        match.ParseTeams(title),
			Venue:        textOr(block.Find("div.text-gray").First(), match.UnknownVenue),
			Result:       textOr(block.Find("a.cb-text-complete").First(), match.ResultPending),
			Date:         scheduleDate(block.Find("span.schedule-date").First()),
			ScorecardURL: joinURL(baseURL, href),
		})
	})

	return out, nil
}

// scheduleDate reads the epoch-millisecond timestamp attribute, falling back
// to match.FallbackDate when it is missing or not all digits.
func scheduleDate(span *goquery.Selection) time.Time {
	raw, ok := span.Attr("timestamp")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" || strings.Trim(raw, "0123456789") != "" {
		return match.FallbackDate
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return match.FallbackDate
	}
	return time.UnixMilli(millis).UTC()
}

func textOr(sel *goquery.Selection, fallback string) string {
	if sel.Length() == 0 {
		return fallback
	}
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return fallback
	}
	return text
}

// secondToLastSegment returns the path segment before the slug, which is
// where Cricbuzz puts match and player ids.
func secondToLastSegment(href string) string {
	parts := strings.Split(href, "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-2])
}

func joinURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(strings.TrimRight(baseURL, "/"))
	if !strings.HasPrefix(href, "/") {
		_ = buf.WriteByte('/')
	}
	_, _ = buf.WriteString(href)
	return buf.String()
}
