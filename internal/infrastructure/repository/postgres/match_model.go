package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

type matchTableModel struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Teams        pq.StringArray `db:"teams"`
	Venue        string         `db:"venue"`
	Result       string         `db:"result"`
	MatchDate    time.Time      `db:"match_date"`
	ScorecardURL string         `db:"scorecard_url"`
	Processed    bool           `db:"processed"`
}

func matchModelFromRecord(record match.Record) matchTableModel {
	return matchTableModel{
		ID:           record.ID,
		Title:        record.Title,
		Teams:        pq.StringArray(append([]string(nil), record.Teams...)),
		Venue:        record.Venue,
		Result:       record.Result,
		MatchDate:    record.Date.UTC(),
		ScorecardURL: record.ScorecardURL,
		Processed:    record.Processed,
	}
}

func matchRecordFromRow(row matchTableModel) match.Record {
	return match.Record{
		Descriptor: match.Descriptor{
			ID:           row.ID,
			Title:        row.Title,
			Teams:        []string(row.Teams),
			Venue:        row.Venue,
			Result:       row.Result,
			Date:         row.MatchDate.UTC(),
			ScorecardURL: row.ScorecardURL,
		},
		Processed: row.Processed,
	}
}
