package app

import (
	"regexp"
	"strconv"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	valuesTupleRegex     = regexp.MustCompile(`\(\$\d+(?:, \$\d+)*\)`)
)

// formatDBQueryForTrace collapses whitespace and, for multi-row inserts,
// keeps only the first VALUES tuple plus a row count.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if head, tail, ok := strings.Cut(normalized, " VALUES "); ok {
		tuples := valuesTupleRegex.FindAllStringIndex(tail, -1)
		if len(tuples) > 1 {
			last := tuples[len(tuples)-1]
			normalized = head + " VALUES " + tail[tuples[0][0]:tuples[0][1]] +
				" /* " + strconv.Itoa(len(tuples)) + " rows */" + tail[last[1]:]
		}
	}
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
