package scorecard

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseFloat coerces scraped text to a non-negative number. Anything that is
// not a finite number coerces to 0.
func ParseFloat(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return value
}

// ParseInt coerces scraped text to a non-negative integer, truncating
// fractional input.
func ParseInt(raw string) int {
	return int(ParseFloat(raw))
}

// ProperName upper-cases the first letter of each word and lower-cases the rest.
func ProperName(raw string) string {
	words := strings.Fields(raw)
	for idx, word := range words {
		runes := []rune(strings.ToLower(word))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[idx] = string(runes)
	}
	return strings.Join(words, " ")
}

var roleMarkers = []string{"(c & wk)", "(c)", "(wk)", "(ip)"}

// CleanDisplayName drops captain/keeper markers that the scorecard appends to
// a batter's name.
func CleanDisplayName(raw string) string {
	name := strings.TrimSpace(raw)
	for _, marker := range roleMarkers {
		name = strings.ReplaceAll(name, marker, "")
	}
	return strings.Join(strings.Fields(name), " ")
}
