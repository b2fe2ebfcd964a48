package player

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Collision records an alias that was re-pointed to a different canonical
// name by a later pair.
type Collision struct {
	Alias    string
	Previous string
	Current  string
}

// AliasMap maps lower-cased name variants to canonical names. Later pairs
// overwrite earlier ones on a shared alias.
type AliasMap struct {
	aliases    map[string]string
	canonical  []string
	seen       map[string]struct{}
	collisions []Collision
}

func NewAliasMap() *AliasMap {
	return &AliasMap{
		aliases: make(map[string]string),
		seen:    make(map[string]struct{}),
	}
}

// BuildAliasMap registers every variant of both names of each pair.
func BuildAliasMap(pairs []NamePair) *AliasMap {
	out := NewAliasMap()
	for _, pair := range pairs {
		out.Add(pair)
	}
	return out
}

func (m *AliasMap) Add(pair NamePair) {
	if pair.Validate() != nil {
		return
	}
	if _, ok := m.seen[pair.CanonicalName]; !ok {
		m.seen[pair.CanonicalName] = struct{}{}
		m.canonical = append(m.canonical, pair.CanonicalName)
	}

	variants := append(NameVariants(pair.DisplayName), NameVariants(pair.CanonicalName)...)
	for _, variant := range variants {
		key := strings.ToLower(variant)
		if previous, ok := m.aliases[key]; ok && previous != pair.CanonicalName {
			m.collisions = append(m.collisions, Collision{Alias: key, Previous: previous, Current: pair.CanonicalName})
		}
		m.aliases[key] = pair.CanonicalName
	}
}

// Resolve returns the canonical name for any known variant of name, or name
// itself when nothing matches.
func (m *AliasMap) Resolve(name string) string {
	if m == nil {
		return name
	}
	if canonical, ok := m.aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical
	}
	return name
}

// Known reports whether name resolves through an alias.
func (m *AliasMap) Known(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.aliases[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func (m *AliasMap) Collisions() []Collision {
	return append([]Collision(nil), m.collisions...)
}

func (m *AliasMap) Len() int {
	return len(m.aliases)
}

// Suggest ranks canonical names by fuzzy closeness to name, best first.
func (m *AliasMap) Suggest(name string, limit int) []string {
	if m == nil || limit <= 0 {
		return nil
	}
	ranks := fuzzy.RankFindFold(strings.ToLower(strings.TrimSpace(name)), m.canonical)
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)

	out := make([]string, 0, limit)
	for _, rank := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, rank.Target)
	}
	return out
}

// NameVariants returns the spellings a scorecard may use for name: the name
// itself, the surname, initial plus surname, first plus last word, and the
// same name without periods.
func NameVariants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	out := []string{name}
	parts := strings.Fields(name)
	if len(parts) > 1 {
		first := parts[0]
		last := parts[len(parts)-1]
		initial := []rune(first)[:1]
		out = append(out,
			last,
			string(initial)+" "+last,
			first+" "+last,
		)
	}

	if strings.Contains(name, ".") {
		cleaned := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.ReplaceAll(part, ".", ""); part != "" {
				cleaned = append(cleaned, part)
			}
		}
		out = append(out, strings.Join(cleaned, " "))
	}

	return dedupe(out)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
