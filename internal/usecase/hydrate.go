package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

// hydrateStats counts the lookups a scorecard needed and how many failed.
type hydrateStats struct {
	Profiles         int
	UnresolvedNames  int
	DotBallLookups   int
	FailedDotLookups int
}

// hydrateScorecard fills canonical names from profile pages and dot-ball
// counts from highlight pages, running lookups on a bounded worker pool.
// Failed lookups keep the display name or a zero count.
func hydrateScorecard(
	ctx context.Context,
	card *scorecard.Scorecard,
	directory player.Directory,
	source ScorecardSource,
	workers int,
	logger *logging.Logger,
) (hydrateStats, error) {
	refs := profileRefs(card)
	stats := hydrateStats{Profiles: len(refs)}

	pool, err := ants.NewPool(max(workers, 1))
	if err != nil {
		return stats, fmt.Errorf("create hydrate pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	var submitErr error
	names := make(map[string]string, len(refs))
	dots := make([]int, len(card.Bowling))
	failed := make([]bool, len(card.Bowling))

	submit := func(task func()) bool {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			task()
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit hydrate task: %w", err)
			return false
		}
		return true
	}

	for _, ref := range refs {
		ref := ref
		if !submit(func() {
			name, err := directory.ResolveName(ctx, ref)
			if err != nil {
				logger.WarnContext(ctx, "profile lookup failed, keeping display name", "match_id", card.MatchID, "profile_ref", ref, "error", err)
				return
			}
			if !player.IsResolved(name) {
				logger.DebugContext(ctx, "profile page has no name", "match_id", card.MatchID, "profile_ref", ref)
				return
			}
			mu.Lock()
			names[ref] = name
			mu.Unlock()
		}) {
			break
		}
	}

	if submitErr == nil {
		for idx, entry := range card.Bowling {
			idx, ref := idx, entry.DotBallRef
			if ref == "" {
				continue
			}
			stats.DotBallLookups++
			if !submit(func() {
				count, err := source.CountDotBalls(ctx, ref)
				if err != nil {
					failed[idx] = true
					logger.WarnContext(ctx, "dot ball lookup failed, counting zero", "match_id", card.MatchID, "bowler", card.Bowling[idx].DisplayName, "error", err)
					return
				}
				dots[idx] = count
			}) {
				break
			}
		}
	}

	wg.Wait()
	if submitErr != nil {
		return stats, submitErr
	}

	resolve := func(ref, display string) (string, bool) {
		if name, ok := names[ref]; ok && ref != "" {
			return name, true
		}
		return display, false
	}
	for idx := range card.Batting {
		entry := &card.Batting[idx]
		entry.CanonicalName, entry.NameResolved = resolve(entry.ProfileRef, entry.DisplayName)
		if !entry.NameResolved {
			stats.UnresolvedNames++
		}
	}
	for idx := range card.DidNotBat {
		entry := &card.DidNotBat[idx]
		entry.CanonicalName, entry.NameResolved = resolve(entry.ProfileRef, entry.DisplayName)
		if !entry.NameResolved {
			stats.UnresolvedNames++
		}
	}
	for idx := range card.Bowling {
		entry := &card.Bowling[idx]
		entry.CanonicalName, entry.NameResolved = resolve(entry.ProfileRef, entry.DisplayName)
		if !entry.NameResolved {
			stats.UnresolvedNames++
		}
		entry.DotBalls = dots[idx]
		if failed[idx] {
			stats.FailedDotLookups++
		}
	}

	return stats, nil
}

// profileRefs lists distinct profile links in batting, did-not-bat then
// bowling order.
func profileRefs(card *scorecard.Scorecard) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(card.Batting)+len(card.DidNotBat)+len(card.Bowling))
	add := func(ref string) {
		if ref == "" {
			return
		}
		if _, ok := seen[ref]; ok {
			return
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	for _, entry := range card.Batting {
		add(entry.ProfileRef)
	}
	for _, entry := range card.DidNotBat {
		add(entry.ProfileRef)
	}
	for _, entry := range card.Bowling {
		add(entry.ProfileRef)
	}
	return out
}
