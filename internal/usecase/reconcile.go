package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

const suggestionLimit = 3

type reconcileStats struct {
	Aliases            int
	Collisions         int
	UnresolvedFielders int
}

// reconcileNames rewrites fielder names, unresolved bowler names and
// player-of-match names to canonical names through an alias map built from
// the whole batch.
func reconcileNames(ctx context.Context, batch *Batch, logger *logging.Logger) reconcileStats {
	aliases := player.BuildAliasMap(batch.NamePairs())
	stats := reconcileStats{Aliases: aliases.Len()}

	for _, collision := range aliases.Collisions() {
		stats.Collisions++
		logger.DebugContext(ctx, "alias re-pointed by later player", "alias", collision.Alias, "previous", collision.Previous, "current", collision.Current)
	}

	for idx := range batch.Fielding {
		credit := &batch.Fielding[idx]
		if !aliases.Known(credit.FielderName) {
			stats.UnresolvedFielders++
			logger.WarnContext(ctx, "fielder not matched to any player",
				"match_id", credit.MatchID,
				"fielder", credit.FielderName,
				"suggestions", aliases.Suggest(credit.FielderName, suggestionLimit),
			)
			continue
		}
		credit.FielderName = aliases.Resolve(credit.FielderName)
	}

	for idx := range batch.Bowling {
		entry := &batch.Bowling[idx]
		if !entry.NameResolved && aliases.Known(entry.DisplayName) {
			entry.CanonicalName = aliases.Resolve(entry.DisplayName)
		}
	}

	for idx := range batch.PlayersOfMatch {
		potm := &batch.PlayersOfMatch[idx]
		potm.PlayerName = aliases.Resolve(potm.PlayerName)
	}

	return stats
}
