package player

import "context"

// Directory resolves canonical player names from profile pages.
type Directory interface {
	ResolveName(ctx context.Context, profileRef string) (string, error)
	ResolveNameByID(ctx context.Context, playerID string) (string, error)
}
