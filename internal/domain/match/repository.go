package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	ListIDs(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, matchID string) (bool, error)
	Insert(ctx context.Context, record Record) error
}
