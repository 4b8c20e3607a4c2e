package domain

import "context"

// SourceFetcher resolves one source to an outcome. Implementations must
// never fail: every error path collapses into a status=error outcome.
type SourceFetcher interface {
	Fetch(ctx context.Context, src SourceConfig, stay StayQuery) PriceOutcome
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
