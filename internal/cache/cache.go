package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPrefixDeleteUnsupported marks a backend that cannot pattern-delete.
// Callers must treat it as an accepted staleness window, not a failure.
var ErrPrefixDeleteUnsupported = errors.New("cache backend does not support prefix deletion")

// StockCache is the cache port the aggregator depends on. It is a strict
// optimization: Get reports absent on any backend trouble and Set is
// best-effort, so no read ever fails because the cache is down.
type StockCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// StockKey builds the logical cache key for a symbol+date composite.
// Backends may prepend their own namespace; callers never see it.
func StockKey(symbol string, date time.Time) string {
	return fmt.Sprintf("stock:%s:%s", symbol, date.Format(time.DateOnly))
}

// StockPrefix matches every cached date for one symbol.
func StockPrefix(symbol string) string {
	return fmt.Sprintf("stock:%s:", symbol)
}
