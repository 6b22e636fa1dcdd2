package domain

import (
	"context"
	"time"
)

// PageExtractor resolves a storefront listing URL into product signals.
type PageExtractor interface {
	Extract(ctx context.Context, pageURL string) (*ResolvedProduct, error)
}

// CompetitorScanner finds the single best-matching offer for a query on
// one storefront. A nil offer with a nil error means an ordinary
// "no match"; errors cover transport failures and blocked access.
type CompetitorScanner interface {
	Site() string
	Scan(ctx context.Context, query string) (*CompetitorOffer, error)
}

// HistoryProvider looks up historical price stats for a query.
type HistoryProvider interface {
	Lookup(ctx context.Context, query string) (*HistoryStats, error)
}

// Judge produces a plausibility verdict for a listing. Implementations
// own their fallback policy: Judge never fails, it returns
// FallbackJudgment when the backing service cannot answer.
type Judge interface {
	Available() bool
	Judge(ctx context.Context, product ResolvedProduct) Judgment
}

// Cache defines the interface for caching operations
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
