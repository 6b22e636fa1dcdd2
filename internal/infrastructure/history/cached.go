package history

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/hi8esh/askziva/internal/domain"
)

var cacheKeyExpr = regexp.MustCompile(`[^a-z0-9]+`)

// CachedProvider is a read-through cache in front of a HistoryProvider.
// History stats move slowly, so one lookup can serve many scans of the
// same product. Reports themselves are never cached; every scan stays
// stateless.
type CachedProvider struct {
	inner domain.HistoryProvider
	cache domain.Cache
	ttl   time.Duration
}

var _ domain.HistoryProvider = (*CachedProvider)(nil)

// NewCachedProvider wraps inner with a TTL cache.
func NewCachedProvider(inner domain.HistoryProvider, cache domain.Cache, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl}
}

// Lookup serves from cache when possible, otherwise delegates and
// stores the result. Cache failures fall through to the inner provider.
func (p *CachedProvider) Lookup(ctx context.Context, query string) (*domain.HistoryStats, error) {
	key := cacheKey(query)

	if value, err := p.cache.Get(ctx, key); err == nil {
		if stats, ok := value.(*domain.HistoryStats); ok {
			log.Printf("[HISTORY] Cache hit for %q", query)
			return stats, nil
		}
	}

	stats, err := p.inner.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, stats, p.ttl); err != nil {
		log.Printf("[HISTORY] Cache store failed for %q: %v", query, err)
	}

	return stats, nil
}

// cacheKey normalizes the query so casing and punctuation variants of
// the same product share one entry.
func cacheKey(query string) string {
	normalized := cacheKeyExpr.ReplaceAllString(strings.ToLower(query), " ")
	return "history:" + strings.TrimSpace(normalized)
}
