package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campushub/blog-platform/internal/core/domain"
)

const defaultListingTTL = 30 * time.Second

// ListingCache is the Redis-backed read cache for the public role listings.
// The keyspace is fixed (one entry per listing kind and category), so Purge
// can delete it wholesale without scanning. Every Redis failure is treated as
// a cache miss; the listings are always reproducible from MongoDB.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewListingCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ListingCache {
	if ttl <= 0 {
		ttl = defaultListingTTL
	}
	return &ListingCache{client: client, ttl: ttl, log: log}
}

func (c *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("listing cache read failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *ListingCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("listing cache write failed")
	}
}

// Purge drops every listing entry. Called after any mutation that can change
// a listing.
func (c *ListingCache) Purge(ctx context.Context) {
	if err := c.client.Del(ctx, listingKeys()...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("listing cache purge failed")
	}
}

func listingKeys() []string {
	categories := []domain.Category{
		domain.CategoryAdmin,
		domain.CategoryModerator,
		domain.CategoryMentor,
		domain.CategoryMember,
		domain.CategoryAll,
	}
	keys := make([]string, 0, len(categories)*2)
	for _, cat := range categories {
		keys = append(keys, "listing:users:"+string(cat), "listing:blogs:"+string(cat))
	}
	return keys
}
