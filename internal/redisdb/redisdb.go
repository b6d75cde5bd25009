package redisdb

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"go-brochure/internal/config"
	"go-brochure/internal/webpage"
)

// NewClient returns a redis client, or nil when no address is configured.
func NewClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// PageCache caches fetched pages by URL. Server mode only; the CLI flows
// always fetch live.
type PageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPageCache(rdb *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PageCache{rdb: rdb, ttl: ttl}
}

func cacheKey(pageURL string) string {
	return "page:" + pageURL
}

// Get returns the cached page for pageURL, if any.
func (c *PageCache) Get(ctx context.Context, pageURL string) (*webpage.Page, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(pageURL)).Bytes()
	if err != nil {
		return nil, false
	}
	var page webpage.Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false
	}
	return &page, true
}

// Put stores page under its URL. Cache failures only log; the page was
// fetched fine.
func (c *PageCache) Put(ctx context.Context, page *webpage.Page) {
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(page.URL), raw, c.ttl).Err(); err != nil {
		log.Printf("[Cache] failed to store %s: %v", page.URL, err)
	}
}

// CachingFetcher wraps a fetcher with the page cache.
type CachingFetcher struct {
	Fetcher interface {
		Fetch(ctx context.Context, pageURL string) (*webpage.Page, error)
	}
	Cache *PageCache
}

func (f *CachingFetcher) Fetch(ctx context.Context, pageURL string) (*webpage.Page, error) {
	if page, ok := f.Cache.Get(ctx, pageURL); ok {
		return page, nil
	}
	page, err := f.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	f.Cache.Put(ctx, page)
	return page, nil
}
