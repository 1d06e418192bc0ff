package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"food-delivery-api/internal/pkg/config"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	itemKeyPrefix = "catalog:item:"
	listKeyPrefix = "catalog:list:"
	generationKey = "catalog:gen"
)

// NewRedisClient returns nil when no address is configured; every cache
// built on a nil client is a no-op.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// CatalogCache stores item views by id and list pages by filter. Lists are
// keyed by a generation counter so one INCR retires every cached page.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) Enabled() bool { return c != nil && c.client != nil }

func (c *CatalogCache) Item(ctx context.Context, id uuid.UUID) (*queries.ItemView, bool) {
	var v queries.ItemView
	if !c.get(ctx, itemKey(id), &v) {
		return nil, false
	}
	return &v, true
}

func (c *CatalogCache) StoreItem(ctx context.Context, v *queries.ItemView) {
	c.set(ctx, itemKey(v.ID), v)
}

func (c *CatalogCache) List(ctx context.Context, f queries.ItemFilter) (*queries.Page[*queries.ItemView], bool) {
	if !c.Enabled() {
		return nil, false
	}
	var p queries.Page[*queries.ItemView]
	if !c.get(ctx, listKey(c.generation(ctx), f), &p) {
		return nil, false
	}
	return &p, true
}

func (c *CatalogCache) StoreList(ctx context.Context, f queries.ItemFilter, p *queries.Page[*queries.ItemView]) {
	if !c.Enabled() {
		return
	}
	c.set(ctx, listKey(c.generation(ctx), f), p)
}

// InvalidateItem drops the item entry and retires all cached list pages.
func (c *CatalogCache) InvalidateItem(ctx context.Context, id uuid.UUID) error {
	if !c.Enabled() {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, itemKey(id))
		p.Incr(ctx, generationKey)
		return nil
	})
	return err
}

func (c *CatalogCache) generation(ctx context.Context) int64 {
	n, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errs.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "catalog cache generation read failed", "error", err)
	}
	return n
}

func (c *CatalogCache) get(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errs.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		slog.WarnContext(ctx, "catalog cache entry is corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		slog.WarnContext(ctx, "catalog cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
	}
}

func itemKey(id uuid.UUID) string { return itemKeyPrefix + id.String() }

// listKey encodes every filter field; url.Values sorts keys so equal filters
// always map to the same key.
func listKey(gen int64, f queries.ItemFilter) string {
	q := url.Values{}
	if f.OutletID != nil {
		q.Set("outlet", f.OutletID.String())
	}
	q.Set("category", f.Category)
	q.Set("veg", strconv.FormatBool(f.VegOnly))
	q.Set("available", strconv.FormatBool(f.AvailableOnly))
	q.Set("q", f.Query)
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("limit", strconv.Itoa(f.Limit))
	return listKeyPrefix + strconv.FormatInt(gen, 10) + ":" + q.Encode()
}
