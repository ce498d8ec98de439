package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const versionKey = "campaignhub:campaigns:version"

// CampaignCache stores JSON snapshots of public campaign reads. Every key
// embeds a generation number; Invalidate bumps it so older entries are never
// read again and simply expire.
type CampaignCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCampaignCache(client *redis.Client, ttl time.Duration) *CampaignCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CampaignCache{client: client, ttl: ttl}
}

func (c *CampaignCache) generation(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// Key resolves name against the current generation. Callers resolve the key
// before reading the source of truth and store under that same key, so a
// write that lands in between leaves the result under a retired generation.
func (c *CampaignCache) Key(ctx context.Context, name string) (string, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("campaignhub:campaigns:v%d:%s", gen, name), nil
}

// Get decodes the entry stored under key into dest.
func (c *CampaignCache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *CampaignCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *CampaignCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}

func (c *CampaignCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
