package Database

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const SearchCacheTTL = 24 * time.Hour

// SearchCache stores raw search response bodies.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
}

// SearchCacheKey identifies a search by what it asks for. The access key is left
// out so rotating it does not invalidate the cache.
func SearchCacheKey(query string, perPage int) string {
	sum := md5.Sum([]byte(query + "\x00" + strconv.Itoa(perPage)))
	return "iconforge:search:" + hex.EncodeToString(sum[:])
}

type RedisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSearchCache(client *redis.Client) *RedisSearchCache {
	return &RedisSearchCache{client: client, ttl: SearchCacheTTL}
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	log.Trace("Search cache hit for ", key)
	return body, true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, key string, body []byte) error {
	return c.client.Set(ctx, key, body, c.ttl).Err()
}
