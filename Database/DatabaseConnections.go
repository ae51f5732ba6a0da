package Database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/meilisearch/meilisearch-go"
	log "github.com/sirupsen/logrus"
)

func ConnectMeilisearch(host string, apiKey string) (*meilisearch.Client, error) {
	meiliClient := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	if !meiliClient.IsHealthy() {
		return nil, fmt.Errorf("meilisearch at %s is not healthy", host)
	}

	log.Debug("Meili client is healthy and initialized")

	return meiliClient, nil
}

func ConnectRedis(ctx context.Context, host string, password string, db int) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     host,
		Password: password,
		DB:       db,
	})

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("redis at %s is not healthy: %w", host, err)
	}

	log.Debug("Redis client is healthy and initialized")

	return redisClient, nil
}
