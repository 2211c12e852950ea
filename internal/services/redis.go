package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to the redis instance backing the rate limiter and the
// online-presence flags.
func InitRedis(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return client, nil
}

const presenceTTL = 24 * time.Hour

func presenceKey(userID uint) string {
	return fmt.Sprintf("presence:user:%d", userID)
}

// SetUserOnline flags a user as having a live websocket connection. The TTL
// is a safety net for flags orphaned by an unclean shutdown.
func SetUserOnline(ctx context.Context, rdb *redis.Client, userID uint) error {
	return rdb.Set(ctx, presenceKey(userID), "1", presenceTTL).Err()
}

func SetUserOffline(ctx context.Context, rdb *redis.Client, userID uint) error {
	return rdb.Del(ctx, presenceKey(userID)).Err()
}

// IsUserOnline reports whether the user currently holds a websocket
// connection. Errors degrade to "offline".
func IsUserOnline(ctx context.Context, rdb *redis.Client, userID uint) bool {
	if rdb == nil {
		return false
	}
	n, err := rdb.Exists(ctx, presenceKey(userID)).Result()
	return err == nil && n > 0
}
