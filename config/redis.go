package config

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// RedisConfigured reports whether any redis address variable is set.
func RedisConfigured() bool {
	return redisAddr() != ""
}

func redisAddr() string {
	for _, k := range []string{"REDIS_ADDR", "REDIS_URI", "REDIS_URL"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

// InitRedis connects when redis is configured and leaves RedisClient nil otherwise.
func InitRedis() error {
	val := redisAddr()
	if val == "" {
		return nil
	}

	var client *redis.Client
	if strings.HasPrefix(val, "redis://") || strings.HasPrefix(val, "rediss://") {
		opt, err := redis.ParseURL(val)
		if err != nil {
			return err
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: val})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}

	RedisClient = client
	return nil
}
