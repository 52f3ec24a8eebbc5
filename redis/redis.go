package redis

import (
	"context"
	"log"
	"time"

	"interview-prep-server/internal/config"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()
var RedisClient *redis.Client

func InitRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisAddress,
	})
	_, err := RedisClient.Ping(Ctx).Result()
	if err != nil {
		log.Println("Redis not available. Running without Redis.")
		RedisClient = nil
		return
	}

	log.Println("Redis connected successfully.")
}

// StoreToken records an issued login token so the auth middleware
// can treat unknown tokens as revoked
func StoreToken(token string, ttl time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Set(Ctx, token, "1", ttl).Err()
}

// RevokeToken drops a token on logout
func RevokeToken(token string) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(Ctx, token).Err()
}

// TokenExists reports whether a token is still active
func TokenExists(token string) (bool, error) {
	if RedisClient == nil {
		// without redis there is no revocation list, accept the token
		return true, nil
	}
	n, err := RedisClient.Exists(Ctx, token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
