package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so stores depend on one small import
type Client interface {
	redis.UniversalClient
}
