package rdx

import (
	"context"
	"time"

	"agrimart/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init opens the shared redis client used for caching, the search index
// and the fire-and-forget event channels.
func Init(cfg globals.Config) error {
	Conn = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return Conn.Ping(ctx).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}
