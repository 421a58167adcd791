package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisClient *redis.Client
)

// NewRedis starts (once per process) an embedded miniredis server and returns
// a client bound to it. The reference cache and lock service run against it
// exactly as they would against a real Redis.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		srv, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisClient = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	})
	return redisClient
}

// ClearRedis flushes every key so cached reference lists from one scenario
// never leak into the next.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}
