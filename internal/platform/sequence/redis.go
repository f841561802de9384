package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a Sequence shared across processes, backed by a Redis INCR key.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis returns a Sequence reading from the given key. The first call on a
// fresh key yields 1.
func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (r *Redis) Next(ctx context.Context) (int64, error) {
	n, err := r.client.Incr(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence: incr %s: %w", r.key, err)
	}
	return n, nil
}
