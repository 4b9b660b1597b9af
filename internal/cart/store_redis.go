package cart

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// cartTTL bounds how long abandoned carts are kept.
const cartTTL = 30 * 24 * time.Hour

// RedisStore keeps cart mirrors in Redis so carts survive restarts and
// are shared across instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(key string) string {
	return "cart:" + key
}

func (s *RedisStore) Load(ctx context.Context, key string) (Cart, error) {
	data, err := s.client.Get(ctx, cartKey(key)).Bytes()
	if err == redis.Nil {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, err
	}
	// corrupt payloads degrade to an empty cart
	return Unmarshal(data), nil
}

func (s *RedisStore) Save(ctx context.Context, key string, c Cart) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(key), data, cartTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, cartKey(key)).Err()
}
