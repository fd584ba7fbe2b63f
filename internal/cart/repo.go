package cart

import (
	"context"
	"errors"
	"time"

	"github.com/railparts-supply/railparts-backend/pkg/redis"
)

// Repository persists serialized cart line lists under a cart token.
type Repository interface {
	Load(ctx context.Context, token string) ([]byte, bool, error)
	Save(ctx context.Context, token string, data []byte) error
	Delete(ctx context.Context, token string) error
}

type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepository wires the Redis-backed cart repository.
func NewRepository(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepository{client: client, ttl: ttl}
}

func (r *redisRepository) Load(ctx context.Context, token string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.CartKey(token))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *redisRepository) Save(ctx context.Context, token string, data []byte) error {
	return r.client.Set(ctx, r.client.CartKey(token), string(data), r.ttl)
}

func (r *redisRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.client.CartKey(token))
}
