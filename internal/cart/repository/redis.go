package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/libreria/sales-service/internal/model"
	"github.com/libreria/sales-service/pkg/cache"
	"github.com/redis/go-redis/v9"
)

type RedisRepository struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewRedisRepository(client *cache.RedisClient, ttl time.Duration) *RedisRepository {
	return &RedisRepository{
		client: client,
		ttl:    ttl,
	}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	val, err := r.client.Client.Get(ctx, cartKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewCart(), nil
		}
		return nil, err
	}

	var c model.Cart
	if err := json.Unmarshal([]byte(val), &c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = map[string]model.CartEntry{}
	}
	return &c, nil
}

func (r *RedisRepository) Save(ctx context.Context, sessionID string, c *model.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	// Every save refreshes the TTL; an active cart never expires mid-session.
	return r.client.Client.Set(ctx, cartKey(sessionID), data, r.ttl).Err()
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Client.Del(ctx, cartKey(sessionID)).Err()
}
