package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/libreria/sales-service/internal/sale/dto"
	"github.com/libreria/sales-service/pkg/cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisPendingStore keeps the transient checkout context. GETDEL gives the
// pop-on-read semantics: the confirmation page works exactly once.
type RedisPendingStore struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewRedisPendingStore(client *cache.RedisClient, ttl time.Duration) *RedisPendingStore {
	return &RedisPendingStore{
		client: client,
		ttl:    ttl,
	}
}

func pendingKey(sessionID string) string {
	return "pending_order:" + sessionID
}

func (s *RedisPendingStore) Put(ctx context.Context, sessionID string, order *dto.PendingOrder) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.client.Client.Set(ctx, pendingKey(sessionID), data, s.ttl).Err()
}

func (s *RedisPendingStore) Pop(ctx context.Context, sessionID string) (*dto.PendingOrder, error) {
	val, err := s.client.Client.GetDel(ctx, pendingKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var order dto.PendingOrder
	if err := json.Unmarshal([]byte(val), &order); err != nil {
		return nil, err
	}
	return &order, nil
}
