package cache

import (
	"context"
	"time"

	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "hypeconnect:"

type deliveryGuard struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

func NewDeliveryGuard(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) service.DeliveryGuard {
	return &deliveryGuard{client: client, ttl: ttl, logger: logger}
}

// Acquire claims key for ttl. When Redis cannot be reached the claim is
// granted: the booking lock still serializes settlement.
func (g *deliveryGuard) Acquire(ctx context.Context, key string) bool {
	ok, err := g.client.SetNX(ctx, keyPrefix+key, time.Now().Unix(), g.ttl).Result()
	if err != nil {
		g.logger.Warn("Delivery guard unavailable", zap.String("key", key), zap.Error(err))
		return true
	}

	return ok
}

func (g *deliveryGuard) Release(ctx context.Context, key string) {
	if err := g.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		g.logger.Warn("Failed to release delivery guard", zap.String("key", key), zap.Error(err))
	}
}
