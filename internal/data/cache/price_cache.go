package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const keyPrefix = "salon:service:price:"

// PriceSource is the authoritative price store behind the cache.
type PriceSource interface {
	FindPrice(ctx context.Context, id uuid.UUID) (float64, bool, error)
}

// PriceCache is a read-through cache of service prices. Redis failures are
// logged and fall back to the source; unknown services are not cached.
type PriceCache struct {
	store  Store
	source PriceSource
	ttl    time.Duration
	log    *zap.Logger
}

func NewPriceCache(store Store, source PriceSource, ttl time.Duration, log *zap.Logger) *PriceCache {
	return &PriceCache{
		store:  store,
		source: source,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "service_price")),
	}
}

func priceKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// ServicePrice returns the cached price or loads it from the source.
func (c *PriceCache) ServicePrice(ctx context.Context, serviceID uuid.UUID) (float64, bool, error) {
	key := priceKey(serviceID)

	if c.store != nil {
		raw, ok, err := c.store.Get(ctx, key)
		switch {
		case err != nil:
			c.log.Warn("Price cache read failed", zap.Error(err), zap.String("service_id", serviceID.String()))
		case ok:
			price, perr := strconv.ParseFloat(raw, 64)
			if perr == nil {
				return price, true, nil
			}
			c.log.Warn("Corrupt cached price", zap.String("key", key), zap.String("value", raw))
		}
	}

	price, found, err := c.source.FindPrice(ctx, serviceID)
	if err != nil {
		return 0, false, fmt.Errorf("load price of service %s: %w", serviceID.String(), err)
	}
	if !found || c.store == nil {
		return price, found, nil
	}

	if err := c.store.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), c.ttl); err != nil {
		c.log.Warn("Price cache write failed", zap.Error(err), zap.String("service_id", serviceID.String()))
	}

	return price, true, nil
}
