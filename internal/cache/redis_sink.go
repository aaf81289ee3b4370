package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/nikolayk812/shopcore/internal/domain"
)

const (
	productKeyPrefix = "product:"
	productListKey   = "products:all"
	scanBatch        = 100
)

// generationKey is bumped with every eviction; see Catalog.write.
const generationKey = "products:generation"

func productKey(id fmt.Stringer) string {
	return productKeyPrefix + id.String()
}

// RedisSink evicts cached catalog entries.
type RedisSink struct {
	client *redis.Client
}

func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Deliver(ctx context.Context, inv domain.Invalidation) error {
	if inv.All {
		return s.evictAll(ctx)
	}

	keys := make([]string, 0, len(inv.ProductIDs)+1)
	for _, id := range inv.ProductIDs {
		keys = append(keys, productKey(id))
	}
	keys = append(keys, productListKey)

	return s.evict(ctx, keys)
}

func (s *RedisSink) evictAll(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, productKeyPrefix+"*", scanBatch).Iterator()

	keys := []string{productListKey}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	return s.evict(ctx, keys)
}

func (s *RedisSink) evict(ctx context.Context, keys []string) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, keys...)
		p.Incr(ctx, generationKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("client.TxPipelined: %w", err)
	}

	return nil
}
