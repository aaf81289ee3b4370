package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Catalog is a read-through cache over the product repository. Cache errors
// degrade to repository reads. A fill is written only if no eviction ran
// since the read started, so an invalidation cannot be undone by a slower
// reader.
type Catalog struct {
	repo   port.ProductRepository
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewCatalog(log *slog.Logger, repo port.ProductRepository, client *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{repo: repo, client: client, ttl: ttl, log: log}
}

var errEvictedDuringRead = errors.New("evicted during read")

type cachedProduct struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
}

func toCached(p domain.Product) cachedProduct {
	return cachedProduct{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.Amount,
		Currency:  p.Price.Currency.String(),
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
	}
}

func (c cachedProduct) toDomain() (domain.Product, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency.ParseISO: %w", err)
	}

	return domain.Product{
		ID:        c.ID,
		Name:      c.Name,
		Price:     domain.NewMoney(c.Price, unit),
		Stock:     c.Stock,
		Active:    true,
		CreatedAt: c.CreatedAt,
	}, nil
}

func (c *Catalog) Get(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var cached cachedProduct
	if c.read(ctx, productKey(productID), &cached) {
		if product, err := cached.toDomain(); err == nil {
			return product, nil
		}
	}

	generation, ok := c.generation(ctx)

	product, err := c.repo.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("repo.Get: %w", err)
	}

	if ok {
		c.write(ctx, productKey(productID), toCached(product), generation)
	}

	return product, nil
}

func (c *Catalog) List(ctx context.Context) ([]domain.Product, error) {
	var cached []cachedProduct
	if c.read(ctx, productListKey, &cached) {
		if products, err := fromCachedList(cached); err == nil {
			return products, nil
		}
	}

	generation, ok := c.generation(ctx)

	products, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.List: %w", err)
	}

	if ok {
		list := make([]cachedProduct, 0, len(products))
		for _, p := range products {
			list = append(list, toCached(p))
		}
		c.write(ctx, productListKey, list, generation)
	}

	return products, nil
}

func fromCachedList(cached []cachedProduct) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(cached))
	for _, cp := range cached {
		p, err := cp.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (c *Catalog) read(ctx context.Context, key string, dst any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WarnContext(ctx, "catalog cache read failed", "key", key, "err", err)
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.log.WarnContext(ctx, "catalog cache entry corrupt", "key", key, "err", err)
		return false
	}

	return true
}

// generation returns the eviction counter; a missing counter reads as "".
func (c *Catalog) generation(ctx context.Context) (string, bool) {
	v, err := c.client.Get(ctx, generationKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.WarnContext(ctx, "catalog generation read failed", "err", err)
		return "", false
	}

	return v, true
}

func (c *Catalog) write(ctx context.Context, key string, value any, generation string) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.WarnContext(ctx, "catalog cache encode failed", "key", key, "err", err)
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errEvictedDuringRead
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, generationKey)

	switch {
	case err == nil:
	case errors.Is(err, errEvictedDuringRead), errors.Is(err, redis.TxFailedErr):
		c.log.DebugContext(ctx, "catalog fill skipped, evicted during read", "key", key)
	default:
		c.log.WarnContext(ctx, "catalog cache write failed", "key", key, "err", err)
	}
}
