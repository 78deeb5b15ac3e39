// internal/workers/cart_sweeper.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	redis_a "github.com/ahmadnk31/5g-leuven/internal/adapters/redis_adapter"
	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/pkg/config"
)

// Task type names registered with the asynq server
const (
	TypeCartSweep = "cart:sweep"
)

// NewCartSweepTask creates a periodic sweep task
func NewCartSweepTask() *asynq.Task {
	return asynq.NewTask(TypeCartSweep, nil)
}

// CartSweeper removes stale and empty cart envelopes from Redis. Key TTLs
// already age carts out; the sweeper is the backstop for envelopes written
// without an expiry and for empty carts that only waste memory.
type CartSweeper struct {
	client *redis.Client
	config *config.Config
	logger *slog.Logger
}

// NewCartSweeper creates a new cart sweeper
func NewCartSweeper(client *redis.Client, config *config.Config, logger *slog.Logger) *CartSweeper {
	return &CartSweeper{
		client: client,
		config: config,
		logger: logger.With(slog.String("processor", "cart_sweeper")),
	}
}

// SweepExpiredCarts scans persisted cart envelopes and deletes the ones whose
// last save is older than the configured cart TTL, plus any that hold no
// items. Unreadable envelopes are left alone; the storage adapter already
// treats them as empty on load.
func (p *CartSweeper) SweepExpiredCarts(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "sweeping cart envelopes")

	cutoff := time.Now().Add(-p.config.Cart.TTL)

	var scanned, deleted int
	iter := p.client.Scan(ctx, 0, redis_a.CartKeyPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		scanned++

		data, err := p.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}

		envelope, err := domain.UnmarshalCartEnvelope(data)
		if err != nil {
			continue
		}

		if len(envelope.Items) > 0 && envelope.SavedAt.After(cutoff) {
			continue
		}

		if err := p.client.Del(ctx, key).Err(); err != nil {
			p.logger.WarnContext(ctx, "failed to delete stale cart",
				slog.String("key", key),
				slog.String("error", err.Error()))
			continue
		}
		deleted++
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("cart key scan failed: %w", err)
	}

	p.logger.InfoContext(ctx, "cart sweep completed",
		slog.Int("scanned", scanned),
		slog.Int("deleted", deleted))

	return nil
}
