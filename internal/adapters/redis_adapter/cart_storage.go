// internal/adapters/redis/cart_storage.go
package redis_a

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/ports"
)

// CartKeyPrefix namespaces persisted cart envelopes in Redis
const CartKeyPrefix = "cart"

// CartStorage persists cart envelopes in Redis, one key per cart. Envelopes
// carry a TTL so abandoned carts age out instead of accumulating forever.
type CartStorage struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Statically assert that *CartStorage implements the CartStorage port.
var _ ports.CartStorage = (*CartStorage)(nil)

// NewCartStorage creates a Redis-backed cart storage adapter
func NewCartStorage(client *redis.Client, ttl time.Duration, logger *slog.Logger) *CartStorage {
	return &CartStorage{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "cart_storage")),
	}
}

// CartKey builds the storage key for a cart ID
func CartKey(cartID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", CartKeyPrefix, cartID)
}

// Save replaces the persisted envelope for the cart. The whole snapshot is
// written in one SET; there is no partial update path.
func (s *CartStorage) Save(ctx context.Context, cartID uuid.UUID, envelope domain.CartEnvelope) error {
	data, err := envelope.Marshal()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal cart envelope",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("marshal error: %w", err)
	}

	if err := s.client.Set(ctx, CartKey(cartID), data, s.ttl).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart envelope",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis set error: %w", err)
	}

	s.logger.DebugContext(ctx, "cart envelope saved",
		slog.String("cart_id", cartID.String()),
		slog.Int("lines", len(envelope.Items)))

	return nil
}

// Load reads the persisted envelope for the cart. An absent key, unparseable
// payload, or unknown schema version all degrade to an empty envelope with a
// nil error: a cart that cannot be restored starts over, it never crashes
// the session.
func (s *CartStorage) Load(ctx context.Context, cartID uuid.UUID) (domain.CartEnvelope, error) {
	data, err := s.client.Get(ctx, CartKey(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.logger.DebugContext(ctx, "no persisted cart, starting empty",
				slog.String("cart_id", cartID.String()))
			return emptyEnvelope(), nil
		}
		s.logger.ErrorContext(ctx, "failed to load cart envelope",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
		return emptyEnvelope(), fmt.Errorf("redis get error: %w", err)
	}

	envelope, err := domain.UnmarshalCartEnvelope(data)
	if err != nil {
		// Corrupt or version-mismatched payloads are treated the same as
		// absent: warn and fall back to an empty cart.
		s.logger.WarnContext(ctx, "discarding unreadable cart envelope",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
		return emptyEnvelope(), nil
	}

	return envelope, nil
}

// Delete removes the persisted envelope; deleting an absent cart is a no-op
func (s *CartStorage) Delete(ctx context.Context, cartID uuid.UUID) error {
	if err := s.client.Del(ctx, CartKey(cartID)).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete cart envelope",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis del error: %w", err)
	}
	return nil
}

// Ping checks if Redis is accessible
func (s *CartStorage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping error: %w", err)
	}
	return nil
}

func emptyEnvelope() domain.CartEnvelope {
	return domain.CartEnvelope{SchemaVersion: domain.EnvelopeSchemaVersion}
}
