// internal/core/services/cart_manager.go
package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/ports"
)

// CartManager hands out hydrated CartStore instances keyed by cart ID and
// implements ports.CartService on top of them. A store is created and
// hydrated on first touch; afterwards the in-memory store is authoritative
// for the process lifetime.
type CartManager struct {
	storage ports.CartStorage
	logger  *slog.Logger

	mu     sync.Mutex
	stores map[uuid.UUID]*CartStore
}

// Statically assert that *CartManager implements the CartService interface.
var _ ports.CartService = (*CartManager)(nil)

// NewCartManager creates a new cart manager
func NewCartManager(storage ports.CartStorage, logger *slog.Logger) *CartManager {
	return &CartManager{
		storage: storage,
		logger:  logger.With(slog.String("service", "cart")),
		stores:  make(map[uuid.UUID]*CartStore),
	}
}

// Store returns the hydrated store for the cart, creating it on first use.
// Hydration happens-before the store is published, so no caller can observe
// an unhydrated store through the manager.
func (m *CartManager) Store(ctx context.Context, cartID uuid.UUID) (*CartStore, error) {
	m.mu.Lock()
	store, ok := m.stores[cartID]
	m.mu.Unlock()
	if ok {
		return store, nil
	}

	store = NewCartStore(cartID, m.storage, m.logger)
	if err := store.Hydrate(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have hydrated the same cart concurrently; keep the
	// first published store so mutations land in one place.
	if existing, ok := m.stores[cartID]; ok {
		return existing, nil
	}
	m.stores[cartID] = store
	return store, nil
}

// Evict drops the in-memory store for a cart, e.g. after a session ends.
// The persisted envelope is untouched.
func (m *CartManager) Evict(cartID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, cartID)
}

// AddItem implements ports.CartService
func (m *CartManager) AddItem(ctx context.Context, cartID uuid.UUID, item domain.LineItem) error {
	store, err := m.Store(ctx, cartID)
	if err != nil {
		return err
	}
	return store.AddItem(ctx, item)
}

// RemoveItem implements ports.CartService
func (m *CartManager) RemoveItem(ctx context.Context, cartID uuid.UUID, variantID uuid.UUID) error {
	store, err := m.Store(ctx, cartID)
	if err != nil {
		return err
	}
	return store.RemoveItem(ctx, variantID)
}

// SetQuantity implements ports.CartService
func (m *CartManager) SetQuantity(ctx context.Context, cartID uuid.UUID, variantID uuid.UUID, quantity int) error {
	store, err := m.Store(ctx, cartID)
	if err != nil {
		return err
	}
	return store.SetQuantity(ctx, variantID, quantity)
}

// ClearCart implements ports.CartService
func (m *CartManager) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	store, err := m.Store(ctx, cartID)
	if err != nil {
		return err
	}
	return store.Clear(ctx)
}

// Items implements ports.CartService
func (m *CartManager) Items(ctx context.Context, cartID uuid.UUID) ([]domain.LineItem, error) {
	store, err := m.Store(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return store.Items(), nil
}

// TotalItemCount implements ports.CartService
func (m *CartManager) TotalItemCount(ctx context.Context, cartID uuid.UUID) (int, error) {
	store, err := m.Store(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return store.TotalItemCount(), nil
}
