// internal/core/services/cart_store.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/ports"
)

// ErrNotHydrated is returned when a mutation arrives before the persisted
// snapshot has been restored. Accepting the mutation would let the deferred
// load silently overwrite it, so early writers are rejected instead.
var ErrNotHydrated = errors.New("cart store not hydrated")

// HydrationState tracks the restore lifecycle of a cart store
type HydrationState int32

const (
	StateUnhydrated HydrationState = iota
	StateHydrating
	StateHydrated
)

func (s HydrationState) String() string {
	switch s {
	case StateUnhydrated:
		return "unhydrated"
	case StateHydrating:
		return "hydrating"
	case StateHydrated:
		return "hydrated"
	default:
		return "unknown"
	}
}

// CartStore owns the in-memory line items of a single cart for the lifetime
// of the process. Mutations are serialized by an internal mutex and persisted
// best-effort after each change; persistence failures degrade the cart to
// session-only and are never surfaced to the mutating caller.
//
// A fresh store is Unhydrated. Hydrate must complete before mutations are
// accepted; reads before then report an empty cart so totals render as zero
// instead of flashing stale state.
type CartStore struct {
	cartID  uuid.UUID
	storage ports.CartStorage
	logger  *slog.Logger

	mu    sync.Mutex
	cart  *domain.Cart
	state HydrationState
}

// NewCartStore creates an unhydrated store for the given cart ID. Multiple
// independent stores can coexist; there is no shared hidden state.
func NewCartStore(cartID uuid.UUID, storage ports.CartStorage, logger *slog.Logger) *CartStore {
	return &CartStore{
		cartID:  cartID,
		storage: storage,
		logger: logger.With(
			slog.String("component", "cart_store"),
			slog.String("cart_id", cartID.String()),
		),
		cart:  domain.NewCart(),
		state: StateUnhydrated,
	}
}

// CartID returns the identity of the cart this store owns
func (s *CartStore) CartID() uuid.UUID {
	return s.cartID
}

// State reports the current hydration state
func (s *CartStore) State() HydrationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Hydrate restores the persisted snapshot into memory. It is idempotent:
// once hydrated, later calls are no-ops. Load never fails for absent or
// corrupt envelopes, so hydration only errors on genuine storage outages,
// in which case the store falls back to an empty, hydrated cart (the
// session-only degradation mode).
func (s *CartStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateHydrated {
		s.mu.Unlock()
		return nil
	}
	s.state = StateHydrating
	s.mu.Unlock()

	envelope, err := s.storage.Load(ctx, s.cartID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.WarnContext(ctx, "cart hydration load failed, starting empty",
			slog.String("error", err.Error()))
		s.cart = domain.NewCart()
		s.state = StateHydrated
		return nil
	}

	s.cart = envelope.Restore()
	s.state = StateHydrated

	s.logger.DebugContext(ctx, "cart hydrated",
		slog.Int("lines", s.cart.Len()),
		slog.Int("total_items", s.cart.TotalItemCount()))

	return nil
}

// AddItem merges the line item into the cart. An existing line for the same
// variant gains the added quantity and keeps its captured snapshot. Stock
// ceilings are deliberately not enforced here; the projection layer owns
// clamping and control gating.
func (s *CartStore) AddItem(ctx context.Context, item domain.LineItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid line item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHydrated {
		return ErrNotHydrated
	}

	s.cart.Add(item)
	s.persistLocked(ctx)

	s.logger.DebugContext(ctx, "line item added",
		slog.String("variant_id", item.VariantID.String()),
		slog.Int("quantity", item.Quantity))

	return nil
}

// RemoveItem deletes the line for the variant; absent variants are a no-op
func (s *CartStore) RemoveItem(ctx context.Context, variantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHydrated {
		return ErrNotHydrated
	}

	s.cart.Remove(variantID)
	s.persistLocked(ctx)

	return nil
}

// SetQuantity sets the line's quantity to max(0, quantity); zero removes the
// line. Quantities above available stock are accepted as-is: enforcement is
// advisory and lives in the projection, not here.
func (s *CartStore) SetQuantity(ctx context.Context, variantID uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHydrated {
		return ErrNotHydrated
	}

	s.cart.SetQuantity(variantID, quantity)
	s.persistLocked(ctx)

	return nil
}

// Clear empties the cart
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHydrated {
		return ErrNotHydrated
	}

	s.cart.Clear()
	s.persistLocked(ctx)

	return nil
}

// Items returns the current line items. Before hydration completes this is
// always empty, never a stale or partial snapshot.
func (s *CartStore) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHydrated {
		return nil
	}
	return s.cart.Items()
}

// Find returns the line for the variant, or nil
func (s *CartStore) Find(variantID uuid.UUID) *domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHydrated {
		return nil
	}
	return s.cart.Find(variantID)
}

// TotalItemCount returns the sum of all quantities, 0 before hydration
func (s *CartStore) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHydrated {
		return 0
	}
	return s.cart.TotalItemCount()
}

// Subtotal returns the price sum of all lines, zero before hydration
func (s *CartStore) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHydrated {
		return decimal.Zero
	}
	return s.cart.Subtotal()
}

// persistLocked writes the full cart snapshot to storage. Callers must hold
// s.mu. Failures are logged and swallowed: the in-memory cart remains
// correct, durability is best-effort.
func (s *CartStore) persistLocked(ctx context.Context) {
	envelope := domain.NewCartEnvelope(s.cart)
	if err := s.storage.Save(ctx, s.cartID, envelope); err != nil {
		s.logger.WarnContext(ctx, "cart persistence failed, continuing session-only",
			slog.String("error", err.Error()))
	}
}
