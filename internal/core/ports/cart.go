// internal/core/ports/cart.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
)

// CartService defines the application service port for cart operations.
// Implementations own the in-memory cart state; callers never mutate line
// items directly.
type CartService interface {
	AddItem(ctx context.Context, cartID uuid.UUID, item domain.LineItem) error
	RemoveItem(ctx context.Context, cartID uuid.UUID, variantID uuid.UUID) error
	SetQuantity(ctx context.Context, cartID uuid.UUID, variantID uuid.UUID, quantity int) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error
	Items(ctx context.Context, cartID uuid.UUID) ([]domain.LineItem, error)
	TotalItemCount(ctx context.Context, cartID uuid.UUID) (int, error)
}

// CartStorage is the durable key-value persistence port for cart envelopes.
// One envelope per cart, replaced wholesale on every save.
//
// Save failures must never be propagated into cart mutations; the in-memory
// cart stays authoritative for the session and durability is best-effort.
type CartStorage interface {
	Save(ctx context.Context, cartID uuid.UUID, envelope domain.CartEnvelope) error
	// Load returns the persisted envelope. Absent, corrupt, or
	// version-mismatched data yields an empty envelope and nil error.
	Load(ctx context.Context, cartID uuid.UUID) (domain.CartEnvelope, error)
	Delete(ctx context.Context, cartID uuid.UUID) error
}
