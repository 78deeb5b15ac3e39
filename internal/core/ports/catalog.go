// internal/core/ports/catalog.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
)

// StockRepository supplies the raw per-location stock rows for a variant.
// Aggregation is the caller's job: rows are summed fresh on every projection
// and never cached alongside the cart.
type StockRepository interface {
	RowsForVariant(ctx context.Context, variantID uuid.UUID) ([]domain.StockRow, error)
	RowsForVariants(ctx context.Context, variantIDs []uuid.UUID) (map[uuid.UUID][]domain.StockRow, error)
}

// VariantRepository is the catalog read port that supplies variant snapshot
// data at add-to-cart time.
type VariantRepository interface {
	FindByID(ctx context.Context, variantID uuid.UUID) (*domain.Variant, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]domain.Variant, error)
}
