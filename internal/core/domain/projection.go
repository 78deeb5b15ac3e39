// internal/core/domain/projection.go
package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemView is the display-safe projection of a line item against the
// stock currently available for its variant. Clamping here is
// presentation-only: the stored quantity is never mutated by a projection,
// only by an explicit SetQuantity call.
type LineItemView struct {
	VariantID       uuid.UUID       `json:"variant_id"`
	Snapshot        VariantSnapshot `json:"snapshot"`
	Quantity        int             `json:"quantity"`
	DisplayQuantity int             `json:"display_quantity"`
	AvailableStock  int             `json:"available_stock"`
	CanIncrement    bool            `json:"can_increment"`
	CanDecrement    bool            `json:"can_decrement"`
	OutOfStock      bool            `json:"out_of_stock"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// ProjectLineItem combines a line item with the stock rows fetched for its
// variant. Unknown stock must be passed as an empty slice: availability sums
// to zero and purchasing is disabled (fail-closed), since overselling is the
// worse failure mode.
func ProjectLineItem(item LineItem, rows []StockRow) LineItemView {
	available := AvailableStock(rows)

	display := item.Quantity
	if display > available {
		display = available
	}

	return LineItemView{
		VariantID:       item.VariantID,
		Snapshot:        item.Snapshot,
		Quantity:        item.Quantity,
		DisplayQuantity: display,
		AvailableStock:  available,
		CanIncrement:    item.Quantity < available,
		CanDecrement:    item.Quantity > 1,
		OutOfStock:      available == 0,
		LineTotal:       item.LineTotal(),
	}
}

// CanAddToCart reports whether a variant with the given stock rows accepts
// new cart lines at all. Zero availability is the out-of-stock terminal
// state for the variant.
func CanAddToCart(rows []StockRow) bool {
	return AvailableStock(rows) > 0
}

// CartView is the projection of a whole cart for rendering
type CartView struct {
	Items          []LineItemView  `json:"items"`
	TotalItemCount int             `json:"total_item_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}
