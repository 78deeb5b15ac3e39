// internal/core/domain/catalog.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog parent of a purchasable variant
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"category_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Variant is a specific purchasable configuration of a product, e.g. a
// size+color combination. Price, when set, overrides the product price.
type Variant struct {
	ID         uuid.UUID        `json:"id"`
	ProductID  uuid.UUID        `json:"product_id"`
	Name       string           `json:"name"`
	SKU        string           `json:"sku,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	SizeLabel  string           `json:"size_label,omitempty"`
	ColorLabel string           `json:"color_label,omitempty"`
	ImageURLs  []string         `json:"image_urls,omitempty"`
	Product    *Product         `json:"product,omitempty"`
	Stock      []StockRow       `json:"stock,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// UnitPrice resolves the effective price of the variant
func (v *Variant) UnitPrice() decimal.Decimal {
	if v.Price != nil {
		return *v.Price
	}
	if v.Product != nil {
		return v.Product.Price
	}
	return decimal.Zero
}

// Snapshot captures the denormalized display attributes for a cart line.
// The capture happens once at add-time; later catalog edits do not flow back
// into existing lines.
func (v *Variant) Snapshot() VariantSnapshot {
	s := VariantSnapshot{
		VariantName: v.Name,
		SKU:         v.SKU,
		ProductID:   v.ProductID,
		UnitPrice:   v.UnitPrice(),
		SizeLabel:   v.SizeLabel,
		ColorLabel:  v.ColorLabel,
		ImageURLs:   v.ImageURLs,
	}
	if v.Product != nil {
		s.ProductName = v.Product.Name
	}
	return s
}
