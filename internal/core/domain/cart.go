// internal/core/domain/cart.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariantSnapshot is the denormalized copy of variant attributes captured at
// add-time for display purposes. It is never refreshed automatically, so it
// can drift from the catalog until the line is re-added.
type VariantSnapshot struct {
	VariantName string          `json:"variant_name"`
	SKU         string          `json:"sku,omitempty"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SizeLabel   string          `json:"size_label,omitempty"`
	ColorLabel  string          `json:"color_label,omitempty"`
	ImageURLs   []string        `json:"image_urls,omitempty"`
}

// LineItem is one cart row, keyed by product variant.
type LineItem struct {
	VariantID uuid.UUID       `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	Snapshot  VariantSnapshot `json:"snapshot"`
	AddedAt   time.Time       `json:"added_at"`
}

// Validate performs domain validation on a line item
func (li *LineItem) Validate() error {
	if li.VariantID == uuid.Nil {
		return fmt.Errorf("variant_id is required")
	}
	if li.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if li.Snapshot.UnitPrice.IsNegative() {
		return fmt.Errorf("unit_price cannot be negative")
	}
	return nil
}

// LineTotal returns unit price times quantity
func (li *LineItem) LineTotal() decimal.Decimal {
	return li.Snapshot.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is a collection of line items with at most one line per variant.
// Every stored line has Quantity >= 1; a quantity that drops to zero removes
// the line instead of leaving a zero row behind.
//
// All operations are total functions over the in-memory state and perform no
// I/O; durability is the caller's concern.
type Cart struct {
	items []LineItem
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// NewCartFromItems builds a cart from a line item slice, merging duplicate
// variants and dropping non-positive quantities. Used when restoring a
// persisted snapshot that may predate the current invariants.
func NewCartFromItems(items []LineItem) *Cart {
	c := NewCart()
	for i := range items {
		if items[i].Quantity <= 0 {
			continue
		}
		c.Add(items[i])
	}
	return c
}

func (c *Cart) indexOf(variantID uuid.UUID) int {
	for i := range c.items {
		if c.items[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

// Add merges the item into the cart. An existing line for the same variant
// gains the added quantity and keeps its original snapshot; otherwise the
// item is inserted as given. No stock ceiling is enforced here.
func (c *Cart) Add(item LineItem) {
	if i := c.indexOf(item.VariantID); i >= 0 {
		c.items[i].Quantity += item.Quantity
		return
	}
	c.items = append(c.items, item)
}

// Remove deletes the line for the variant. Removing an absent variant is a
// no-op, so the operation is idempotent.
func (c *Cart) Remove(variantID uuid.UUID) {
	if i := c.indexOf(variantID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// SetQuantity sets the line's quantity to max(0, quantity); a result of zero
// removes the line entirely. Absent variants are a no-op.
func (c *Cart) SetQuantity(variantID uuid.UUID, quantity int) {
	i := c.indexOf(variantID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.Remove(variantID)
		return
	}
	c.items[i].Quantity = quantity
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the line items in insertion order
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the line for the variant, or nil if absent
func (c *Cart) Find(variantID uuid.UUID) *LineItem {
	if i := c.indexOf(variantID); i >= 0 {
		item := c.items[i]
		return &item
	}
	return nil
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.items)
}

// TotalItemCount returns the sum of all line quantities
func (c *Cart) TotalItemCount() int {
	total := 0
	for i := range c.items {
		total += c.items[i].Quantity
	}
	return total
}

// Subtotal returns the sum of all line totals
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.items {
		total = total.Add(c.items[i].LineTotal())
	}
	return total
}
