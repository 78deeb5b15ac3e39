// internal/core/domain/cart_test.go
package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/test/helpers"
)

func TestCart_Add(t *testing.T) {
	t.Run("inserts_new_line", func(t *testing.T) {
		cart := domain.NewCart()
		item := helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.Quantity = 2
		})

		cart.Add(item)

		require.Equal(t, 1, cart.Len())
		line := cart.Find(item.VariantID)
		require.NotNil(t, line)
		assert.Equal(t, 2, line.Quantity)
	})

	t.Run("merges_same_variant_and_keeps_original_snapshot", func(t *testing.T) {
		cart := domain.NewCart()
		variantID := uuid.New()

		first := helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.VariantID = variantID
			li.Quantity = 2
			li.Snapshot.VariantName = "original name"
		})
		second := helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.VariantID = variantID
			li.Quantity = 3
			li.Snapshot.VariantName = "renamed since"
		})

		cart.Add(first)
		cart.Add(second)

		require.Equal(t, 1, cart.Len(), "same variant must stay a single line")
		line := cart.Find(variantID)
		require.NotNil(t, line)
		assert.Equal(t, 5, line.Quantity)
		assert.Equal(t, "original name", line.Snapshot.VariantName)
	})

	t.Run("different_variants_get_separate_lines", func(t *testing.T) {
		cart := domain.NewCart()
		cart.Add(helpers.CreateTestLineItem())
		cart.Add(helpers.CreateTestLineItem())

		assert.Equal(t, 2, cart.Len())
	})
}

func TestCart_Remove(t *testing.T) {
	cart := domain.NewCart()
	item := helpers.CreateTestLineItem()
	cart.Add(item)

	cart.Remove(item.VariantID)
	assert.Equal(t, 0, cart.Len())

	// Removing again is a no-op
	cart.Remove(item.VariantID)
	assert.Equal(t, 0, cart.Len())

	// Removing an unknown variant never panics or mutates
	cart.Add(helpers.CreateTestLineItem())
	cart.Remove(uuid.New())
	assert.Equal(t, 1, cart.Len())
}

func TestCart_SetQuantity(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		wantRemoved  bool
		wantQuantity int
	}{
		{name: "positive_quantity_updates_line", quantity: 7, wantQuantity: 7},
		{name: "zero_removes_line", quantity: 0, wantRemoved: true},
		{name: "negative_clamps_to_removal", quantity: -3, wantRemoved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := domain.NewCart()
			item := helpers.CreateTestLineItem(func(li *domain.LineItem) {
				li.Quantity = 2
			})
			cart.Add(item)

			cart.SetQuantity(item.VariantID, tt.quantity)

			if tt.wantRemoved {
				assert.Nil(t, cart.Find(item.VariantID))
				assert.Equal(t, 0, cart.Len())
				return
			}
			line := cart.Find(item.VariantID)
			require.NotNil(t, line)
			assert.Equal(t, tt.wantQuantity, line.Quantity)
		})
	}

	t.Run("absent_variant_is_noop", func(t *testing.T) {
		cart := domain.NewCart()
		cart.Add(helpers.CreateTestLineItem())

		cart.SetQuantity(uuid.New(), 5)

		assert.Equal(t, 1, cart.Len())
	})
}

func TestCart_Totals(t *testing.T) {
	cart := domain.NewCart()
	cart.Add(helpers.CreateTestLineItem(func(li *domain.LineItem) {
		li.Quantity = 2
		li.Snapshot.UnitPrice = decimal.NewFromFloat(10.50)
	}))
	cart.Add(helpers.CreateTestLineItem(func(li *domain.LineItem) {
		li.Quantity = 3
		li.Snapshot.UnitPrice = decimal.NewFromFloat(5.00)
	}))

	assert.Equal(t, 5, cart.TotalItemCount())
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromFloat(36.00)),
		"expected 36.00, got %s", cart.Subtotal())
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	cart := domain.NewCart()
	item := helpers.CreateTestLineItem(func(li *domain.LineItem) {
		li.Quantity = 1
	})
	cart.Add(item)

	items := cart.Items()
	items[0].Quantity = 99

	line := cart.Find(item.VariantID)
	require.NotNil(t, line)
	assert.Equal(t, 1, line.Quantity, "mutating the returned slice must not leak into the cart")
}

func TestNewCartFromItems(t *testing.T) {
	variantID := uuid.New()
	items := []domain.LineItem{
		helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.VariantID = variantID
			li.Quantity = 2
		}),
		helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.Quantity = 0 // dropped on restore
		}),
		helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.VariantID = variantID
			li.Quantity = 3 // merged into the first line
		}),
	}

	cart := domain.NewCartFromItems(items)

	require.Equal(t, 1, cart.Len())
	line := cart.Find(variantID)
	require.NotNil(t, line)
	assert.Equal(t, 5, line.Quantity)
}

func TestLineItem_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*domain.LineItem)
		errorContains string
	}{
		{
			name:   "valid_item",
			mutate: func(li *domain.LineItem) {},
		},
		{
			name:          "missing_variant_id",
			mutate:        func(li *domain.LineItem) { li.VariantID = uuid.Nil },
			errorContains: "variant_id is required",
		},
		{
			name:          "zero_quantity",
			mutate:        func(li *domain.LineItem) { li.Quantity = 0 },
			errorContains: "quantity must be positive",
		},
		{
			name:          "negative_unit_price",
			mutate:        func(li *domain.LineItem) { li.Snapshot.UnitPrice = decimal.NewFromInt(-1) },
			errorContains: "unit_price cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := helpers.CreateTestLineItem(tt.mutate)
			err := item.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestCartEnvelope_RoundTrip(t *testing.T) {
	cart := domain.NewCart()
	cart.Add(helpers.CreateTestLineItem(func(li *domain.LineItem) {
		li.Quantity = 4
	}))

	envelope := domain.NewCartEnvelope(cart)
	assert.Equal(t, domain.EnvelopeSchemaVersion, envelope.SchemaVersion)
	assert.False(t, envelope.SavedAt.IsZero())

	data, err := envelope.Marshal()
	require.NoError(t, err)

	parsed, err := domain.UnmarshalCartEnvelope(data)
	require.NoError(t, err)

	restored := parsed.Restore()
	assert.Equal(t, cart.TotalItemCount(), restored.TotalItemCount())
	assert.Equal(t, cart.Len(), restored.Len())
}

func TestUnmarshalCartEnvelope_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed_json", data: `{not json`},
		{name: "unknown_schema_version", data: `{"schema_version":2,"items":[]}`},
		{name: "missing_schema_version", data: `{"items":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.UnmarshalCartEnvelope([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
