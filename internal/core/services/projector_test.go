// internal/core/services/projector_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/services"
	"github.com/ahmadnk31/5g-leuven/test/helpers"
	"github.com/ahmadnk31/5g-leuven/test/mocks"
)

func TestStockProjector_ProjectItem(t *testing.T) {
	t.Run("projects_against_fetched_stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stock := mocks.NewMockStockRepository(ctrl)

		item := helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.Quantity = 2
		})
		stock.EXPECT().
			RowsForVariant(gomock.Any(), item.VariantID).
			Return(helpers.CreateTestStockRows(item.VariantID, 5), nil)

		projector := services.NewStockProjector(stock, helpers.TestLogger())
		view := projector.ProjectItem(context.Background(), item)

		assert.Equal(t, 5, view.AvailableStock)
		assert.Equal(t, 2, view.DisplayQuantity)
		assert.True(t, view.CanIncrement)
		assert.False(t, view.OutOfStock)
	})

	t.Run("fetch_error_projects_as_out_of_stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stock := mocks.NewMockStockRepository(ctrl)

		item := helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.Quantity = 2
		})
		stock.EXPECT().
			RowsForVariant(gomock.Any(), item.VariantID).
			Return(nil, errors.New("query timeout"))

		projector := services.NewStockProjector(stock, helpers.TestLogger())
		view := projector.ProjectItem(context.Background(), item)

		assert.Equal(t, 0, view.AvailableStock)
		assert.Equal(t, 0, view.DisplayQuantity)
		assert.True(t, view.OutOfStock)
		assert.False(t, view.CanIncrement)
		assert.Equal(t, 2, view.Quantity, "stored quantity survives the failure")
	})
}

func TestStockProjector_ProjectCart(t *testing.T) {
	t.Run("single_bulk_fetch_for_all_variants", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stock := mocks.NewMockStockRepository(ctrl)

		inStock := helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.Quantity = 2
			li.Snapshot.UnitPrice = decimal.NewFromInt(10)
		})
		unknown := helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.Quantity = 1
			li.Snapshot.UnitPrice = decimal.NewFromInt(20)
		})

		stock.EXPECT().
			RowsForVariants(gomock.Any(), gomock.Len(2)).
			Return(map[uuid.UUID][]domain.StockRow{
				inStock.VariantID: helpers.CreateTestStockRows(inStock.VariantID, 4),
				// unknown.VariantID intentionally absent
			}, nil)

		projector := services.NewStockProjector(stock, helpers.TestLogger())
		view := projector.ProjectCart(context.Background(), []domain.LineItem{inStock, unknown})

		require.Len(t, view.Items, 2)
		assert.Equal(t, 3, view.TotalItemCount)
		assert.False(t, view.Items[0].OutOfStock)
		assert.True(t, view.Items[1].OutOfStock, "variant missing from the stock map is out of stock")

		// Subtotal prices stored quantities: 2*10 + 1*20
		assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(40)),
			"expected 40, got %s", view.Subtotal)
	})

	t.Run("empty_cart_skips_the_fetch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stock := mocks.NewMockStockRepository(ctrl)
		// No RowsForVariants expectation

		projector := services.NewStockProjector(stock, helpers.TestLogger())
		view := projector.ProjectCart(context.Background(), nil)

		assert.Empty(t, view.Items)
		assert.Equal(t, 0, view.TotalItemCount)
		assert.True(t, view.Subtotal.IsZero())
	})

	t.Run("bulk_fetch_error_projects_whole_cart_out_of_stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stock := mocks.NewMockStockRepository(ctrl)

		items := []domain.LineItem{
			helpers.CreateTestLineItem(),
			helpers.CreateTestLineItem(),
		}
		stock.EXPECT().
			RowsForVariants(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset"))

		projector := services.NewStockProjector(stock, helpers.TestLogger())
		view := projector.ProjectCart(context.Background(), items)

		require.Len(t, view.Items, 2)
		for _, iv := range view.Items {
			assert.True(t, iv.OutOfStock)
			assert.Equal(t, 0, iv.DisplayQuantity)
		}
	})
}

func TestStockProjector_CanAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	stock := mocks.NewMockStockRepository(ctrl)
	projector := services.NewStockProjector(stock, helpers.TestLogger())
	ctx := context.Background()

	available := uuid.New()
	stock.EXPECT().
		RowsForVariant(gomock.Any(), available).
		Return(helpers.CreateTestStockRows(available, 1), nil)
	assert.True(t, projector.CanAdd(ctx, available))

	depleted := uuid.New()
	stock.EXPECT().
		RowsForVariant(gomock.Any(), depleted).
		Return(nil, nil)
	assert.False(t, projector.CanAdd(ctx, depleted))

	failing := uuid.New()
	stock.EXPECT().
		RowsForVariant(gomock.Any(), failing).
		Return(nil, errors.New("timeout"))
	assert.False(t, projector.CanAdd(ctx, failing), "fetch failure fails closed")
}
