// internal/adapters/db/stock_repository_test.go
package db_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadnk31/5g-leuven/internal/adapters/db"
	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/test/helpers"
)

func TestStockRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := helpers.SetupTestDB(t)
	repo := db.NewStockRepository(testDB.Database, helpers.TestLogger())
	ctx := context.Background()

	t.Run("rows_for_variant_across_locations", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		variant := helpers.CreateTestVariant(func(v *domain.Variant) {
			v.Stock = []domain.StockRow{
				{VariantID: v.ID, Location: "leuven", Quantity: 3},
				{VariantID: v.ID, Location: "warehouse", Quantity: 4},
			}
		})
		helpers.SeedTestVariant(t, testDB.PgxPool, variant)

		rows, err := repo.RowsForVariant(ctx, variant.ID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 7, domain.AvailableStock(rows))
	})

	t.Run("unknown_variant_has_no_rows", func(t *testing.T) {
		rows, err := repo.RowsForVariant(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Equal(t, 0, domain.AvailableStock(rows))
	})

	t.Run("bulk_fetch_groups_by_variant", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		first := helpers.CreateTestVariant()
		second := helpers.CreateTestVariant(func(v *domain.Variant) {
			v.SKU = "PX9-256-POR"
			v.Stock = []domain.StockRow{
				{VariantID: v.ID, Location: "leuven", Quantity: 2},
			}
		})
		helpers.SeedTestVariant(t, testDB.PgxPool, first)
		helpers.SeedTestVariant(t, testDB.PgxPool, second)

		depleted := uuid.New()
		byVariant, err := repo.RowsForVariants(ctx, []uuid.UUID{first.ID, second.ID, depleted})
		require.NoError(t, err)

		assert.Equal(t, 5, domain.AvailableStock(byVariant[first.ID]))
		assert.Equal(t, 2, domain.AvailableStock(byVariant[second.ID]))
		_, ok := byVariant[depleted]
		assert.False(t, ok, "variants with no rows are absent from the map")
	})

	t.Run("empty_id_list_skips_the_query", func(t *testing.T) {
		byVariant, err := repo.RowsForVariants(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, byVariant)
	})
}

func TestVariantRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := helpers.SetupTestDB(t)
	repo := db.NewVariantRepository(testDB.Database, helpers.TestLogger())
	ctx := context.Background()

	t.Run("find_by_id_loads_product_and_stock", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		seeded := helpers.CreateTestVariant()
		helpers.SeedTestVariant(t, testDB.PgxPool, seeded)

		variant, err := repo.FindByID(ctx, seeded.ID)
		require.NoError(t, err)
		require.NotNil(t, variant)

		assert.Equal(t, seeded.Name, variant.Name)
		assert.Equal(t, seeded.SKU, variant.SKU)
		require.NotNil(t, variant.Product)
		assert.Equal(t, seeded.Product.Name, variant.Product.Name)
		require.NotNil(t, variant.Price)
		assert.True(t, variant.Price.Equal(*seeded.Price),
			"expected %s, got %s", seeded.Price, variant.Price)
		assert.Equal(t, 5, domain.AvailableStock(variant.Stock))
	})

	t.Run("unknown_variant_returns_nil", func(t *testing.T) {
		variant, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, variant)
	})

	t.Run("find_by_product_lists_all_variants", func(t *testing.T) {
		helpers.TruncateAllTables(t, testDB.PgxPool)
		first := helpers.CreateTestVariant()
		second := helpers.CreateTestVariant(func(v *domain.Variant) {
			v.ProductID = first.ProductID
			v.Product = first.Product
			v.SKU = "PX9-256-POR"
			v.Stock = []domain.StockRow{
				{VariantID: v.ID, Location: "leuven", Quantity: 1},
			}
		})
		helpers.SeedTestVariant(t, testDB.PgxPool, first)
		helpers.SeedTestVariant(t, testDB.PgxPool, second)

		variants, err := repo.FindByProductID(ctx, first.ProductID)
		require.NoError(t, err)
		assert.Len(t, variants, 2)
	})
}
