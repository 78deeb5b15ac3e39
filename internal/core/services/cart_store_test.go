// internal/core/services/cart_store_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ahmadnk31/5g-leuven/internal/core/domain"
	"github.com/ahmadnk31/5g-leuven/internal/core/services"
	"github.com/ahmadnk31/5g-leuven/test/helpers"
	"github.com/ahmadnk31/5g-leuven/test/mocks"
)

func emptyEnvelope() domain.CartEnvelope {
	return domain.CartEnvelope{SchemaVersion: domain.EnvelopeSchemaVersion}
}

func envelopeWith(items ...domain.LineItem) domain.CartEnvelope {
	cart := domain.NewCartFromItems(items)
	return domain.NewCartEnvelope(cart)
}

func TestCartStore_MutationsRejectedBeforeHydration(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)
	// No Save or Load expectations: nothing may touch storage

	store := services.NewCartStore(uuid.New(), storage, helpers.TestLogger())
	ctx := context.Background()

	assert.Equal(t, services.StateUnhydrated, store.State())

	err := store.AddItem(ctx, helpers.CreateTestLineItem())
	assert.ErrorIs(t, err, services.ErrNotHydrated)

	err = store.RemoveItem(ctx, uuid.New())
	assert.ErrorIs(t, err, services.ErrNotHydrated)

	err = store.SetQuantity(ctx, uuid.New(), 3)
	assert.ErrorIs(t, err, services.ErrNotHydrated)

	err = store.Clear(ctx)
	assert.ErrorIs(t, err, services.ErrNotHydrated)
}

func TestCartStore_ReadsReportEmptyBeforeHydration(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)

	store := services.NewCartStore(uuid.New(), storage, helpers.TestLogger())

	assert.Nil(t, store.Items())
	assert.Equal(t, 0, store.TotalItemCount())
	assert.True(t, store.Subtotal().IsZero())
	assert.Nil(t, store.Find(uuid.New()))
}

func TestCartStore_Hydrate(t *testing.T) {
	t.Run("restores_persisted_items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mocks.NewMockCartStorage(ctrl)
		cartID := uuid.New()

		persisted := helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.Quantity = 3
		})
		storage.EXPECT().
			Load(gomock.Any(), cartID).
			Return(envelopeWith(persisted), nil)

		store := services.NewCartStore(cartID, storage, helpers.TestLogger())
		require.NoError(t, store.Hydrate(context.Background()))

		assert.Equal(t, services.StateHydrated, store.State())
		assert.Equal(t, 3, store.TotalItemCount())
		require.NotNil(t, store.Find(persisted.VariantID))
	})

	t.Run("is_idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mocks.NewMockCartStorage(ctrl)
		cartID := uuid.New()

		storage.EXPECT().
			Load(gomock.Any(), cartID).
			Return(emptyEnvelope(), nil).
			Times(1)

		store := services.NewCartStore(cartID, storage, helpers.TestLogger())
		ctx := context.Background()
		require.NoError(t, store.Hydrate(ctx))
		require.NoError(t, store.Hydrate(ctx))
	})

	t.Run("storage_outage_degrades_to_empty_hydrated_cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mocks.NewMockCartStorage(ctrl)
		cartID := uuid.New()

		storage.EXPECT().
			Load(gomock.Any(), cartID).
			Return(emptyEnvelope(), errors.New("connection refused"))

		store := services.NewCartStore(cartID, storage, helpers.TestLogger())
		require.NoError(t, store.Hydrate(context.Background()))

		assert.Equal(t, services.StateHydrated, store.State())
		assert.Equal(t, 0, store.TotalItemCount())

		// The degraded store still accepts mutations
		storage.EXPECT().Save(gomock.Any(), cartID, gomock.Any()).Return(nil)
		assert.NoError(t, store.AddItem(context.Background(), helpers.CreateTestLineItem()))
	})
}

func TestCartStore_AddItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)
	cartID := uuid.New()
	ctx := context.Background()

	storage.EXPECT().Load(gomock.Any(), cartID).Return(emptyEnvelope(), nil)

	store := services.NewCartStore(cartID, storage, helpers.TestLogger())
	require.NoError(t, store.Hydrate(ctx))

	variantID := uuid.New()
	first := helpers.CreateTestLineItem(func(li *domain.LineItem) {
		li.VariantID = variantID
		li.Quantity = 1
	})
	second := helpers.CreateTestLineItem(func(li *domain.LineItem) {
		li.VariantID = variantID
		li.Quantity = 2
	})

	// Every successful mutation persists the full snapshot
	storage.EXPECT().
		Save(gomock.Any(), cartID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, env domain.CartEnvelope) error {
			assert.Equal(t, domain.EnvelopeSchemaVersion, env.SchemaVersion)
			return nil
		}).
		Times(2)

	require.NoError(t, store.AddItem(ctx, first))
	require.NoError(t, store.AddItem(ctx, second))

	line := store.Find(variantID)
	require.NotNil(t, line)
	assert.Equal(t, 3, line.Quantity)

	t.Run("rejects_invalid_item_without_persisting", func(t *testing.T) {
		bad := helpers.CreateTestLineItem(func(li *domain.LineItem) {
			li.Quantity = 0
		})
		err := store.AddItem(ctx, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be positive")
	})
}

func TestCartStore_PersistenceFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)
	cartID := uuid.New()
	ctx := context.Background()

	storage.EXPECT().Load(gomock.Any(), cartID).Return(emptyEnvelope(), nil)
	storage.EXPECT().
		Save(gomock.Any(), cartID, gomock.Any()).
		Return(errors.New("redis down")).
		AnyTimes()

	store := services.NewCartStore(cartID, storage, helpers.TestLogger())
	require.NoError(t, store.Hydrate(ctx))

	item := helpers.CreateTestLineItem(func(li *domain.LineItem) {
		li.Quantity = 2
	})

	// The mutation succeeds even though every save fails
	require.NoError(t, store.AddItem(ctx, item))
	assert.Equal(t, 2, store.TotalItemCount())

	require.NoError(t, store.SetQuantity(ctx, item.VariantID, 5))
	assert.Equal(t, 5, store.TotalItemCount())
}

func TestCartStore_SetQuantityAndRemove(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)
	cartID := uuid.New()
	ctx := context.Background()

	storage.EXPECT().Load(gomock.Any(), cartID).Return(emptyEnvelope(), nil)
	storage.EXPECT().Save(gomock.Any(), cartID, gomock.Any()).Return(nil).AnyTimes()

	store := services.NewCartStore(cartID, storage, helpers.TestLogger())
	require.NoError(t, store.Hydrate(ctx))

	item := helpers.CreateTestLineItem(func(li *domain.LineItem) {
		li.Quantity = 2
	})
	require.NoError(t, store.AddItem(ctx, item))

	require.NoError(t, store.SetQuantity(ctx, item.VariantID, 0))
	assert.Nil(t, store.Find(item.VariantID), "zero quantity removes the line")

	// Idempotent remove of the already-gone line
	require.NoError(t, store.RemoveItem(ctx, item.VariantID))
	assert.Equal(t, 0, store.TotalItemCount())
}

func TestCartManager_Store(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)
	cartID := uuid.New()
	ctx := context.Background()

	// One load regardless of how many times the cart is requested
	storage.EXPECT().
		Load(gomock.Any(), cartID).
		Return(emptyEnvelope(), nil).
		Times(1)

	manager := services.NewCartManager(storage, helpers.TestLogger())

	first, err := manager.Store(ctx, cartID)
	require.NoError(t, err)
	assert.Equal(t, services.StateHydrated, first.State())

	second, err := manager.Store(ctx, cartID)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCartManager_ServiceRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)
	cartID := uuid.New()
	ctx := context.Background()

	storage.EXPECT().Load(gomock.Any(), cartID).Return(emptyEnvelope(), nil)
	storage.EXPECT().Save(gomock.Any(), cartID, gomock.Any()).Return(nil).AnyTimes()

	manager := services.NewCartManager(storage, helpers.TestLogger())

	item := helpers.CreateTestLineItem(func(li *domain.LineItem) {
		li.Quantity = 2
	})
	require.NoError(t, manager.AddItem(ctx, cartID, item))

	count, err := manager.TotalItemCount(ctx, cartID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, manager.SetQuantity(ctx, cartID, item.VariantID, 4))

	items, err := manager.Items(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	require.NoError(t, manager.ClearCart(ctx, cartID))
	count, err = manager.TotalItemCount(ctx, cartID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
