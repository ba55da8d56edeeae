package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	"github.com/adaezeumeh/thriftline-backend/internal/storage/memory"
	"github.com/adaezeumeh/thriftline-backend/pkg/enums"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, storage.Store) {
	t.Helper()
	store := memory.New()
	svc, err := NewService(ServiceParams{Store: store})
	require.NoError(t, err)
	return svc, store
}

func seedProduct(t *testing.T, store storage.Store, title string, price float64) int64 {
	t.Helper()
	product, err := store.CreateProduct(context.Background(), storage.NewProduct{
		Title:     title,
		Category:  "Misc",
		Condition: enums.ProductConditionGood,
		Price:     price,
	})
	require.NoError(t, err)
	return product.ID
}

func TestGetCartComputesTotal(t *testing.T) {
	svc, store := newTestService(t)
	chairID := seedProduct(t, store, "Vintage Oak Chair", 22500)
	speakerID := seedProduct(t, store, "Bluetooth Speaker", 15800)

	_, err := svc.AddItem(context.Background(), 1, chairID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 1, speakerID, 2)
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 22500.0+2*15800.0, cart.Total)

	empty, err := svc.GetCart(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.Total)
}

func TestAddItemMergesQuantity(t *testing.T) {
	svc, store := newTestService(t)
	productID := seedProduct(t, store, "Wool Scarf", 3000)

	first, err := svc.AddItem(context.Background(), 1, productID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "Wool Scarf", first.Product.Title)

	second, err := svc.AddItem(context.Background(), 1, productID, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), 1, 999, 1)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateItemOwnership(t *testing.T) {
	svc, store := newTestService(t)
	productID := seedProduct(t, store, "Denim Jacket", 6500)

	line, err := svc.AddItem(context.Background(), 1, productID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateItem(context.Background(), 2, line.ID, 5)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	updated, err := svc.UpdateItem(context.Background(), 1, line.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	productID := seedProduct(t, store, "Enamel Teapot", 4000)

	line, err := svc.AddItem(context.Background(), 1, productID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), 2, line.ID), "foreign removal is a silent no-op")

	cart, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	require.NoError(t, svc.RemoveItem(context.Background(), 1, line.ID))
	require.NoError(t, svc.RemoveItem(context.Background(), 1, line.ID))

	cart, err = svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
