package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yame/internal/domain"
)

func newTestCartService(store *fakeStore) CartService {
	return NewCartService(store, testLogger(), nil)
}

func TestCartCreateAndGet(t *testing.T) {
	store := newFakeStore()
	svc := newTestCartService(store)

	cartID, err := svc.Create(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, cartID)

	cart, err := svc.Get(context.Background(), cartID)
	require.NoError(t, err)
	assert.Equal(t, cartID, cart.ID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCartGet_Unknown(t *testing.T) {
	store := newFakeStore()
	svc := newTestCartService(store)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCartAddItem_CapturesPriceAndTotals(t *testing.T) {
	store := newFakeStore()
	store.addVariant(1, "Basic Tee", 10, 150000)
	store.carts["cart-1"] = []domain.CartItem{}

	svc := newTestCartService(store)

	cart, err := svc.AddItem(context.Background(), "cart-1", 1, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(150000), cart.Items[0].UnitPrice)
	assert.Equal(t, int64(300000), cart.Items[0].LineTotal)
	assert.Equal(t, int64(300000), cart.SubTotal)
	assert.Equal(t, int64(300000), cart.Total)
}

func TestCartAddItem_MergesExistingLine(t *testing.T) {
	store := newFakeStore()
	store.addVariant(1, "Basic Tee", 10, 150000)
	store.carts["cart-1"] = []domain.CartItem{}

	svc := newTestCartService(store)

	_, err := svc.AddItem(context.Background(), "cart-1", 1, 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), "cart-1", 1, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int32(5), cart.Items[0].Quantity)
	assert.Equal(t, int64(750000), cart.Total)
}

func TestCartAddItem_InvalidQuantity(t *testing.T) {
	store := newFakeStore()
	store.carts["cart-1"] = []domain.CartItem{}

	svc := newTestCartService(store)

	_, err := svc.AddItem(context.Background(), "cart-1", 1, 0)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestCartAddItem_UnknownVariant(t *testing.T) {
	store := newFakeStore()
	store.carts["cart-1"] = []domain.CartItem{}

	svc := newTestCartService(store)

	_, err := svc.AddItem(context.Background(), "cart-1", 99, 1)
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCartUpdateItem_ZeroRemoves(t *testing.T) {
	store := newFakeStore()
	store.addVariant(1, "Basic Tee", 10, 150000)
	store.carts["cart-1"] = []domain.CartItem{}

	svc := newTestCartService(store)

	cart, err := svc.AddItem(context.Background(), "cart-1", 1, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(context.Background(), "cart-1", itemID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCartRemoveItem_Unknown(t *testing.T) {
	store := newFakeStore()
	store.carts["cart-1"] = []domain.CartItem{}

	svc := newTestCartService(store)

	_, err := svc.RemoveItem(context.Background(), "cart-1", "nope")
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
