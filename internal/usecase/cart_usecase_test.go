package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionID = "session-1"

func TestCartUseCase_AddFromCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.cart.AddFromCatalog(ctx, sessionID, 1)
	require.NoError(t, err)
	res, err = f.cart.AddFromCatalog(ctx, sessionID, 1)
	require.NoError(t, err)

	require.Len(t, res.Cart.Lines, 1)
	assert.True(t, res.Cart.Lines[0].Quantity.Equal(dec("2")))
	assert.True(t, res.Cart.Total.Equal(dec("900")))
	assert.Equal(t, domain.ViewCatalog, res.ActiveView)

	require.Len(t, f.notifier.notifications, 2)
	n := f.notifier.notifications[1]
	assert.Equal(t, sessionID, n.SessionID)
	assert.Equal(t, "Добавлено в корзину", n.Title)
	assert.Equal(t, "Уплотнитель EPDM", n.Description)
	assert.Same(t, n, res.Notification)
	assert.Equal(t, 2, f.metrics.added["catalog"])
}

func TestCartUseCase_AddUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.cart.AddFromCatalog(context.Background(), sessionID, 404)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
	assert.Empty(t, f.notifier.notifications)
}

func TestCartUseCase_UpdateQuantityGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddFromCatalog(ctx, sessionID, 7)
	require.NoError(t, err)

	res, err := f.cart.UpdateQuantity(ctx, sessionID, 7, dec("0.05"))
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.True(t, res.Cart.Lines[0].Quantity.Equal(dec("1")))

	res, err = f.cart.UpdateQuantity(ctx, sessionID, 7, dec("1.5"))
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.True(t, res.Cart.Lines[0].Subtotal.Equal(dec("480")))
}

func TestCartUseCase_IncrementDecrement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddFromCatalog(ctx, sessionID, 2)
	require.NoError(t, err)

	res, err := f.cart.Increment(ctx, sessionID, 2)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.True(t, res.Cart.Lines[0].Quantity.Equal(dec("1.5")))

	for range 3 {
		res, err = f.cart.Decrement(ctx, sessionID, 2)
		require.NoError(t, err)
	}
	assert.False(t, res.Applied)
	assert.True(t, res.Cart.Lines[0].Quantity.Equal(dec("0.5")))
}

func TestCartUseCase_Remove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddFromCatalog(ctx, sessionID, 3)
	require.NoError(t, err)

	res, err := f.cart.Remove(ctx, sessionID, 99)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Len(t, res.Cart.Lines, 1)
	assert.Zero(t, f.metrics.removed)

	res, err = f.cart.Remove(ctx, sessionID, 3)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Empty(t, res.Cart.Lines)
	assert.True(t, res.Cart.Total.IsZero())
	assert.Equal(t, 1, f.metrics.removed)
}

func TestCartUseCase_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddFromCatalog(ctx, "a", 1)
	require.NoError(t, err)

	cart, err := f.cart.GetCart(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestCartUseCase_ExportAndCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddFromCatalog(ctx, sessionID, 5)
	require.NoError(t, err)

	data, err := f.cart.ExportEstimate(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	require.NotNil(t, f.exporter.exported)
	assert.True(t, f.exporter.exported.Total.Equal(dec("1200")))

	res, err := f.cart.Checkout(ctx, sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Message)
	assert.Len(t, res.Cart.Lines, 1, "checkout must not clear the cart")
}

func TestCartUseCase_Clear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.cart.Clear(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, res.Applied)

	_, err = f.cart.AddFromCatalog(ctx, sessionID, 1)
	require.NoError(t, err)
	_, err = f.cart.AddFromCatalog(ctx, sessionID, 4)
	require.NoError(t, err)

	res, err = f.cart.Clear(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Empty(t, res.Cart.Lines)
	assert.True(t, res.Cart.Total.IsZero())
}
