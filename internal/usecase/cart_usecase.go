package usecase

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/catalog"
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/shopspring/decimal"
)

const checkoutMessage = "Оформление заказа пока недоступно, свяжитесь с нами по телефону"

// CartUseCase реализует операции с корзиной сессии.
type CartUseCase struct {
	catalog  *catalog.Catalog
	sessions SessionRepository
	notifier Notifier
	exporter EstimateExporter
	metrics  CartMetrics
	logger   logger.Logger
}

func NewCartUC(
	catalog *catalog.Catalog,
	sessions SessionRepository,
	notifier Notifier,
	exporter EstimateExporter,
	metrics CartMetrics,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		catalog:  catalog,
		sessions: sessions,
		notifier: notifier,
		exporter: exporter,
		metrics:  metrics,
		logger:   logger,
	}
}

func (c *CartUseCase) GetCart(ctx context.Context, sessionID string) (*CartInfo, error) {
	const op = "CartUseCase.GetCart"

	session, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartInfo(session.Cart), nil
}

// AddFromCatalog добавляет одну единицу товара из каталога.
func (c *CartUseCase) AddFromCatalog(ctx context.Context, sessionID string, productID int64) (*AddToCartRes, error) {
	const op = "CartUseCase.AddFromCatalog"

	pick := func(_ *domain.Session) (int64, decimal.Decimal) {
		return productID, domain.DefaultQuantity
	}

	res, err := c.add(ctx, sessionID, domain.AddSourceCatalog, pick, nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// add добавляет в корзину товар и количество, выбранные pick, после чего отправляет уведомление.
// pick и after выполняются в той же атомарной операции над сессией, что и добавление.
func (c *CartUseCase) add(
	ctx context.Context,
	sessionID string,
	source domain.AddSource,
	pick func(s *domain.Session) (int64, decimal.Decimal),
	after func(s *domain.Session),
) (*AddToCartRes, error) {
	var event *domain.CartItemAdded
	session, err := c.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		productID, quantity := pick(s)

		product, ok := c.catalog.ByID(productID)
		if !ok {
			return e.ErrProductNotFound
		}

		ev, err := s.Cart.Add(*product, quantity, source)
		if err != nil {
			return err
		}
		event = ev

		if after != nil {
			after(s)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	notification := NewCartNotification(sessionID, *event)
	c.notifier.Notify(ctx, notification)
	c.metrics.CartItemAdded(string(source))

	return &AddToCartRes{
		Cart:         NewCartInfo(session.Cart),
		Notification: notification,
		ActiveView:   session.ActiveView,
	}, nil
}

// UpdateQuantity заменяет количество. Значение меньше минимума игнорируется (Applied=false).
func (c *CartUseCase) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity decimal.Decimal) (*CartMutationRes, error) {
	const op = "CartUseCase.UpdateQuantity"

	res, err := c.mutate(ctx, sessionID, func(cart *domain.Cart) bool {
		return cart.UpdateQuantity(productID, quantity)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (c *CartUseCase) Increment(ctx context.Context, sessionID string, productID int64) (*CartMutationRes, error) {
	const op = "CartUseCase.Increment"

	res, err := c.mutate(ctx, sessionID, func(cart *domain.Cart) bool {
		return cart.Increment(productID)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (c *CartUseCase) Decrement(ctx context.Context, sessionID string, productID int64) (*CartMutationRes, error) {
	const op = "CartUseCase.Decrement"

	res, err := c.mutate(ctx, sessionID, func(cart *domain.Cart) bool {
		return cart.Decrement(productID)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// Remove удаляет строку. Отсутствующий товар не считается ошибкой.
func (c *CartUseCase) Remove(ctx context.Context, sessionID string, productID int64) (*CartMutationRes, error) {
	const op = "CartUseCase.Remove"

	res, err := c.mutate(ctx, sessionID, func(cart *domain.Cart) bool {
		return cart.Remove(productID)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if res.Applied {
		c.metrics.CartItemRemoved()
	}

	return res, nil
}

// Clear очищает корзину. Пустая корзина остаётся без изменений (Applied=false).
func (c *CartUseCase) Clear(ctx context.Context, sessionID string) (*CartMutationRes, error) {
	const op = "CartUseCase.Clear"

	res, err := c.mutate(ctx, sessionID, func(cart *domain.Cart) bool {
		if cart.IsEmpty() {
			return false
		}
		cart.Clear()
		return true
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (c *CartUseCase) mutate(ctx context.Context, sessionID string, fn func(cart *domain.Cart) bool) (*CartMutationRes, error) {
	var applied bool
	session, err := c.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		applied = fn(s.Cart)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewCartMutationRes(session.Cart, applied), nil
}

// ExportEstimate формирует смету по текущей корзине.
func (c *CartUseCase) ExportEstimate(ctx context.Context, sessionID string) ([]byte, error) {
	const op = "CartUseCase.ExportEstimate"

	cart, err := c.GetCart(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	data, err := c.exporter.Export(ctx, cart)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return data, nil
}

// Checkout пока заглушка: заказ не отправляется, корзина не меняется.
func (c *CartUseCase) Checkout(ctx context.Context, sessionID string) (*CheckoutRes, error) {
	const op = "CartUseCase.Checkout"

	cart, err := c.GetCart(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("checkout requested: session=%s lines=%d total=%s", sessionID, len(cart.Lines), domain.FormatAmount(cart.Total))

	return &CheckoutRes{
		Cart:    cart,
		Message: checkoutMessage,
	}, nil
}
