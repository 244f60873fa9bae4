package usecase

import (
	"time"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CATALOG

// ListProductsReq — фильтр каталога. Nil-поля берутся из сохранённого фильтра сессии.
type ListProductsReq struct {
	Category *domain.Category
	Query    *string
}

// ListProductsRes — отфильтрованные товары и применённый фильтр.
type ListProductsRes struct {
	Products []domain.Product
	Filter   domain.Filter
}

// CategoryInfo — категория с отображаемым названием.
type CategoryInfo struct {
	Category domain.Category
	Title    string
}

// CART

// CartLineInfo — строка корзины с рассчитанной стоимостью.
type CartLineInfo struct {
	Product  domain.Product
	Quantity decimal.Decimal
	Subtotal decimal.Decimal
}

// CartInfo — содержимое корзины и итоговая сумма.
type CartInfo struct {
	Lines []CartLineInfo
	Total decimal.Decimal
}

// CartMutationRes — результат изменения корзины. Applied=false означает, что изменение было проигнорировано.
type CartMutationRes struct {
	Cart    *CartInfo
	Applied bool
}

// AddToCartRes — результат добавления товара: корзина, уведомление и активная вкладка.
type AddToCartRes struct {
	Cart         *CartInfo
	Notification *CartNotification
	ActiveView   domain.View
}

// CheckoutRes — ответ заглушки оформления заказа.
type CheckoutRes struct {
	Cart    *CartInfo
	Message string
}

// CALCULATOR

// UpdateCalculatorReq — изменение калькулятора. Nil-поля не меняются.
type UpdateCalculatorReq struct {
	ProductID *int64
	Quantity  *decimal.Decimal
}

// CalculatorInfo — состояние калькулятора и рассчитанная стоимость.
type CalculatorInfo struct {
	ProductID int64
	Product   *domain.Product // nil, если выбранного товара нет в каталоге
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}

// SESSION

type SessionInfo struct {
	ID         string
	ActiveView domain.View
	Filter     domain.Filter
	Calculator *CalculatorInfo
	Cart       *CartInfo
}

// INFRASTRUCTURE

// CartNotification — подтверждение добавления товара, которое показывается пользователю
// и отправляется в настроенные каналы уведомлений.
type CartNotification struct {
	ID          string
	SessionID   string
	Title       string
	Description string
	Event       domain.CartItemAdded
	CreatedAt   time.Time
}

// MAPPERS

func NewCartNotification(sessionID string, event domain.CartItemAdded) *CartNotification {
	return &CartNotification{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Title:       event.Title(),
		Description: event.Description(),
		Event:       event,
		CreatedAt:   time.Now().UTC(),
	}
}

func NewCartInfo(cart *domain.Cart) *CartInfo {
	lines := cart.Lines()
	info := &CartInfo{
		Lines: make([]CartLineInfo, 0, len(lines)),
		Total: cart.Total(),
	}
	for _, line := range lines {
		info.Lines = append(info.Lines, CartLineInfo{
			Product:  line.Product,
			Quantity: line.Quantity,
			Subtotal: line.Subtotal(),
		})
	}

	return info
}

func NewCartMutationRes(cart *domain.Cart, applied bool) *CartMutationRes {
	return &CartMutationRes{
		Cart:    NewCartInfo(cart),
		Applied: applied,
	}
}

func NewCalculatorInfo(calc domain.Calculator, product *domain.Product) *CalculatorInfo {
	return &CalculatorInfo{
		ProductID: calc.ProductID,
		Product:   product,
		Quantity:  calc.Quantity,
		Price:     calc.Price(product),
	}
}

func NewListProductsRes(products []domain.Product, filter domain.Filter) *ListProductsRes {
	return &ListProductsRes{
		Products: products,
		Filter:   filter,
	}
}
