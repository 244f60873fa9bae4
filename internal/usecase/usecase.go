package usecase

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/shopspring/decimal"
)

type CatalogUC interface {
	ListProducts(ctx context.Context, sessionID string, req *ListProductsReq) (*ListProductsRes, error)
	SetFilter(ctx context.Context, sessionID string, filter domain.Filter) (*ListProductsRes, error)
	ResetFilter(ctx context.Context, sessionID string) (*ListProductsRes, error)
	Categories() []CategoryInfo
}

type CartUC interface {
	GetCart(ctx context.Context, sessionID string) (*CartInfo, error)
	AddFromCatalog(ctx context.Context, sessionID string, productID int64) (*AddToCartRes, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity decimal.Decimal) (*CartMutationRes, error)
	Increment(ctx context.Context, sessionID string, productID int64) (*CartMutationRes, error)
	Decrement(ctx context.Context, sessionID string, productID int64) (*CartMutationRes, error)
	Remove(ctx context.Context, sessionID string, productID int64) (*CartMutationRes, error)
	Clear(ctx context.Context, sessionID string) (*CartMutationRes, error)
	ExportEstimate(ctx context.Context, sessionID string) ([]byte, error)
	Checkout(ctx context.Context, sessionID string) (*CheckoutRes, error)
}

type CalculatorUC interface {
	GetCalculator(ctx context.Context, sessionID string) (*CalculatorInfo, error)
	UpdateCalculator(ctx context.Context, sessionID string, req *UpdateCalculatorReq) (*CalculatorInfo, error)
	AddToCart(ctx context.Context, sessionID string) (*AddToCartRes, error)
}

type SessionUC interface {
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	SwitchView(ctx context.Context, sessionID string, view domain.View) (*SessionInfo, error)
	Contacts() domain.Contacts
}
