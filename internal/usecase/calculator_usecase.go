package usecase

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/catalog"
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/shopspring/decimal"
)

// CalculatorUseCase считает стоимость выбранного количества и добавляет его в корзину.
type CalculatorUseCase struct {
	catalog  *catalog.Catalog
	sessions SessionRepository
	cart     *CartUseCase
	logger   logger.Logger
}

func NewCalculatorUC(catalog *catalog.Catalog, sessions SessionRepository, cart *CartUseCase, logger logger.Logger) *CalculatorUseCase {
	return &CalculatorUseCase{
		catalog:  catalog,
		sessions: sessions,
		cart:     cart,
		logger:   logger,
	}
}

func (c *CalculatorUseCase) GetCalculator(ctx context.Context, sessionID string) (*CalculatorInfo, error) {
	const op = "CalculatorUseCase.GetCalculator"

	session, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.calculatorInfo(session.Calculator), nil
}

// UpdateCalculator меняет выбранный товар и/или количество.
func (c *CalculatorUseCase) UpdateCalculator(ctx context.Context, sessionID string, req *UpdateCalculatorReq) (*CalculatorInfo, error) {
	const op = "CalculatorUseCase.UpdateCalculator"

	if req.ProductID != nil {
		if _, ok := c.catalog.ByID(*req.ProductID); !ok {
			return nil, e.Wrap(op, e.ErrProductNotFound)
		}
	}

	session, err := c.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if req.ProductID != nil {
			s.Calculator.Select(*req.ProductID)
		}
		if req.Quantity != nil {
			return s.Calculator.SetQuantity(*req.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.calculatorInfo(session.Calculator), nil
}

// AddToCart добавляет выбранный товар в количестве из калькулятора и переключает на вкладку корзины.
func (c *CalculatorUseCase) AddToCart(ctx context.Context, sessionID string) (*AddToCartRes, error) {
	const op = "CalculatorUseCase.AddToCart"

	pick := func(s *domain.Session) (int64, decimal.Decimal) {
		return s.Calculator.ProductID, s.Calculator.Quantity
	}
	switchToCart := func(s *domain.Session) {
		s.ActiveView = domain.ViewCart
	}

	res, err := c.cart.add(ctx, sessionID, domain.AddSourceCalculator, pick, switchToCart)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (c *CalculatorUseCase) calculatorInfo(calc domain.Calculator) *CalculatorInfo {
	product, _ := c.catalog.ByID(calc.ProductID)
	return NewCalculatorInfo(calc, product)
}
