package converter

import "github.com/DRSN-tech/okna-shop/internal/domain"

// SessionConverter преобразует сессию между domain и моделью Redis.
type SessionConverter interface {
	ToRedisModel(entity *domain.Session) *SessionRedisModel
	ToEntity(model *SessionRedisModel) *domain.Session
}

type sessionConverter struct{}

func NewSessionConverter() SessionConverter {
	return &sessionConverter{}
}

func (c *sessionConverter) ToRedisModel(entity *domain.Session) *SessionRedisModel {
	lines := entity.Cart.Lines()
	cart := make([]CartLineRedisModel, 0, len(lines))
	for _, line := range lines {
		cart = append(cart, CartLineRedisModel{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Category:  string(line.Product.Category),
			Price:     line.Product.Price,
			Unit:      line.Product.Unit,
			Image:     line.Product.Image,
			Quantity:  line.Quantity,
		})
	}

	return &SessionRedisModel{
		ID:         entity.ID,
		ActiveView: string(entity.ActiveView),
		Filter: FilterRedisModel{
			Category: string(entity.Filter.Category),
			Query:    entity.Filter.Query,
		},
		Calculator: CalculatorRedisModel{
			ProductID: entity.Calculator.ProductID,
			Quantity:  entity.Calculator.Quantity,
		},
		Cart:      cart,
		UpdatedAt: entity.UpdatedAt,
	}
}

// ToEntity восстанавливает сессию. Строки корзины с количеством меньше минимума
// отбрасываются, такое количество калькулятора заменяется значением по умолчанию.
func (c *sessionConverter) ToEntity(model *SessionRedisModel) *domain.Session {
	calcQuantity := model.Calculator.Quantity
	if !domain.IsValidQuantity(calcQuantity) {
		calcQuantity = domain.DefaultQuantity
	}

	lines := make([]domain.CartLine, 0, len(model.Cart))
	for _, line := range model.Cart {
		lines = append(lines, domain.CartLine{
			Product: *domain.NewProduct(
				line.ProductID, line.Name, domain.Category(line.Category), line.Price, line.Unit, line.Image,
			),
			Quantity: line.Quantity,
		})
	}

	return &domain.Session{
		ID:         model.ID,
		ActiveView: domain.View(model.ActiveView),
		Filter: domain.Filter{
			Category: domain.Category(model.Filter.Category),
			Query:    model.Filter.Query,
		},
		Calculator: domain.Calculator{
			ProductID: model.Calculator.ProductID,
			Quantity:  calcQuantity,
		},
		Cart:      domain.RestoreCart(lines),
		UpdatedAt: model.UpdatedAt,
	}
}
