package domain

import (
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/shopspring/decimal"
)

// Calculator хранит выбранный товар и количество для расчёта стоимости.
type Calculator struct {
	ProductID int64
	Quantity  decimal.Decimal
}

func NewCalculator(productID int64) Calculator {
	return Calculator{
		ProductID: productID,
		Quantity:  DefaultQuantity,
	}
}

func (c *Calculator) Select(productID int64) {
	c.ProductID = productID
}

// SetQuantity принимает количество не меньше MinQuantity, верхней границы нет.
func (c *Calculator) SetQuantity(quantity decimal.Decimal) error {
	if !IsValidQuantity(quantity) {
		return e.ErrInvalidQuantity
	}
	c.Quantity = quantity

	return nil
}

// Price возвращает стоимость для выбранного товара или ноль, если товар не найден.
func (c Calculator) Price(product *Product) decimal.Decimal {
	if product == nil {
		return decimal.Zero
	}

	return ComputePrice(*product, c.Quantity)
}
