package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const CartItemAddedTitle = "Добавлено в корзину"

// AddSource — представление, из которого товар добавлен в корзину.
type AddSource string

const (
	AddSourceCatalog    AddSource = "catalog"
	AddSourceCalculator AddSource = "calculator"
)

// CartItemAdded — событие успешного добавления товара в корзину.
type CartItemAdded struct {
	ProductID    int64
	ProductName  string
	Quantity     decimal.Decimal // добавленное количество
	LineQuantity decimal.Decimal // количество в строке после добавления
	Unit         string
	Source       AddSource
}

func (c CartItemAdded) Title() string {
	return CartItemAddedTitle
}

// Description для калькулятора содержит количество и единицу измерения.
func (c CartItemAdded) Description() string {
	if c.Source == AddSourceCalculator {
		return fmt.Sprintf("%s - %s %s", c.ProductName, c.Quantity.String(), c.Unit)
	}

	return c.ProductName
}
