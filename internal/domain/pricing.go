package domain

import "github.com/shopspring/decimal"

var (
	// MinQuantity — минимальное количество товара в строке корзины и калькуляторе.
	MinQuantity = decimal.New(1, -1)
	// QuantityStep — шаг кнопок +/- в корзине.
	QuantityStep = decimal.New(5, -1)
	// DefaultQuantity — количество при добавлении из каталога.
	DefaultQuantity = decimal.NewFromInt(1)
)

// ComputePrice возвращает стоимость quantity единиц товара.
// Количество не проверяется: отрицательное или нулевое даёт соответствующую сумму.
func ComputePrice(product Product, quantity decimal.Decimal) decimal.Decimal {
	return product.Price.Mul(quantity)
}

// FormatAmount форматирует сумму с двумя знаками после запятой.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// IsValidQuantity проверяет, что количество не меньше MinQuantity.
func IsValidQuantity(quantity decimal.Decimal) bool {
	return !quantity.LessThan(MinQuantity)
}
