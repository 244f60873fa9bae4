package domain

import (
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/shopspring/decimal"
)

// CartLine — строка корзины: товар и накопленное количество.
type CartLine struct {
	Product  Product
	Quantity decimal.Decimal
}

func (l CartLine) Subtotal() decimal.Decimal {
	return ComputePrice(l.Product, l.Quantity)
}

// Cart хранит строки в порядке добавления, не более одной строки на товар.
type Cart struct {
	lines []CartLine
	index map[int64]int // product id -> позиция в lines
}

func NewCart() *Cart {
	return &Cart{index: make(map[int64]int)}
}

// RestoreCart собирает корзину из сохранённых строк. Повторы одного товара суммируются,
// строки с количеством меньше MinQuantity отбрасываются.
func RestoreCart(lines []CartLine) *Cart {
	c := NewCart()
	for _, line := range lines {
		if !IsValidQuantity(line.Quantity) {
			continue
		}
		if i, ok := c.index[line.Product.ID]; ok {
			c.lines[i].Quantity = c.lines[i].Quantity.Add(line.Quantity)
			continue
		}
		c.index[line.Product.ID] = len(c.lines)
		c.lines = append(c.lines, line)
	}

	return c
}

// Add добавляет quantity единиц товара. Для уже добавленного товара количество накапливается.
func (c *Cart) Add(product Product, quantity decimal.Decimal, source AddSource) (*CartItemAdded, error) {
	if !IsValidQuantity(quantity) {
		return nil, e.ErrInvalidQuantity
	}

	var lineQuantity decimal.Decimal
	if i, ok := c.index[product.ID]; ok {
		c.lines[i].Quantity = c.lines[i].Quantity.Add(quantity)
		lineQuantity = c.lines[i].Quantity
	} else {
		c.index[product.ID] = len(c.lines)
		c.lines = append(c.lines, CartLine{Product: product, Quantity: quantity})
		lineQuantity = quantity
	}

	return &CartItemAdded{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     quantity,
		LineQuantity: lineQuantity,
		Unit:         product.Unit,
		Source:       source,
	}, nil
}

// UpdateQuantity заменяет количество в строке. Значение меньше MinQuantity игнорируется.
// Возвращает true, если корзина изменилась.
func (c *Cart) UpdateQuantity(productID int64, quantity decimal.Decimal) bool {
	if !IsValidQuantity(quantity) {
		return false
	}

	i, ok := c.index[productID]
	if !ok {
		return false
	}
	c.lines[i].Quantity = quantity

	return true
}

func (c *Cart) Increment(productID int64) bool {
	line, ok := c.Line(productID)
	if !ok {
		return false
	}

	return c.UpdateQuantity(productID, line.Quantity.Add(QuantityStep))
}

// Decrement уменьшает количество на шаг. Строка не удаляется, если результат меньше минимума.
func (c *Cart) Decrement(productID int64) bool {
	line, ok := c.Line(productID)
	if !ok {
		return false
	}

	return c.UpdateQuantity(productID, line.Quantity.Sub(QuantityStep))
}

// Remove удаляет строку товара. Отсутствующий товар не является ошибкой.
func (c *Cart) Remove(productID int64) bool {
	i, ok := c.index[productID]
	if !ok {
		return false
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].Product.ID] = j
	}

	return true
}

func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[int64]int)
}

// Total возвращает сумму стоимостей всех строк. Для пустой корзины — ноль.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}

	return total
}

func (c *Cart) Line(productID int64) (CartLine, bool) {
	i, ok := c.index[productID]
	if !ok {
		return CartLine{}, false
	}

	return c.lines[i], true
}

// Lines возвращает копию строк в порядке добавления.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clone() *Cart {
	return RestoreCart(c.lines)
}
