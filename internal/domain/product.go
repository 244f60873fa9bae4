package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога. После загрузки каталога не изменяется.
type Product struct {
	ID       int64
	Name     string
	Category Category
	Price    decimal.Decimal // Цена в рублях за единицу Unit
	Unit     string          // Единица измерения, только для отображения
	Image    string
}

func NewProduct(id int64, name string, category Category, price decimal.Decimal, unit string, image string) *Product {
	return &Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
		Unit:     unit,
		Image:    image,
	}
}
