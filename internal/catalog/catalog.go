// Package catalog хранит неизменяемый список товаров и реализует фильтрацию по категории и названию.
package catalog

import (
	"strings"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/pkg/e"
)

// Catalog загружается один раз при старте и разделяется между всеми сессиями без блокировок.
type Catalog struct {
	products []domain.Product
	index    map[int64]int
}

// New проверяет товары и строит каталог. Порядок товаров сохраняется.
func New(products []domain.Product) (*Catalog, error) {
	const op = "catalog.New"

	if len(products) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyCatalog)
	}

	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		index:    make(map[int64]int, len(products)),
	}
	for _, p := range products {
		if err := validate(p); err != nil {
			return nil, e.Wrap(op, err)
		}
		if _, ok := c.index[p.ID]; ok {
			return nil, e.Wrap(op, e.ErrDuplicateProductID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

func validate(p domain.Product) error {
	switch {
	case p.ID <= 0:
		return e.ErrInvalidProductID
	case p.Name == "":
		return e.ErrProductNameEmpty
	case !p.Category.Valid():
		return e.Wrap(string(p.Category), e.ErrInvalidCategory)
	case p.Price.IsNegative():
		return e.ErrNegativePrice
	}

	return nil
}

// All возвращает товары в исходном порядке. Срез общий, изменять его нельзя.
func (c *Catalog) All() []domain.Product {
	return c.products
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) ByID(id int64) (*domain.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}

	p := c.products[i]
	return &p, true
}

// First возвращает первый товар каталога, он выбран в калькуляторе по умолчанию.
func (c *Catalog) First() domain.Product {
	return c.products[0]
}

// Categories возвращает категории в порядке первого появления в каталоге.
func (c *Catalog) Categories() []domain.Category {
	seen := make(map[domain.Category]struct{})
	var categories []domain.Category
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	return categories
}

// Filter оставляет товары выбранной категории, в названии которых (без учёта регистра)
// есть подстрока query. Порядок каталога сохраняется, пустой результат допустим.
func (c *Catalog) Filter(category domain.Category, query string) []domain.Product {
	query = strings.ToLower(query)

	result := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if matchCategory(p, category) && matchQuery(p, query) {
			result = append(result, p)
		}
	}

	return result
}

func matchCategory(p domain.Product, category domain.Category) bool {
	return category == domain.CategoryAll || p.Category == category
}

func matchQuery(p domain.Product, lowerQuery string) bool {
	return lowerQuery == "" || strings.Contains(strings.ToLower(p.Name), lowerQuery)
}
