package catalog

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	unitMeter       = "м"
	unitSquareMeter = "м²"
)

// StaticSource отдаёт встроенный ассортимент магазина.
type StaticSource struct{}

func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

func (s *StaticSource) LoadProducts(_ context.Context) ([]domain.Product, error) {
	return DefaultProducts(), nil
}

func DefaultProducts() []domain.Product {
	return []domain.Product{
		*domain.NewProduct(1, "Уплотнитель EPDM", domain.CategorySeals, decimal.NewFromInt(450), unitMeter, "🔲"),
		*domain.NewProduct(2, "Уплотнитель силиконовый", domain.CategorySeals, decimal.NewFromInt(580), unitMeter, "🔲"),
		*domain.NewProduct(3, "Уплотнитель TPE", domain.CategorySeals, decimal.NewFromInt(520), unitMeter, "🔲"),
		*domain.NewProduct(4, "Подоконник белый 200мм", domain.CategorySills, decimal.NewFromInt(890), unitMeter, "➖"),
		*domain.NewProduct(5, "Подоконник белый 300мм", domain.CategorySills, decimal.NewFromInt(1200), unitMeter, "➖"),
		*domain.NewProduct(6, "Подоконник под дерево 250мм", domain.CategorySills, decimal.NewFromInt(1450), unitMeter, "➖"),
		*domain.NewProduct(7, "Панель ПВХ белая", domain.CategoryPanels, decimal.NewFromInt(320), unitSquareMeter, "⬜"),
		*domain.NewProduct(8, "Панель ПВХ цветная", domain.CategoryPanels, decimal.NewFromInt(480), unitSquareMeter, "⬜"),
		*domain.NewProduct(9, "Панель ПВХ с рисунком", domain.CategoryPanels, decimal.NewFromInt(650), unitSquareMeter, "⬜"),
	}
}

// Default возвращает каталог со встроенным ассортиментом.
func Default() *Catalog {
	c, err := New(DefaultProducts())
	if err != nil {
		panic(err)
	}

	return c
}
