package converter

import (
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует записи products в товары каталога.
type ProductConverter interface {
	ToEntity(model *ProductModel) (*domain.Product, error)
	ToArrEntity(models []*ProductModel) ([]domain.Product, error)
}

type productConverter struct{}

func NewProductConverter() ProductConverter {
	return &productConverter{}
}

func (c *productConverter) ToEntity(model *ProductModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return domain.NewProduct(
		model.ID, model.Name, domain.Category(model.Category), price, model.Unit, model.Image,
	), nil
}

func (c *productConverter) ToArrEntity(models []*ProductModel) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(models))
	for _, model := range models {
		product, err := c.ToEntity(model)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	return products, nil
}
