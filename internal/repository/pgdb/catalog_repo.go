package pgdb

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CatalogRepo читает ассортимент из PostgreSQL. Каталог загружается один раз при старте.
type CatalogRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewCatalogRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *CatalogRepo {
	return &CatalogRepo{
		pool: pool,
		conv: conv,
	}
}

// LoadProducts возвращает активные товары в порядке отображения.
func (r *CatalogRepo) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, category, price::text AS price, unit, image
		FROM products
		WHERE is_archived = false
		ORDER BY sort_order, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.ProductModel])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(models) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrEmptyCatalog)
	}

	products, err := r.conv.ToArrEntity(models)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, nil
}
