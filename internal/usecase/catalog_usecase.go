package usecase

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/catalog"
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
)

// CatalogUseCase реализует поиск и фильтрацию каталога с сохранением фильтра в сессии.
type CatalogUseCase struct {
	catalog  *catalog.Catalog
	sessions SessionRepository
	logger   logger.Logger
}

func NewCatalogUC(catalog *catalog.Catalog, sessions SessionRepository, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		catalog:  catalog,
		sessions: sessions,
		logger:   logger,
	}
}

// ListProducts фильтрует каталог. Незаданные поля запроса берутся из фильтра сессии; сессия не меняется.
func (c *CatalogUseCase) ListProducts(ctx context.Context, sessionID string, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	session, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	filter := session.Filter
	if req != nil {
		if req.Category != nil {
			filter.Category = *req.Category
		}
		if req.Query != nil {
			filter.Query = *req.Query
		}
	}

	return NewListProductsRes(c.catalog.Filter(filter.Category, filter.Query), filter), nil
}

// SetFilter сохраняет фильтр в сессии и возвращает отфильтрованные товары.
func (c *CatalogUseCase) SetFilter(ctx context.Context, sessionID string, filter domain.Filter) (*ListProductsRes, error) {
	const op = "CatalogUseCase.SetFilter"

	if filter.Category != domain.CategoryAll && !filter.Category.Valid() {
		return nil, e.Wrap(op, e.ErrInvalidCategory)
	}

	session, err := c.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		s.Filter = filter
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewListProductsRes(c.catalog.Filter(session.Filter.Category, session.Filter.Query), session.Filter), nil
}

// ResetFilter возвращает фильтр к значениям по умолчанию.
func (c *CatalogUseCase) ResetFilter(ctx context.Context, sessionID string) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ResetFilter"

	session, err := c.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		s.Filter.Reset()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewListProductsRes(c.catalog.Filter(session.Filter.Category, session.Filter.Query), session.Filter), nil
}

// Categories возвращает "all" и категории каталога с русскими названиями.
func (c *CatalogUseCase) Categories() []CategoryInfo {
	categories := c.catalog.Categories()

	res := make([]CategoryInfo, 0, len(categories)+1)
	res = append(res, CategoryInfo{Category: domain.CategoryAll, Title: domain.CategoryAll.Title()})
	for _, cat := range categories {
		res = append(res, CategoryInfo{Category: cat, Title: cat.Title()})
	}

	return res
}
