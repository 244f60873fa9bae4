package usecase

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/domain"
)

// SessionFactory создаёт новую сессию с настройками по умолчанию.
type SessionFactory func(id string) *domain.Session

type SessionRepository interface {
	// Get возвращает сохранённую сессию или новую, если её нет.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Update атомарно применяет fn к сессии. Если fn вернула ошибку, изменения не сохраняются.
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type CatalogSource interface {
	LoadProducts(ctx context.Context) ([]domain.Product, error)
}
