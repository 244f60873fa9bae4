package usecase

import (
	"context"

	"github.com/DRSN-tech/okna-shop/internal/catalog"
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/pkg/e"
)

// SessionUseCase отдаёт состояние сессии и переключает вкладки.
type SessionUseCase struct {
	catalog  *catalog.Catalog
	sessions SessionRepository
	contacts domain.Contacts
}

func NewSessionUC(catalog *catalog.Catalog, sessions SessionRepository, contacts domain.Contacts) *SessionUseCase {
	return &SessionUseCase{
		catalog:  catalog,
		sessions: sessions,
		contacts: contacts,
	}
}

func (s *SessionUseCase) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	const op = "SessionUseCase.GetSession"

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return s.sessionInfo(session), nil
}

func (s *SessionUseCase) SwitchView(ctx context.Context, sessionID string, view domain.View) (*SessionInfo, error) {
	const op = "SessionUseCase.SwitchView"

	if _, err := domain.ParseView(string(view)); err != nil {
		return nil, e.Wrap(op, err)
	}

	session, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.ActiveView = view
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return s.sessionInfo(session), nil
}

func (s *SessionUseCase) Contacts() domain.Contacts {
	return s.contacts
}

func (s *SessionUseCase) sessionInfo(session *domain.Session) *SessionInfo {
	product, _ := s.catalog.ByID(session.Calculator.ProductID)

	return &SessionInfo{
		ID:         session.ID,
		ActiveView: session.ActiveView,
		Filter:     session.Filter,
		Calculator: NewCalculatorInfo(session.Calculator, product),
		Cart:       NewCartInfo(session.Cart),
	}
}
