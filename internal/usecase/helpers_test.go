package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/DRSN-tech/okna-shop/internal/catalog"
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/shopspring/decimal"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	factory  SessionFactory
}

func newFakeSessionRepo(c *catalog.Catalog) *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[string]*domain.Session),
		factory: func(id string) *domain.Session {
			return domain.NewSession(id, c.First().ID)
		},
	}
}

func (r *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s.Clone(), nil
	}
	return r.factory(id), nil
}

func (r *fakeSessionRepo) Update(_ context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = r.factory(id)
	}
	s = s.Clone()
	if err := fn(s); err != nil {
		return nil, err
	}
	r.sessions[id] = s

	return s.Clone(), nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

type fakeNotifier struct {
	notifications []*CartNotification
}

func (f *fakeNotifier) Notify(_ context.Context, n *CartNotification) {
	f.notifications = append(f.notifications, n)
}

type fakeExporter struct {
	exported *CartInfo
}

func (f *fakeExporter) Export(_ context.Context, cart *CartInfo) ([]byte, error) {
	f.exported = cart
	return []byte("xlsx"), nil
}

type fakeMetrics struct {
	added   map[string]int
	removed int
}

func (f *fakeMetrics) CartItemAdded(source string) {
	if f.added == nil {
		f.added = make(map[string]int)
	}
	f.added[source]++
}

func (f *fakeMetrics) CartItemRemoved() {
	f.removed++
}

type fixture struct {
	catalog    *catalog.Catalog
	sessions   *fakeSessionRepo
	notifier   *fakeNotifier
	exporter   *fakeExporter
	metrics    *fakeMetrics
	cart       *CartUseCase
	calculator *CalculatorUseCase
	catalogUC  *CatalogUseCase
	sessionUC  *SessionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	c := catalog.Default()
	log := logger.NewNopLogger()
	f := &fixture{
		catalog:  c,
		sessions: newFakeSessionRepo(c),
		notifier: &fakeNotifier{},
		exporter: &fakeExporter{},
		metrics:  &fakeMetrics{},
	}
	f.cart = NewCartUC(c, f.sessions, f.notifier, f.exporter, f.metrics, log)
	f.calculator = NewCalculatorUC(c, f.sessions, f.cart, log)
	f.catalogUC = NewCatalogUC(c, f.sessions, log)
	f.sessionUC = NewSessionUC(c, f.sessions, domain.Contacts{Phone: "+7"})

	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
