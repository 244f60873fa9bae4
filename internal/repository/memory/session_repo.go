package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
)

type entry struct {
	session   *domain.Session
	expiresAt time.Time
}

// SessionRepo хранит сессии в памяти процесса. Все изменения сериализуются мьютексом.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration // 0: без истечения
	factory  usecase.SessionFactory
	logger   logger.Logger
	now      func() time.Time
}

func NewSessionRepo(ttl time.Duration, factory usecase.SessionFactory, logger logger.Logger) *SessionRepo {
	return &SessionRepo{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		factory:  factory,
		logger:   logger,
		now:      time.Now,
	}
}

// Get возвращает копию сохранённой сессии или новую сессию, если её нет или она истекла.
func (r *SessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if en, ok := r.lookup(id); ok {
		return en.session.Clone(), nil
	}

	return r.factory(id), nil
}

// Update применяет fn к копии сессии и сохраняет её только при успехе.
func (r *SessionRepo) Update(_ context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var session *domain.Session
	if en, ok := r.lookup(id); ok {
		session = en.session.Clone()
	} else {
		session = r.factory(id)
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	now := r.now()
	session.UpdatedAt = now.UTC()
	r.sessions[id] = &entry{session: session, expiresAt: r.expiry(now)}

	return session.Clone(), nil
}

func (r *SessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// Cleanup удаляет просроченные сессии и возвращает их количество.
func (r *SessionRepo) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, en := range r.sessions {
		if r.expired(en, now) {
			delete(r.sessions, id)
			removed++
		}
	}

	return removed
}

// StartCleanup периодически вызывает Cleanup, пока не отменён ctx.
func (r *SessionRepo) StartCleanup(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Cleanup(); n > 0 {
					r.logger.Debugf("expired sessions removed: %d", n)
				}
			}
		}
	}()
}

func (r *SessionRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// lookup вызывается под мьютексом.
func (r *SessionRepo) lookup(id string) (*entry, bool) {
	en, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if r.expired(en, r.now()) {
		delete(r.sessions, id)
		return nil, false
	}

	return en, true
}

func (r *SessionRepo) expiry(now time.Time) time.Time {
	if r.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(r.ttl)
}

func (r *SessionRepo) expired(en *entry, now time.Time) bool {
	return !en.expiresAt.IsZero() && !now.Before(en.expiresAt)
}
