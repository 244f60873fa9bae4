package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/okna-shop/internal/catalog"
	"github.com/DRSN-tech/okna-shop/internal/cfg"
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/internal/repository/redis/converter"
	"github.com/DRSN-tech/okna-shop/pkg/clients"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*SessionRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCfg := &cfg.RedisCfg{
		Addr:        mr.Addr(),
		MaxRetries:  1,
		DialTimeout: time.Second,
		Timeout:     time.Second,
		TxRetries:   100,
	}
	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Client.Close() })

	repo := NewSessionRepo(client, converter.NewSessionConverter(), redisCfg, ttl,
		func(id string) *domain.Session { return domain.NewSession(id, 1) },
		logger.NewNopLogger(),
	)

	return repo, mr
}

func addProduct(id int64, q string) func(s *domain.Session) error {
	return func(s *domain.Session) error {
		p, _ := catalog.Default().ByID(id)
		_, err := s.Cart.Add(*p, decimal.RequireFromString(q), domain.AddSourceCatalog)
		return err
	}
}

func TestSessionRepo_RoundTrip(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	ctx := context.Background()

	_, err := repo.Update(ctx, "abc", addProduct(7, "1.5"))
	require.NoError(t, err)
	_, err = repo.Update(ctx, "abc", addProduct(1, "2"))
	require.NoError(t, err)
	_, err = repo.Update(ctx, "abc", func(s *domain.Session) error {
		s.ActiveView = domain.ViewCart
		s.Filter = domain.Filter{Category: domain.CategoryPanels, Query: "ПВХ"}
		return s.Calculator.SetQuantity(decimal.RequireFromString("0.3"))
	})
	require.NoError(t, err)

	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("session:abc"))

	s, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewCart, s.ActiveView)
	assert.Equal(t, domain.Filter{Category: domain.CategoryPanels, Query: "ПВХ"}, s.Filter)
	assert.True(t, s.Calculator.Quantity.Equal(decimal.RequireFromString("0.3")))

	lines := s.Cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(7), lines[0].Product.ID)
	assert.Equal(t, "м²", lines[0].Product.Unit)
	assert.True(t, s.Cart.Total().Equal(decimal.NewFromInt(1380)), "got %s", s.Cart.Total())
}

func TestSessionRepo_GetMissingReturnsFresh(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)

	s, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, s.Cart.IsEmpty())
	assert.False(t, mr.Exists("session:nobody"))
}

func TestSessionRepo_UpdateErrorDoesNotWrite(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	boom := errors.New("boom")

	_, err := repo.Update(context.Background(), "abc", func(s *domain.Session) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("session:abc"))
}

func TestSessionRepo_BrokenPayloadStartsNewSession(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	require.NoError(t, mr.Set("session:abc", "{not json"))

	s, err := repo.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", s.ID)
	assert.True(t, s.Cart.IsEmpty())
}

func TestSessionRepo_PayloadBelowMinimumIsNormalised(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	payload := `{
		"id": "abc",
		"active_view": "cart",
		"filter": {"category": "all", "query": ""},
		"calculator": {"product_id": 1, "quantity": "0.01"},
		"cart": [
			{"product_id": 1, "name": "Уплотнитель EPDM", "category": "seals", "price": "450", "unit": "м", "quantity": "0.05"},
			{"product_id": 7, "name": "Панель ПВХ белая", "category": "panels", "price": "320", "unit": "м²", "quantity": "1.5"}
		]
	}`
	require.NoError(t, mr.Set("session:abc", payload))

	s, err := repo.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, s.Calculator.Quantity.Equal(domain.DefaultQuantity))

	lines := s.Cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(7), lines[0].Product.ID)
	assert.True(t, s.Cart.Total().Equal(decimal.NewFromInt(480)), "got %s", s.Cart.Total())
}

func TestSessionRepo_ExpiresAfterTTL(t *testing.T) {
	repo, mr := newTestRepo(t, time.Minute)
	ctx := context.Background()

	_, err := repo.Update(ctx, "abc", addProduct(1, "1"))
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	s, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, s.Cart.IsEmpty())
}

func TestSessionRepo_Delete(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	ctx := context.Background()

	_, err := repo.Update(ctx, "abc", addProduct(1, "1"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "abc"))
	assert.False(t, mr.Exists("session:abc"))
}

func TestSessionRepo_ConcurrentUpdates(t *testing.T) {
	repo, _ := newTestRepo(t, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "abc", addProduct(1, "1"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	line, ok := s.Cart.Line(1)
	require.True(t, ok)
	assert.True(t, line.Quantity.Equal(decimal.NewFromInt(10)), "got %s", line.Quantity)
}
