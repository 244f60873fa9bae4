package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/okna-shop/internal/cfg"
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/internal/repository/redis/converter"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/clients"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

// SessionRepo хранит сессии в Redis. Ключ истекает через TTL без активности.
type SessionRepo struct {
	client  *clients.RedisClient
	conv    converter.SessionConverter
	cfg     *cfg.RedisCfg
	ttl     time.Duration
	factory usecase.SessionFactory
	logger  logger.Logger
}

func NewSessionRepo(
	client *clients.RedisClient,
	conv converter.SessionConverter,
	cfg *cfg.RedisCfg,
	ttl time.Duration,
	factory usecase.SessionFactory,
	logger logger.Logger,
) *SessionRepo {
	return &SessionRepo{
		client:  client,
		conv:    conv,
		cfg:     cfg,
		ttl:     ttl,
		factory: factory,
		logger:  logger,
	}
}

// Get возвращает сохранённую сессию или новую, если ключа нет.
func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, err := r.load(ctx, r.client.Client, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return session, nil
}

// Update выполняет fn в оптимистичной транзакции WATCH/MULTI.
// При конкурентной записи транзакция повторяется до cfg.TxRetries раз.
func (r *SessionRepo) Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	key := r.sessionKey(id)

	var result *domain.Session
	txf := func(tx *goredis.Tx) error {
		session, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := fn(session); err != nil {
			return err
		}
		session.UpdatedAt = time.Now().UTC()

		data, err := r.marshalSession(session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = session
		return nil
	}

	attempts := max(r.cfg.TxRetries, 1)
	for i := 0; i < attempts; i++ {
		err := r.client.Client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			r.logger.Debugf("session %s changed concurrently, retry %d", id, i+1)
			continue
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return nil, e.Wrap(whereami.WhereAmI(), e.ErrSessionConflict)
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Client.Del(ctx, r.sessionKey(id)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// load читает сессию через переданный клиент (обычный клиент или транзакцию).
func (r *SessionRepo) load(ctx context.Context, cmd goredis.Cmdable, id string) (*domain.Session, error) {
	data, err := cmd.Get(ctx, r.sessionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return r.factory(id), nil
	}
	if err != nil {
		return nil, err
	}

	session, err := r.unmarshalSession(data)
	if err != nil {
		r.logger.Warnf("Broken session %s in redis, starting a new one: %v", id, err)
		return r.factory(id), nil
	}

	return session, nil
}

// marshalSession сериализует сессию в JSON
func (r *SessionRepo) marshalSession(session *domain.Session) ([]byte, error) {
	return json.Marshal(r.conv.ToRedisModel(session))
}

// unmarshalSession десериализует JSON из Redis в сессию
func (r *SessionRepo) unmarshalSession(data []byte) (*domain.Session, error) {
	var model converter.SessionRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return r.conv.ToEntity(&model), nil
}

// sessionKey возвращает Redis-ключ сессии
func (r *SessionRepo) sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}
