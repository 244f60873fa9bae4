package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/okna-shop/internal/catalog"
	config "github.com/DRSN-tech/okna-shop/internal/cfg"
	v1Http "github.com/DRSN-tech/okna-shop/internal/delivery/v1/http"
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/internal/infrastructure/export"
	"github.com/DRSN-tech/okna-shop/internal/infrastructure/kafka"
	"github.com/DRSN-tech/okna-shop/internal/infrastructure/notify"
	"github.com/DRSN-tech/okna-shop/internal/observability"
	"github.com/DRSN-tech/okna-shop/internal/repository/memory"
	"github.com/DRSN-tech/okna-shop/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/okna-shop/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/okna-shop/internal/repository/redis"
	redisConv "github.com/DRSN-tech/okna-shop/internal/repository/redis/converter"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/clients"
	"github.com/DRSN-tech/okna-shop/pkg/closer"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/DRSN-tech/okna-shop/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App собирает зависимости магазина и управляет их жизненным циклом.
type App struct {
	cfg        *config.Config
	logger     logger.Logger
	closer     *closer.Closer
	server     *v1Http.Server
	dispatcher *notify.Dispatcher
	memStore   *memory.SessionRepo // nil, если сессии хранятся в Redis
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(2 * time.Second),
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	products, err := a.loadProducts(ctx)
	if err != nil {
		a.closeOnFailure()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cat, err := catalog.New(products)
	if err != nil {
		a.closeOnFailure()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	logger.Infof("Catalog loaded from %s source: %d products", cfg.Catalog.Source, cat.Len())

	factory := func(id string) *domain.Session {
		return domain.NewSession(id, cat.First().ID)
	}

	sessions, err := a.initSessionRepo(ctx, factory)
	if err != nil {
		a.closeOnFailure()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	a.dispatcher = notify.NewDispatcher(cfg.Notify, logger, a.initSinks()...)
	a.closer.AddFunc("notify dispatcher", a.dispatcher.Stop)

	metrics := observability.NewMetrics()

	cartUC := usecase.NewCartUC(cat, sessions, a.dispatcher, export.NewXLSXExporter(), metrics, logger)
	uc := v1Http.UseCases{
		Catalog:    usecase.NewCatalogUC(cat, sessions, logger),
		Cart:       cartUC,
		Calculator: usecase.NewCalculatorUC(cat, sessions, cartUC, logger),
		Session:    usecase.NewSessionUC(cat, sessions, newContacts(cfg.Contacts)),
	}

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, metrics, logger)
	router.Init(uc, cfg.Http, cfg.Session)

	a.server = v1Http.NewServer(r, cfg.Http)

	return a, nil
}

// Run запускает фоновые воркеры и HTTP-сервер и блокируется до сигнала остановки.
func (a *App) Run() error {
	bgCtx, bgCancel := context.WithCancel(context.Background())

	a.dispatcher.Start(bgCtx)
	if a.memStore != nil {
		a.memStore.StartCleanup(bgCtx, a.cfg.Session.CleanupInterval)
	}
	a.closer.AddFunc("background workers", bgCancel)
	a.closer.Add("http server", a.server.Stop)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.server.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown error")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// loadProducts читает ассортимент из настроенного источника. Каталог загружается один раз,
// поэтому подключение к PostgreSQL закрывается сразу после чтения.
func (a *App) loadProducts(ctx context.Context) ([]domain.Product, error) {
	var source usecase.CatalogSource

	switch a.cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err := initPGDB(ctx, a.logger, a.cfg)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		defer db.Close()

		source = pgdb.NewCatalogRepo(db.Pool, pgdbConv.NewProductConverter())
	default:
		source = catalog.NewStaticSource()
	}

	products, err := source.LoadProducts(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, nil
}

func (a *App) initSessionRepo(ctx context.Context, factory usecase.SessionFactory) (usecase.SessionRepository, error) {
	if a.cfg.Session.Store == config.SessionStoreRedis {
		redisClient := clients.NewRedisClient(a.cfg.Redis)
		a.closer.Add("redis", func(context.Context) error {
			return redisClient.Close()
		})

		if err := redisClient.Ping(ctx); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		a.logger.Infof("Sessions are stored in redis at %s", a.cfg.Redis.Addr)
		return redis.NewSessionRepo(
			redisClient,
			redisConv.NewSessionConverter(),
			a.cfg.Redis,
			a.cfg.Session.TTL,
			factory,
			a.logger,
		), nil
	}

	a.logger.Infof("Sessions are stored in memory")
	a.memStore = memory.NewSessionRepo(a.cfg.Session.TTL, factory, a.logger)
	return a.memStore, nil
}

// initSinks возвращает каналы уведомлений. Недоступная Kafka не мешает старту магазина.
func (a *App) initSinks() []notify.Sink {
	sinks := []notify.Sink{notify.NewLogSink(a.logger)}
	if !a.cfg.Kafka.Enabled() {
		return sinks
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err := producer.EnsureTopic(startupTimeout); err != nil {
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}
	a.closer.Add("kafka producer", func(context.Context) error {
		return producer.Close()
	})

	return append(sinks, producer)
}

// closeOnFailure освобождает уже открытые ресурсы, если сборка приложения не удалась.
func (a *App) closeOnFailure() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("cleanup after failed start: %v", err)
	}
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		db.Close()
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func newContacts(cfg *config.ContactsCfg) domain.Contacts {
	return domain.Contacts{
		Phone:   cfg.Phone,
		Email:   cfg.Email,
		Address: cfg.Address,
		Hours:   cfg.Hours,
	}
}
