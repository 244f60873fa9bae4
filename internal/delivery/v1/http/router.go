package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/okna-shop/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/okna-shop/internal/cfg"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// HTTPMetrics — метрики запросов и эндпоинт для Prometheus.
type HTTPMetrics interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

// UseCases — сценарии, которые обслуживает HTTP API.
type UseCases struct {
	Catalog    usecase.CatalogUC
	Cart       usecase.CartUC
	Calculator usecase.CalculatorUC
	Session    usecase.SessionUC
}

type Router struct {
	router  *chi.Mux
	logger  logger.Logger
	metrics HTTPMetrics
}

func NewRouter(router *chi.Mux, metrics HTTPMetrics, logger logger.Logger) *Router {
	return &Router{router: router, metrics: metrics, logger: logger}
}

func (r *Router) Init(uc UseCases, httpCfg *cfg.HTTPConfig, sessionCfg *cfg.SessionCfg) {
	r.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		RequestLogger(r.logger),
		r.metrics.Middleware,
		cors.New(cors.Options{
			AllowedOrigins:   httpCfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler,
	)

	r.router.Handle("/metrics", r.metrics.Handler())
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(
			middleware.Timeout(30*time.Second),
			SessionMiddleware(sessionCfg.CookieName, sessionCfg.TTL),
		)

		registerSessionRoutes(v1, NewSessionHandler(uc.Session, r.logger))
		registerCatalogRoutes(v1, NewCatalogHandler(uc.Catalog, uc.Cart, r.logger))
		registerCalculatorRoutes(v1, NewCalculatorHandler(uc.Calculator, r.logger))
		registerCartRoutes(v1, NewCartHandler(uc.Cart, r.logger))
	})
}

func registerSessionRoutes(router chi.Router, h *SessionHandler) {
	router.Get("/session", h.getSession)
	router.Put("/session/view", h.switchView)
	router.Get("/contacts", h.getContacts)
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/catalog", func(c chi.Router) {
		c.Get("/products", h.listProducts)
		c.Post("/products/{productID}/cart", h.addToCart)
		c.Get("/categories", h.listCategories)
		c.Put("/filters", h.setFilter)
		c.Post("/filters/reset", h.resetFilter)
	})
}

func registerCalculatorRoutes(router chi.Router, h *CalculatorHandler) {
	router.Route("/calculator", func(c chi.Router) {
		c.Get("/", h.getCalculator)
		c.Put("/", h.updateCalculator)
		c.Post("/cart", h.addToCart)
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(c chi.Router) {
		c.Get("/", h.getCart)
		c.Delete("/", h.clear)
		c.Get("/export", h.exportEstimate)
		c.Post("/checkout", h.checkout)
		c.Put("/items/{productID}", h.updateQuantity)
		c.Delete("/items/{productID}", h.remove)
		c.Post("/items/{productID}/increment", h.increment)
		c.Post("/items/{productID}/decrement", h.decrement)
	})
}
