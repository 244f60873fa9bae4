package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/okna-shop/internal/catalog"
	"github.com/DRSN-tech/okna-shop/internal/cfg"
	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/internal/infrastructure/export"
	"github.com/DRSN-tech/okna-shop/internal/observability"
	"github.com/DRSN-tech/okna-shop/internal/repository/memory"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "okna_session"

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, *usecase.CartNotification) {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.NewNopLogger()
	c := catalog.Default()
	sessions := memory.NewSessionRepo(time.Hour, func(id string) *domain.Session {
		return domain.NewSession(id, c.First().ID)
	}, log)
	metrics := observability.NewMetrics()

	cartUC := usecase.NewCartUC(c, sessions, nopNotifier{}, export.NewXLSXExporter(), metrics, log)
	uc := UseCases{
		Catalog:    usecase.NewCatalogUC(c, sessions, log),
		Cart:       cartUC,
		Calculator: usecase.NewCalculatorUC(c, sessions, cartUC, log),
		Session: usecase.NewSessionUC(c, sessions, domain.Contacts{
			Phone: "+7 (999) 123-45-67",
			Hours: []string{"Пн-Пт: 9:00 - 18:00"},
		}),
	}

	mux := chi.NewRouter()
	NewRouter(mux, metrics, log).Init(uc,
		&cfg.HTTPConfig{AllowedOrigins: []string{"*"}},
		&cfg.SessionCfg{CookieName: testCookie, TTL: time.Hour},
	)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type apiClient struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, srv *httptest.Server) *apiClient {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &apiClient{t: t, base: srv.URL + "/api/v1", http: &http.Client{Jar: jar}}
}

func (c *apiClient) do(method, path string, body any) *http.Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(c.t, err)
			reader = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response, wantStatus int) T {
	t.Helper()

	require.Equal(t, wantStatus, resp.StatusCode)
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestAPI_SessionCookieAndDefaults(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	resp := c.do(http.MethodGet, "/session", nil)
	session := decode[SessionResponse](t, resp, http.StatusOK)

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	assert.Equal(t, "catalog", session.ActiveView)
	assert.Equal(t, "all", session.Filter.Category)
	assert.Equal(t, int64(1), session.Calculator.ProductID)
	assert.Equal(t, "1", session.Calculator.Quantity)
	assert.Equal(t, "450.00", session.Calculator.Price)
	assert.True(t, session.Cart.IsEmpty)
	assert.Equal(t, "0.00", session.Cart.Total)
}

func TestAPI_CatalogFiltering(t *testing.T) {
	c := newClient(t, newTestServer(t))

	all := decode[ProductListResponse](t, c.do(http.MethodGet, "/catalog/products", nil), http.StatusOK)
	assert.Equal(t, 9, all.Count)
	assert.Equal(t, "450.00", all.Products[0].Price)
	assert.Equal(t, "Уплотнители", all.Products[0].CategoryTitle)

	seals := decode[ProductListResponse](t, c.do(http.MethodGet, "/catalog/products?category=seals", nil), http.StatusOK)
	assert.Equal(t, 3, seals.Count)

	panels := decode[ProductListResponse](t, c.do(http.MethodGet, "/catalog/products?q=%D0%BF%D0%B2%D1%85", nil), http.StatusOK)
	assert.Equal(t, 3, panels.Count)

	none := decode[ProductListResponse](t, c.do(http.MethodGet, "/catalog/products?category=seals&q=%D0%BF%D0%B2%D1%85", nil), http.StatusOK)
	assert.Equal(t, 0, none.Count)
	assert.NotNil(t, none.Products)

	bad := decode[ErrorResponse](t, c.do(http.MethodGet, "/catalog/products?category=doors", nil), http.StatusBadRequest)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	categories := decode[[]CategoryResponse](t, c.do(http.MethodGet, "/catalog/categories", nil), http.StatusOK)
	require.Len(t, categories, 4)
	assert.Equal(t, CategoryResponse{Category: "all", Title: "Все товары"}, categories[0])
}

func TestAPI_FilterIsStoredAndReset(t *testing.T) {
	c := newClient(t, newTestServer(t))

	stored := decode[ProductListResponse](t, c.do(http.MethodPut, "/catalog/filters",
		SetFilterRequest{Category: "sills", Query: "белый"}), http.StatusOK)
	assert.Equal(t, 2, stored.Count)

	// GET без параметров использует сохранённый фильтр
	again := decode[ProductListResponse](t, c.do(http.MethodGet, "/catalog/products", nil), http.StatusOK)
	assert.Equal(t, 2, again.Count)
	assert.Equal(t, FilterResponse{Category: "sills", Query: "белый"}, again.Filter)

	// параметры запроса не меняют сохранённый фильтр
	decode[ProductListResponse](t, c.do(http.MethodGet, "/catalog/products?category=all&q=", nil), http.StatusOK)
	session := decode[SessionResponse](t, c.do(http.MethodGet, "/session", nil), http.StatusOK)
	assert.Equal(t, "sills", session.Filter.Category)

	reset := decode[ProductListResponse](t, c.do(http.MethodPost, "/catalog/filters/reset", nil), http.StatusOK)
	assert.Equal(t, 9, reset.Count)
	assert.Equal(t, FilterResponse{Category: "all"}, reset.Filter)

	decode[ErrorResponse](t, c.do(http.MethodPut, "/catalog/filters", SetFilterRequest{Category: "doors"}), http.StatusBadRequest)
}

func TestAPI_CalculatorToCartFlow(t *testing.T) {
	c := newClient(t, newTestServer(t))

	add := decode[AddToCartResponse](t, c.do(http.MethodPost, "/catalog/products/1/cart", nil), http.StatusOK)
	assert.Equal(t, "Добавлено в корзину", add.Notification.Title)
	assert.Equal(t, "Уплотнитель EPDM", add.Notification.Description)
	assert.Equal(t, "catalog", add.ActiveView)

	calc := decode[CalculatorResponse](t, c.do(http.MethodPut, "/calculator", `{"product_id": 1, "quantity": 2}`), http.StatusOK)
	assert.Equal(t, "900.00", calc.Price)

	add = decode[AddToCartResponse](t, c.do(http.MethodPost, "/calculator/cart", nil), http.StatusOK)
	assert.Equal(t, "cart", add.ActiveView)
	assert.Equal(t, "Уплотнитель EPDM - 2 м", add.Notification.Description)
	require.Len(t, add.Cart.Lines, 1)
	assert.Equal(t, "3", add.Cart.Lines[0].Quantity)
	assert.Equal(t, "1350.00", add.Cart.Lines[0].Subtotal)
	assert.Equal(t, "1350.00", add.Cart.Total)

	session := decode[SessionResponse](t, c.do(http.MethodGet, "/session", nil), http.StatusOK)
	assert.Equal(t, "cart", session.ActiveView)
}

func TestAPI_CalculatorValidation(t *testing.T) {
	c := newClient(t, newTestServer(t))

	decode[ErrorResponse](t, c.do(http.MethodPut, "/calculator", `{"quantity": "0.05"}`), http.StatusBadRequest)
	decode[ErrorResponse](t, c.do(http.MethodPut, "/calculator", `{"quantity": "abc"}`), http.StatusBadRequest)
	decode[ErrorResponse](t, c.do(http.MethodPut, "/calculator", `{"product_id": 99}`), http.StatusNotFound)
	decode[ErrorResponse](t, c.do(http.MethodPut, "/calculator", `{"unknown": 1}`), http.StatusBadRequest)

	calc := decode[CalculatorResponse](t, c.do(http.MethodGet, "/calculator", nil), http.StatusOK)
	assert.Equal(t, "1", calc.Quantity)
}

func TestAPI_QuantityOutOfRangeIsRejected(t *testing.T) {
	c := newClient(t, newTestServer(t))

	decode[AddToCartResponse](t, c.do(http.MethodPost, "/catalog/products/7/cart", nil), http.StatusOK)

	for _, body := range []string{
		`{"quantity": "1e900000000"}`,
		`{"quantity": 1e900000000}`,
		`{"quantity": "1e-900000000"}`,
		`{"quantity": "1000000.5"}`,
		`{"quantity": "0.00000001"}`,
		`{"quantity": "1.0000000000000000000000000000000001"}`,
	} {
		decode[ErrorResponse](t, c.do(http.MethodPut, "/calculator", body), http.StatusBadRequest)
		decode[ErrorResponse](t, c.do(http.MethodPut, "/cart/items/7", body), http.StatusBadRequest)
	}

	calc := decode[CalculatorResponse](t, c.do(http.MethodGet, "/calculator", nil), http.StatusOK)
	assert.Equal(t, "1", calc.Quantity)

	cart := decode[CartResponse](t, c.do(http.MethodGet, "/cart", nil), http.StatusOK)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "1", cart.Lines[0].Quantity)

	res := decode[CartMutationResponse](t, c.do(http.MethodPut, "/cart/items/7", `{"quantity": "1e6"}`), http.StatusOK)
	assert.True(t, res.Applied)
	assert.Equal(t, "320000000.00", res.Cart.Total)
}

func TestAPI_CartEditing(t *testing.T) {
	c := newClient(t, newTestServer(t))

	decode[AddToCartResponse](t, c.do(http.MethodPost, "/catalog/products/7/cart", nil), http.StatusOK)

	res := decode[CartMutationResponse](t, c.do(http.MethodPut, "/cart/items/7", UpdateQuantityRequest{Quantity: "1.5"}), http.StatusOK)
	assert.True(t, res.Applied)
	assert.Equal(t, "480.00", res.Cart.Total)

	res = decode[CartMutationResponse](t, c.do(http.MethodPut, "/cart/items/7", `{"quantity": 0.05}`), http.StatusOK)
	assert.False(t, res.Applied)
	assert.Equal(t, "1.5", res.Cart.Lines[0].Quantity)

	decode[ErrorResponse](t, c.do(http.MethodPut, "/cart/items/7", `{"quantity": "abc"}`), http.StatusBadRequest)
	decode[ErrorResponse](t, c.do(http.MethodPut, "/cart/items/x", `{"quantity": 1}`), http.StatusBadRequest)

	res = decode[CartMutationResponse](t, c.do(http.MethodPost, "/cart/items/7/increment", nil), http.StatusOK)
	assert.Equal(t, "2", res.Cart.Lines[0].Quantity)

	res = decode[CartMutationResponse](t, c.do(http.MethodPost, "/cart/items/7/decrement", nil), http.StatusOK)
	res = decode[CartMutationResponse](t, c.do(http.MethodPost, "/cart/items/7/decrement", nil), http.StatusOK)
	res = decode[CartMutationResponse](t, c.do(http.MethodPost, "/cart/items/7/decrement", nil), http.StatusOK)
	assert.True(t, res.Applied)
	assert.Equal(t, "0.5", res.Cart.Lines[0].Quantity)

	res = decode[CartMutationResponse](t, c.do(http.MethodPost, "/cart/items/7/decrement", nil), http.StatusOK)
	assert.False(t, res.Applied)
	assert.Equal(t, "0.5", res.Cart.Lines[0].Quantity)

	res = decode[CartMutationResponse](t, c.do(http.MethodDelete, "/cart/items/3", nil), http.StatusOK)
	assert.False(t, res.Applied)
	assert.Equal(t, 1, res.Cart.Count)

	res = decode[CartMutationResponse](t, c.do(http.MethodDelete, "/cart/items/7", nil), http.StatusOK)
	assert.True(t, res.Applied)
	assert.True(t, res.Cart.IsEmpty)
}

func TestAPI_AddUnknownProduct(t *testing.T) {
	c := newClient(t, newTestServer(t))

	decode[ErrorResponse](t, c.do(http.MethodPost, "/catalog/products/999/cart", nil), http.StatusNotFound)
	decode[ErrorResponse](t, c.do(http.MethodPost, "/catalog/products/0/cart", nil), http.StatusBadRequest)

	cart := decode[CartResponse](t, c.do(http.MethodGet, "/cart", nil), http.StatusOK)
	assert.True(t, cart.IsEmpty)
}

func TestAPI_ExportAndCheckout(t *testing.T) {
	c := newClient(t, newTestServer(t))
	decode[AddToCartResponse](t, c.do(http.MethodPost, "/catalog/products/4/cart", nil), http.StatusOK)

	resp := c.do(http.MethodGet, "/cart/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))

	checkout := decode[CheckoutResponse](t, c.do(http.MethodPost, "/cart/checkout", nil), http.StatusAccepted)
	assert.NotEmpty(t, checkout.Message)
	assert.Equal(t, 1, checkout.Cart.Count)

	cart := decode[CartResponse](t, c.do(http.MethodGet, "/cart", nil), http.StatusOK)
	assert.Equal(t, "890.00", cart.Total)

	cleared := decode[CartMutationResponse](t, c.do(http.MethodDelete, "/cart", nil), http.StatusOK)
	assert.True(t, cleared.Applied)
	assert.True(t, cleared.Cart.IsEmpty)
	assert.Equal(t, "0.00", cleared.Cart.Total)
}

func TestAPI_SessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	decode[AddToCartResponse](t, alice.do(http.MethodPost, "/catalog/products/2/cart", nil), http.StatusOK)
	decode[SessionResponse](t, alice.do(http.MethodPut, "/session/view", SwitchViewRequest{View: "contacts"}), http.StatusOK)

	bobSession := decode[SessionResponse](t, bob.do(http.MethodGet, "/session", nil), http.StatusOK)
	assert.True(t, bobSession.Cart.IsEmpty)
	assert.Equal(t, "catalog", bobSession.ActiveView)

	aliceSession := decode[SessionResponse](t, alice.do(http.MethodGet, "/session", nil), http.StatusOK)
	assert.Equal(t, 1, aliceSession.Cart.Count)
	assert.Equal(t, "contacts", aliceSession.ActiveView)
}

func TestAPI_SwitchViewValidation(t *testing.T) {
	c := newClient(t, newTestServer(t))

	decode[ErrorResponse](t, c.do(http.MethodPut, "/session/view", SwitchViewRequest{View: "admin"}), http.StatusBadRequest)
	decode[ErrorResponse](t, c.do(http.MethodPut, "/session/view", "{"), http.StatusBadRequest)
}

func TestAPI_ContactsAndMetrics(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	contacts := decode[ContactsResponse](t, c.do(http.MethodGet, "/contacts", nil), http.StatusOK)
	assert.Equal(t, "+7 (999) 123-45-67", contacts.Phone)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `okna_shop_http_requests_total{method="GET",route="/api/v1/contacts",status="200"} 1`)
}
