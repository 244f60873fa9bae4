package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CartCounters(t *testing.T) {
	m := NewMetrics()

	m.CartItemAdded("catalog")
	m.CartItemAdded("catalog")
	m.CartItemAdded("calculator")
	m.CartItemRemoved()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartAdded.WithLabelValues("catalog")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartAdded.WithLabelValues("calculator")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartRemoved))
}

func TestMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Delete("/cart/items/{productID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"1", "2", "3"} {
		req := httptest.NewRequest(http.MethodDelete, "/cart/items/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(
		m.requestsTotal.WithLabelValues("/cart/items/{productID}", http.MethodDelete, "204"),
	))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.CartItemAdded("catalog")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `okna_shop_cart_items_added_total{source="catalog"} 1`))
}
