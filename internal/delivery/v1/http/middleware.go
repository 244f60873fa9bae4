package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger пишет строку журнала на каждый запрос: метод, путь, статус и длительность.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log.Infof("%s %s %d %s request_id=%s",
				r.Method, r.URL.Path, status, time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}
