package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const maxRequestBodySize = 1 << 20

// Границы числового ввода. Экспонента проверяется до сравнения величины:
// сравнение decimal приводит числа к общему масштабу.
const (
	maxNumberLength   = 32
	maxFractionDigits = 6
	maxIntegerDigits  = 7
)

var maxNumber = decimal.NewFromInt(1_000_000)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrInvalidNumber):
		return http.StatusBadRequest, e.ErrInvalidNumber.Error()
	case errors.Is(err, e.ErrInvalidCategory):
		return http.StatusBadRequest, e.ErrInvalidCategory.Error()
	case errors.Is(err, e.ErrInvalidView):
		return http.StatusBadRequest, e.ErrInvalidView.Error()
	case errors.Is(err, e.ErrInvalidProductID):
		return http.StatusBadRequest, e.ErrInvalidProductID.Error()
	case errors.Is(err, e.ErrInvalidRequestBody):
		return http.StatusBadRequest, e.ErrInvalidRequestBody.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrSessionConflict):
		return http.StatusConflict, e.ErrSessionConflict.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError пишет ошибку в журнал по её серьёзности и отдаёт клиенту.
func respondError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "%s %s", r.Method, r.URL.Path)
	} else {
		log.Warnf("%d %s %s: %s", code, r.Method, r.URL.Path, err.Error())
	}

	WriteError(w, err)
}

// decodeJSON читает тело запроса в dst. Неизвестные поля отклоняются.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrInvalidRequestBody)
	}

	return nil
}

// parseDecimal разбирает число из запроса. Нечисловой ввод и числа вне допустимых границ
// не доходят до корзины и расчёта цены.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, e.Wrap("empty value", e.ErrInvalidNumber)
	}

	if len(s) > maxNumberLength {
		return decimal.Zero, e.Wrap("value too long", e.ErrInvalidNumber)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, e.Wrap(s, e.ErrInvalidNumber)
	}

	if exp := d.Exponent(); exp < -maxFractionDigits || exp > maxIntegerDigits {
		return decimal.Zero, e.Wrap(s, e.ErrInvalidNumber)
	}
	if d.Abs().GreaterThan(maxNumber) {
		return decimal.Zero, e.Wrap(s, e.ErrInvalidNumber)
	}

	return d, nil
}

// parseQuantity разбирает количество. Минимум проверяет домен: для корзины
// слишком малое значение игнорируется, для калькулятора отклоняется.
func parseQuantity(n json.Number) (decimal.Decimal, error) {
	return parseDecimal(n.String())
}

func productIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productID")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, e.Wrap(raw, e.ErrInvalidNumber)
	}
	if id <= 0 {
		return 0, e.Wrap(raw, e.ErrInvalidProductID)
	}

	return id, nil
}
