package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionRedisModel — JSON-представление сессии в Redis.
type SessionRedisModel struct {
	ID         string               `json:"id"`
	ActiveView string               `json:"active_view"`
	Filter     FilterRedisModel     `json:"filter"`
	Calculator CalculatorRedisModel `json:"calculator"`
	Cart       []CartLineRedisModel `json:"cart"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

type FilterRedisModel struct {
	Category string `json:"category"`
	Query    string `json:"query"`
}

type CalculatorRedisModel struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CartLineRedisModel хранит снимок товара, чтобы корзина не зависела от перезагрузки каталога.
type CartLineRedisModel struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	Image     string          `json:"image"`
	Quantity  decimal.Decimal `json:"quantity"`
}
