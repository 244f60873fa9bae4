package domain

import (
	"time"

	"github.com/DRSN-tech/okna-shop/pkg/e"
)

// View — вкладка интерфейса.
type View string

const (
	ViewCatalog    View = "catalog"
	ViewCalculator View = "calculator"
	ViewCart       View = "cart"
	ViewContacts   View = "contacts"
)

func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewCatalog, ViewCalculator, ViewCart, ViewContacts:
		return v, nil
	default:
		return "", e.Wrap(s, e.ErrInvalidView)
	}
}

// Filter — состояние фильтров каталога.
type Filter struct {
	Category Category
	Query    string
}

func DefaultFilter() Filter {
	return Filter{Category: CategoryAll}
}

func (f *Filter) Reset() {
	*f = DefaultFilter()
}

// Session описывает состояние одной интерактивной сессии покупателя.
type Session struct {
	ID         string
	ActiveView View
	Filter     Filter
	Calculator Calculator
	Cart       *Cart
	UpdatedAt  time.Time
}

func NewSession(id string, defaultProductID int64) *Session {
	return &Session{
		ID:         id,
		ActiveView: ViewCatalog,
		Filter:     DefaultFilter(),
		Calculator: NewCalculator(defaultProductID),
		Cart:       NewCart(),
	}
}

// Clone возвращает независимую копию сессии.
func (s *Session) Clone() *Session {
	clone := *s
	clone.Cart = s.Cart.Clone()
	return &clone
}
