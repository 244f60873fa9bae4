package http

import (
	"encoding/json"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
)

// Денежные суммы и количества передаются строками, чтобы клиент не терял точность.

// REQUESTS

type SetFilterRequest struct {
	Category string `json:"category" example:"seals"`
	Query    string `json:"query" example:"epdm"`
}

type SwitchViewRequest struct {
	View string `json:"view" example:"cart"`
}

type UpdateCalculatorRequest struct {
	ProductID *int64       `json:"product_id,omitempty" example:"1"`
	Quantity  *json.Number `json:"quantity,omitempty" swaggertype:"string" example:"2.5"`
}

type UpdateQuantityRequest struct {
	Quantity json.Number `json:"quantity" swaggertype:"string" example:"1.5"`
}

// RESPONSES

type ProductResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	CategoryTitle string `json:"category_title"`
	Price         string `json:"price" example:"450.00"`
	Unit          string `json:"unit"`
	Image         string `json:"image"`
}

type FilterResponse struct {
	Category string `json:"category"`
	Query    string `json:"query"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
	Filter   FilterResponse    `json:"filter"`
}

type CategoryResponse struct {
	Category string `json:"category"`
	Title    string `json:"title"`
}

type CartLineResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity string          `json:"quantity" example:"1.5"`
	Subtotal string          `json:"subtotal" example:"675.00"`
}

type CartResponse struct {
	Lines   []CartLineResponse `json:"lines"`
	Count   int                `json:"count"`
	IsEmpty bool               `json:"is_empty"`
	Total   string             `json:"total" example:"1380.00"`
}

type CartMutationResponse struct {
	Cart    CartResponse `json:"cart"`
	Applied bool         `json:"applied"`
}

// NotificationResponse — всплывающее уведомление о добавлении в корзину.
type NotificationResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title" example:"Добавлено в корзину"`
	Description string `json:"description" example:"Уплотнитель EPDM - 2 м"`
}

type AddToCartResponse struct {
	Cart         CartResponse         `json:"cart"`
	Notification NotificationResponse `json:"notification"`
	ActiveView   string               `json:"active_view"`
}

type CalculatorResponse struct {
	ProductID int64            `json:"product_id"`
	Product   *ProductResponse `json:"product"`
	Quantity  string           `json:"quantity"`
	Price     string           `json:"price"`
}

type SessionResponse struct {
	ActiveView string             `json:"active_view"`
	Filter     FilterResponse     `json:"filter"`
	Calculator CalculatorResponse `json:"calculator"`
	Cart       CartResponse       `json:"cart"`
}

type ContactsResponse struct {
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	Hours   []string `json:"hours"`
}

type CheckoutResponse struct {
	Message string       `json:"message"`
	Cart    CartResponse `json:"cart"`
}

// MAPPERS

func newProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      string(p.Category),
		CategoryTitle: p.Category.Title(),
		Price:         domain.FormatAmount(p.Price),
		Unit:          p.Unit,
		Image:         p.Image,
	}
}

func newFilterResponse(f domain.Filter) FilterResponse {
	return FilterResponse{
		Category: string(f.Category),
		Query:    f.Query,
	}
}

func newProductListResponse(res *usecase.ListProductsRes) ProductListResponse {
	products := make([]ProductResponse, 0, len(res.Products))
	for _, p := range res.Products {
		products = append(products, newProductResponse(p))
	}

	return ProductListResponse{
		Products: products,
		Count:    len(products),
		Filter:   newFilterResponse(res.Filter),
	}
}

func newCategoryResponses(categories []usecase.CategoryInfo) []CategoryResponse {
	res := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, CategoryResponse{Category: string(c.Category), Title: c.Title})
	}

	return res
}

func newCartResponse(cart *usecase.CartInfo) CartResponse {
	lines := make([]CartLineResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, CartLineResponse{
			Product:  newProductResponse(line.Product),
			Quantity: line.Quantity.String(),
			Subtotal: domain.FormatAmount(line.Subtotal),
		})
	}

	return CartResponse{
		Lines:   lines,
		Count:   len(lines),
		IsEmpty: len(lines) == 0,
		Total:   domain.FormatAmount(cart.Total),
	}
}

func newCartMutationResponse(res *usecase.CartMutationRes) CartMutationResponse {
	return CartMutationResponse{
		Cart:    newCartResponse(res.Cart),
		Applied: res.Applied,
	}
}

func newAddToCartResponse(res *usecase.AddToCartRes) AddToCartResponse {
	return AddToCartResponse{
		Cart: newCartResponse(res.Cart),
		Notification: NotificationResponse{
			ID:          res.Notification.ID,
			Title:       res.Notification.Title,
			Description: res.Notification.Description,
		},
		ActiveView: string(res.ActiveView),
	}
}

func newCalculatorResponse(calc *usecase.CalculatorInfo) CalculatorResponse {
	res := CalculatorResponse{
		ProductID: calc.ProductID,
		Quantity:  calc.Quantity.String(),
		Price:     domain.FormatAmount(calc.Price),
	}
	if calc.Product != nil {
		p := newProductResponse(*calc.Product)
		res.Product = &p
	}

	return res
}

func newSessionResponse(s *usecase.SessionInfo) SessionResponse {
	return SessionResponse{
		ActiveView: string(s.ActiveView),
		Filter:     newFilterResponse(s.Filter),
		Calculator: newCalculatorResponse(s.Calculator),
		Cart:       newCartResponse(s.Cart),
	}
}

func newContactsResponse(c domain.Contacts) ContactsResponse {
	return ContactsResponse{
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		Hours:   c.Hours,
	}
}
