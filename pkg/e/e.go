package e

import "fmt"

var (
	// Ошибки каталога
	ErrProductNotFound    = fmt.Errorf("product not found")
	ErrDuplicateProductID = fmt.Errorf("duplicate product id")
	ErrInvalidProductID   = fmt.Errorf("product id must be positive")
	ErrInvalidCategory    = fmt.Errorf("invalid category")
	ErrNegativePrice      = fmt.Errorf("price must not be negative")
	ErrProductNameEmpty   = fmt.Errorf("product name is required")
	ErrEmptyCatalog       = fmt.Errorf("catalog is empty")

	// Ошибки корзины и сессии
	ErrInvalidQuantity = fmt.Errorf("quantity must be at least 0.1")
	ErrInvalidView     = fmt.Errorf("invalid view")
	ErrSessionConflict = fmt.Errorf("session was modified concurrently")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable  = fmt.Errorf("incorrect environment variable")
	ErrUnknownSessionStore   = fmt.Errorf("unknown session store")
	ErrUnknownCatalogSource  = fmt.Errorf("unknown catalog source")
	ErrKafkaTopicRequired    = fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	ErrPostgresCredsRequired = fmt.Errorf("POSTGRES_USER, POSTGRES_PASSWORD and POSTGRES_DB are required")

	// 400 Bad Request
	ErrStatusBadRequest   = fmt.Errorf("bad request")
	ErrInvalidRequestBody = fmt.Errorf("invalid request body")
	ErrInvalidNumber      = fmt.Errorf("invalid number")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
