package usecase

import "context"

// Notifier доставляет подтверждения о добавлении в корзину. Не блокирует вызывающего.
type Notifier interface {
	Notify(ctx context.Context, n *CartNotification)
}

type EstimateExporter interface {
	Export(ctx context.Context, cart *CartInfo) ([]byte, error)
}

type CartMetrics interface {
	CartItemAdded(source string)
	CartItemRemoved()
}
