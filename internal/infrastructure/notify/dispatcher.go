// Package notify доставляет подтверждения о добавлении в корзину в фоне.
// Запрос пользователя никогда не ждёт каналов уведомлений: события кладутся
// в буферизованную очередь, а воркер рассылает их по всем Sink.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/okna-shop/internal/cfg"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
)

const (
	defaultQueueSize   = 256
	defaultSendTimeout = 5 * time.Second
)

// Sink — канал доставки уведомлений (лог, Kafka).
type Sink interface {
	Name() string
	Send(ctx context.Context, n *usecase.CartNotification) error
}

type Dispatcher struct {
	queue       chan *usecase.CartNotification
	sinks       []Sink
	sendTimeout time.Duration
	logger      logger.Logger
	stop        chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

func NewDispatcher(cfg *cfg.NotifyCfg, logger logger.Logger, sinks ...Sink) *Dispatcher {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	sendTimeout := cfg.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}

	return &Dispatcher{
		queue:       make(chan *usecase.CartNotification, queueSize),
		sinks:       sinks,
		sendTimeout: sendTimeout,
		logger:      logger,
		stop:        make(chan struct{}),
	}
}

// Notify ставит уведомление в очередь. При переполнении уведомление отбрасывается.
func (d *Dispatcher) Notify(_ context.Context, n *usecase.CartNotification) {
	select {
	case d.queue <- n:
	default:
		d.logger.Warnf("Notification queue is full, dropping notification %s for session %s", n.ID, n.SessionID)
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(ctx)
	}()
}

// Stop останавливает воркер и дожидается отправки уже принятых уведомлений.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run(ctx context.Context) {
	d.logger.Infof("Notification dispatcher started with %d sink(s)", len(d.sinks))

	for {
		select {
		case <-ctx.Done():
			d.drain()
			d.logger.Infof("Notification dispatcher stopped by context cancellation")
			return
		case <-d.stop:
			d.drain()
			d.logger.Infof("Notification dispatcher stopped")
			return
		case n := <-d.queue:
			d.deliver(ctx, n)
		}
	}
}

// drain отправляет остатки очереди с отдельным контекстом, т.к. основной уже может быть отменён.
func (d *Dispatcher) drain() {
	for {
		select {
		case n := <-d.queue:
			d.deliver(context.Background(), n)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n *usecase.CartNotification) {
	for _, sink := range d.sinks {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.sendTimeout)
		if err := sink.Send(sendCtx, n); err != nil {
			d.logger.Errorf(err, "sink %s failed to deliver notification %s", sink.Name(), n.ID)
		}
		cancel()
	}
}
