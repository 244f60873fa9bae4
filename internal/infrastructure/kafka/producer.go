package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/okna-shop/internal/cfg"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/DRSN-tech/okna-shop/pkg/jitter"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

const (
	eventTypeHeader   = "event_type"
	eventTypeCartItem = "cart.item_added"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует уведомления о добавлении в корзину в топик Kafka.
// Реализует notify.Sink.
type Producer struct {
	writer messageWriter
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return newProducer(writer, logger, cfg)
}

func newProducer(writer messageWriter, logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

func (p *Producer) Name() string {
	return "kafka"
}

// Send публикует уведомление. Временные ошибки брокера повторяются с экспоненциальной задержкой.
func (p *Producer) Send(ctx context.Context, n *usecase.CartNotification) error {
	value, err := GetPayloadBytes(n)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	msg := kafka.Message{
		Key:   []byte(n.SessionID),
		Value: value,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(eventTypeCartItem)},
		},
	}

	for attempt := 0; ; attempt++ {
		err = p.writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return e.Wrap("permanent kafka failure", err)
		}
		if attempt >= p.cfg.MaxRetries {
			return e.Wrap(fmt.Sprintf("kafka failure after %d attempt(s)", attempt+1), err)
		}

		delay := jitter.ExponentialBackoff(p.cfg.RetryBackoff, p.cfg.MaxBackoff, attempt, jitter.DefaultJitter)
		p.logger.Warnf("Temporary kafka failure, retry in %s: %v", delay, err)

		select {
		case <-ctx.Done():
			return e.Wrap(whereami.WhereAmI(), ctx.Err())
		case <-time.After(delay):
		}
	}
}

func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		err := conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// CartItemAddedEvent — JSON-сообщение о добавлении товара в корзину.
type CartItemAddedEvent struct {
	EventID      string    `json:"event_id"`
	SessionID    string    `json:"session_id"`
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     string    `json:"quantity"`
	LineQuantity string    `json:"line_quantity"`
	Unit         string    `json:"unit"`
	Source       string    `json:"source"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

func GetPayloadBytes(n *usecase.CartNotification) ([]byte, error) {
	return json.Marshal(CartItemAddedEvent{
		EventID:      n.ID,
		SessionID:    n.SessionID,
		ProductID:    n.Event.ProductID,
		ProductName:  n.Event.ProductName,
		Quantity:     n.Event.Quantity.String(),
		LineQuantity: n.Event.LineQuantity.String(),
		Unit:         n.Event.Unit,
		Source:       string(n.Event.Source),
		Title:        n.Title,
		Description:  n.Description,
		CreatedAt:    n.CreatedAt,
	})
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
