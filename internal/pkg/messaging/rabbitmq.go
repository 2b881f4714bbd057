package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/atomic"
)

var ErrRabbitMQURLRequired = errors.New("messaging: rabbitmq url is required")

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// RabbitMQ publishes to a durable topic exchange with the topic as routing
// key. Each consumer group gets a durable queue bound to the topic. A
// failing message is requeued once, then dropped.
type RabbitMQ struct {
	conn     *amqp.Connection
	exchange string
	closed   atomic.Bool

	mu sync.Mutex
	ch *amqp.Channel
}

func NewRabbitMQ(cfg RabbitMQConfig) (*RabbitMQ, error) {
	if cfg.URL == "" {
		return nil, ErrRabbitMQURLRequired
	}
	if cfg.Exchange == "" {
		cfg.Exchange = "floorease.events"
	}

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("messaging: rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("messaging: rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("messaging: rabbitmq declare exchange: %w", err)
	}

	return &RabbitMQ{conn: conn, exchange: cfg.Exchange, ch: ch}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, topic string, msg Outgoing) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if topic == "" {
		return ErrTopicRequired
	}

	headers := make(amqp.Table, len(msg.Headers))
	for k, v := range msg.Headers {
		headers[k] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.ch.PublishWithContext(ctx, r.exchange, topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.Key,
		Timestamp:    time.Now(),
		Headers:      headers,
		Body:         msg.Body,
	})
	if err != nil {
		return fmt.Errorf("messaging: rabbitmq publish: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := buildConsumeOptions(opts)
	if err := validateConsume(topic, h, co, true); err != nil {
		return err
	}
	if r.closed.Load() {
		return ErrClosed
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("messaging: rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(co.maxInFlight, 0, false); err != nil {
		return fmt.Errorf("messaging: rabbitmq qos: %w", err)
	}
	q, err := ch.QueueDeclare(co.group, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("messaging: rabbitmq declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, topic, r.exchange, false, nil); err != nil {
		return fmt.Errorf("messaging: rabbitmq bind: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("messaging: rabbitmq consume: %w", err)
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for d := range deliveries {
				r.deliver(ctx, topic, h, d)
			}
		})
	}
	wg.Wait()

	return ctx.Err()
}

func (r *RabbitMQ) deliver(ctx context.Context, topic string, h Handler, d amqp.Delivery) {
	headers := make(map[string]string, len(d.Headers))
	for k, v := range d.Headers {
		headers[k] = fmt.Sprint(v)
	}

	err := dispatch(ctx, DriverRabbitMQ, h, Message{
		ID:          d.MessageId,
		Topic:       topic,
		Key:         d.MessageId,
		Body:        d.Body,
		Headers:     headers,
		Redelivered: d.Redelivered,
		ReceivedAt:  d.Timestamp,
	})
	if err != nil {
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func (r *RabbitMQ) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.conn.Close()
}
