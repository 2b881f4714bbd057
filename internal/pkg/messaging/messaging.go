// Package messaging publishes and consumes events over a pluggable broker:
// NATS, Kafka, NSQ, Google Pub/Sub, RabbitMQ or an in-process bus.
//
// A Handler returning nil acknowledges the message. A non nil error asks the
// broker for redelivery where the broker supports it.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/shandysiswandi/floorease/internal/pkg/stacktrace"
)

var (
	ErrClosed          = errors.New("messaging: client closed")
	ErrTopicRequired   = errors.New("messaging: topic is required")
	ErrGroupRequired   = errors.New("messaging: consumer group is required")
	ErrHandlerRequired = errors.New("messaging: handler is required")
)

type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

type Publisher interface {
	Publish(ctx context.Context, topic string, msg Outgoing) error
}

// Consumer blocks in Consume until ctx ends or the subscription fails.
type Consumer interface {
	Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error
}

type Handler func(ctx context.Context, msg Message) error

type Outgoing struct {
	Key     string
	Body    []byte
	Headers map[string]string
}

type Message struct {
	ID          string
	Topic       string
	Key         string
	Body        []byte
	Headers     map[string]string
	Redelivered bool
	ReceivedAt  time.Time
}

func (m Message) Header(key string) string {
	return m.Headers[key]
}

type consumeOptions struct {
	group       string
	concurrency int
	maxInFlight int
}

type ConsumeOption func(*consumeOptions)

// WithGroup names the competing consumer set: the Kafka group id, NSQ
// channel, NATS queue group, Pub/Sub subscription or RabbitMQ queue.
func WithGroup(name string) ConsumeOption {
	return func(o *consumeOptions) { o.group = name }
}

func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithMaxInFlight caps unacknowledged deliveries (prefetch).
func WithMaxInFlight(n int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = n }
}

func buildConsumeOptions(opts []ConsumeOption) consumeOptions {
	co := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	co.concurrency = max(co.concurrency, 1)
	co.maxInFlight = max(co.maxInFlight, co.concurrency)
	return co
}

func validateConsume(topic string, h Handler, co consumeOptions, needGroup bool) error {
	switch {
	case topic == "":
		return ErrTopicRequired
	case h == nil:
		return ErrHandlerRequired
	case needGroup && co.group == "":
		return ErrGroupRequired
	}
	return nil
}

// dispatch runs h and turns a panic into an error so the message is
// redelivered instead of crashing the consumer.
func dispatch(ctx context.Context, driver string, h Handler, msg Message) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if frames := stacktrace.InternalPaths(stack); len(frames) > 0 {
			slog.ErrorContext(ctx, "panic in message handler", "driver", driver, "topic", msg.Topic, "panic", rvr, "stack", frames)
		} else {
			slog.ErrorContext(ctx, "panic in message handler", "driver", driver, "topic", msg.Topic, "panic", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("messaging: %s handler panic: %v", driver, rvr)
	}()

	return h(ctx, msg)
}
