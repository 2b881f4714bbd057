package messaging

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Memory is an in-process bus for local runs and tests. Every group
// subscribed to a topic receives each message once; consumers in the same
// group compete.
type Memory struct {
	seq    atomic.Uint64
	closed atomic.Bool

	mu     sync.RWMutex
	groups map[string]map[string]chan Message
}

func NewMemory() *Memory {
	return &Memory{groups: make(map[string]map[string]chan Message)}
}

func (m *Memory) queue(topic, group string) chan Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.groups[topic] == nil {
		m.groups[topic] = make(map[string]chan Message)
	}
	q, ok := m.groups[topic][group]
	if !ok {
		q = make(chan Message, 128)
		m.groups[topic][group] = q
	}
	return q
}

func (m *Memory) Publish(ctx context.Context, topic string, msg Outgoing) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if topic == "" {
		return ErrTopicRequired
	}

	out := Message{
		ID:         strconv.FormatUint(m.seq.Inc(), 10),
		Topic:      topic,
		Key:        msg.Key,
		Body:       append([]byte(nil), msg.Body...),
		Headers:    msg.Headers,
		ReceivedAt: time.Now(),
	}

	m.mu.RLock()
	queues := make([]chan Message, 0, len(m.groups[topic]))
	for _, q := range m.groups[topic] {
		queues = append(queues, q)
	}
	m.mu.RUnlock()

	for _, q := range queues {
		select {
		case q <- out:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Memory) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := buildConsumeOptions(opts)
	if err := validateConsume(topic, h, co, false); err != nil {
		return err
	}
	if m.closed.Load() {
		return ErrClosed
	}

	q := m.queue(topic, co.group)

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg := <-q:
					m.deliver(ctx, q, h, msg)
				}
			}
		})
	}
	wg.Wait()

	return ctx.Err()
}

func (m *Memory) deliver(ctx context.Context, q chan Message, h Handler, msg Message) {
	err := dispatch(ctx, DriverMemory, h, msg)
	if err == nil {
		return
	}
	if msg.Redelivered {
		slog.ErrorContext(ctx, "memory message dropped after redelivery", "topic", msg.Topic, "error", err)
		return
	}

	msg.Redelivered = true
	select {
	case q <- msg:
	default:
		slog.ErrorContext(ctx, "memory queue full, message dropped", "topic", msg.Topic, "error", err)
	}
}

func (m *Memory) Close() error {
	m.closed.Store(true)
	return nil
}
