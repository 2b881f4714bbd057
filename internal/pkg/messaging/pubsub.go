package messaging

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"cloud.google.com/go/pubsub/v2"
	"go.uber.org/atomic"
	"google.golang.org/api/option"
)

var ErrPubSubProjectRequired = errors.New("messaging: pubsub project id is required")

type PubSubConfig struct {
	ProjectID     string
	ClientOptions []option.ClientOption
}

// keyAttribute carries Outgoing.Key; ordering keys are not used because a
// failed ordered publish pauses the key until resumed.
const keyAttribute = "x-message-key"

// PubSub publishes to topics and receives from subscriptions. Headers
// travel as message attributes.
type PubSub struct {
	client *pubsub.Client
	closed atomic.Bool

	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
}

func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectRequired
	}

	c, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("messaging: pubsub client: %w", err)
	}

	return &PubSub{client: c, publishers: make(map[string]*pubsub.Publisher)}, nil
}

func (p *PubSub) publisher(topic string) *pubsub.Publisher {
	p.mu.Lock()
	defer p.mu.Unlock()

	pub, ok := p.publishers[topic]
	if !ok {
		pub = p.client.Publisher(topic)
		p.publishers[topic] = pub
	}
	return pub
}

func (p *PubSub) Publish(ctx context.Context, topic string, msg Outgoing) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if topic == "" {
		return ErrTopicRequired
	}

	attrs := make(map[string]string, len(msg.Headers)+1)
	maps.Copy(attrs, msg.Headers)
	if msg.Key != "" {
		attrs[keyAttribute] = msg.Key
	}

	res := p.publisher(topic).Publish(ctx, &pubsub.Message{Data: msg.Body, Attributes: attrs})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("messaging: pubsub publish: %w", err)
	}
	return nil
}

// Consume receives from the subscription named by WithGroup.
func (p *PubSub) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := buildConsumeOptions(opts)
	if err := validateConsume(topic, h, co, true); err != nil {
		return err
	}
	if p.closed.Load() {
		return ErrClosed
	}

	sub := p.client.Subscriber(co.group)
	sub.ReceiveSettings.NumGoroutines = co.concurrency
	sub.ReceiveSettings.MaxOutstandingMessages = co.maxInFlight

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		err := dispatch(ctx, DriverGooglePubSub, h, Message{
			ID:          m.ID,
			Topic:       topic,
			Key:         m.Attributes[keyAttribute],
			Body:        m.Data,
			Headers:     m.Attributes,
			Redelivered: m.DeliveryAttempt != nil && *m.DeliveryAttempt > 1,
			ReceivedAt:  m.PublishTime,
		})
		if err != nil {
			m.Nack()
			return
		}
		m.Ack()
	})
}

func (p *PubSub) Close() error {
	if p.closed.Swap(true) {
		return nil
	}

	p.mu.Lock()
	for _, pub := range p.publishers {
		pub.Stop()
	}
	p.publishers = nil
	p.mu.Unlock()

	return p.client.Close()
}
