package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	nsq "github.com/nsqio/go-nsq"
	"go.uber.org/atomic"
)

var (
	ErrNSQProducerRequired  = errors.New("messaging: nsq producer address is required")
	ErrNSQConsumerAddrsNeed = errors.New("messaging: nsq nsqd or lookupd addresses are required")
)

type NSQConfig struct {
	ProducerAddr string
	NSQDAddrs    []string
	LookupdAddrs []string
}

// NSQ wraps messages in an envelope since NSQ has no headers. A handler
// error requeues the message with NSQ's backoff.
type NSQ struct {
	cfg      NSQConfig
	producer *nsq.Producer
	closed   atomic.Bool

	mu        sync.Mutex
	consumers []*nsq.Consumer
}

func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	n := &NSQ{cfg: cfg}
	if cfg.ProducerAddr == "" {
		return n, nil
	}

	p, err := nsq.NewProducer(cfg.ProducerAddr, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("messaging: nsq producer: %w", err)
	}
	p.SetLoggerLevel(nsq.LogLevelError)
	n.producer = p

	return n, nil
}

func (n *NSQ) Publish(ctx context.Context, topic string, msg Outgoing) error {
	switch {
	case n.closed.Load():
		return ErrClosed
	case topic == "":
		return ErrTopicRequired
	case n.producer == nil:
		return ErrNSQProducerRequired
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := wrap(msg)
	if err != nil {
		return err
	}
	if err := n.producer.Publish(topic, body); err != nil {
		return fmt.Errorf("messaging: nsq publish: %w", err)
	}
	return nil
}

func (n *NSQ) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := buildConsumeOptions(opts)
	if err := validateConsume(topic, h, co, true); err != nil {
		return err
	}
	if len(n.cfg.NSQDAddrs) == 0 && len(n.cfg.LookupdAddrs) == 0 {
		return ErrNSQConsumerAddrsNeed
	}

	cfg := nsq.NewConfig()
	cfg.MaxInFlight = co.maxInFlight

	c, err := nsq.NewConsumer(topic, co.group, cfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq consumer: %w", err)
	}
	c.SetLoggerLevel(nsq.LogLevelError)

	c.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		key, headers, body := unwrap(m.Body)
		return dispatch(ctx, DriverNSQ, h, Message{
			ID:          string(m.ID[:]),
			Topic:       topic,
			Key:         key,
			Body:        body,
			Headers:     headers,
			Redelivered: m.Attempts > 1,
			ReceivedAt:  time.Unix(0, m.Timestamp),
		})
	}), co.concurrency)

	if len(n.cfg.LookupdAddrs) > 0 {
		err = c.ConnectToNSQLookupds(n.cfg.LookupdAddrs)
	} else {
		err = c.ConnectToNSQDs(n.cfg.NSQDAddrs)
	}
	if err != nil {
		c.Stop()
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	n.mu.Lock()
	n.consumers = append(n.consumers, c)
	n.mu.Unlock()

	select {
	case <-ctx.Done():
		c.Stop()
		<-c.StopChan
		return ctx.Err()
	case <-c.StopChan:
		return nil
	}
}

func (n *NSQ) Close() error {
	if n.closed.Swap(true) {
		return nil
	}

	n.mu.Lock()
	consumers := n.consumers
	n.consumers = nil
	n.mu.Unlock()

	for _, c := range consumers {
		c.Stop()
		<-c.StopChan
	}
	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}
