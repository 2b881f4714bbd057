package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/atomic"
)

var ErrNATSURLRequired = errors.New("messaging: nats url is required")

type NATSConfig struct {
	URL     string
	Name    string
	Options []nats.Option
}

// NATS uses core NATS subjects. Core NATS has no redelivery: a handler
// error is logged and the message is dropped.
type NATS struct {
	conn   *nats.Conn
	closed atomic.Bool
}

func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	opts := append([]nats.Option{nats.Name(cfg.Name), nats.MaxReconnects(-1)}, cfg.Options...)
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

func (n *NATS) Publish(ctx context.Context, topic string, msg Outgoing) error {
	if n.closed.Load() {
		return ErrClosed
	}
	if topic == "" {
		return ErrTopicRequired
	}

	nm := nats.NewMsg(topic)
	nm.Data = msg.Body
	for k, v := range msg.Headers {
		nm.Header.Set(k, v)
	}
	if msg.Key != "" {
		nm.Header.Set(nats.MsgIdHdr, msg.Key)
	}

	if err := n.conn.PublishMsg(nm); err != nil {
		return fmt.Errorf("messaging: nats publish: %w", err)
	}
	return n.conn.FlushWithContext(ctx)
}

func (n *NATS) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := buildConsumeOptions(opts)
	if err := validateConsume(topic, h, co, false); err != nil {
		return err
	}
	if n.closed.Load() {
		return ErrClosed
	}

	ch := make(chan *nats.Msg, co.maxInFlight)
	sub, err := n.conn.ChanQueueSubscribe(topic, co.group, ch)
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case m := <-ch:
					msg := Message{
						ID:         m.Header.Get(nats.MsgIdHdr),
						Topic:      m.Subject,
						Key:        m.Header.Get(nats.MsgIdHdr),
						Body:       m.Data,
						Headers:    flattenHeader(m.Header),
						ReceivedAt: time.Now(),
					}
					if err := dispatch(ctx, DriverNATS, h, msg); err != nil {
						slog.ErrorContext(ctx, "nats message dropped after handler error", "topic", topic, "error", err)
					}
				}
			}
		})
	}

	<-ctx.Done()
	err = sub.Unsubscribe()
	wg.Wait()

	return errors.Join(ctx.Err(), err)
}

func (n *NATS) Close() error {
	if n.closed.Swap(true) {
		return nil
	}
	err := n.conn.Drain()
	n.conn.Close()
	return err
}

func flattenHeader(h map[string][]string) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
