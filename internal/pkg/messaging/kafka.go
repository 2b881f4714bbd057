package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sethvargo/go-retry"
	"go.uber.org/atomic"
)

var ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")

type KafkaConfig struct {
	Brokers  []string
	ClientID string
	// Retries is how many times a failing handler is re-run before the
	// offset is committed anyway. Kafka keeps no per message nack.
	Retries uint64
}

type Kafka struct {
	cfg    KafkaConfig
	writer *kafka.Writer
	closed atomic.Bool
}

func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}
	if cfg.Retries == 0 {
		cfg.Retries = 3
	}

	return &Kafka{
		cfg: cfg,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, topic string, msg Outgoing) error {
	if k.closed.Load() {
		return ErrClosed
	}
	if topic == "" {
		return ErrTopicRequired
	}

	km := kafka.Message{Topic: topic, Key: []byte(msg.Key), Value: msg.Body, Time: time.Now()}
	for key, v := range msg.Headers {
		km.Headers = append(km.Headers, kafka.Header{Key: key, Value: []byte(v)})
	}

	if err := k.writer.WriteMessages(ctx, km); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}
	return nil
}

// Consume runs one group reader per unit of concurrency; the group
// coordinator spreads partitions across them.
func (k *Kafka) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := buildConsumeOptions(opts)
	if err := validateConsume(topic, h, co, true); err != nil {
		return err
	}
	if k.closed.Load() {
		return ErrClosed
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for range co.concurrency {
		wg.Go(func() {
			if err := k.readLoop(ctx, topic, h, co); err != nil && !errors.Is(err, context.Canceled) {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	return errors.Join(append(errs, ctx.Err())...)
}

func (k *Kafka) readLoop(ctx context.Context, topic string, h Handler, co consumeOptions) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.cfg.Brokers,
		GroupID:  co.group,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		Dialer:   &kafka.Dialer{ClientID: k.cfg.ClientID, Timeout: 10 * time.Second},
	})
	defer reader.Close()

	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		msg := Message{
			ID:         strconv.Itoa(m.Partition) + "-" + strconv.FormatInt(m.Offset, 10),
			Topic:      m.Topic,
			Key:        string(m.Key),
			Body:       m.Value,
			Headers:    make(map[string]string, len(m.Headers)),
			ReceivedAt: m.Time,
		}
		for _, hd := range m.Headers {
			msg.Headers[hd.Key] = string(hd.Value)
		}

		attempt := 0
		backoff := retry.WithMaxRetries(k.cfg.Retries, retry.NewExponential(200*time.Millisecond))
		err = retry.Do(ctx, backoff, func(ctx context.Context) error {
			msg.Redelivered = attempt > 0
			attempt++
			return retry.RetryableError(dispatch(ctx, DriverKafka, h, msg))
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			slog.ErrorContext(ctx, "kafka message skipped after retries", "topic", topic, "id", msg.ID, "error", err)
		}

		if err := reader.CommitMessages(context.WithoutCancel(ctx), m); err != nil {
			return fmt.Errorf("messaging: kafka commit: %w", err)
		}
	}
}

func (k *Kafka) Close() error {
	if k.closed.Swap(true) {
		return nil
	}
	return k.writer.Close()
}
