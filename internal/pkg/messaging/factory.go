package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DriverNATS         = "nats"
	DriverKafka        = "kafka"
	DriverNSQ          = "nsq"
	DriverGooglePubSub = "google-pubsub"
	DriverRabbitMQ     = "rabbitmq"
	DriverMemory       = "memory"
)

var ErrUnknownDriver = errors.New("messaging: unknown driver")

type FactoryOptions struct {
	NATS     NATSConfig
	Kafka    KafkaConfig
	NSQ      NSQConfig
	PubSub   PubSubConfig
	RabbitMQ RabbitMQConfig
}

func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverGooglePubSub:
		return NewPubSub(ctx, opts.PubSub)
	case DriverRabbitMQ:
		return NewRabbitMQ(opts.RabbitMQ)
	case DriverMemory, "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
