package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/goroutine"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/shared/event"
)

const defaultConsumerConcurrency = 4

// RegisterMQConsumer starts one background consumer per enabled name in
// modules.notification.consumer_names. An empty list enables all of them.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	consumer messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) []string {
	handler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enabled := cfg.GetArray("modules.notification.consumer_names")
	concurrency := cfg.GetInt("modules.notification.consumer_concurrency")
	if concurrency <= 0 {
		concurrency = defaultConsumerConcurrency
	}

	var consumers = []struct {
		name    string // consumer group on the broker
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.PasswordResetOtpConsumerNotification,
			topic:   event.PasswordResetOtpDestination,
			handler: handler.PasswordResetOtpNotification,
		},
		{
			name:    event.BookingCreatedConsumerNotification,
			topic:   event.BookingCreatedDestination,
			handler: handler.BookingCreatedNotification,
		},
	}

	var started []string
	for _, c := range consumers {
		if len(enabled) > 0 && !slices.Contains(enabled, c.name) {
			continue
		}

		ok := routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(pCtx, "Running job for handling consumer", "consumer", c.name, "topic", c.topic)
			return consumer.Consume(pCtx,
				c.topic,
				c.handler,
				messaging.WithGroup(c.name),
				messaging.WithConcurrency(concurrency),
				messaging.WithMaxInFlight(concurrency*2),
			)
		})
		if ok {
			started = append(started, c.name)
		}
	}

	return started
}
