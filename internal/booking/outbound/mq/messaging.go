package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
	"github.com/shandysiswandi/floorease/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishBookingCreated(ctx context.Context, b entity.Booking) error {
	ctx, span := m.ins.Tracer("booking.outbound.mq").Start(ctx, "PublishBookingCreated")
	defer span.End()

	body, err := json.Marshal(event.BookingCreatedMessage{
		BookingID:     b.ID,
		UserID:        b.UserID,
		FullName:      b.FullName,
		Email:         b.Email,
		Phone:         b.Phone,
		Address:       b.Address,
		ServiceType:   string(b.ServiceType),
		FlooringType:  string(b.FlooringType),
		AreaSize:      b.AreaSize,
		PreferredDate: b.PreferredDate,
		PreferredTime: string(b.PreferredTime),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.client.Publish(ctx, event.BookingCreatedDestination, messaging.Outgoing{
		Key:     strconv.FormatInt(b.ID, 10),
		Body:    body,
		Headers: map[string]string{event.HeaderCorrelationID: instrument.GetCorrelationID(ctx)},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
