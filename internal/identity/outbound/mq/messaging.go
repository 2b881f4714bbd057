package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/floorease/internal/identity/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
	"github.com/shandysiswandi/floorease/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

// Messaging hands reset codes to the notification module through the
// broker.
type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) SendResetOtp(ctx context.Context, in usecase.ResetOtpNotice) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "SendResetOtp")
	defer span.End()

	body, err := json.Marshal(event.PasswordResetOtpMessage{
		UserID:    in.UserID,
		Email:     in.Email,
		FullName:  in.FullName,
		Code:      in.Code,
		ExpiresAt: in.ExpiresAt.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.client.Publish(ctx, event.PasswordResetOtpDestination, messaging.Outgoing{
		Key:     strconv.FormatInt(in.UserID, 10),
		Body:    body,
		Headers: map[string]string{event.HeaderCorrelationID: instrument.GetCorrelationID(ctx)},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
