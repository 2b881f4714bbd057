// Package email delivers reset codes straight through SMTP, bypassing the
// broker.
package email

import (
	"context"
	"math"
	"time"

	"github.com/shandysiswandi/floorease/internal/identity/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/mail"
	"github.com/shandysiswandi/floorease/internal/shared/emailtmpl"
	"go.opentelemetry.io/otel/codes"
)

type clocker interface {
	Now() time.Time
}

type Mail struct {
	client mail.Mail
	from   string
	clock  clocker
	ins    instrument.Instrumentation
}

func New(client mail.Mail, from string, clock clocker, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, from: from, clock: clock, ins: ins}
}

func (m *Mail) SendResetOtp(ctx context.Context, in usecase.ResetOtpNotice) error {
	ctx, span := m.ins.Tracer("identity.outbound.email").Start(ctx, "SendResetOtp")
	defer span.End()

	msg, err := emailtmpl.ResetOtp(emailtmpl.ResetOtpData{
		FullName:     in.FullName,
		Code:         in.Code,
		ValidMinutes: int(math.Ceil(in.ExpiresAt.Sub(m.clock.Now()).Minutes())),
		Year:         m.clock.Now().Year(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	msg.From = m.from
	msg.To = []string{in.Email}

	if err := m.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
