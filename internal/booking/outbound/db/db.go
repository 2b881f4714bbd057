package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func (s *DB) mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}
	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("booking.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

const bookingColumns = `id, user_id, full_name, email, phone, address, area_size,
	service_type, flooring_type, preferred_date, preferred_time, notes, status,
	created_at, updated_at`

func scanBooking(row pgx.CollectableRow) (entity.Booking, error) {
	var (
		b                                          entity.Booking
		serviceType, flooringType, prefTime, state string
	)

	err := row.Scan(
		&b.ID, &b.UserID, &b.FullName, &b.Email, &b.Phone, &b.Address, &b.AreaSize,
		&serviceType, &flooringType, &b.PreferredDate, &prefTime, &b.Notes, &state,
		&b.CreatedAt, &b.UpdatedAt,
	)

	b.ServiceType = entity.ServiceType(serviceType)
	b.FlooringType = entity.FlooringType(flooringType)
	b.PreferredTime = entity.PreferredTime(prefTime)
	b.Status = entity.Status(state)
	return b, err
}
