package usecase

import (
	"context"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/idempotency"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const objBooking = "booking"

const (
	actCreate = "create"
	actMine   = "mine"
	actList   = "list"
	actUpdate = "update"
	actDelete = "delete"
)

type repoDB interface {
	CreateBooking(ctx context.Context, b entity.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*entity.Booking, error)
	ListBookingsByUser(ctx context.Context, userID int64) ([]entity.Booking, error)
	ListBookings(ctx context.Context, f entity.ListFilter) ([]entity.Booking, int64, error)
	UpdateBookingStatus(ctx context.Context, id int64, status entity.Status) error
	DeleteBooking(ctx context.Context, id int64) error
}

type publisher interface {
	PublishBookingCreated(ctx context.Context, b entity.Booking) error
}

type Usecase struct {
	repoDB      repoDB
	publisher   publisher
	idempotency idempotency.Idempotency
	enforcer    *casbin.Enforcer
	validator   validator.Validator
	uid         uid.NumberID
	clock       clock.Clocker
	ins         instrument.Instrumentation
}

type Dependency struct {
	RepoDB      repoDB
	Publisher   publisher
	Idempotency idempotency.Idempotency
	Enforcer    *casbin.Enforcer
	Validator   validator.Validator
	UID         uid.NumberID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:      dep.RepoDB,
		publisher:   dep.Publisher,
		idempotency: dep.Idempotency,
		enforcer:    dep.Enforcer,
		validator:   dep.Validator,
		uid:         dep.UID,
		clock:       dep.Clock,
		ins:         dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("booking.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.UserID == 0 {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Role, objBooking, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "role", clm.Role, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}
