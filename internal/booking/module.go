package booking

import (
	"context"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/floorease/internal/booking/inbound"
	"github.com/shandysiswandi/floorease/internal/booking/outbound/db"
	"github.com/shandysiswandi/floorease/internal/booking/outbound/mq"
	"github.com/shandysiswandi/floorease/internal/booking/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/idempotency"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Enforcer    *casbin.Enforcer           `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(_ context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:      db.NewDB(dep.DBConn, dep.Instrument),
		Publisher:   mq.NewMessaging(dep.Messaging, dep.Instrument),
		Idempotency: dep.Idempotency,
		Enforcer:    dep.Enforcer,
		Validator:   dep.Validator,
		UID:         dep.UID,
		Clock:       dep.Clock,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
