package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/floorease/internal/identity/inbound"
	"github.com/shandysiswandi/floorease/internal/identity/outbound/db"
	"github.com/shandysiswandi/floorease/internal/identity/outbound/docdb"
	"github.com/shandysiswandi/floorease/internal/identity/outbound/email"
	"github.com/shandysiswandi/floorease/internal/identity/outbound/mq"
	"github.com/shandysiswandi/floorease/internal/identity/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/hash"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
	"github.com/shandysiswandi/floorease/internal/pkg/locker"
	"github.com/shandysiswandi/floorease/internal/pkg/mail"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
	"github.com/shandysiswandi/floorease/internal/pkg/storage"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"

	DeliveryMQ   = "mq"
	DeliveryMail = "mail"
)

var ErrStoreUnavailable = errors.New("identity: configured user store is not connected")

type Dependency struct {
	DBConn     *pgxpool.Pool
	MongoDB    *mongo.Database
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Locker     locker.Locker              `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Password   hash.Hash                  `validate:"required"`
	OTPHash    hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

type resetNotifier interface {
	SendResetOtp(ctx context.Context, in usecase.ResetOtpNotice) error
}

// newNotifier picks how reset codes leave the service. Mail is the default.
// The mq payload carries the plaintext code.
func newNotifier(dep Dependency) (resetNotifier, error) {
	switch delivery := strings.ToLower(dep.Config.GetString("modules.identity.otp_delivery")); delivery {
	case "", DeliveryMail:
		return email.New(dep.Mail, dep.Config.GetString("mail.from"), dep.Clock, dep.Instrument), nil
	case DeliveryMQ:
		return mq.NewMessaging(dep.Messaging, dep.Instrument), nil
	default:
		return nil, fmt.Errorf("identity: unknown otp delivery %q", delivery)
	}
}

func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ucDep := usecase.Dependency{
		Storage:    dep.Storage,
		Locker:     dep.Locker,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Password:   dep.Password,
		OTPHash:    dep.OTPHash,
		UID:        dep.UID,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
	}

	switch store := strings.ToLower(dep.Config.GetString("modules.identity.store")); store {
	case "", StorePostgres:
		if dep.DBConn == nil {
			return fmt.Errorf("%w: %s", ErrStoreUnavailable, StorePostgres)
		}
		ucDep.RepoDB = db.NewDB(dep.DBConn, dep.Instrument)
	case StoreMongo:
		if dep.MongoDB == nil {
			return fmt.Errorf("%w: %s", ErrStoreUnavailable, StoreMongo)
		}
		docDB := docdb.NewDocDB(dep.MongoDB, dep.Instrument)
		if err := docDB.EnsureIndexes(ctx); err != nil {
			return err
		}
		ucDep.RepoDB = docDB
	default:
		return fmt.Errorf("identity: unknown store %q", store)
	}

	notifier, err := newNotifier(dep)
	if err != nil {
		return err
	}
	ucDep.Notifier = notifier

	uc := usecase.New(ucDep)

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
