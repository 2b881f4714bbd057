package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/hash"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
	"github.com/shandysiswandi/floorease/internal/pkg/locker"
	"github.com/shandysiswandi/floorease/internal/pkg/storage"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const defaultResetLockTTL = 10 * time.Second

// ResetOtpNotice carries a plaintext code to its owner. It is never stored.
type ResetOtpNotice struct {
	UserID    int64
	Email     string
	FullName  string
	Code      string
	ExpiresAt time.Time
}

type notifier interface {
	SendResetOtp(ctx context.Context, in ResetOtpNotice) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	CreateUser(ctx context.Context, user entity.User) error
	UpdateUserProfile(ctx context.Context, id int64, change entity.ProfileChange) error
	UpdateUserProfileImage(ctx context.Context, id int64, url string) error

	SaveResetState(ctx context.Context, userID int64, state entity.ResetState) error
	// CommitPassword replaces the password hash and clears the reset state
	// in one write.
	CommitPassword(ctx context.Context, userID int64, passwordHash string) error
}

type Usecase struct {
	repoDB    repoDB
	notifier  notifier
	storage   storage.Storage
	locker    locker.Locker
	validator validator.Validator
	cfg       config.Config
	password  hash.Hash
	otpHash   hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
	otpCode   func() (string, error)
}

type Dependency struct {
	RepoDB     repoDB
	Notifier   notifier
	Storage    storage.Storage
	Locker     locker.Locker
	Validator  validator.Validator
	Config     config.Config
	Password   hash.Hash
	OTPHash    hash.Hash
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	// OTPCode overrides the random six digit generator.
	OTPCode func() (string, error)
}

func New(dep Dependency) *Usecase {
	otpCode := dep.OTPCode
	if otpCode == nil {
		otpCode = randomOTP
	}

	return &Usecase{
		repoDB:    dep.RepoDB,
		notifier:  dep.Notifier,
		storage:   dep.Storage,
		locker:    dep.Locker,
		validator: dep.Validator,
		cfg:       dep.Config,
		password:  dep.Password,
		otpHash:   dep.OTPHash,
		uid:       dep.UID,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
		otpCode:   otpCode,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.UserID == 0 {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	return clm, nil
}

func (s *Usecase) currentUser(ctx context.Context) (*entity.User, error) {
	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if isNotFound(err) {
		slog.WarnContext(ctx, "authenticated user not found", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}

// lockReset serializes the reset cycle of one user. The returned release
// never fails the caller.
func (s *Usecase) lockReset(ctx context.Context, email string) (func(), error) {
	ttl := s.cfg.GetSecond("modules.identity.reset_lock_ttl_seconds")
	if ttl <= 0 {
		ttl = defaultResetLockTTL
	}

	unlock, err := s.locker.Lock(ctx, "identity:reset:"+email, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire reset lock", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			slog.WarnContext(ctx, "failed to release reset lock", "email", email, "error", err)
		}
	}, nil
}
