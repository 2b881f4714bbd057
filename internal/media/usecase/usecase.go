package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
	"github.com/shandysiswandi/floorease/internal/pkg/ratelimit"
	"github.com/shandysiswandi/floorease/internal/pkg/storage"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"go.opentelemetry.io/otel/trace"
)

const (
	objMedia  = "media"
	actUpload = "upload"

	defaultImageMaxBytes = 5 << 20
)

// DefaultUploadRule applies when modules.media.rate_limit is empty.
var DefaultUploadRule = ratelimit.Rule{Limit: 20, Window: time.Minute}

type Usecase struct {
	storage  storage.Storage
	limiter  ratelimit.Limiter
	rule     ratelimit.Rule
	enforcer *casbin.Enforcer
	cfg      config.Config
	uuid     uid.StringID
	clock    clock.Clocker
	ins      instrument.Instrumentation
}

type Dependency struct {
	Storage    storage.Storage
	Limiter    ratelimit.Limiter
	UploadRule ratelimit.Rule
	Enforcer   *casbin.Enforcer
	Config     config.Config
	UUID       uid.StringID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	rule := dep.UploadRule
	if rule.Limit <= 0 || rule.Window <= 0 {
		rule = DefaultUploadRule
	}

	return &Usecase{
		storage:  dep.Storage,
		limiter:  dep.Limiter,
		rule:     rule,
		enforcer: dep.Enforcer,
		cfg:      dep.Config,
		uuid:     dep.UUID,
		clock:    dep.Clock,
		ins:      dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("media.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.UserID == 0 {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Role, objMedia, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "role", clm.Role, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}
