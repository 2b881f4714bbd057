package media

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v3"
	"github.com/shandysiswandi/floorease/internal/media/inbound"
	"github.com/shandysiswandi/floorease/internal/media/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/ratelimit"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
	"github.com/shandysiswandi/floorease/internal/pkg/storage"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Limiter    ratelimit.Limiter          `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(_ context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	rule := usecase.DefaultUploadRule
	if raw := dep.Config.GetString("modules.media.rate_limit"); raw != "" {
		r, err := ratelimit.ParseRule(raw)
		if err != nil {
			return fmt.Errorf("media: %w", err)
		}
		rule = r
	}

	uc := usecase.New(usecase.Dependency{
		Storage:    dep.Storage,
		Limiter:    dep.Limiter,
		UploadRule: rule,
		Enforcer:   dep.Enforcer,
		Config:     dep.Config,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
