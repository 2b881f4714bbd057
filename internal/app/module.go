package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/floorease/internal/booking"
	"github.com/shandysiswandi/floorease/internal/identity"
	"github.com/shandysiswandi/floorease/internal/media"
	"github.com/shandysiswandi/floorease/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(a.ctx, identity.Dependency{
			DBConn:     a.dbConn,
			MongoDB:    a.mongoDB,
			Router:     a.router,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Storage:    a.storage,
			Locker:     a.locker,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Password:   a.password,
			OTPHash:    a.otpHash,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.booking.enabled") {
		if err := booking.New(a.ctx, booking.Dependency{
			DBConn:      a.dbConn,
			Router:      a.router,
			Messaging:   a.messaging,
			Idempotency: a.idemp,
			Enforcer:    a.enforcer,
			Instrument:  a.ins,
			UID:         a.uid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module booking", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.media.enabled") {
		if err := media.New(a.ctx, media.Dependency{
			Router:     a.router,
			Storage:    a.storage,
			Limiter:    a.limiter,
			Enforcer:   a.enforcer,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module media", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(a.ctx, notification.Dependency{
			Messaging:  a.messaging,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
