package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/goroutine"
	"github.com/shandysiswandi/floorease/internal/pkg/hash"
	"github.com/shandysiswandi/floorease/internal/pkg/idempotency"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
	"github.com/shandysiswandi/floorease/internal/pkg/locker"
	"github.com/shandysiswandi/floorease/internal/pkg/mail"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
	"github.com/shandysiswandi/floorease/internal/pkg/ratelimit"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
	"github.com/shandysiswandi/floorease/internal/pkg/storage"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/mongo"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	password  hash.Hash
	otpHash   hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn      *pgxpool.Pool
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	cacheConn   *redis.Client
	locker      locker.Locker
	idemp       idempotency.Idempotency
	limiter     ratelimit.Limiter
	mail        mail.Mail
	messaging   messaging.Messaging
	storage     storage.Storage
	enforcer    *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initDocumentStore()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initRBAC()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
