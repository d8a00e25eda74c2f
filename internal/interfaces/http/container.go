package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	ticketUsecases "github.com/upkeep-inc/upkeep/internal/application/ticket/usecases"
	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/auth"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/config"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/email"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/lock"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/metrics"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/permission"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/seeds"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/pubsub"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/ratelimit"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/scheduler"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/services"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/session"
	"github.com/upkeep-inc/upkeep/internal/interfaces/http/middleware"
	"github.com/upkeep-inc/upkeep/internal/shared/goroutine"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/services/markdown"
)

const eventBufferSize = 256

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services. It wires everything together and
// provides Start and Shutdown for the server lifecycle.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	redis  *redis.Client
	cfg    *config.Config
	log    logger.Interface

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	loginLimiter         *middleware.RateLimiter
	reportLimiter        *middleware.RateLimiter

	// Auth & access control
	jwtSvc   *auth.JWTService
	hasher   user.PasswordHasher
	enforcer permission.Enforcer

	// Ticket plumbing
	locker     ticketUsecases.TicketLocker
	metrics    *metrics.Metrics
	dispatcher *events.InMemoryEventDispatcher

	// Background services and hubs
	eventHub         *services.EventHub
	schedulerManager *scheduler.SchedulerManager

	// Cross-instance event relay, nil without Redis
	eventBus       *pubsub.RedisTicketEventBus
	eventBusCancel context.CancelFunc
}

// NewContainer wires the application. gdb is nil when cfg.Server.Store is
// "memory"; redisClient is nil when Redis is disabled.
func NewContainer(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		redis:  redisClient,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - stores, auth, locks, limiters
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Events - dispatcher, realtime hub, email notifier
	if err := c.initEvents(); err != nil {
		return nil, err
	}

	// Section 3: Use cases and handlers
	c.initUseCases()
	c.initHandlers()

	// Section 4: Scheduler jobs
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initInfrastructure() error {
	var err error

	if c.cfg.Server.Store == "memory" || c.db == nil {
		c.repos = newSessionRepositories(session.NewStore())
		c.enforcer, err = permission.NewMemoryEnforcer(c.log)
	} else {
		c.repos = newGormRepositories(c.db, c.log)
		c.enforcer, err = permission.NewGormEnforcer(c.db, c.log)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}

	c.hasher, err = auth.NewPasswordHasher(c.cfg.Auth.PasswordScheme, c.cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)
	c.metrics = metrics.New()

	limitCfg := ratelimit.Config{
		Limit:  c.cfg.Auth.LoginRateLimit.Limit,
		Window: time.Duration(c.cfg.Auth.LoginRateLimit.WindowSeconds) * time.Second,
	}
	var loginBackend, reportBackend ratelimit.Limiter
	if c.redis != nil {
		c.locker = lock.NewRedisLocker(c.redis, c.log)
		loginBackend = ratelimit.NewRedisRateLimiter(c.redis, limitCfg)
		reportBackend = loginBackend
	} else {
		c.locker = lock.NewKeyedMutex()
		loginBackend = ratelimit.NewMemoryRateLimiter(limitCfg)
		reportBackend = ratelimit.NewMemoryRateLimiter(limitCfg)
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)
	c.loginLimiter = middleware.NewRateLimiter(loginBackend, "login", c.log)
	c.reportLimiter = middleware.NewRateLimiter(reportBackend, "report", c.log)
	return nil
}

func (c *Container) initEvents() error {
	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, c.log.Named("events"))
	c.eventHub = services.NewEventHub(c.log.Named("realtime"), nil)

	if err := c.dispatcher.Subscribe(events.AllEvents, c.eventHub); err != nil {
		return fmt.Errorf("failed to subscribe realtime hub: %w", err)
	}

	if c.redis != nil {
		c.eventBus = pubsub.NewRedisTicketEventBus(c.redis, c.log.Named("pubsub"))
		if err := c.dispatcher.Subscribe(events.AllEvents, c.eventBus); err != nil {
			return fmt.Errorf("failed to subscribe event relay: %w", err)
		}
	}

	if c.cfg.Email.Enabled {
		notifier := email.NewBreakdownNotifier(
			email.NewSMTPEmailService(email.SMTPConfigFrom(&c.cfg.Email)),
			markdown.NewRenderer(),
			c.cfg.Email.Recipients,
			c.log.Named("email"),
		)
		if err := c.dispatcher.Subscribe(ticket.EventBreakdownReported, notifier); err != nil {
			return fmt.Errorf("failed to subscribe breakdown notifier: %w", err)
		}
	}
	return nil
}

func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		return nil
	}

	var err error
	c.schedulerManager, err = scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	overdueEvery := time.Duration(c.cfg.Scheduler.OverdueScanMinutes) * time.Minute
	if err := c.schedulerManager.RegisterOverdueScanJob(c.ucs.scanOverdueUC, overdueEvery); err != nil {
		return err
	}
	gaugeEvery := time.Duration(c.cfg.Scheduler.GaugeRefreshSeconds) * time.Second
	return c.schedulerManager.RegisterGaugeRefreshJob(c.ucs.refreshGaugesUC, gaugeEvery)
}

// Seed loads path and inserts the records that are not stored yet.
func (c *Container) Seed(ctx context.Context, path string) (seeds.Result, error) {
	f, err := seeds.LoadFile(path)
	if err != nil {
		return seeds.Result{}, err
	}
	seeder := seeds.NewSeeder(c.repos.machineRepo, c.repos.instrumentRepo, c.repos.userRepo, c.hasher, c.repos.tx, c.log.Named("seed"))
	return seeder.Apply(ctx, f)
}

// Start launches the event dispatcher and the scheduler.
func (c *Container) Start() error {
	if err := c.dispatcher.Start(); err != nil {
		return err
	}
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
	if c.eventBus != nil {
		ctx, cancel := context.WithCancel(context.Background())
		c.eventBusCancel = cancel
		goroutine.SafeGo(c.log, "ticket-event-relay", func() {
			_ = c.eventBus.Subscribe(ctx, c.eventHub.Broadcast)
		})
	}
	return nil
}

// Engine returns the gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown stops background work. The HTTP server must already be stopped.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Warnw("scheduler stop failed", "error", err)
		}
	}
	if c.eventBusCancel != nil {
		c.eventBusCancel()
	}
	if err := c.dispatcher.Stop(); err != nil {
		c.log.Warnw("event dispatcher stop failed", "error", err)
	}
	c.eventHub.Shutdown()
	c.log.Infow("container shut down")
}
