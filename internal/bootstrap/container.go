package bootstrap

import (
	"context"
	"log"
	"time"

	"tobacco-catalog-be/internal/config"
	"tobacco-catalog-be/internal/controller"
	"tobacco-catalog-be/internal/pkg/logger"
	"tobacco-catalog-be/internal/repository/memory"
	"tobacco-catalog-be/internal/repository/rediscache"
	"tobacco-catalog-be/internal/repository/unitofwork"
	"tobacco-catalog-be/internal/service"
	"tobacco-catalog-be/pkg/catalog/disambiguation"
	"tobacco-catalog-be/pkg/catalog/workflow"
	pktNats "tobacco-catalog-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	CatalogController      controller.ICatalogController
	HealthController       controller.IHealthController

	// Services (the Telegram gateway is wired in main.go)
	ConversationService service.IConversationService
	CatalogService      service.ICatalogService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	c.Logger = sysLogger

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// NATS forwarding is optional
	var natsPub *pktNats.Publisher
	if cfg.Events.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Session & Selection Storage
	sessionRepo, selectionRepo := newSessionStores(cfg.Session, c)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Events.CatalogTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Events.CatalogTopic,
		uowFactory,
		natsPub,
		auditLogger,
		sysLogger,
	)

	c.CatalogService = service.NewCatalogService(uowFactory, publisherService, sysLogger)

	entryWorkflow := workflow.New(sessionRepo, c.CatalogService, sysLogger)
	searchFlow := disambiguation.New(c.CatalogService, selectionRepo, sysLogger)
	c.ConversationService = service.NewConversationService(entryWorkflow, searchFlow, sysLogger)
	auditService := service.NewAuditService(uowFactory)

	// 5. Controllers
	c.ConversationController = controller.NewConversationController(c.ConversationService)
	c.CatalogController = controller.NewCatalogController(c.CatalogService, auditService)
	c.HealthController = controller.NewHealthController()

	return c
}

// newSessionStores picks the session backend. Redis falls back to process
// memory when it cannot be reached at startup.
func newSessionStores(cfg config.SessionConfig, c *Container) (workflow.SessionRepository, disambiguation.SelectionRepository) {
	if cfg.Backend == config.SessionBackendRedis {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory sessions", err)
			_ = rdb.Close()
		} else {
			log.Printf("[INFO] Using Redis session storage")
			c.closers = append(c.closers, func() { _ = rdb.Close() })
			return rediscache.NewSessionRepository(rdb, cfg.IdleTTL),
				rediscache.NewSelectionRepository(rdb, cfg.SelectionTTL)
		}
	}

	log.Printf("[INFO] Using in-memory session storage (idle TTL %s)", cfg.IdleTTL)
	return memory.NewSessionRepository(cfg.IdleTTL), memory.NewSelectionRepository(cfg.SelectionTTL)
}

// Close releases the event bus and external connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
