package bootstrap

import (
	"context"
	"log"
	"time"

	"habit-tracker-be/internal/config"
	"habit-tracker-be/internal/controller"
	"habit-tracker-be/internal/pkg/logger"
	"habit-tracker-be/internal/pkg/serverutils"
	"habit-tracker-be/internal/repository/contract"
	"habit-tracker-be/internal/repository/memory"
	"habit-tracker-be/internal/repository/rediscache"
	"habit-tracker-be/internal/repository/unitofwork"
	"habit-tracker-be/internal/service"
	"habit-tracker-be/pkg/admin/dashboard"
	adminEvents "habit-tracker-be/pkg/admin/events"
	"habit-tracker-be/pkg/admin/export"
	"habit-tracker-be/pkg/admin/feature"
	"habit-tracker-be/pkg/admin/session"
	"habit-tracker-be/pkg/admin/user"
	"habit-tracker-be/pkg/events"

	pktNats "habit-tracker-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	flagChangedTopic = "feature_flag.changed"
	redisKeyPrefix   = "habit-tracker"
)

type Container struct {
	// Controllers
	AdminController   controller.IAdminController
	FeatureController controller.FeatureController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger         logger.ILogger
	RequestMetrics *serverutils.RequestMetrics

	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	redis   *redis.Client
	pubSub  *gochannel.GoChannel
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	startedAt := time.Now()

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	publisherService := service.NewPublisherService(pubSub, flagChangedTopic)

	// 3. Infrastructure
	// NATS (optional)
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		}
	} else {
		log.Println("[INFO] NATS_URL not set, admin events are disabled")
	}

	// Redis (optional, shared flag cache)
	var rdb *redis.Client
	var flagCache contract.EnabledKeysCache
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		flagCache = rediscache.NewFeatureFlagCache(rdb, redisKeyPrefix, cfg.Admin.FeatureCacheTTL)
	} else {
		flagCache = memory.NewFeatureFlagCache(cfg.Admin.FeatureCacheTTL)
	}

	// 4. Admin Domain Components
	var eventSink adminEvents.EventSink
	if natsPub != nil {
		eventSink = natsPub
	}
	adminEventPublisher := adminEvents.NewNatsPublisher(eventSink, sysLogger)

	featureService := service.NewFeatureFlagService(
		uowFactory,
		sysLogger,
		feature.NewManager(),
		flagCache,
		adminEventPublisher,
	)
	adminService := service.NewAdminService(
		uowFactory,
		sysLogger,
		user.NewManager(),
		session.NewManager(),
		dashboard.NewAggregator(sysLogger),
		export.NewExporter(cfg.Admin.EffectiveExportLogLimit()),
		adminEventPublisher,
	)

	requestMetrics := serverutils.NewRequestMetrics()
	var bus service.BusPinger
	if natsPub != nil {
		bus = natsPub
	}
	systemService := service.NewSystemService(cfg, db, rdb, bus, featureService, requestMetrics, startedAt)

	// 5. Cross-instance cache invalidation: NATS -> gochannel -> consumer
	consumerService := service.NewConsumerService(pubSub, flagChangedTopic, featureService, sysLogger)
	if natsSub != nil {
		err := natsSub.Subscribe(
			context.Background(),
			events.Subject(events.FeatureFlagChanged),
			"",
			service.ForwardFlagChanges(publisherService),
		)
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to flag changes: %v", err)
		}
	}

	// 6. Controllers
	return &Container{
		AdminController:   controller.NewAdminController(cfg, sysLogger, adminService, featureService, systemService),
		FeatureController: controller.NewFeatureController(cfg, sysLogger, featureService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
		RequestMetrics:  requestMetrics,

		natsPub: natsPub,
		natsSub: natsSub,
		redis:   rdb,
		pubSub:  pubSub,
	}
}

// Close releases the connections opened by NewContainer.
func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
	_ = c.pubSub.Close()
	_ = c.Logger.Sync()
}
