package bootstrap

import (
	"context"

	"learnloop-be/internal/config"
	"learnloop-be/internal/controller"
	"learnloop-be/internal/handler"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/pkg/serverutils"
	"learnloop-be/internal/repository/memory"
	"learnloop-be/internal/repository/unitofwork"
	"learnloop-be/internal/service"
	"learnloop-be/internal/websocket"
	"learnloop-be/pkg/cache"
	"learnloop-be/pkg/events"
	"learnloop-be/pkg/llm"
	"learnloop-be/pkg/llm/factory"
	pktNats "learnloop-be/pkg/nats"
	"learnloop-be/pkg/transcript"
	"learnloop-be/pkg/youtube"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	UserController     controller.IUserController
	PlaylistController controller.IPlaylistController
	VideoController    controller.IVideoController
	BadgeController    controller.IBadgeController

	// JWT guard shared by every protected route
	AuthMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	rdb     *redis.Client
}

// NewContainer wires every dependency. A nil db switches persistence to the
// in-process store, which is only meant for local runs without Postgres.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		sysLogger.Warn("BOOTSTRAP", "No database configured, using in-memory store", nil)
		uowFactory = memory.NewRepositoryFactory(memory.NewStore())
	}

	store, rdb, err := cache.New(context.Background(), cache.Options{
		Driver:   cfg.Cache.Driver,
		RedisURL: cfg.Cache.RedisURL,
		Password: cfg.Cache.RedisPassword,
	})
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Cache unavailable, caching disabled", map[string]interface{}{"error": err.Error()})
	}
	safeCache := cache.NewSafeStore(store, sysLogger)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ActivityTopic, uowFactory, sysLogger)
	activityTracker := service.NewActivityTracker(publisherService, sysLogger)

	// NATS is optional; without it notifications go straight to the hub
	var eventPublisher events.Publisher
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		natsPub, natsSub = connectNats(cfg.App.NatsURL, sysLogger)
		if natsPub != nil {
			eventPublisher = natsPub
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.NotificationLog)
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 3. External clients
	ytClient := youtube.NewClient(cfg.Keys.YouTube,
		youtube.WithBaseURL(cfg.Keys.YouTubeBaseURL),
		youtube.WithRateLimit(cfg.Keys.YouTubeRateLimit),
	)
	transcripts := transcript.NewTimedTextFetcher(cfg.Keys.TranscriptBaseURL)

	var llmProvider llm.LLMProvider
	llmCfg := factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   cfg.Keys.OpenAI,
	}
	if cfg.Ai.LLMProvider == "ollama" {
		llmCfg.Model = cfg.Ai.OllamaModel
		llmCfg.BaseURL = cfg.Ai.OllamaBaseURL
		llmCfg.ContextWindow = cfg.Ai.OllamaContextWindow
		llmCfg.KeepAlive = cfg.Ai.OllamaKeepAlive
	}
	llmProvider, err = factory.NewLLMProvider(llmCfg)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "LLM provider unavailable, summaries disabled", map[string]interface{}{"error": err.Error()})
	} else {
		sysLogger.Info("BOOTSTRAP", "Using LLM Provider", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"model":    llmCfg.Model,
		})
	}

	// 4. Services
	oauthService := service.NewOAuthService(cfg.Auth)
	authService := service.NewAuthService(uowFactory, oauthService, safeCache, cfg.Auth.JwtSecret, cfg.Auth.JwtTTL, sysLogger)
	userService := service.NewUserService(uowFactory, safeCache, sysLogger)
	badgeService := service.NewBadgeService(uowFactory, safeCache, eventPublisher, wsHub, sysLogger)
	playlistService := service.NewPlaylistService(uowFactory, ytClient, safeCache, badgeService, sysLogger)
	videoService := service.NewVideoService(service.VideoServiceDeps{
		UowFactory:  uowFactory,
		Cache:       safeCache,
		Badges:      badgeService,
		Activity:    activityTracker,
		Transcripts: transcripts,
		LLM:         llmProvider,
		Publisher:   eventPublisher,
		Delivery:    wsHub,
		Logger:      sysLogger,
	})

	var notifService *service.NotificationService
	if natsSub != nil {
		notifService = service.NewNotificationService(natsSub, wsHub, wsLogger)
	}
	notifHandler := handler.NewNotificationHandler(wsHub, cfg.Auth.JwtSecret, wsLogger)

	// 5. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		OAuthController:    controller.NewOAuthController(authService, cfg.App.FrontendURL, cfg.IsProduction(), sysLogger),
		UserController:     controller.NewUserController(userService),
		PlaylistController: controller.NewPlaylistController(playlistService),
		VideoController:    controller.NewVideoController(videoService),
		BadgeController:    controller.NewBadgeController(badgeService),
		AuthMiddleware:     serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret),

		ConsumerService:     consumerService,
		NotificationService: notifService,
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		Logger:              sysLogger,

		pubSub:  pubSub,
		natsPub: natsPub,
		natsSub: natsSub,
		rdb:     rdb,
	}
}

var (
	newNatsPublisher  = pktNats.NewPublisher
	newNatsSubscriber = pktNats.NewSubscriber
)

// connectNats returns both sides or neither, so published events always have a consumer.
func connectNats(url string, log logger.ILogger) (*pktNats.Publisher, *pktNats.Subscriber) {
	pub, err := newNatsPublisher(url, log)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		return nil, nil
	}
	sub, err := newNatsSubscriber(url, log)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to NATS Subscriber, falling back to direct delivery", map[string]interface{}{"error": err.Error()})
		pub.Close()
		return nil, nil
	}
	return pub, sub
}

// Start launches the hub and the background consumers. They stop with ctx.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}

	if c.NotificationService != nil {
		if err := c.NotificationService.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if err := c.pubSub.Close(); err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to close event bus", map[string]interface{}{"error": err.Error()})
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}
