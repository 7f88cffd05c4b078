package bootstrap

import (
	"context"
	"log"

	"babyname-be/internal/config"
	"babyname-be/internal/controller"
	"babyname-be/internal/handler"
	"babyname-be/internal/pkg/logger"
	"babyname-be/internal/repository/contract"
	"babyname-be/internal/repository/implementation"
	"babyname-be/internal/repository/local"
	"babyname-be/internal/repository/memory"
	"babyname-be/internal/service"
	"babyname-be/internal/websocket"
	"babyname-be/pkg/llm/factory"
	"babyname-be/pkg/wiki"

	pkgNats "babyname-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	FavoriteController  controller.IFavoriteController
	GeneratorController controller.IGeneratorController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	UpdatesHandler *handler.UpdatesHandler
	WebSocketHub   *websocket.Hub
}

// NewContainer wires the whole application. db may be nil when the remote
// store could not be reached; favorites then live in the local cache from the
// first request on.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/updates.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Persistence
	// The probe runs once at startup; a failed probe means no optional column
	// can be trusted, inserts carry mandatory fields only.
	var remoteRepo contract.FavoriteRepository
	if db != nil {
		caps, err := implementation.NewSchemaProber(db).Probe(context.Background())
		if err != nil {
			log.Printf("[WARN] Schema probe failed, assuming mandatory columns only: %v", err)
			caps = contract.Capabilities{}
		}
		remoteRepo = implementation.NewFavoriteRepository(db, caps)
	}

	localRepo, err := local.NewFileRepository(cfg.App.LocalCachePath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open local favorites cache: %v", err)
	}

	fallback := service.NewFallbackController(remoteRepo, localRepo, sysLogger)
	if db == nil {
		fallback.Engage("remote store unreachable at startup", nil)
	}

	// 4. Collaborators
	llmProvider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.NamesModel,
		cfg.Ai.OpenAIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s / %s)", cfg.Ai.Provider, cfg.Ai.NamesModel, cfg.Ai.ProseModel)

	var wikiClient *wiki.Client
	if cfg.Wiki.Enabled {
		wikiClient = wiki.NewClient(cfg.Wiki.BaseURL)
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EnrichTopic, pubSub)
	favoriteService := service.NewFavoriteService(fallback, publisherService, natsPub, sysLogger)

	viewRepo := memory.NewViewRepository()
	viewService := service.NewViewService(viewRepo, favoriteService, sysLogger)

	generatorService := service.NewGeneratorService(
		llmProvider,
		wikiClient,
		cfg.Ai.NamesModel,
		cfg.Ai.ProseModel,
		cfg.Ai.NameCount,
		sysLogger,
	)
	descriptionService := service.NewDescriptionService(favoriteService, generatorService, rdb, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EnrichTopic,
		descriptionService,
		viewService,
		wsHub,
		natsPub,
	)

	updatesHandler := handler.NewUpdatesHandler(wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		FavoriteController:  controller.NewFavoriteController(favoriteService, descriptionService, viewService),
		GeneratorController: controller.NewGeneratorController(generatorService),

		ConsumerService: consumerService,

		UpdatesHandler: updatesHandler,
		WebSocketHub:   wsHub,
	}
}
