package bootstrap

import (
	"context"
	"log"
	"time"

	"bookmark-reorder-be/internal/config"
	"bookmark-reorder-be/internal/controller"
	"bookmark-reorder-be/internal/handler"
	"bookmark-reorder-be/internal/pkg/logger"
	"bookmark-reorder-be/internal/repository/memory"
	"bookmark-reorder-be/internal/repository/unitofwork"
	"bookmark-reorder-be/internal/service"
	"bookmark-reorder-be/internal/websocket"
	"bookmark-reorder-be/pkg/reorder"

	pktNats "bookmark-reorder-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	BookmarkController controller.IBookmarkController
	DragController     controller.IDragController

	// Background Services (Exposed for main.go to run)
	TelemetryService service.ITelemetryService

	// WebSockets
	DragGatewayHandler *handler.DragGatewayHandler
	WebSocketHub       *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
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
	wsLogger := logger.NewIsolatedLogger("logs/drag_gateway.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Reorder Engine
	sink := service.NewTelemetrySink(pubSub, cfg.Drag.TelemetryTopic, sysLogger)
	store := service.NewBookmarkStore(uowFactory)
	model := reorder.NewCollection()
	executor := reorder.NewExecutor(model, store, sink)
	dragController := reorder.NewController(model, executor, sink,
		reorder.WithThreshold(cfg.Drag.ThresholdPx),
	)

	geometryRepo := memory.NewGeometryRepository(time.Duration(cfg.Drag.GeometryTTLSeconds) * time.Second)

	// 4. Services
	telemetryService := service.NewTelemetryService(pubSub, cfg.Drag.TelemetryTopic, natsPub, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.App.JwtSecret, sysLogger)
	bookmarkService := service.NewBookmarkService(uowFactory, store, sysLogger)
	dragService := service.NewDragService(store, model, dragController, geometryRepo, sysLogger)

	dragGateway := handler.NewDragGatewayHandler(dragService, wsHub, wsLogger)

	return &Container{
		AuthController:     controller.NewAuthController(authService),
		BookmarkController: controller.NewBookmarkController(bookmarkService),
		DragController:     controller.NewDragController(dragService),

		TelemetryService: telemetryService,

		DragGatewayHandler: dragGateway,
		WebSocketHub:       wsHub,
	}
}
