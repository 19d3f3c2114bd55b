package bootstrap

import (
	"context"
	"log"
	"strings"

	"pumphouse-kiosk-be/internal/config"
	"pumphouse-kiosk-be/internal/controller"
	"pumphouse-kiosk-be/internal/handler"
	"pumphouse-kiosk-be/internal/pkg/logger"
	"pumphouse-kiosk-be/internal/pkg/mailer"
	"pumphouse-kiosk-be/internal/repository/memory"
	"pumphouse-kiosk-be/internal/repository/unitofwork"
	"pumphouse-kiosk-be/internal/service"
	"pumphouse-kiosk-be/internal/websocket"
	"pumphouse-kiosk-be/pkg/camera"
	"pumphouse-kiosk-be/pkg/events"
	"pumphouse-kiosk-be/pkg/kiosk"

	pkgNats "pumphouse-kiosk-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const busTopic = "kiosk.events"

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ConfigController  controller.IConfigController
	HotspotController controller.IHotspotController
	EditorController  controller.IEditorController
	SceneController   controller.ISceneController
	AdminController   controller.IAdminController

	// WebSocket frame stream
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub

	// Background loops (exposed for main.go to run)
	ConsumerService service.IConsumerService
	SceneService    service.ISceneService
	Animator        *camera.Animator
	Monitor         *kiosk.Monitor

	Config *config.Config
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	alertMailer := mailer.NewAlertMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.SMTP.OpsEmail,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure. NATS and Redis are best-effort: a standalone
	// kiosk without the museum backbone still has to boot.
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL, cfg.App.KioskID)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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

	// WebSocket hub, fed by the animator and the consumer
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Kiosk runtime
	animator := camera.NewAnimator(camera.Pose{}, wsHub, cfg.Kiosk.FrameTick)
	monitor := kiosk.NewMonitor(cfg.Kiosk.IdleTimeout)
	draftRepo := memory.NewDraftRepository()

	// 5. Services
	publisherService := service.NewPublisherService(busTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		busTopic,
		natsPub,
		wsHub,
		alertMailer,
		sysLogger,
		cfg.Kiosk.AlertThreshold,
		cfg.Kiosk.AlertWindow,
	)

	authService := service.NewAuthService(uowFactory)
	configService := service.NewConfigService(uowFactory, publisherService)
	hotspotService := service.NewHotspotService(uowFactory, publisherService, sysLogger, cfg.Kiosk.DefaultLanguage)
	sceneService := service.NewSceneService(uowFactory, publisherService, sysLogger, animator, monitor, cfg.Kiosk)
	editorService := service.NewEditorService(uowFactory, draftRepo, publisherService, sysLogger, cfg.Kiosk)
	adminService := service.NewAdminService(uowFactory, sysLogger, monitor)

	// Config activation reaches the scene through the bus, so it works the
	// same whether the activation came from REST or from the CMS.
	consumerService.SetConfigListener(sceneService.ReloadActiveConfig)

	// 6. CMS control channel
	if natsSub != nil {
		subject := "kiosk.control." + cfg.App.KioskID + ".>"
		durable := "kiosk-control-" + cfg.App.KioskID
		err := natsSub.Subscribe(subject, durable, func(ctx context.Context, event events.Event) error {
			switch {
			case strings.HasSuffix(event.EventType(), ".reload_config"):
				return sceneService.ReloadActiveConfig(ctx)
			case strings.HasSuffix(event.EventType(), ".force_idle"):
				sceneService.ForceIdle()
				return nil
			default:
				sysLogger.Warn("Bootstrap", "Unknown control command", map[string]interface{}{
					"subject": event.EventType(),
				})
				return nil
			}
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to control channel: %v", err)
		}
	}

	// 7. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		ConfigController:  controller.NewConfigController(configService),
		HotspotController: controller.NewHotspotController(hotspotService),
		EditorController:  controller.NewEditorController(editorService, configService),
		SceneController:   controller.NewSceneController(sceneService),
		AdminController:   controller.NewAdminController(adminService),

		StreamHandler: handler.NewStreamHandler(wsHub, wsLogger),
		WebSocketHub:  wsHub,

		ConsumerService: consumerService,
		SceneService:    sceneService,
		Animator:        animator,
		Monitor:         monitor,

		Config: cfg,
	}
}
