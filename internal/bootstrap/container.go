package bootstrap

import (
	"context"
	"log"
	"time"

	"dating-app-be/internal/config"
	"dating-app-be/internal/controller"
	"dating-app-be/internal/pkg/logger"
	"dating-app-be/internal/pkg/mailer"
	"dating-app-be/internal/pkg/push"
	"dating-app-be/internal/pkg/serverutils"
	"dating-app-be/internal/repository/memory"
	"dating-app-be/internal/repository/redisstore"
	"dating-app-be/internal/repository/unitofwork"
	"dating-app-be/internal/service"
	"dating-app-be/internal/websocket"
	"dating-app-be/pkg/events"

	pktNats "dating-app-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const chatFanoutTopic = "chat.room.messages"

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	ProfileController      controller.IProfileController
	MatchController        controller.IMatchController
	ChatController         controller.IChatController
	NotificationController controller.INotificationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
	ChatService  service.IChatService

	// Shared facades
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	serverutils.SetJwtSecret(cfg.Auth.JwtSecret)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

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
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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

	refreshTokenStore := redisstore.NewRefreshTokenStore(
		rdb,
		time.Duration(cfg.Auth.RefreshTokenTTLDays)*24*time.Hour,
	)
	accessCache := memory.NewAccessCache()

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Push
	pushSender := push.NewFcmClient(cfg.Push.FcmEndpoint, cfg.Push.FcmServerKey)

	// 3. Services
	publisherService := service.NewPublisherService(chatFanoutTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, chatFanoutTopic, wsHub, sysLogger)

	authService := service.NewAuthService(uowFactory, refreshTokenStore, emailService, cfg.Auth)
	profileService := service.NewProfileService(uowFactory)
	matchService := service.NewMatchService(uowFactory, natsPub, sysLogger)
	chatService := service.NewChatService(uowFactory, accessCache, publisherService, natsPub, sysLogger)
	notificationService := service.NewNotificationService(uowFactory, pushSender, sysLogger)

	// Event consumers (push delivery)
	if natsSub != nil {
		if err := natsSub.Subscribe("events."+events.TypeMatchConfirmed, "notif-match-confirmed", notificationService.HandleMatchConfirmed); err != nil {
			log.Printf("[WARN] Failed to subscribe to match events: %v", err)
		}
		if err := natsSub.Subscribe("events."+events.TypeChatMessageSent, "notif-chat-message", notificationService.HandleChatMessageSent); err != nil {
			log.Printf("[WARN] Failed to subscribe to chat events: %v", err)
		}
	}

	// 4. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		ProfileController:      controller.NewProfileController(profileService),
		MatchController:        controller.NewMatchController(matchService),
		ChatController:         controller.NewChatController(chatService),
		NotificationController: controller.NewNotificationController(notificationService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		ChatService:     chatService,
		Logger:          sysLogger,
	}
}
