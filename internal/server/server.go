package server

import (
	"log"
	"strconv"

	"dating-app-be/internal/apperror"
	"dating-app-be/internal/bootstrap"
	"dating-app-be/internal/config"
	"dating-app-be/internal/pkg/logger"
	"dating-app-be/internal/pkg/serverutils"
	wsocket "dating-app-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberws "github.com/gofiber/websocket/v2"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container, sysLogger logger.ILogger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(sysLogger))

	// Routes
	registerRoutes(app, container)
	registerWebSocket(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.ProfileController.RegisterRoutes(api)
	c.MatchController.RegisterRoutes(api)
	c.ChatController.RegisterRoutes(api)
	c.NotificationController.RegisterRoutes(api)
}

// registerWebSocket mounts the realtime chat endpoint. Identity and room
// membership are verified before the upgrade; the connection then only ever
// sees its own room.
func registerWebSocket(app *fiber.App, c *bootstrap.Container) {
	app.Get("/ws/chat/:roomId", func(ctx *fiber.Ctx) error {
		if !fiberws.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}

		tokenStr := ctx.Query("token")
		if tokenStr == "" {
			authHeader := ctx.Get("Authorization")
			if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
				tokenStr = authHeader[7:]
			}
		}
		if tokenStr == "" {
			return apperror.Unauthorized(apperror.CodeUnauthorized, "Missing token")
		}

		userId, err := serverutils.ParseUserIdFromToken(tokenStr)
		if err != nil {
			return err
		}

		rawRoomId, err := strconv.ParseUint(ctx.Params("roomId"), 10, 64)
		if err != nil || rawRoomId == 0 {
			return apperror.BadRequest(apperror.CodeInvalidInput, "Invalid roomId")
		}
		roomId := uint(rawRoomId)

		if err := c.ChatService.CanAccessRoom(ctx.Context(), userId, roomId); err != nil {
			return err
		}

		ctx.Locals("user_id", userId)
		ctx.Locals("room_id", roomId)
		return ctx.Next()
	}, fiberws.New(func(conn *fiberws.Conn) {
		userId := conn.Locals("user_id").(uint)
		roomId := conn.Locals("room_id").(uint)
		wsocket.ServeWs(c.WebSocketHub, conn, userId, roomId, c.ChatService)
	}))
}
