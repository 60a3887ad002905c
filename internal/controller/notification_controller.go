package controller

import (
	"dating-app-be/internal/apperror"
	"dating-app-be/internal/dto"
	"dating-app-be/internal/pkg/serverutils"
	"dating-app-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	RegisterToken(ctx *fiber.Ctx) error
	DeleteToken(ctx *fiber.Ctx) error
	SendTest(ctx *fiber.Ctx) error
}

type notificationController struct {
	notificationService service.INotificationService
}

func NewNotificationController(notificationService service.INotificationService) INotificationController {
	return &notificationController{
		notificationService: notificationService,
	}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notification/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("tokens", c.RegisterToken)
	h.Delete("tokens/:token", c.DeleteToken)
	h.Post("test", c.SendTest)
}

func (c *notificationController) RegisterToken(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.FcmTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.notificationService.RegisterToken(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Token registered"))
}

func (c *notificationController) DeleteToken(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	token := ctx.Params("token")
	if token == "" {
		return apperror.BadRequest(apperror.CodeInvalidFcmToken, "Token is required")
	}

	if err := c.notificationService.DeleteToken(ctx.Context(), userId, token); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Token deleted"))
}

// SendTest lets a logged-in user push to their own devices, mainly for
// verifying FCM wiring from a client build.
func (c *notificationController) SendTest(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.NotificationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.notificationService.SendToUser(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Notification sent"))
}
