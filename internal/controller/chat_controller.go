package controller

import (
	"dating-app-be/internal/apperror"
	"dating-app-be/internal/dto"
	"dating-app-be/internal/pkg/serverutils"
	"dating-app-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	MyRooms(ctx *fiber.Ctx) error
	CreateRoom(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("rooms", c.MyRooms)
	h.Post("rooms", c.CreateRoom)
	h.Get("rooms/:roomId/messages", c.Messages)
	h.Post("rooms/:roomId/messages", c.SendMessage)
}

func (c *chatController) MyRooms(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.GetMyChatRooms(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *chatController) CreateRoom(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	matchId := uint(ctx.QueryInt("matchId"))
	if matchId == 0 {
		return apperror.BadRequest(apperror.CodeInvalidInput, "matchId is required")
	}

	res, err := c.chatService.CreateChatRoom(ctx.Context(), userId, matchId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	roomId, err := parseUintParam(ctx, "roomId")
	if err != nil {
		return err
	}

	var req dto.ChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), userId, roomId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res))
}

func (c *chatController) Messages(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	roomId, err := parseUintParam(ctx, "roomId")
	if err != nil {
		return err
	}

	page := dto.PageRequest{
		Page: ctx.QueryInt("page", 0),
		Size: ctx.QueryInt("size", 20),
		Sort: ctx.Query("sort"),
		Desc: ctx.Query("order", "desc") != "asc",
	}

	res, err := c.chatService.GetMessages(ctx.Context(), userId, roomId, page)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}
