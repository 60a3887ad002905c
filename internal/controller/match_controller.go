package controller

import (
	"dating-app-be/internal/pkg/serverutils"
	"dating-app-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMatchController interface {
	RegisterRoutes(r fiber.Router)
	Candidates(ctx *fiber.Ctx) error
	Like(ctx *fiber.Ctx) error
	Pass(ctx *fiber.Ctx) error
	MyMatches(ctx *fiber.Ctx) error
}

type matchController struct {
	matchService service.IMatchService
}

func NewMatchController(matchService service.IMatchService) IMatchController {
	return &matchController{
		matchService: matchService,
	}
}

func (c *matchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/match/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.MyMatches)
	h.Get("candidates", c.Candidates)
	h.Post(":profileId/like", c.Like)
	h.Post(":profileId/pass", c.Pass)
}

func (c *matchController) Candidates(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.matchService.GetCandidates(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *matchController) Like(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	targetProfileId, err := parseUintParam(ctx, "profileId")
	if err != nil {
		return err
	}

	res, err := c.matchService.Like(ctx.Context(), userId, targetProfileId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res))
}

func (c *matchController) Pass(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	targetProfileId, err := parseUintParam(ctx, "profileId")
	if err != nil {
		return err
	}

	res, err := c.matchService.Pass(ctx.Context(), userId, targetProfileId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res))
}

func (c *matchController) MyMatches(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.matchService.GetMyMatches(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}
