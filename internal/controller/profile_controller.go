package controller

import (
	"strconv"

	"dating-app-be/internal/apperror"
	"dating-app-be/internal/dto"
	"dating-app-be/internal/pkg/serverutils"
	"dating-app-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ShowMine(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	UpdateImages(ctx *fiber.Ctx) error
	UpdateInterests(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("me", c.ShowMine)
	h.Put("me", c.Update)
	h.Put("me/images", c.UpdateImages)
	h.Put("me/interests", c.UpdateInterests)
	h.Get(":id", c.Show)
}

func (c *profileController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.CreateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res))
}

func (c *profileController) ShowMine(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.profileService.GetMyProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *profileController) Show(ctx *fiber.Ctx) error {
	profileId, err := parseUintParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.profileService.GetProfile(ctx.Context(), profileId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *profileController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *profileController) UpdateImages(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateImagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.UpdateImages(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *profileController) UpdateInterests(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateInterestsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.UpdateInterests(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func parseUintParam(ctx *fiber.Ctx, name string) (uint, error) {
	raw := ctx.Params(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, apperror.BadRequest(apperror.CodeInvalidInput, "Invalid "+name)
	}
	return uint(value), nil
}
