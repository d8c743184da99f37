package controller

import (
	"learnloop-be/internal/pkg/serverutils"
	"learnloop-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBadgeController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	MyBadges(ctx *fiber.Ctx) error
	All(ctx *fiber.Ctx) error
	Check(ctx *fiber.Ctx) error
	CleanupDuplicates(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
}

type badgeController struct {
	badgeService service.IBadgeService
}

func NewBadgeController(badgeService service.IBadgeService) IBadgeController {
	return &badgeController{
		badgeService: badgeService,
	}
}

func (c *badgeController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/badge", auth)
	h.Get("/my-badges", c.MyBadges)
	h.Get("/all", c.All)
	h.Post("/check-badges", c.Check)
	h.Post("/cleanup-duplicates", c.CleanupDuplicates)
	h.Post("/sync", c.Sync)
}

func (c *badgeController) MyBadges(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.badgeService.GetMyBadges(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get badges", res))
}

func (c *badgeController) All(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get badge catalog", c.badgeService.GetAllBadges(ctx.UserContext())))
}

func (c *badgeController) Check(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.badgeService.CheckBadges(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *badgeController) CleanupDuplicates(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.badgeService.CleanupDuplicates(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *badgeController) Sync(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.badgeService.SyncBadges(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}
