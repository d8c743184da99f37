// FILE: internal/controller/user_controller.go
package controller

import (
	"net/url"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/pkg/serverutils"
	"learnloop-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	AddCategory(ctx *fiber.Ctx) error
	GetCategories(ctx *fiber.Ctx) error
	UpdateCategory(ctx *fiber.Ctx) error
	DeleteCategory(ctx *fiber.Ctx) error
	GetDailyGoal(ctx *fiber.Ctx) error
	SetDailyGoal(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/user", auth)
	h.Post("/category", c.AddCategory)
	h.Get("/categories", c.GetCategories)
	h.Put("/category", c.UpdateCategory)
	h.Delete("/category/:categoryName", c.DeleteCategory)
	h.Get("/daily-goal", c.GetDailyGoal)
	h.Post("/daily-goal", c.SetDailyGoal)
}

func (c *userController) AddCategory(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.AddCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.AddCategory(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Category added", res))
}

func (c *userController) GetCategories(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.GetCategories(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get categories", res))
}

func (c *userController) UpdateCategory(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateCategory(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Category updated", res))
}

func (c *userController) DeleteCategory(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	req := dto.DeleteCategoryRequest{
		Category:                  ctx.Params("categoryName"),
		DeleteAssociatedPlaylists: ctx.QueryBool("deleteAssociatedPlaylists", false),
	}
	// route params arrive percent-encoded
	if decoded, err := url.PathUnescape(req.Category); err == nil {
		req.Category = decoded
	}

	res, err := c.userService.DeleteCategory(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Category deleted", res))
}

func (c *userController) GetDailyGoal(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.GetDailyGoal(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get daily goal", res))
}

func (c *userController) SetDailyGoal(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.DailyGoalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.SetDailyGoal(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Daily goal updated", res))
}
