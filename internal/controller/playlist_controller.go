package controller

import (
	"learnloop-be/internal/dto"
	"learnloop-be/internal/pkg/serverutils"
	"learnloop-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlaylistController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Add(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddVideo(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	ChangeCategory(ctx *fiber.Ctx) error
	Reorder(ctx *fiber.Ctx) error
	TogglePin(ctx *fiber.Ctx) error
}

type playlistController struct {
	playlistService service.IPlaylistService
}

func NewPlaylistController(playlistService service.IPlaylistService) IPlaylistController {
	return &playlistController{
		playlistService: playlistService,
	}
}

func (c *playlistController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/playlist", auth)
	h.Post("/add", c.Add)
	h.Get("", c.List)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/add-video", c.AddVideo)
	h.Post("/:id/sync", c.Sync)
	h.Post("/:id/reset", c.Reset)
	h.Patch("/:id/category", c.ChangeCategory)
	h.Patch("/:id/reorder", c.Reorder)
	h.Patch("/:id/toggle-pin-video/:videoId", c.TogglePin)
}

func (c *playlistController) Add(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.AddPlaylistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.playlistService.Add(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Playlist added", res))
}

func (c *playlistController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.playlistService.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get playlists", res))
}

func (c *playlistController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.playlistService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get playlist", res))
}

func (c *playlistController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.playlistService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Playlist deleted successfully", nil))
}

func (c *playlistController) AddVideo(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AddVideoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.PlaylistId = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.playlistService.AddVideo(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Video added", res))
}

func (c *playlistController) Sync(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.playlistService.Sync(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Playlist synced", res))
}

func (c *playlistController) Reset(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.playlistService.Reset(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Playlist progress reset", res))
}

func (c *playlistController) ChangeCategory(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.ChangeCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.PlaylistId = id

	res, err := c.playlistService.ChangeCategory(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Playlist category updated", res))
}

func (c *playlistController) Reorder(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.ReorderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.PlaylistId = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.playlistService.Reorder(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Playlist reordered", res))
}

func (c *playlistController) TogglePin(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	videoId, err := paramUUID(ctx, "videoId")
	if err != nil {
		return err
	}

	res, err := c.playlistService.TogglePin(ctx.UserContext(), userId, id, videoId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Pin toggled", res))
}
