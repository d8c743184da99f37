package controller

import (
	"learnloop-be/internal/dto"
	"learnloop-be/internal/pkg/serverutils"
	"learnloop-be/internal/service"
	"learnloop-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVideoController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
}

type videoController struct {
	videoService service.IVideoService
}

func NewVideoController(videoService service.IVideoService) IVideoController {
	return &videoController{
		videoService: videoService,
	}
}

func (c *videoController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/video", auth)
	h.Get("/pinned", c.Pinned)
	h.Get("/rewatch", c.Rewatch)
	h.Get("/search/tags", c.SearchByTags)
	h.Get("/search/notes", c.SearchNotes)

	h.Get("/:id", c.Show)
	h.Patch("/:id/status", c.UpdateStatus)
	h.Patch("/:id/note", c.UpdateNote)
	h.Patch("/:id/time", c.UpdateTime)
	h.Patch("/:id/ai-summary", c.UpdateSummary)
	h.Post("/:id/summary-to-note", c.SummaryToNote)
	h.Post("/:id/generate-summary", c.GenerateSummary)

	h.Get("/:id/tags", c.GetTags)
	h.Post("/:id/tags", c.AddTags)
	h.Delete("/:id/tags", c.RemoveTags)
	h.Patch("/:id/tags", c.ReplaceTags)

	h.Get("/:id/resources", c.GetResources)
	h.Post("/:id/resources", c.AddResource)
	h.Delete("/:id/resources/:resourceId", c.RemoveResource)

	h.Delete("/:id/remove-from-playlist", c.RemoveFromPlaylist)
}

// target resolves the caller and the :id video of the route.
func (c *videoController) target(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userId, id, nil
}

func (c *videoController) Pinned(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.Pinned(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get pinned videos", res))
}

func (c *videoController) Rewatch(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.Rewatch(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get rewatch videos", res))
}

func (c *videoController) SearchByTags(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.SearchByTags(ctx.UserContext(), userId, utils.SplitCSV(ctx.Query("tags")))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search videos", res))
}

func (c *videoController) SearchNotes(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.SearchNotes(ctx.UserContext(), userId, ctx.Query("query"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search notes", res))
}

func (c *videoController) Show(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get video", res))
}

func (c *videoController) UpdateStatus(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.videoService.UpdateStatus(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Video status updated", res))
}

func (c *videoController) UpdateNote(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.videoService.UpdateNote(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Note updated", res))
}

func (c *videoController) UpdateTime(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateTimeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.videoService.UpdateTime(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Time spent updated", res))
}

func (c *videoController) UpdateSummary(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.videoService.UpdateSummary(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Summary updated", res))
}

func (c *videoController) SummaryToNote(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.SummaryToNote(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Summary copied to notes", res))
}

func (c *videoController) GenerateSummary(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.GenerateSummary(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Summary generated", res))
}

func (c *videoController) tagsRequest(ctx *fiber.Ctx) (uuid.UUID, *dto.TagsRequest, error) {
	userId, id, err := c.target(ctx)
	if err != nil {
		return uuid.Nil, nil, err
	}

	var req dto.TagsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return uuid.Nil, nil, err
	}
	return userId, &req, nil
}

func (c *videoController) GetTags(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.GetTags(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get tags", res))
}

func (c *videoController) AddTags(ctx *fiber.Ctx) error {
	userId, req, err := c.tagsRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.AddTags(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Tags added", res))
}

func (c *videoController) RemoveTags(ctx *fiber.Ctx) error {
	userId, req, err := c.tagsRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.RemoveTags(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Tags removed", res))
}

func (c *videoController) ReplaceTags(ctx *fiber.Ctx) error {
	userId, req, err := c.tagsRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.ReplaceTags(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Tags updated", res))
}

func (c *videoController) GetResources(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.GetResources(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get resources", res))
}

func (c *videoController) AddResource(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	var req dto.AddResourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.videoService.AddResource(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Resource added", res))
}

func (c *videoController) RemoveResource(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}
	resourceId, err := paramUUID(ctx, "resourceId")
	if err != nil {
		return err
	}

	res, err := c.videoService.RemoveResource(ctx.UserContext(), userId, id, resourceId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Resource removed", res))
}

func (c *videoController) RemoveFromPlaylist(ctx *fiber.Ctx) error {
	userId, id, err := c.target(ctx)
	if err != nil {
		return err
	}

	res, err := c.videoService.RemoveFromPlaylist(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Video removed from playlist", res))
}
