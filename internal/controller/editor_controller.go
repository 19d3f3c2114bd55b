package controller

import (
	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/pkg/serverutils"
	"pumphouse-kiosk-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEditorController interface {
	RegisterRoutes(r fiber.Router)
	OpenDraft(ctx *fiber.Ctx) error
	AddVertex(ctx *fiber.Ctx) error
	DiscardDraft(ctx *fiber.Ctx) error
	CommitDraft(ctx *fiber.Ctx) error
	DragVertex(ctx *fiber.Ctx) error
	InsertMidpoint(ctx *fiber.Ctx) error
	DeleteVertex(ctx *fiber.Ctx) error
}

type editorController struct {
	editorService service.IEditorService
	configService service.IConfigService
}

func NewEditorController(editorService service.IEditorService, configService service.IConfigService) IEditorController {
	return &editorController{
		editorService: editorService,
		configService: configService,
	}
}

func (c *editorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("draft", c.OpenDraft)
	h.Post("draft/:id/vertex", c.AddVertex)
	h.Delete("draft/:id", c.DiscardDraft)
	h.Post("draft/:id/commit", c.CommitDraft)
	h.Put("hotspot/:id/vertex/:index", c.DragVertex)
	h.Post("hotspot/:id/vertex/:index/midpoint", c.InsertMidpoint)
	h.Delete("hotspot/:id/vertex/:index", c.DeleteVertex)
}

func (c *editorController) OpenDraft(ctx *fiber.Ctx) error {
	var req dto.OpenDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	// Drafts capture the aspect ratio at open time so the closing gesture
	// stays consistent even if a config swap lands mid-drawing.
	aspect := 16.0 / 9.0
	if active, err := c.configService.GetActive(ctx.Context()); err == nil && active != nil {
		aspect = active.AspectRatio()
	}

	res, err := c.editorService.OpenDraft(ctx.Context(), &req, aspect)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Draft opened", res))
}

func (c *editorController) AddVertex(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid draft id")
	}

	var req dto.AddVertexRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.editorService.AddVertex(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Vertex added", res))
}

func (c *editorController) DiscardDraft(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid draft id")
	}

	if err := c.editorService.DiscardDraft(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Draft discarded", nil))
}

func (c *editorController) CommitDraft(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid draft id")
	}

	var req dto.CloseDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.editorService.CommitDraft(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Draft committed", res))
}

func (c *editorController) DragVertex(ctx *fiber.Ctx) error {
	req, err := c.vertexOpRequest(ctx)
	if err != nil {
		return err
	}
	if err := ctx.BodyParser(req); err != nil {
		return err
	}

	res, err := c.editorService.DragVertex(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Vertex moved", res))
}

func (c *editorController) InsertMidpoint(ctx *fiber.Ctx) error {
	req, err := c.vertexOpRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.editorService.InsertMidpoint(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Midpoint inserted", res))
}

func (c *editorController) DeleteVertex(ctx *fiber.Ctx) error {
	req, err := c.vertexOpRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.editorService.DeleteVertex(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Vertex deleted", res))
}

func (c *editorController) vertexOpRequest(ctx *fiber.Ctx) (*dto.VertexOpRequest, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid hotspot id")
	}
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid vertex index")
	}
	return &dto.VertexOpRequest{HotspotId: id, Index: index}, nil
}
