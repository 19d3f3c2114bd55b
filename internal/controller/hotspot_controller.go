package controller

import (
	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/pkg/serverutils"
	"pumphouse-kiosk-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHotspotController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	SetViewpoint(ctx *fiber.Ctx) error
}

type hotspotController struct {
	hotspotService service.IHotspotService
}

func NewHotspotController(hotspotService service.IHotspotService) IHotspotController {
	return &hotspotController{
		hotspotService: hotspotService,
	}
}

func (c *hotspotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/hotspot/v1")
	// The list endpoint is visitor-facing; everything else is admin mode.
	h.Get("", c.GetAll)
	h.Post("", serverutils.JwtMiddleware, c.Create)
	h.Get(":id", serverutils.JwtMiddleware, c.Show)
	h.Put(":id", serverutils.JwtMiddleware, c.Update)
	h.Delete(":id", serverutils.JwtMiddleware, c.Delete)
	h.Put(":id/viewpoint", serverutils.JwtMiddleware, c.SetViewpoint)
}

func (c *hotspotController) GetAll(ctx *fiber.Ctx) error {
	lang := ctx.Query("lang")
	includeInactive := ctx.QueryBool("include_inactive", false)

	res, err := c.hotspotService.GetAll(ctx.Context(), lang, includeInactive)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get hotspots", res))
}

func (c *hotspotController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid hotspot id")
	}

	res, err := c.hotspotService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get hotspot", res))
}

func (c *hotspotController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateHotspotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.hotspotService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create hotspot", res))
}

func (c *hotspotController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid hotspot id")
	}

	var req dto.UpdateHotspotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.hotspotService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update hotspot", res))
}

func (c *hotspotController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid hotspot id")
	}

	if err := c.hotspotService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete hotspot", nil))
}

// SetViewpoint stores the current camera pose as the hotspot's target view.
func (c *hotspotController) SetViewpoint(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid hotspot id")
	}

	var req dto.SetViewpointRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.hotspotService.SetViewpoint(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success set viewpoint", nil))
}
