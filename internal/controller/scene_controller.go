package controller

import (
	"pumphouse-kiosk-be/internal/dto"
	"pumphouse-kiosk-be/internal/pkg/serverutils"
	"pumphouse-kiosk-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ISceneController exposes the visitor-facing runtime surface. None of it
// requires auth; these routes are what the touch screen itself calls.
type ISceneController interface {
	RegisterRoutes(r fiber.Router)
	Tap(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	Deselect(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
	Touch(ctx *fiber.Ctx) error
}

type sceneController struct {
	sceneService service.ISceneService
}

func NewSceneController(sceneService service.ISceneService) ISceneController {
	return &sceneController{
		sceneService: sceneService,
	}
}

func (c *sceneController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/scene/v1")
	h.Post("tap", c.Tap)
	h.Post("select/:id", c.Select)
	h.Post("deselect", c.Deselect)
	h.Get("state", c.State)
	h.Post("touch", c.Touch)
}

func (c *sceneController) Tap(ctx *fiber.Ctx) error {
	var req dto.TapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sceneService.Tap(ctx.Context(), &req, ctx.Query("lang"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tap resolved", res))
}

func (c *sceneController) Select(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid hotspot id")
	}

	res, err := c.sceneService.Select(ctx.Context(), id, ctx.Query("lang"))
	if err != nil {
		return err
	}
	if res == nil {
		return serverutils.ErrNotFound
	}
	return ctx.JSON(serverutils.SuccessResponse("Hotspot selected", res))
}

func (c *sceneController) Deselect(ctx *fiber.Ctx) error {
	if err := c.sceneService.Deselect(ctx.Context()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Selection cleared", nil))
}

func (c *sceneController) State(ctx *fiber.Ctx) error {
	res, err := c.sceneService.State(ctx.Context(), ctx.Query("lang"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Scene state", res))
}

// Touch is the activity heartbeat for input that doesn't hit any other
// endpoint, e.g. pinch-zoom gestures handled entirely in the renderer.
func (c *sceneController) Touch(ctx *fiber.Ctx) error {
	c.sceneService.Touch()
	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}
