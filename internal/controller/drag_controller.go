package controller

import (
	"bookmark-reorder-be/internal/dto"
	"bookmark-reorder-be/internal/pkg/serverutils"
	"bookmark-reorder-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDragController interface {
	RegisterRoutes(r fiber.Router)
	Begin(ctx *fiber.Ctx) error
	Pointer(ctx *fiber.Ctx) error
	Hover(ctx *fiber.Ctx) error
	Leave(ctx *fiber.Ctx) error
	Drop(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
}

type dragController struct {
	service service.IDragService
}

func NewDragController(service service.IDragService) IDragController {
	return &dragController{service: service}
}

func (c *dragController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/drag/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/begin", c.Begin)
	h.Post("/pointer", c.Pointer)
	h.Post("/hover", c.Hover)
	h.Post("/leave", c.Leave)
	h.Post("/drop", c.Drop)
	h.Post("/cancel", c.Cancel)
	h.Get("/state", c.State)
}

func (c *dragController) Begin(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.BeginDragRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Begin(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start drag session", res))
}

func (c *dragController) Pointer(ctx *fiber.Ctx) error {
	var req dto.PointerSampleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Pointer(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success track pointer", res))
}

func (c *dragController) Hover(ctx *fiber.Ctx) error {
	var req dto.HoverRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Hover(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve insertion point", res))
}

func (c *dragController) Leave(ctx *fiber.Ctx) error {
	var req dto.LeaveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Leave(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success leave zone", res))
}

func (c *dragController) Drop(ctx *fiber.Ctx) error {
	res, err := c.service.Drop(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success drop", res))
}

func (c *dragController) Cancel(ctx *fiber.Ctx) error {
	res, err := c.service.Cancel()
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel drag session", res))
}

func (c *dragController) State(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get drag state", c.service.State()))
}
