package serverutils

import (
	"errors"

	"bookmark-reorder-be/pkg/reorder"

	"github.com/gofiber/fiber/v2"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrorHandlerMiddleware maps domain errors to HTTP statuses so controllers
// can simply return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var validationErr *reorder.ValidationError
		var concurrencyErr *reorder.ConcurrencyError
		var storeErr *reorder.StoreError
		var stateErr *reorder.StateError
		var cancelledErr *reorder.CancelledError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &validationErr):
			status = fiber.StatusBadRequest
		case errors.As(err, &concurrencyErr):
			status = fiber.StatusConflict
		case errors.As(err, &stateErr):
			status = fiber.StatusConflict
		case errors.As(err, &storeErr):
			status = fiber.StatusBadGateway
		case errors.As(err, &cancelledErr):
			// A cancelled session is a normal outcome, not a server fault.
			status = fiber.StatusGone
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		}

		return ctx.Status(status).JSON(Response[any]{
			Success: false,
			Message: err.Error(),
		})
	}
}
