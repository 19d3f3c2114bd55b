package serverutils

import (
	"errors"

	"pumphouse-kiosk-be/pkg/geometry"

	"github.com/gofiber/fiber/v2"
)

// ErrNotFound is returned by services when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrorHandlerMiddleware maps domain errors onto HTTP responses. Nothing in
// the kiosk core is fatal: every failure path degrades to a JSON error and a
// log line on the caller's side.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(verr.Error()))
		case errors.Is(err, geometry.ErrTooFewVertices),
			errors.Is(err, geometry.ErrMinVertices),
			errors.Is(err, geometry.ErrIndexOutOfRange):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return ctx.Status(ferr.Code).JSON(ErrorResponse(ferr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
	}
}
