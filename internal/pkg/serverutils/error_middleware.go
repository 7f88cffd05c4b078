package serverutils

import (
	"errors"

	"babyname-be/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the error taxonomy onto HTTP statuses. Raw
// backend error text stays in the logs; clients only see the typed message.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			switch appErr.Kind {
			case apperr.KindValidation:
				return ctx.Status(fiber.StatusBadRequest).JSON(ErrorBody{Error: appErr.Message})
			case apperr.KindSchemaMismatch:
				return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorBody{
					Error:           appErr.Message,
					FallbackToLocal: true,
				})
			case apperr.KindStoreUnavailable:
				return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorBody{Error: appErr.Message})
			case apperr.KindCollaboratorFailure:
				return ctx.Status(fiber.StatusBadGateway).JSON(ErrorBody{Error: appErr.Message})
			}
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{Error: fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{Error: "internal server error"})
	}
}
