package serverutils

import (
	"errors"

	"tobacco-catalog-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusOf maps an error onto an HTTP status.
func StatusOf(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case apperror.CodeDuplicateName:
		return fiber.StatusConflict
	case apperror.CodeNotFound:
		return fiber.StatusNotFound
	case apperror.CodeValidation:
		return fiber.StatusUnprocessableEntity
	case apperror.CodeTransportFailure:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware renders errors returned by handlers as the standard
// JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusOf(err)
		message := err.Error()
		if status >= fiber.StatusInternalServerError {
			// Internal details stay in the logs
			message = fiber.ErrInternalServerError.Message
			if status == fiber.StatusServiceUnavailable {
				message = fiber.ErrServiceUnavailable.Message
			}
		}
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
