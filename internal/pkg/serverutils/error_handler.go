package serverutils

import (
	"errors"

	"support-assistant-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts typed service errors into their HTTP
// shapes. The chatbot endpoint's error bodies are part of its public
// contract: 400 carries {error}, 429 carries a retry message, and a
// FallbackError carries the full fallback chat body with status 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Reason})
		}

		var rateLimitErr *dto.RateLimitExceededError
		if errors.As(err, &rateLimitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests. Please try again later."})
		}

		var fallbackErr *dto.FallbackError
		if errors.As(err, &fallbackErr) && fallbackErr.Response != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fallbackErr.Response)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
	}
}
