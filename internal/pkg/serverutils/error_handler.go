package serverutils

import (
	"dating-app-be/internal/apperror"
	"dating-app-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates domain errors into the response envelope.
// Controllers return errors untouched; this is the single place that decides
// status codes.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.As(err); ok {
			if appErr.Kind == apperror.KindInternal {
				log.Error("Http", "Unclassified internal error", map[string]interface{}{
					"path":  ctx.Path(),
					"error": err.Error(),
				})
			} else {
				log.Warn("Http", "Request rejected", map[string]interface{}{
					"path": ctx.Path(),
					"code": string(appErr.Code),
				})
			}
			return ctx.Status(appErr.Kind.HTTPStatus()).
				JSON(ErrorResponse(string(appErr.Code), appErr.Message))
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).
				JSON(ErrorResponse(string(apperror.CodeInvalidInput), fiberErr.Message))
		}

		log.Error("Http", "Unexpected error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(string(apperror.CodeInternal), "Internal server error"))
	}
}
