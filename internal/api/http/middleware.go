package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-gateway/internal/config"
	"github.com/spec-kit/ticket-gateway/internal/observability"
	apperrors "github.com/spec-kit/ticket-gateway/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: CORS decoration, request
// logging, timeout and the error boundary. The error boundary is innermost so
// the request logger observes the converted status.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, corsCfg config.CORSConfig, timeout time.Duration) {
	app.Use(CORSResponder(corsCfg))
	app.Use(observability.RequestLogger(logger, metrics))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware is the top-level error boundary: nothing escapes
// unconverted. Every error becomes {"error": message} with the DomainError's
// status; panics become a plain 500.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed",
						zap.String("request_id", observability.RequestID(c)),
						zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{"error": domainErr.Message})
				err = nil
			}
		}()
		return c.Next()
	}
}
