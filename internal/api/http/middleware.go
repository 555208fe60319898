package http

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/cookfarm/pantry-service/internal/observability"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

const corsMethods = "GET,POST,PUT,DELETE,OPTIONS"

// MiddlewareConfig carries the transport settings applied to every request.
type MiddlewareConfig struct {
	Timeout           time.Duration
	CORSAllowedOrigin string
}

// RegisterMiddlewares attaches global middlewares: request logging, error rendering, CORS and request timeouts.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(corsMiddleware(cfg.CORSAllowedOrigin))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func corsMiddleware(origin string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: origin,
		AllowMethods: corsMethods,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		// fiber refuses credentials together with a wildcard origin.
		AllowCredentials: origin != "*",
	})
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := toDomainError(err)
				metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
				response := fiber.Map{"error": fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}}
				if len(domainErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

// toDomainError also covers errors raised by fiber itself, such as unmatched routes.
func toDomainError(err error) *apperrors.DomainError {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := strings.ToUpper(strings.ReplaceAll(http.StatusText(fe.Code), " ", "_"))
		switch fe.Code {
		case http.StatusNotFound:
			code = apperrors.CodeNotFound
		case http.StatusBadRequest:
			code = apperrors.CodeValidationFailed
		}
		if code == "" {
			code = apperrors.CodeInternal
		}
		return apperrors.NewDomainError(code, fe.Message, fe.Code, nil)
	}
	return apperrors.ToDomainError(err)
}
