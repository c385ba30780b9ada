package middleware

import (
	"time"

	"eventrely-api/core/constants"
	"eventrely-api/core/logger"
	"eventrely-api/core/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Middleware holds the shared HTTP middleware chain.
type Middleware struct {
	corsOrigins []string
}

func NewMiddleware(corsOrigins []string) *Middleware {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	return &Middleware{corsOrigins: corsOrigins}
}

// Setup installs the global middleware on e in order: recover, request id,
// request logging, CORS. Trailing slashes are stripped before routing.
func (m *Middleware) Setup(e *echo.Echo) {
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(m.RequestID())
	e.Use(m.RequestLogger())
	e.Use(m.CORS())
}

// RequestID propagates the caller's X-Request-ID or generates one, and stores
// it on the echo context and the response headers.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(constants.HeaderRequestID)
			if id == "" {
				id = utils.GenerateRequestID()
			}
			c.Set(constants.ContextRequestID, id)
			c.Response().Header().Set(constants.HeaderRequestID, id)
			return next(c)
		}
	}
}

func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			args := []any{
				"request_id", RequestIDFrom(c),
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if c.Response().Status >= 500 {
				logger.Error("HTTP:Request", args...)
			} else {
				logger.Info("HTTP:Request", args...)
			}
			return nil
		}
	}
}

func (m *Middleware) CORS() echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: m.corsOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, constants.HeaderRequestID},
	})
}

// RequestIDFrom returns the request id set by RequestID, or "".
func RequestIDFrom(c echo.Context) string {
	id, _ := c.Get(constants.ContextRequestID).(string)
	return id
}
