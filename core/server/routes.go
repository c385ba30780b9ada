package server

import (
	"context"
	"net/http"
	"time"

	"eventrely-api/core/cache"
	"eventrely-api/core/constants"
	"eventrely-api/core/database"
	"eventrely-api/core/logger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func registerSystemRoutes(e *echo.Echo, appName string, db database.IDatabase, c cache.Cache) {
	e.GET("/", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]any{
			"name":    appName,
			"service": constants.ServiceName,
			"docs":    "/swagger/index.html",
		})
	})

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/ping", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "pong")
	})

	// keepalive touches the backing stores so idle connections stay warm.
	e.GET("/keepalive", func(ctx echo.Context) error {
		checkCtx, cancel := context.WithTimeout(ctx.Request().Context(), constants.HealthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		result := map[string]string{"database": "ok", "cache": "ok"}

		if err := db.PingContext(checkCtx); err != nil {
			logger.Error("Keepalive:Database:Error", "error", err)
			result["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if err := c.Ping(checkCtx); err != nil {
			logger.Warn("Keepalive:Cache:Error", "error", err)
			result["cache"] = "unavailable"
		}
		result["checked_at"] = time.Now().UTC().Format(time.RFC3339)

		return ctx.JSON(status, result)
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
