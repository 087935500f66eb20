package api

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"salesdash/internal/config"
)

// NewServer builds the echo instance with middleware and routes.
func NewServer(cfg *config.Config, h *Handler, logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger = logger
	e.JSONSerializer = JSONSerializer{}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowOrigins,
		ExposeHeaders: []string{SessionHeader, echo.HeaderContentDisposition},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxUploadMB)))

	h.RegisterRoutes(e)
	return e
}
