package server

import (
	"net/http"
	"time"

	"laptophub/internal/config"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type notFoundResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{
			Success:   true,
			Message:   "Server is running",
			Timestamp: time.Now(),
		})
	})

	h.Auth.RegisterRoutes(api, cfg)
	h.Laptop.RegisterRoutes(api, cfg)
	h.Order.RegisterRoutes(api, cfg)
	h.Wishlist.RegisterRoutes(api, cfg)
	h.User.RegisterRoutes(api, cfg)

	//未定義ルート
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, notFoundResponse{
			Success: false,
			Message: "Route not found",
		})
	})
}
