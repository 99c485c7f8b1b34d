package server

import (
	"net/http"

	"laptophub/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Auth     RouteRegistrar
	Laptop   RouteRegistrar
	Order    RouteRegistrar
	Wishlist RouteRegistrar
	User     RouteRegistrar
}

// 各ハンドラは/apiグループに自分のルートを登録する
type RouteRegistrar interface {
	RegisterRoutes(api *echo.Group, cfg config.Config)
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())

	//CORSはフロントのオリジンのみ許可
	origins := []string{"http://localhost:3000"}
	if cfg.FEURL != "" {
		origins = []string{cfg.FEURL}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	RegisterRoutes(e, cfg, h)

	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server listening")
	return e.Start(addr)
}
