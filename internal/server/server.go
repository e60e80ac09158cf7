package server

import (
	"mestej/internal/config"
	"mestej/internal/handler"
	"mestej/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルート登録に必要なハンドラ一式。
type Handlers struct {
	Auth           *handler.AuthHandler
	Product        *handler.ProductHandler
	Cart           *handler.CartHandler
	Order          *handler.OrderHandler
	AdminUser      *handler.AdminUserHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminProduct   *handler.AdminProductHandler
	AdminDashboard *handler.AdminDashboardHandler
}

// New はechoを組み立ててルートを登録する。
func New(cfg config.Config, h Handlers, userRepo repository.UserRepository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{cfg.FEURL},
			AllowCredentials: true,
		}))
	}

	h.Auth.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.AdminUser.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminDashboard.RegisterRoutes(e, cfg)

	return e
}

// Start はサーバーを起動する。
func Start(addr string, cfg config.Config, h Handlers, userRepo repository.UserRepository) error {
	e := New(cfg, h, userRepo)
	return e.Start(addr)
}
