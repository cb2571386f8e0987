package server

import (
	"marketplace/internal/handler"
	"marketplace/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Users      *handler.UserHandler
	Sellers    *handler.SellerHandler
	Categories *handler.CategoryHandler
	Products   *handler.ProductHandler
	Carts      *handler.CartHandler
	Orders     *handler.OrderHandler
	Returns    *handler.ReturnHandler
	Reviews    *handler.ReviewHandler
}

// /api 以下に全リソースを登録する。jwtSecret が空なら認証なし
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string) {
	api := e.Group("/api")
	if jwtSecret != "" {
		api.Use(middleware.AuthJWT(jwtSecret))
	}

	h.Users.RegisterRoutes(api.Group("/users"))
	h.Sellers.RegisterRoutes(api.Group("/sellers"))
	h.Categories.RegisterRoutes(api.Group("/categories"))
	h.Products.RegisterRoutes(api.Group("/products"))
	h.Carts.RegisterRoutes(api.Group("/carts"))
	h.Orders.RegisterRoutes(api.Group("/orders"))
	h.Returns.RegisterRoutes(api.Group("/returns"))
	h.Reviews.RegisterRoutes(api.Group("/reviews"))
}
