package handler

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"yame/internal/auth"
	"yame/internal/middleware"
	"yame/internal/service"
)

// Services bundles everything the routes need.
type Services struct {
	Carts    service.CartService
	Orders   service.OrderService
	Products service.ProductService
	Accounts service.AccountService
}

// RegisterRoutes wires the full /api/v1 surface onto e.
func RegisterRoutes(e *echo.Echo, svc Services, tokens *auth.TokenIssuer, logger *slog.Logger) {
	e.Validator = NewValidator()

	carts := NewCartHandler(svc.Carts, logger)
	orders := NewOrderHandler(svc.Orders, logger)
	products := NewProductHandler(svc.Products, logger)
	accounts := NewAuthHandler(svc.Accounts, logger)
	admin := NewAdminHandler(svc.Orders, logger)

	api := e.Group("/api/v1")

	// Catalog, public.
	api.GET("/products", products.List)
	api.GET("/products/:slug", products.Get)
	api.POST("/products/:id/reviews", products.AddReview)

	// Carts, public. Possession of the cart ID is the only credential.
	api.POST("/carts", carts.Create)
	api.GET("/carts/:id", carts.Get)
	api.POST("/carts/:id/items", carts.AddItem)
	api.PUT("/carts/:id/items/:itemId", carts.UpdateItem)
	api.DELETE("/carts/:id/items/:itemId", carts.RemoveItem)

	// Checkout works for guests and signed-in shoppers alike.
	api.POST("/orders/checkout", orders.Checkout, middleware.OptionalAuth(tokens))
	api.GET("/orders/:id", orders.Get)
	api.GET("/orders", orders.ListMine, middleware.RequireAuth(tokens))

	// Accounts.
	api.POST("/auth/register", accounts.Register)
	api.POST("/auth/login", accounts.Login)
	api.GET("/auth/profile", accounts.Profile, middleware.RequireAuth(tokens))
	api.PUT("/auth/profile", accounts.UpdateProfile, middleware.RequireAuth(tokens))
	api.PUT("/auth/password", accounts.ChangePassword, middleware.RequireAuth(tokens))

	// Back office.
	adm := api.Group("/admin", middleware.RequireAuth(tokens), middleware.RequireAdmin())
	adm.GET("/orders", admin.ListOrders)
	adm.GET("/orders/:id", admin.GetOrder)
	adm.PUT("/orders/:id/status", admin.UpdateStatus)
	adm.GET("/dashboard", admin.Stats)
}
