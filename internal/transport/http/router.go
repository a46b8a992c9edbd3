package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/shopme/shopme-backend/internal/handlers"
	"github.com/shopme/shopme-backend/internal/middleware/auth"
)

type Deps struct {
	Verifier        *auth.TokenVerifier
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	WishlistHandler *handlers.WishlistHandler
	ReviewHandler   *handlers.ReviewHandler
	CouponHandler   *handlers.CouponHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", d.AuthHandler.Register)
	v1.POST("/auth/login", d.AuthHandler.Login)
	v1.POST("/auth/admin/login", d.AuthHandler.AdminLogin)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/category/:category", d.ProductHandler.GetByCategory)

	v1.GET("/search", d.SearchHandler.Handler)

	cart := v1.Group("/cart", d.Verifier.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.PUT("/update/:id", d.CartHandler.UpdateCartItem)
	cart.DELETE("/remove/:id", d.CartHandler.RemoveFromCart)
	cart.DELETE("/clear", d.CartHandler.ClearCart)

	orders := v1.Group("/orders", d.Verifier.RequireLogin)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/my-orders", d.OrderHandler.MyOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	wishlist := v1.Group("/wishlist", d.Verifier.RequireLogin)
	wishlist.GET("", d.WishlistHandler.GetWishlist)
	wishlist.POST("/add", d.WishlistHandler.AddToWishlist)
	wishlist.DELETE("/remove/:productId", d.WishlistHandler.RemoveFromWishlist)

	reviews := v1.Group("/reviews")
	reviews.GET("/product/:productId", d.ReviewHandler.ListByProduct)
	reviews.GET("/summary/:productId", d.ReviewHandler.Summary)
	reviews.POST("/add", d.ReviewHandler.AddReview, d.Verifier.RequireLogin)

	coupons := v1.Group("/coupons", d.Verifier.RequireLogin)
	coupons.POST("/validate", d.CouponHandler.Validate)
	coupons.POST("/apply", d.CouponHandler.Apply)

	admin := v1.Group("/admin", d.Verifier.AdminOnly)
	admin.GET("/orders", d.OrderHandler.ListAllOrders)
	admin.PUT("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.GET("/products", d.ProductHandler.ListAllAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
}
