package routes

import (
	cartController "github.com/MrPouyaSaad/rivaland-backend/controllers/cart"
	shopController "github.com/MrPouyaSaad/rivaland-backend/controllers/shop"
	"github.com/MrPouyaSaad/rivaland-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupShopRoutes registers the storefront API. Catalog browsing is public,
// cart and profile require a user token.
func SetupShopRoutes(r *gin.Engine, deps Deps) {
	shop := r.Group("/api/shop")
	{
		shop.GET("/products", shopController.GetProducts(deps.Products))
		shop.GET("/products/:id", shopController.GetProduct(deps.Products))
		shop.GET("/categories", shopController.GetCategories(deps.Categories))
		shop.GET("/categories/:id/products", shopController.GetProductsByCategory(deps.Products))
		shop.GET("/labels/:name/products", shopController.GetProductsByLabel(deps.Products))
		shop.GET("/banners", shopController.GetBanners(deps.Banners))
	}

	user := shop.Group("")
	user.Use(middleware.RequireAuth(deps.JWTSecret, "user"))
	{
		cart := user.Group("/cart")
		{
			cart.GET("", cartController.GetCart(deps.Cart))
			cart.POST("", cartController.AddToCart(deps.Cart))
			cart.PUT("", cartController.UpdateCartItem(deps.Cart))
			cart.DELETE("", cartController.RemoveFromCart(deps.Cart))
		}

		user.GET("/profile", shopController.GetProfile(deps.Users))
		user.PUT("/profile", shopController.UpdateProfile(deps.Users))
		user.GET("/orders", shopController.GetMyOrders(deps.Orders))
		user.POST("/orders", shopController.CreateOrder(deps.Orders))
	}
}
