package routes

import (
	bannerController "github.com/MrPouyaSaad/rivaland-backend/controllers/banner"
	categoryController "github.com/MrPouyaSaad/rivaland-backend/controllers/category"
	dashboardController "github.com/MrPouyaSaad/rivaland-backend/controllers/dashboard"
	labelController "github.com/MrPouyaSaad/rivaland-backend/controllers/label"
	orderController "github.com/MrPouyaSaad/rivaland-backend/controllers/order"
	productController "github.com/MrPouyaSaad/rivaland-backend/controllers/product"
	userController "github.com/MrPouyaSaad/rivaland-backend/controllers/user"
	"github.com/MrPouyaSaad/rivaland-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers the admin panel API behind the admin role gate.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAuth(deps.JWTSecret, "admin"))
	{
		dashboard := admin.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardController.GetSummary(deps.Dashboard))
			dashboard.GET("/overview", dashboardController.GetOverview(deps.Dashboard))
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", categoryController.GetCategories(deps.Categories))
			categories.POST("", categoryController.CreateCategory(deps.Categories))
			categories.GET("/:id", categoryController.GetCategory(deps.Categories))
			categories.PUT("/:id", categoryController.UpdateCategory(deps.Categories))
			categories.DELETE("/:id", categoryController.DeleteCategory(deps.Categories))
			categories.GET("/:id/fields", categoryController.GetCategoryFields(deps.Fields))
			categories.POST("/:id/fields", categoryController.AddCategoryField(deps.Fields))
			categories.DELETE("/:id/fields/:fieldId", categoryController.RemoveCategoryField(deps.Fields))
		}

		products := admin.Group("/products")
		{
			products.GET("", productController.GetProducts(deps.Products))
			products.POST("", productController.CreateProduct(deps.Products))
			products.GET("/export-excel", productController.ExportProductsToExcel(deps.DB))
			products.GET("/:id", productController.GetProduct(deps.Products))
			products.PUT("/:id", productController.UpdateProduct(deps.Products))
			products.DELETE("/:id", productController.DeleteProduct(deps.Products))
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", orderController.GetOrders(deps.Orders))
			orders.GET("/ws", orderController.OrderWebSocketHandler)
			orders.GET("/:id", orderController.GetOrder(deps.Orders))
			orders.PUT("/:id/status", orderController.UpdateOrderStatus(deps.Orders))
			orders.PUT("/:id/payment", orderController.UpdateOrderPayment(deps.Orders))
		}

		users := admin.Group("/users")
		{
			users.GET("", userController.GetUsers(deps.Users))
			users.GET("/:id", userController.GetUser(deps.Users))
			users.DELETE("/:id", userController.DeleteUser(deps.Users))
		}

		admin.GET("/labels", labelController.GetLabels(deps.DB))

		content := admin.Group("/content/banners")
		{
			content.GET("", bannerController.GetBanners(deps.Banners))
			content.POST("", bannerController.CreateBanner(deps.Banners))
			content.DELETE("/:id", bannerController.DeleteBanner(deps.Banners))
		}
	}
}
