package routes

import (
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries everything the route groups need to wire their handlers.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	JWTSecret string

	Auth       *services.AuthService
	Dashboard  *services.DashboardService
	Categories *services.CategoryService
	Fields     *services.FieldService
	Products   *services.ProductService
	Orders     *services.OrderService
	Users      *services.UserService
	Cart       *services.CartService
	Banners    *services.BannerService
}

// SetupRoutes registers every API group on the engine.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupAuthRoutes(r, deps)
	SetupAdminRoutes(r, deps)
	SetupShopRoutes(r, deps)
}
