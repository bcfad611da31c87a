package routes

import (
	authController "github.com/MrPouyaSaad/rivaland-backend/controllers/auth"
	"github.com/MrPouyaSaad/rivaland-backend/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the public auth endpoints. The whole group is
// rate limited to slow credential and OTP guessing.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	auth := r.Group("/api/auth")
	auth.Use(middleware.RateLimiter(deps.Redis))
	{
		auth.POST("/admin/login", authController.AdminLogin(deps.Auth))
		auth.POST("/request-code", authController.RequestCode(deps.Auth))
		auth.POST("/verify-code", authController.VerifyCode(deps.Auth))
		auth.POST("/register", authController.Register(deps.Auth))
		auth.POST("/login", authController.Login(deps.Auth))
	}
}
