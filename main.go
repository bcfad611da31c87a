package main

import (
	"log"

	"github.com/MrPouyaSaad/rivaland-backend/config"
	"github.com/MrPouyaSaad/rivaland-backend/messaging"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"github.com/MrPouyaSaad/rivaland-backend/routes"
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/MrPouyaSaad/rivaland-backend/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatalw("database connection failed", "error", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.LoginCode{},
		&models.Category{},
		&models.CategoryField{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductFieldValue{},
		&models.Label{},
		&models.ProductLabel{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartItem{},
		&models.Banner{},
	)
	if err != nil {
		logger.Fatalw("migration failed", "error", err)
	}

	if err := services.EnsureLabels(db, logger); err != nil {
		logger.Fatalw("label seeding failed", "error", err)
	}

	rdb := config.ConnectRedis(cfg, logger)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
	}))

	r.Static("/uploads", cfg.UploadDir)

	store := storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
	messages := messaging.New(logger)

	deps := routes.Deps{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,

		Auth:       services.NewAuthService(db, logger, messages, cfg.JWTSecret, cfg.AdminUser, cfg.AdminPass),
		Dashboard:  services.NewDashboardService(db, logger),
		Categories: services.NewCategoryService(db, store, logger),
		Fields:     services.NewFieldService(db, logger),
		Products:   services.NewProductService(db, store, logger),
		Orders:     services.NewOrderService(db, logger, messages),
		Users:      services.NewUserService(db, logger),
		Cart:       services.NewCartService(db, logger),
		Banners:    services.NewBannerService(db, store, logger),
	}
	routes.SetupRoutes(r, deps)

	logger.Infow("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
