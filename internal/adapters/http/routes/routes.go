package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dairyhub/internal/adapters/http/handlers"
	"dairyhub/internal/adapters/http/middleware"
	"dairyhub/internal/adapters/persistence/repositories"
	"dairyhub/internal/config"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/core/services"
	"dairyhub/internal/pkg/logger"
)

// Setup wires repositories, services and handlers and registers all routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *logger.Logger) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	priceRepo := repositories.NewProductPriceRepository(db)
	demandRepo := repositories.NewDemandRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg, log)
	userService := services.NewUserService(userRepo, priceRepo, demandRepo, log)
	productService := services.NewProductService(productRepo, priceRepo, demandRepo, log)
	pricingService := services.NewPricingService(userRepo, productRepo, priceRepo, log)
	demandService := services.NewDemandService(demandRepo, productRepo, userRepo, log)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	adminHandler := handlers.NewAdminHandler(userService)
	distributorHandler := handlers.NewDistributorHandler(userService)
	productHandler := handlers.NewProductHandler(productService, pricingService)
	priceHandler := handlers.NewProductPriceHandler(pricingService)
	demandHandler := handlers.NewDemandHandler(demandService)

	// Middleware
	authRequired := middleware.AuthMiddleware(cfg, userRepo)

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.AuthRateLimiter(), authHandler.Signup)
	auth.Post("/signin", middleware.AuthRateLimiter(), authHandler.SignIn)
	auth.Post("/reset-password", authRequired, authHandler.ResetPassword)
	auth.Get("/users", authRequired, middleware.AdminOnly(), authHandler.ListUsers)
	auth.Post("/users", authRequired, middleware.RequireRole(), authHandler.CreateUser)

	// Admin accounts
	admins := api.Group("/admins", authRequired, middleware.AdminOnly())
	admins.Get("/", adminHandler.ListAdmins)
	admins.Get("/:id", adminHandler.GetAdmin)
	admins.Delete("/:id", adminHandler.DeleteAdmin)

	// Distributor accounts
	distributors := api.Group("/distributors", authRequired)
	distributors.Get("/", middleware.AdminOnly(), distributorHandler.ListDistributors)
	distributors.Post("/demand", middleware.RequireRole(domain.RoleDistributor), demandHandler.CreateDemand)
	distributors.Get("/:id", middleware.AdminOrDistributor(), distributorHandler.GetDistributor)
	distributors.Put("/:id", middleware.AdminOrDistributor(), distributorHandler.UpdateDistributor)
	distributors.Delete("/:id", middleware.AdminOnly(), distributorHandler.DeleteDistributor)

	// Demand/dispatch ledger
	demands := api.Group("/demands", authRequired)
	demands.Get("/", middleware.AdminOrDistributor(), demandHandler.ListDemands)
	demands.Get("/:id", middleware.AdminOrDistributor(), demandHandler.GetDemand)
	demands.Put("/:id/dispatch", middleware.AdminOnly(), demandHandler.UpdateDispatch)

	// Product catalog
	products := api.Group("/products", authRequired)
	products.Get("/distributor", middleware.AdminOrDistributor(), productHandler.ListProductsForDistributor)
	products.Post("/", middleware.AdminOnly(), productHandler.CreateProduct)
	products.Get("/", middleware.AdminOnly(), productHandler.ListProducts)
	products.Get("/:id", middleware.AdminOnly(), productHandler.GetProduct)
	products.Put("/:id", middleware.AdminOnly(), productHandler.UpdateProduct)
	products.Delete("/:id", middleware.AdminOnly(), productHandler.DeleteProduct)

	// Price overrides
	prices := api.Group("/product-prices", authRequired)
	prices.Post("/", middleware.AdminOnly(), priceHandler.CreateProductPrice)
	prices.Get("/", middleware.AdminOnly(), priceHandler.ListProductPrices)
	prices.Get("/:id", middleware.AdminOrDistributor(), priceHandler.GetProductPrice)
	prices.Put("/:id", middleware.AdminOnly(), priceHandler.UpdateProductPrice)
	prices.Delete("/:id", middleware.AdminOnly(), priceHandler.DeleteProductPrice)
}
