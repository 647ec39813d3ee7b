package main

import (
	"log"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/migrations"
	"storefront/internal/redis"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Seed default data
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	cartItemRepo := repository.NewCartItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(itemRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, cartItemRepo, itemRepo)
	checkoutService := services.NewCheckoutService(db, cartRepo)
	orderService := services.NewOrderService(orderRepo)

	// Token manager and handlers
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	tokens := auth.NewTokenManager(cfg.JWTSecret, tokenTTL, sessionTTL)

	authHandler := handlers.NewAuthHandler(userService, orderService, tokens, redisClient, tokenTTL)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService)

	// Setup routes
	router := gin.Default()

	router.POST("/auth/signup", authHandler.Signup)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/logout", authHandler.Logout)

	// Catalog is public
	router.GET("/items", catalogHandler.ListItems)
	router.GET("/items/:item_id", catalogHandler.GetItem)
	router.GET("/categories", catalogHandler.ListCategories)
	router.GET("/categories/:category_id", catalogHandler.GetCategory)

	// Cart works for both users and anonymous sessions
	cart := router.Group("/cart", auth.Resolve(tokens, redisClient))
	{
		cart.GET("", cartHandler.ViewCart)
		cart.POST("/items/:item_id", cartHandler.AddItem)
		cart.PUT("/items/:item_id", cartHandler.UpdateItem)
		cart.DELETE("/items/:item_id", cartHandler.RemoveItem)
	}

	// Checkout and orders require a logged-in user
	user := router.Group("/", auth.Resolve(tokens, redisClient), auth.RequireUser())
	{
		user.POST("/checkout", orderHandler.Checkout)
		user.GET("/orders", orderHandler.ListOrders)
		user.GET("/orders/:order_id", orderHandler.GetOrder)
		user.GET("/profile", authHandler.Profile)
	}

	// Admin endpoints
	admin := router.Group("/admin", auth.Resolve(tokens, redisClient), auth.RequireAdmin())
	{
		admin.POST("/items", catalogHandler.CreateItem)
		admin.PUT("/items/:item_id", catalogHandler.UpdateItem)
		admin.DELETE("/items/:item_id", catalogHandler.DeleteItem)
		admin.POST("/categories", catalogHandler.CreateCategory)
		admin.DELETE("/categories/:category_id", catalogHandler.DeleteCategory)
		admin.PUT("/categories/:category_id/items", catalogHandler.AssignItems)
		admin.PUT("/orders/:order_id/status", orderHandler.UpdateStatus)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
