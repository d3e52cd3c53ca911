package main

import (
	"context"
	"fmt"
	"log"
	"myntraMarket/app/echo-server/router"
	"myntraMarket/business/bag"
	"myntraMarket/business/category"
	"myntraMarket/business/product"
	"myntraMarket/business/recommendation"
	"myntraMarket/business/tracking"
	userService "myntraMarket/business/user"
	"myntraMarket/internal/middleware"
	psqlRepo "myntraMarket/internal/repository/postgres"
	redisRepo "myntraMarket/internal/repository/redis"
	"myntraMarket/internal/rest"
	"myntraMarket/pkg/config"
	"myntraMarket/pkg/database"
	"myntraMarket/pkg/logger"
	"myntraMarket/pkg/metrics"
	"myntraMarket/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myntraMarket/business/wishlist"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyntraMarket", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := database.InitRedis(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	logger.Info("Redis connected successfully")

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	wishlistRepo := psqlRepo.NewWishlistRepository(db)
	bagRepo := psqlRepo.NewBagRepository(db)
	viewEventRepo := psqlRepo.NewViewEventRepository(db)
	recoCache := redisRepo.NewRecommendationCache(redisClient)

	// Init service
	usrService := userService.NewUserService(userRepo, validate)
	productService := product.NewProductService(productsRepo)
	categoryService := category.NewCategoryService(categoryRepo)
	wishlistService := wishlist.NewWishlistService(wishlistRepo, productsRepo)
	bagService := bag.NewBagService(bagRepo, productsRepo)
	trackingService := tracking.NewService(viewEventRepo, cfg.Recommendation.SessionWindow)

	recoCfg := recommendation.DefaultConfig()
	recoCfg.CacheTTL = cfg.Recommendation.CacheTTL
	recoCfg.HistoryLookback = cfg.Recommendation.HistoryLookback
	recoCfg.CohortSize = cfg.Recommendation.CohortSize
	recoCfg.SignalTimeout = cfg.Recommendation.SignalTimeout
	recoService := recommendation.NewService(productsRepo, viewEventRepo, wishlistRepo, recoCache, recoCfg)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	wishlistHandler := rest.NewWishlistHandler(wishlistService)
	bagHandler := rest.NewBagHandler(bagService)
	trackingHandler := rest.NewTrackingHandler(trackingService)
	recommendationHandler := rest.NewRecommendationHandler(recoService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	optionalAuth := middleware.OptionalAuth()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)
	router.SetupWishlistRoutes(api, wishlistHandler)
	router.SetupBagRoutes(api, bagHandler)
	router.SetupTrackingRoutes(api, trackingHandler, authRequired, optionalAuth)
	router.SetupRecommendationRoutes(api, recommendationHandler, optionalAuth)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	logger.Info("Server stopped")
}
