// File: fixhive/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixhive/config"
	"fixhive/database"
	bookingRepo "fixhive/database/repository/booking"
	shopRepo "fixhive/database/repository/shop"
	"fixhive/handlers"
	"fixhive/middleware"
	"fixhive/routes"
	"fixhive/services/intelligence"
	"fixhive/services/matching"
	"fixhive/services/scheduling"
	"fixhive/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	shops := shopRepo.NewMongoShopRepo()
	bookings := bookingRepo.NewMongoBookingRepo()

	// services.
	schedulingEngine := &scheduling.DefaultSchedulingEngine{
		Shops:    shops,
		Bookings: bookings,
		Locker:   &scheduling.RedisSlotLocker{Client: utils.GetLockClient()},
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
	}

	ranker := matching.NewRelevanceRanker()
	if config.AppConfig.GeminiAPIKey != "" {
		embedder, err := intelligence.NewGeminiEmbedder(context.Background(), config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Warnf("main: semantic refinement disabled: %v", err)
		} else {
			ranker.Refiner = &matching.SemanticRefiner{
				Embedder: embedder,
				Timeout:  time.Duration(config.AppConfig.EmbedTimeoutSeconds) * time.Second,
			}
		}
	}
	matchingService := &matching.DefaultMatchingService{
		ShopRepo: shops,
		Ranker:   ranker,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Booking: handlers.NewBookingHandler(schedulingEngine, logger),
		Shops:   handlers.NewShopHandler(shops, matchingService, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
