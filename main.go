// File: flavortable/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flavortable/config"
	"flavortable/cron"
	"flavortable/database"
	bookingRepo "flavortable/database/repository/booking"
	"flavortable/handlers"
	"flavortable/middleware"
	"flavortable/routes"
	"flavortable/services/dialogue"
	"flavortable/services/extraction"
	"flavortable/services/notification"
	"flavortable/services/tasks"
	"flavortable/services/weather"
	"flavortable/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	repo := bookingRepo.NewMongoBookingRepo()
	if err := repo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// services.
	extractor, err := extraction.NewGeminiExtractor(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.RestaurantName,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize extraction gateway: %v", err)
	}

	weatherSvc := weather.NewOpenWeatherClient(
		config.AppConfig.WeatherAPIKey,
		config.AppConfig.WeatherCity,
		utils.GetCacheClient(),
	)

	var notifier notification.Service
	sesNotifier, err := notification.NewSESNotificationService(context.Background())
	if err != nil {
		logger.Sugar().Warnf("main: front-desk notifications disabled: %v", err)
	} else {
		notifier = sesNotifier
	}

	reminders := tasks.NewReminderScheduler()

	finalizer := &dialogue.BookingFinalizer{
		Repo:      repo,
		Weather:   weatherSvc,
		Notifier:  notifier,
		Reminders: reminders,
	}

	sessionStore := dialogue.NewSessionStore(utils.GetSessionCacheClient(), 30*time.Minute)

	dialogueSvc := &dialogue.DefaultDialogueService{
		Extractor: extractor,
		Sessions:  sessionStore,
		Finalizer: finalizer,
	}

	bookingHandler := handlers.NewBookingHandler(dialogueSvc, repo, logger)

	// Background workers.
	if notifier != nil {
		cron.InitReminderWorker(notifier, repo)
	}
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	routes.RegisterRoutes(router, bookingHandler)

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
