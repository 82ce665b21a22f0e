package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/freshkart/freshkart-api/config"
	"github.com/freshkart/freshkart-api/internal/auth"
	"github.com/freshkart/freshkart-api/internal/delivery"
	"github.com/freshkart/freshkart-api/pkg/broker"
	"github.com/freshkart/freshkart-api/pkg/cache"
	"github.com/freshkart/freshkart-api/pkg/logger"
	"github.com/freshkart/freshkart-api/pkg/postgres"
	"github.com/freshkart/freshkart-api/pkg/search"

	cartH "github.com/freshkart/freshkart-api/internal/cart/handler"
	cartUCPkg "github.com/freshkart/freshkart-api/internal/cart/usecase"

	catalogH "github.com/freshkart/freshkart-api/internal/catalog/handler"
	catalogRepoPkg "github.com/freshkart/freshkart-api/internal/catalog/repository"
	catalogUCPkg "github.com/freshkart/freshkart-api/internal/catalog/usecase"

	discountH "github.com/freshkart/freshkart-api/internal/discount/handler"
	discountRepoPkg "github.com/freshkart/freshkart-api/internal/discount/repository"
	discountUCPkg "github.com/freshkart/freshkart-api/internal/discount/usecase"

	invH "github.com/freshkart/freshkart-api/internal/inventory/handler"
	invRepoPkg "github.com/freshkart/freshkart-api/internal/inventory/repository"
	invUCPkg "github.com/freshkart/freshkart-api/internal/inventory/usecase"

	"github.com/freshkart/freshkart-api/internal/notification"
	notifH "github.com/freshkart/freshkart-api/internal/notification/handler"
	notifListenerPkg "github.com/freshkart/freshkart-api/internal/notification/listener"
	notifRepoPkg "github.com/freshkart/freshkart-api/internal/notification/repository"

	orderH "github.com/freshkart/freshkart-api/internal/order/handler"
	orderRepoPkg "github.com/freshkart/freshkart-api/internal/order/repository"
	orderUCPkg "github.com/freshkart/freshkart-api/internal/order/usecase"

	watchH "github.com/freshkart/freshkart-api/internal/pricewatch/handler"
	watchPollerPkg "github.com/freshkart/freshkart-api/internal/pricewatch/poller"
	watchRepoPkg "github.com/freshkart/freshkart-api/internal/pricewatch/repository"
	watchUCPkg "github.com/freshkart/freshkart-api/internal/pricewatch/usecase"

	reviewH "github.com/freshkart/freshkart-api/internal/review/handler"
	reviewRepoPkg "github.com/freshkart/freshkart-api/internal/review/repository"
	reviewUCPkg "github.com/freshkart/freshkart-api/internal/review/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catalogRepo := catalogRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	discountRepo := discountRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	reviewRepo := reviewRepoPkg.NewPGRepository(db)
	notifRepo := notifRepoPkg.NewPGRepository(db)
	watchRepo := watchRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.NotificationsTopic,
	})
	defer kafkaProducer.Close()

	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.NotificationsTopic,
		GroupID: cfg.Kafka.NotificationsGroup,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.NotificationsTopic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search falls back to SQL)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	catalogUC := catalogUCPkg.NewCatalogUseCase(catalogRepo, redisClient, esClient, cfg.Elastic.ProductIndex, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, appLogger)
	discountUC := discountUCPkg.NewDiscountUseCase(discountRepo, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(redisClient, catalogUC, appLogger)
	reviewUC := reviewUCPkg.NewReviewUseCase(reviewRepo, appLogger)
	watchUC := watchUCPkg.NewPriceWatchUseCase(watchRepo, appLogger)

	notifier := notification.NewPublisher(kafkaProducer, appLogger)
	estimator := delivery.NewStaticEstimator(cfg.Delivery.BaseMins, cfg.Delivery.PerKmMins, cfg.Delivery.DefaultKms)

	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, invUC, discountUC, catalogUC, notifier, estimator, cartUC, appLogger)

	// 6.5 Start background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feedListener := notifListenerPkg.NewFeedListener(kafkaConsumer, notifRepo, appLogger)
	go feedListener.Start(ctx)

	alertPoller := watchPollerPkg.NewPoller(watchRepo, invUC, notifier, cfg.PriceWatch.Interval, appLogger)
	go alertPoller.Start(ctx)

	// 7. Initialize Handlers
	catalogHandler := catalogH.NewCatalogHandler(catalogUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	discountHandler := discountH.NewDiscountHandler(discountUC, appLogger)
	cartHandler := cartH.NewCartHandler(cartUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)
	reviewHandler := reviewH.NewReviewHandler(reviewUC, appLogger)
	notifHandler := notifH.NewNotificationHandler(notifRepo, appLogger)
	watchHandler := watchH.NewPriceWatchHandler(watchUC, appLogger)

	// 8. Start HTTP Server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	public := e.Group("/api/v1")
	catalogHandler.Register(public)
	reviewHandler.Register(public)

	protected := e.Group("/api/v1", auth.Middleware(cfg.JWT.SecretKey))
	catalogHandler.RegisterProtected(protected)
	reviewHandler.RegisterProtected(protected)
	invHandler.Register(protected)
	discountHandler.Register(protected)
	cartHandler.Register(protected)
	orderHandler.Register(protected)
	notifHandler.Register(protected)
	watchHandler.Register(protected)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := e.Start(port); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
