package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/afifurrozaq/tillpos/config"
	"github.com/afifurrozaq/tillpos/internal/broker"
	"github.com/afifurrozaq/tillpos/internal/cache"
	categoryhandler "github.com/afifurrozaq/tillpos/internal/category/handler"
	categoryrepo "github.com/afifurrozaq/tillpos/internal/category/repository"
	categoryusecase "github.com/afifurrozaq/tillpos/internal/category/usecase"
	"github.com/afifurrozaq/tillpos/internal/database"
	"github.com/afifurrozaq/tillpos/internal/logger"
	producthandler "github.com/afifurrozaq/tillpos/internal/product/handler"
	productrepo "github.com/afifurrozaq/tillpos/internal/product/repository"
	productusecase "github.com/afifurrozaq/tillpos/internal/product/usecase"
	salehandler "github.com/afifurrozaq/tillpos/internal/sale/handler"
	salelistener "github.com/afifurrozaq/tillpos/internal/sale/listener"
	salerepo "github.com/afifurrozaq/tillpos/internal/sale/repository"
	saleusecase "github.com/afifurrozaq/tillpos/internal/sale/usecase"
	"github.com/afifurrozaq/tillpos/internal/search"
	"github.com/afifurrozaq/tillpos/internal/server"
	statshandler "github.com/afifurrozaq/tillpos/internal/stats/handler"
	statsrepo "github.com/afifurrozaq/tillpos/internal/stats/repository"
	statsusecase "github.com/afifurrozaq/tillpos/internal/stats/usecase"
	stockrepo "github.com/afifurrozaq/tillpos/internal/stock/repository"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(&database.Config{
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
		appLogger.Fatal("Failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Elasticsearch unavailable, search falls back to database", zap.Error(err))
		esClient = nil
	}

	ledger := stockrepo.NewPGLedger(db)

	productRepo := productrepo.NewPGRepository(db, ledger)
	productUC := productusecase.NewProductUseCase(productRepo, ledger, redisClient, esClient, appLogger)

	categoryRepo := categoryrepo.NewPGRepository(db)
	categoryUC := categoryusecase.NewCategoryUseCase(categoryRepo, redisClient, appLogger)

	saleRepo := salerepo.NewPGRepository(db, ledger)
	saleUC := saleusecase.NewSaleUseCase(saleRepo, redisClient, appLogger)

	statsRepo := statsrepo.NewPGRepository(db)
	statsUC := statsusecase.NewStatsUseCase(statsRepo, appLogger)

	consumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer consumer.Close()

	listener := salelistener.NewSaleListener(consumer, saleUC, appLogger)
	go listener.Start(ctx)

	srv := server.NewServer(cfg, appLogger, server.Handlers{
		Product:  producthandler.NewProductHandler(productUC, appLogger),
		Category: categoryhandler.NewCategoryHandler(categoryUC, appLogger),
		Sale:     salehandler.NewSaleHandler(saleUC, appLogger),
		Stats:    statshandler.NewStatsHandler(statsUC, appLogger),
	})

	if err := srv.Run(ctx); err != nil {
		appLogger.Fatal("HTTP server error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
