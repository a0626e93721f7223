package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/libreria/sales-service/config"
	"github.com/libreria/sales-service/internal/server"
	"github.com/libreria/sales-service/pkg/cache"
	"github.com/libreria/sales-service/pkg/database/postgres"
	"github.com/libreria/sales-service/pkg/logger"
	"github.com/libreria/sales-service/pkg/search"

	catH "github.com/libreria/sales-service/internal/catalog/handler"
	catRepoPkg "github.com/libreria/sales-service/internal/catalog/repository"
	catUCPkg "github.com/libreria/sales-service/internal/catalog/usecase"

	cartH "github.com/libreria/sales-service/internal/cart/handler"
	cartRepoPkg "github.com/libreria/sales-service/internal/cart/repository"
	cartUCPkg "github.com/libreria/sales-service/internal/cart/usecase"

	saleH "github.com/libreria/sales-service/internal/sale/handler"
	saleRepoPkg "github.com/libreria/sales-service/internal/sale/repository"
	saleUCPkg "github.com/libreria/sales-service/internal/sale/usecase"

	stockH "github.com/libreria/sales-service/internal/stock/handler"
	stockRepoPkg "github.com/libreria/sales-service/internal/stock/repository"
	stockUCPkg "github.com/libreria/sales-service/internal/stock/usecase"

	reportH "github.com/libreria/sales-service/internal/report/handler"
	reportRepoPkg "github.com/libreria/sales-service/internal/report/repository"
	reportUCPkg "github.com/libreria/sales-service/internal/report/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
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

	// 4. Initialize Redis
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

	// 5. Initialize Elasticsearch (optional; catalog search falls back to SQL)
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (catalog search falls back to SQL)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)
	saleRepo := saleRepoPkg.NewPGRepository(db)
	reportRepo := reportRepoPkg.NewPGRepository(db)
	cartRepo := cartRepoPkg.NewRedisRepository(redisClient, time.Duration(cfg.Store.CartTTLSeconds)*time.Second)
	pendingStore := saleRepoPkg.NewRedisPendingStore(redisClient, time.Duration(cfg.Store.PendingTTLSeconds)*time.Second)

	// 7. Initialize UseCases
	catUC := catUCPkg.NewCatalogUseCase(catRepo, esClient, appLogger)
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, catRepo, cfg.Store.DefaultWarehouseID, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, catRepo, stockRepo, appLogger)
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, pendingStore, cartUC, redisClient, saleUCPkg.Options{
		DefaultWarehouseID: cfg.Store.DefaultWarehouseID,
		WhatsAppNumber:     cfg.Store.WhatsAppNumber,
	}, appLogger)
	reportUC := reportUCPkg.NewReportUseCase(reportRepo, appLogger)

	// 8. Initialize Handlers and Routes
	mux := http.NewServeMux()
	admin := server.RequireAdmin(cfg.Store.AdminToken)

	catH.NewCatalogHandler(catUC, appLogger).Register(mux)
	cartH.NewCartHandler(cartUC, appLogger).Register(mux)
	saleH.NewSaleHandler(saleUC, appLogger).Register(mux, admin)
	stockH.NewStockHandler(stockUC, appLogger).Register(mux, admin)
	reportH.NewReportHandler(reportUC, appLogger).Register(mux, admin)

	// 9. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: server.RequestLogger(appLogger)(mux),
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("shutdown error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
