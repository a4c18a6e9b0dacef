package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	inventoryapp "github.com/coldstore/backend/internal/application/inventory"
	ledgerapp "github.com/coldstore/backend/internal/application/ledger"
	partnerapp "github.com/coldstore/backend/internal/application/partner"
	"github.com/coldstore/backend/internal/infrastructure/cache"
	"github.com/coldstore/backend/internal/infrastructure/config"
	"github.com/coldstore/backend/internal/infrastructure/logger"
	"github.com/coldstore/backend/internal/infrastructure/persistence"
	"github.com/coldstore/backend/internal/infrastructure/telemetry"
	"github.com/coldstore/backend/internal/interfaces/http/handler"
	"github.com/coldstore/backend/internal/interfaces/http/middleware"
	"github.com/coldstore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting cold storage backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry: tracer, meter, continuous profiler
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiler.Enabled,
		ServerAddress:   cfg.Profiler.ServerAddress,
		ApplicationName: cfg.App.Name,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected")

	// Balance cache: Redis when configured, in-process otherwise
	var balanceCache ledgerapp.BalanceCache
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		balanceCache = cache.NewRedisBalanceCache(redisClient,
			cache.WithBalanceCacheLogger(log))
		log.Info("Redis balance cache enabled", zap.String("addr", cfg.Redis.RedisAddr()))
	} else {
		balanceCache = cache.NewMemoryBalanceCache()
		log.Info("In-memory balance cache enabled")
	}

	// Repositories
	cashbookRepo := persistence.NewGormCashbookRepository(db.DB)
	accountRepo := persistence.NewGormBankAccountRepository(db.DB)
	openingRepo := persistence.NewGormOpeningBalanceRepository(db.DB)
	buyerRepo := persistence.NewGormBuyerRepository(db.DB)
	farmerRepo := persistence.NewGormFarmerRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)

	salesACL := persistence.NewSalesACL(db.DB)
	directoryACL := persistence.NewDirectoryACL(buyerRepo, farmerRepo)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Application services
	cashbookService := ledgerapp.NewCashbookService(
		cashbookRepo, accountRepo, salesACL, salesACL, directoryACL, directoryACL, uow)
	balanceService := ledgerapp.NewBalanceService(
		cashbookRepo, accountRepo, openingRepo, balanceCache, cfg.Ledger.StartMonth())
	dueService := ledgerapp.NewDueService(
		cashbookRepo, buyerRepo, farmerRepo, salesACL, directoryACL)
	accountService := ledgerapp.NewAccountService(accountRepo, openingRepo)
	partnerService := partnerapp.NewPartnerService(buyerRepo, farmerRepo)
	saleService := inventoryapp.NewSaleService(saleRepo, directoryACL)

	var cashbookMetrics *telemetry.CashbookMetrics
	if meterProvider.IsEnabled() {
		cashbookMetrics, err = telemetry.NewCashbookMetrics(meterProvider)
		if err != nil {
			log.Warn("Failed to create cashbook metrics", zap.Error(err))
		}
	}

	// HTTP engine and middleware chain
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TenantMiddleware())

	// Health endpoint sits outside the tenant requirement
	systemHandler := handler.NewSystemHandler(db, version)
	engine.GET("/healthz", systemHandler.Healthz)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewCashbookHandler(cashbookService, cashbookMetrics))
	r.Register(handler.NewBalanceHandler(balanceService, cfg.Ledger.StartMonth()))
	r.Register(handler.NewDueHandler(dueService))
	r.Register(handler.NewBankAccountHandler(accountService))
	r.Register(handler.NewPartnerHandler(partnerService))
	r.Register(handler.NewSaleHandler(saleService))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter shutdown failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Profiler stop failed", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
