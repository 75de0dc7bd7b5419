package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	fulfillmentapp "github.com/tshirtshop/backend/internal/application/fulfillment"
	identityapp "github.com/tshirtshop/backend/internal/application/identity"
	"github.com/tshirtshop/backend/internal/application/lifecycle"
	orderapp "github.com/tshirtshop/backend/internal/application/order"
	"github.com/tshirtshop/backend/internal/infrastructure/auth"
	"github.com/tshirtshop/backend/internal/infrastructure/cache"
	"github.com/tshirtshop/backend/internal/infrastructure/config"
	"github.com/tshirtshop/backend/internal/infrastructure/event"
	"github.com/tshirtshop/backend/internal/infrastructure/logger"
	"github.com/tshirtshop/backend/internal/infrastructure/persistence"
	"github.com/tshirtshop/backend/internal/infrastructure/telemetry"
	"github.com/tshirtshop/backend/internal/interfaces/http/handler"
	"github.com/tshirtshop/backend/internal/interfaces/http/middleware"
	"github.com/tshirtshop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting t-shirt shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers install themselves globally; disabled providers are no-ops
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	profiler, err := telemetry.StartProfiler(cfg.Profiling, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.LinkSpanProfiles()
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:        log,
		LogLevel:      logger.MapGormLogLevel(cfg.Log.Level),
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	orderedRepo := persistence.NewGormOrderedRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	transactor := persistence.NewTransactor(db.DB)

	priceCache := cache.NewPriceCache(cfg.Redis, log)
	defer func() {
		_ = priceCache.Close()
	}()
	products := cache.NewCachedLookup(productRepo, priceCache, cfg.Redis.PriceTTL, log)

	// Event bus: audit log for every event, metrics for the lifecycle ones
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	lifecycleMetrics, err := telemetry.NewLifecycleMetrics(meterProvider.Meter("tshirtshop/lifecycle"))
	if err != nil {
		log.Fatal("Failed to create lifecycle metrics", zap.Error(err))
	}
	eventBus.Subscribe(lifecycleMetrics)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	authService.SetEventPublisher(eventBus)

	orderService := orderapp.NewOrderService(orderRepo, products, userRepo, orderedRepo)
	carts := orderapp.NewActiveOrderManager(orderRepo, products, userRepo)
	carts.SetEventPublisher(eventBus)
	tracker := fulfillmentapp.NewTracker(orderedRepo, orderRepo, userRepo)
	tracker.SetEventPublisher(eventBus)
	facade := lifecycle.NewFacade(carts, tracker, orderRepo, orderedRepo, transactor)
	facade.SetEventPublisher(eventBus)

	// HTTP engine
	middleware.SetupValidator()
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))

	router.RegisterHealth(engine, handler.NewSystemHandler(db))

	authn := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		Validator: jwtService,
		Logger:    log,
	})
	router.NewRouter(engine,
		router.WithAPIPrefix(cfg.HTTP.APIPrefix),
		router.WithMiddleware(middleware.SpanEnricher()),
	).
		Register(router.AuthRoutes(handler.NewAuthHandler(authService), authn)).
		Register(router.OrderRoutes(handler.NewOrderHandler(orderService, facade), authn)).
		Register(router.OrderedRoutes(handler.NewOrderedHandler(tracker, facade), authn)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop event bus", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down tracer provider", zap.Error(err))
	}

	if err := profiler.Stop(); err != nil {
		log.Error("Failed to stop profiler", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down logger provider", zap.Error(err))
	}
}
