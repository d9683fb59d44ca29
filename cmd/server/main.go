package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/bookdist/backend/internal/application/catalog"
	financeapp "github.com/bookdist/backend/internal/application/finance"
	inventoryapp "github.com/bookdist/backend/internal/application/inventory"
	partnerapp "github.com/bookdist/backend/internal/application/partner"
	procurementapp "github.com/bookdist/backend/internal/application/procurement"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/bookdist/backend/internal/infrastructure/cache"
	"github.com/bookdist/backend/internal/infrastructure/config"
	"github.com/bookdist/backend/internal/infrastructure/event"
	"github.com/bookdist/backend/internal/infrastructure/logger"
	"github.com/bookdist/backend/internal/infrastructure/persistence"
	"github.com/bookdist/backend/internal/infrastructure/telemetry"
	"github.com/bookdist/backend/internal/interfaces/http/handler"
	"github.com/bookdist/backend/internal/interfaces/http/middleware"
	"github.com/bookdist/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Bootstrap logger used until the OTEL log bridge is up
	bootLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Initialize OpenTelemetry providers. Each returns a no-op variant when
	// telemetry is disabled, so the rest of the wiring stays unconditional.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			bootLog.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			bootLog.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize logs provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := logsProvider.Shutdown(shutdownCtx); err != nil {
			bootLog.Error("Error shutting down logs provider", zap.Error(err))
		}
	}()

	// Main logger: writes to the configured output and to the OTEL Collector
	log, err := telemetry.CreateBridgedLoggerFromConfig(&telemetry.BaseLoggerConfig{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, logsProvider, cfg.Telemetry.ServiceName)
	if err != nil {
		bootLog.Fatal("Failed to initialize bridged logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting book distribution backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Continuous profiling (no-op when disabled)
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Profiling.Enabled,
		ServerAddress:       cfg.Profiling.ServerAddress,
		ApplicationName:     cfg.App.Name,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Link trace spans to profiles when both subsystems are on
	if cfg.Profiling.Enabled && cfg.Telemetry.Enabled {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Query tracing and connection pool metrics
	if err := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), log).RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	if _, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log); err != nil {
		log.Warn("Failed to register database metrics", zap.Error(err))
	}

	// Initialize repositories
	bookRepo := persistence.NewGormBookRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	schoolRepo := persistence.NewGormSchoolRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	txnRepo := persistence.NewGormStockTransactionRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	requirementRepo := persistence.NewGormRequirementRepository(db.DB)
	postingRepo := persistence.NewGormLedgerPostingRepository(db.DB)

	// Transaction scope shared by the stock and order services, so a goods
	// receipt or reversal commits or rolls back as a single unit
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	bookService := catalogapp.NewBookService(bookRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	schoolService := partnerapp.NewSchoolService(schoolRepo)
	stockService := inventoryapp.NewStockService(txScope, batchRepo, txnRepo)
	orderService := procurementapp.NewOrderService(txScope, orderRepo, supplierRepo)
	requirementService := procurementapp.NewRequirementService(requirementRepo, schoolRepo, bookRepo)
	ledgerService := financeapp.NewLedgerService(postingRepo)

	// Business metrics fed from domain events plus periodic stock level scans
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:         meterProvider.Meter("bookdist.business"),
		Logger:        log,
		StockProvider: telemetry.NewGormStockMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}
	defer businessMetrics.Stop()
	if cfg.Telemetry.Enabled {
		businessMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
	}

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	shortfallHandler := inventoryapp.NewShortfallHandler(log)
	metricsHandler := procurementapp.NewMetricsHandler(businessMetrics, log)
	eventHandlers := []shared.EventHandler{shortfallHandler, metricsHandler}

	// Deduplicate event deliveries through Redis, falling back to an
	// in-process store when Redis is unreachable
	if cfg.Event.DedupEnabled {
		storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(true),
		)
		store, err := storeFactory.CreateStore()
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		eventHandlers = event.WrapHandlersWithIdempotency(eventHandlers, store, log,
			event.WithIdempotencyConfig(shared.IdempotencyConfig{
				TTL:     cfg.Event.DedupTTL,
				Enabled: true,
			}),
		)
	}
	for _, h := range eventHandlers {
		eventBus.Subscribe(h)
	}

	log.Info("Event handlers registered",
		zap.Strings("shortfall_events", shortfallHandler.EventTypes()),
		zap.Strings("metrics_events", metricsHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	bookService.SetEventPublisher(eventBus)
	supplierService.SetEventPublisher(eventBus)
	stockService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	bookHandler := handler.NewBookHandler(bookService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	schoolHandler := handler.NewSchoolHandler(schoolService, requirementService)
	stockHandler := handler.NewStockHandler(stockService)
	orderHandler := handler.NewOrderHandler(orderService)
	requirementHandler := handler.NewRequirementHandler(requirementService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Request deadline. Mutations run their transaction on the request
	// context, so expiry rolls them back and releases their row locks.
	engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))

	// Observability middleware. Each degrades to a no-op when its subsystem
	// is disabled.
	engine.Use(middleware.Tracing())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetricsWithMeter(meterProvider.Meter("bookdist.http"), cfg.Telemetry.Enabled))
	if cfg.Profiling.Enabled {
		engine.Use(middleware.Profiling())
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog domain (books)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/books", bookHandler.Create)
	catalogRoutes.GET("/books", bookHandler.List)
	catalogRoutes.GET("/books/:id", bookHandler.Get)
	catalogRoutes.GET("/books/isbn/:isbn", bookHandler.GetByISBN)
	catalogRoutes.PUT("/books/:id", bookHandler.Update)
	catalogRoutes.PUT("/books/:id/list-price", bookHandler.SetListPrice)
	catalogRoutes.POST("/books/:id/discontinue", bookHandler.Discontinue)

	// Partner domain (suppliers, schools)
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/suppliers", supplierHandler.Create)
	partnerRoutes.GET("/suppliers", supplierHandler.List)
	partnerRoutes.GET("/suppliers/:id", supplierHandler.Get)
	partnerRoutes.PUT("/suppliers/:id", supplierHandler.Update)
	partnerRoutes.PUT("/suppliers/:id/default-discount", supplierHandler.SetDefaultDiscount)
	partnerRoutes.POST("/suppliers/:id/activate", supplierHandler.Activate)
	partnerRoutes.POST("/suppliers/:id/deactivate", supplierHandler.Deactivate)
	partnerRoutes.POST("/schools", schoolHandler.Create)
	partnerRoutes.GET("/schools", schoolHandler.List)
	partnerRoutes.GET("/schools/:id", schoolHandler.Get)
	partnerRoutes.PUT("/schools/:id", schoolHandler.Update)
	partnerRoutes.PUT("/schools/:id/default-discount", schoolHandler.SetDefaultDiscount)
	partnerRoutes.POST("/schools/:id/deactivate", schoolHandler.Deactivate)
	partnerRoutes.GET("/schools/:id/requirements", schoolHandler.Requirements)

	// Inventory domain (stock ledger, allocation, reversal)
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/stock/receive", stockHandler.Receive)
	inventoryRoutes.POST("/stock/reserve", stockHandler.Reserve)
	inventoryRoutes.POST("/stock/unreserve", stockHandler.Unreserve)
	inventoryRoutes.POST("/stock/allocate", stockHandler.Allocate)
	inventoryRoutes.POST("/stock/allocations/reverse", stockHandler.ReverseAllocation)
	inventoryRoutes.POST("/stock/receipts/reverse", stockHandler.ReverseReceipt)
	inventoryRoutes.GET("/stock/:book_id/free", stockHandler.FreeStock)
	inventoryRoutes.GET("/stock/:book_id/batches", stockHandler.Batches)
	inventoryRoutes.GET("/stock/:book_id/movements", stockHandler.Movements)

	// Procurement domain (purchase orders, school requirements)
	procurementRoutes := router.NewDomainGroup("procurement", "/procurement")
	procurementRoutes.POST("/orders", orderHandler.Create)
	procurementRoutes.GET("/orders", orderHandler.List)
	procurementRoutes.GET("/orders/:id", orderHandler.Get)
	procurementRoutes.POST("/orders/:id/send", orderHandler.MarkSent)
	procurementRoutes.POST("/orders/:id/receipts", orderHandler.ReceiveGoods)
	procurementRoutes.POST("/orders/:id/receipts/undo", orderHandler.UndoReceipt)
	procurementRoutes.POST("/orders/:id/cancel", orderHandler.Cancel)
	procurementRoutes.POST("/requirements", requirementHandler.Submit)
	procurementRoutes.GET("/requirements/open-demand", requirementHandler.OpenDemand)

	// Finance domain (party ledgers)
	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.GET("/ledger/:party_type/:party_id/postings", ledgerHandler.Postings)
	financeRoutes.GET("/ledger/:party_type/:party_id/balance", ledgerHandler.Balance)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(catalogRoutes).
		Register(partnerRoutes).
		Register(inventoryRoutes).
		Register(procurementRoutes).
		Register(financeRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
