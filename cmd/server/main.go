package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	creditapp "github.com/acaipos/backend/internal/application/credit"
	expenseapp "github.com/acaipos/backend/internal/application/expense"
	financeapp "github.com/acaipos/backend/internal/application/finance"
	identityapp "github.com/acaipos/backend/internal/application/identity"
	reportapp "github.com/acaipos/backend/internal/application/report"
	salesapp "github.com/acaipos/backend/internal/application/sales"
	shiftapp "github.com/acaipos/backend/internal/application/shift"
	"github.com/acaipos/backend/internal/infrastructure/auth"
	"github.com/acaipos/backend/internal/infrastructure/config"
	"github.com/acaipos/backend/internal/infrastructure/logger"
	"github.com/acaipos/backend/internal/infrastructure/persistence"
	"github.com/acaipos/backend/internal/infrastructure/telemetry"
	"github.com/acaipos/backend/internal/interfaces/http/handler"
	"github.com/acaipos/backend/internal/interfaces/http/middleware"
	"github.com/acaipos/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database, with the GORM logger backed by zap
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
	log.Info("Database connected successfully")

	// Repositories and the unit of work
	repos := persistence.NewRepositories(db.DB)
	uow := persistence.NewUnitOfWork(db.DB)

	// Sessions: JWT cookie tokens, Redis-backed revocation
	sessionService := auth.NewSessionService(cfg.Session)
	revoker, err := auth.NewRedisSessionRevoker(auth.RedisSessionRevokerConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Application services
	authService := identityapp.NewAuthService(repos.Users, repos.Shifts, sessionService, revoker, log)
	userService := identityapp.NewUserService(repos.Users, sessionService, revoker, log)
	productionService := shiftapp.NewProductionService(repos.Shifts, repos.Production, log)
	closingService := shiftapp.NewClosingService(uow, repos.Closings, revoker, log)
	saleService := salesapp.NewSaleService(uow, repos.Sales, repos.Shifts, log)
	expenseService := expenseapp.NewExpenseService(repos.Expenses, repos.Shifts, log)
	creditService := creditapp.NewCreditService(uow, repos.Customers, repos.Ledger, log)
	configService := financeapp.NewConfigService(repos.Configs, log)
	reportService := reportapp.NewReportService(
		repos.Configs, repos.Sales, repos.Ledger, repos.Expenses,
		repos.Production, repos.Closings, repos.Customers, repos.Users, log,
	)

	// Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Probes live outside the API group and outside session auth
	systemHandler := handler.NewSystemHandler(db, log)
	systemHandler.Register(engine)

	// Login is the only public API route; it gets its own brute-force guard
	var loginLimiter gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		loginLimiter = middleware.RateLimit(limiter)
		log.Info("Login rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.SessionAuth(middleware.SessionConfig{
		Sessions:   sessionService,
		Revoker:    revoker,
		CookieName: cfg.Session.CookieName,
		Cookie:     cfg.Cookie,
		SkipPaths:  []string{"/api/v1/auth/login"},
		Logger:     log,
	}))

	adminOnly := middleware.RequireAdmin()
	requireShift := middleware.RequireShift()

	r.Register(
		handler.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Cookie, loginLimiter, log),
		handler.NewUserHandler(userService, adminOnly, log),
		handler.NewShiftHandler(productionService, closingService, requireShift, cfg.Session.CookieName, cfg.Cookie, log),
		handler.NewSalesHandler(saleService, requireShift, log),
		handler.NewExpenseHandler(expenseService, adminOnly, log),
		handler.NewCreditHandler(creditService, log),
		handler.NewFinanceHandler(configService, adminOnly, log),
		handler.NewReportHandler(reportService, adminOnly, log),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
