package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/lorrc/distribution-backend/internal/adapters/primary/http"
	mw "github.com/lorrc/distribution-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/fanout"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/sse"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/websocket"
	"github.com/lorrc/distribution-backend/internal/adapters/secondary/postgres"
	"github.com/lorrc/distribution-backend/internal/auth"
	"github.com/lorrc/distribution-backend/internal/config"
	"github.com/lorrc/distribution-backend/internal/core/services"
	"github.com/lorrc/distribution-backend/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Database
	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(cfg.Database.MigrationsPath, cfg.Database.URL); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	pool, err := newPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database connection established")

	// 4. Security & Real-time Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)

	hub := websocket.NewHub(websocket.Options{
		EnforceEntitlement: cfg.WebSocket.EnforceEntitlement,
		BroadcastBuffer:    cfg.WebSocket.BroadcastBuffer,
		ClientConfig: websocket.ClientConfig{
			WriteWait:    cfg.WebSocket.WriteWait,
			PongWait:     cfg.WebSocket.PongWait,
			PingInterval: cfg.WebSocket.PingInterval,
			SendBuffer:   cfg.WebSocket.SendBuffer,
			ControlRate:  cfg.WebSocket.ControlRate,
			ControlBurst: cfg.WebSocket.ControlBurst,
		},
	}, logger)

	sseBroadcaster := sse.NewBroadcaster(sse.NewRegistry(), sse.Options{
		HeartbeatInterval: cfg.SSE.HeartbeatInterval,
		SendBuffer:        cfg.SSE.SendBuffer,
	}, logger)

	broadcaster := fanout.New(logger,
		fanout.Target{Name: "websocket", Broadcaster: hub},
		fanout.Target{Name: "sse", Broadcaster: sseBroadcaster},
	)

	// 5. Dependency Injection (Wiring the Hexagon)

	// Repositories (Secondary Adapters)
	staffRepo := postgres.NewStaffRepository(pool)
	areaRepo := postgres.NewAreaRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	shopRepo := postgres.NewShopRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txManager := postgres.NewTransactionManager(pool)

	// Services (Core)
	publisher := services.NewEventPublisher(broadcaster, logger)
	authService := services.NewAuthService(staffRepo)
	authzService := services.NewAuthorizationService()
	orderService := services.NewOrderService(orderRepo, productRepo, shopRepo, txManager, authzService, publisher)
	stockService := services.NewStockService(productRepo, txManager, authzService, publisher)
	productService := services.NewProductService(productRepo, categoryRepo, authzService, publisher)
	categoryService := services.NewCategoryService(categoryRepo, authzService, publisher)
	shopService := services.NewShopService(shopRepo, areaRepo, authzService, publisher)
	areaService := services.NewAreaService(areaRepo, authzService, publisher)
	staffService := services.NewStaffService(staffRepo, authzService, publisher)

	// Handlers (Primary Adapters)
	errorHandler := httpAdapter.NewErrorHandler(logger)
	authHandler := httpAdapter.NewAuthHandler(authService, tokenManager, errorHandler, logger)
	meHandler := httpAdapter.NewMeHandler(authzService, errorHandler, logger)
	orderHandler := httpAdapter.NewOrderHandler(orderService, errorHandler, logger)
	productHandler := httpAdapter.NewProductHandler(productService, stockService, errorHandler, logger)
	categoryHandler := httpAdapter.NewCategoryHandler(categoryService, errorHandler, logger)
	shopHandler := httpAdapter.NewShopHandler(shopService, errorHandler, logger)
	areaHandler := httpAdapter.NewAreaHandler(areaService, errorHandler, logger)
	staffHandler := httpAdapter.NewStaffHandler(staffService, errorHandler, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(hub, tokenManager, cfg, logger)
	sseHandler := httpAdapter.NewSSEHandler(sseBroadcaster, tokenManager, logger)
	healthHandler := httpAdapter.NewHealthHandler(pool, cfg.App.Version, map[string]httpAdapter.RealtimeStats{
		"websocket": hub,
		"sse":       sseBroadcaster,
	})

	// 6. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", mw.RequestIDHeader},
		ExposedHeaders:   []string{mw.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoints live outside /api/v1 so orchestrators can reach them unauthenticated
	healthHandler.RegisterRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		// Long-lived streams authenticate inside their handlers and are not rate limited.
		r.Get("/ws", wsHandler.ServeHTTP)
		r.Get("/events/stream", sseHandler.ServeHTTP)

		r.Group(func(r chi.Router) {
			if cfg.RateLimit.Enabled {
				r.Use(mw.NewRateLimiter(ctx, mw.RateLimiterConfig{
					RequestsPerSecond: cfg.RateLimit.AuthRPS,
					BurstSize:         cfg.RateLimit.AuthBurst,
					CleanupInterval:   time.Minute,
					TTL:               5 * time.Minute,
				}).Middleware)
			}
			r.Route("/auth", authHandler.RegisterRoutes)
		})

		// Protected REST routes
		r.Group(func(r chi.Router) {
			if cfg.RateLimit.Enabled {
				r.Use(mw.NewRateLimiter(ctx, mw.RateLimiterConfig{
					RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
					BurstSize:         cfg.RateLimit.BurstSize,
					CleanupInterval:   time.Minute,
					TTL:               3 * time.Minute,
				}).Middleware)
			}
			r.Use(mw.JWTMiddleware(tokenManager))

			r.Route("/me", meHandler.RegisterRoutes)
			r.Route("/orders", orderHandler.RegisterRoutes)
			r.Route("/products", productHandler.RegisterRoutes)
			r.Route("/categories", categoryHandler.RegisterRoutes)
			r.Route("/shops", shopHandler.RegisterRoutes)
			r.Route("/areas", areaHandler.RegisterRoutes)
			r.Route("/staff", staffHandler.RegisterRoutes)
		})
	})

	// 7. Start hub and server, shut both down on signal
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Shutdown does not wait on hijacked or streaming connections; end SSE streams explicitly.
	srv.RegisterOnShutdown(sseBroadcaster.CloseAll)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
