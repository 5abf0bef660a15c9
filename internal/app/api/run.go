package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	orderserver "github.com/Apurer/go-gin-order-api/server"

	ordersdirectory "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/directory"
	ordersmemory "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"

	usersmemory "github.com/Apurer/go-gin-order-api/internal/domains/users/adapters/memory"
	usersobs "github.com/Apurer/go-gin-order-api/internal/domains/users/adapters/observability"
	userspostgres "github.com/Apurer/go-gin-order-api/internal/domains/users/adapters/persistence/postgres"
	usersredis "github.com/Apurer/go-gin-order-api/internal/domains/users/adapters/redis"
	usersapp "github.com/Apurer/go-gin-order-api/internal/domains/users/application"
	usersports "github.com/Apurer/go-gin-order-api/internal/domains/users/ports"

	"github.com/Apurer/go-gin-order-api/internal/platform/auth"
	platformmigrations "github.com/Apurer/go-gin-order-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-order-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-api/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-order-api/internal/platform/redis"
)

// Run boots the order HTTP API with observability, repositories, and sessions wired.
func Run(ctx context.Context) error {
	const serviceName = "order-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	orderRepo := buildOrderRepository(db, logger)
	userRepo := buildUserRepository(db, logger)
	sessionStore, cleanupSessions := buildSessionStore(ctx, cfg, db, logger)
	defer cleanupSessions()

	tokenManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	userService := usersobs.New(
		usersapp.NewService(userRepo, sessionStore, tokenManager),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, ordersdirectory.New(userRepo)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	handlers := orderserver.ApiHandleFunctions{
		OrdersAPI: orderserver.NewOrdersAPI(orderService),
		UsersAPI:  orderserver.NewUsersAPI(userService),
	}
	guard := orderserver.NewAuthGuard(tokenManager)

	router := orderserver.NewRouter(handlers, guard)
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("Order API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(db *gorm.DB, logger *slog.Logger) ordersports.Repository {
	if db == nil {
		return ordersmemory.NewRepository()
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db)
}

func buildUserRepository(db *gorm.DB, logger *slog.Logger) usersports.Repository {
	if db == nil {
		return usersmemory.NewRepository()
	}
	logger.Info("user repository configured with postgres")
	return userspostgres.NewRepository(db)
}

// buildSessionStore prefers redis, falls back to postgres, then to memory.
func buildSessionStore(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) (usersports.SessionStore, func()) {
	if cfg.RedisAddr != "" {
		client, err := platformredis.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("failed to connect to redis, falling back session store", slog.String("error", err.Error()))
		} else {
			logger.Info("session store configured with redis", slog.String("addr", cfg.RedisAddr))
			return usersredis.NewSessionStore(client, cfg.SessionTTL), func() { _ = client.Close() }
		}
	}
	if db != nil {
		logger.Info("session store configured with postgres")
		return userspostgres.NewSessionStore(db, cfg.SessionTTL), func() {}
	}
	logger.Warn("session store falling back to in-memory")
	return usersmemory.NewSessionStore(), func() {}
}
