package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/dashboard/config"
	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/handler"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/internal/middleware"
	"github.com/Payphone-Digital/dashboard/internal/repository"
	"github.com/Payphone-Digital/dashboard/internal/router"
	"github.com/Payphone-Digital/dashboard/internal/service"
	"github.com/Payphone-Digital/dashboard/pkg/cache"
	"github.com/Payphone-Digital/dashboard/pkg/database"
	"github.com/Payphone-Digital/dashboard/pkg/health"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"github.com/Payphone-Digital/dashboard/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
		zap.String("db_driver", config.Database.Driver),
	)

	db, err := database.Open(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if err := database.Seed(db, config.Admin); err != nil {
		// Don't fail - the admin may already exist
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	// List cache: redis when enabled, otherwise in process
	var (
		store       cache.Store
		redisPinger handler.Pinger
	)
	if config.Redis.Enabled {
		redisClient, err := redis.NewClient(config)
		if err != nil {
			logger.GetLogger().Fatal("Failed to initialize Redis", zap.Error(err))
		}
		defer redisClient.Close()
		store, redisPinger = redisClient, redisClient
	} else {
		memory := cache.NewCache(time.Minute)
		defer memory.Close()
		store = memory
	}
	listCache := service.NewListCache(store, config.List.CacheTTL)

	// A nil *ListCache inside a non-nil interface would pass the handler's nil check.
	var invalidator handler.Invalidator
	if listCache != nil {
		invalidator = listCache
	}

	logger.GetLogger().Info("List cache initialized",
		zap.Bool("redis", config.Redis.Enabled),
		zap.Bool("enabled", listCache != nil),
		zap.Duration("ttl", config.List.CacheTTL),
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	addressRepo := repository.NewAddressRepository(db)

	// Services
	jwtService := service.NewJWTService(config.JWT.Secret, config.JWT.ExpirationTime)
	userService := service.NewUserService(userRepo, jwtService, listCache)
	articleService := service.NewArticleService(articleRepo, listCache)
	couponService := service.NewCouponService(couponRepo, listCache)
	addressService := service.NewAddressService(addressRepo, listCache)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Background dependency probes
	monitor := health.NewMonitor(30*time.Second, logger.GetLogger(), registry)
	monitor.Register("database", health.CheckFunc(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}))
	if redisPinger != nil {
		monitor.Register("redis", health.CheckFunc(redisPinger.Ping))
	}
	monitor.Start(context.Background())
	defer monitor.Stop()

	listController := func(spec database.ListSpec) *listview.Controller {
		return listview.NewController(listview.Options{
			PageSizeOptions: config.List.PageSizeOptions,
			SortableColumns: spec.Sortable(),
		})
	}

	handlers := router.Handlers{
		User:    handler.NewUserHandler(userService, listController(repository.UserListSpec)),
		Auth:    handler.NewAuthHandler(userService),
		Article: handler.NewArticleHandler(articleService, listController(repository.ArticleListSpec)),
		Coupon:  handler.NewCouponHandler(couponService, listController(repository.CouponListSpec)),
		Address: handler.NewAddressHandler(addressService, listController(repository.AddressListSpec)),
		Health:  handler.NewHealthHandler(db, redisPinger).WithMonitor(monitor),
		Cache:   handler.NewCacheHandler(invalidator),
	}

	jwtMiddleware := middleware.NewJWTMiddleware(jwtService)
	engine := router.NewRouter(handlers, jwtMiddleware, metrics, config).SetupRoutes()

	server := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Server forced to shut down", zap.Error(err))
	}
}
