package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	catalogListener "github.com/fekuna/omnipos-storefront-service/internal/catalog/listener"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/database/postgres"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/grpcserver"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/migrations"

	policyH "github.com/fekuna/omnipos-storefront-service/internal/policy/handler"
	policyRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/policy/repository"
	policyUCPkg "github.com/fekuna/omnipos-storefront-service/internal/policy/usecase"

	promoH "github.com/fekuna/omnipos-storefront-service/internal/promotion/handler"
	promoRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/promotion/repository"
	promoUCPkg "github.com/fekuna/omnipos-storefront-service/internal/promotion/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize i18n
	translator, err := i18n.New()
	if err != nil {
		appLogger.Fatal("Could not load locales", zap.Error(err))
	}
	if cfg.Server.LocalesDir != "" {
		loadLocales(translator, cfg.Server.LocalesDir, appLogger)
	}

	// 4. Connect to Database
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

	if cfg.Postgres.Migrate {
		if err := migrations.Up(db); err != nil {
			appLogger.Fatal("Could not apply migrations", zap.Error(err))
		}
		appLogger.Info("Database migrations applied")
	}

	// 5. Initialize Redis. The service keeps running uncached without it.
	var store cache.Store
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			store = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize Repositories and UseCases
	policyUC := policyUCPkg.NewPolicyUseCase(policyRepoPkg.NewPGRepository(db), store, cfg.Cache.PolicyTTL, appLogger)
	promoUC := promoUCPkg.NewPromotionUseCase(promoRepoPkg.NewPGRepository(db), store, cfg.Cache.ListingTTL, cfg.Promotion, appLogger)

	// 7. Initialize Handlers
	router := newRouter(cfg, appLogger, translator,
		policyH.NewPolicyHandler(policyUC, translator, appLogger),
		promoH.NewPromotionHandler(promoUC, translator, appLogger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// 8. Start Catalog Listener
	if cfg.Kafka.Enabled && redisClient != nil {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		listener := catalogListener.NewCatalogListener(kafkaConsumer, redisClient,
			promoUCPkg.CacheKeyPrefix, policyUCPkg.CacheKeyPrefix, appLogger)
		g.Go(func() error {
			listener.Start(gctx)
			return nil
		})
	}

	// 9. Start HTTP and gRPC Servers
	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	grpcServer := grpcserver.New(appLogger)
	g.Go(func() error {
		return grpcServer.Serve(gctx, cfg.Server.GRPCPort)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server stopped")
}

// loadLocales overlays active.*.json files from dir onto the embedded
// bundle and returns how many were loaded.
func loadLocales(tr *i18n.Translator, dir string, log logger.ZapLogger) int {
	pattern := filepath.Join(dir, "active.*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		log.Warn("Invalid locales directory", zap.String("pattern", pattern), zap.Error(err))
		return 0
	}
	loaded := 0
	for _, f := range files {
		if err := tr.Load(f); err != nil {
			log.Warn("Failed to load locale file", zap.String("path", f), zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
