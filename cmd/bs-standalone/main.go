package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tuanvumaihuynh/bizsuite/internal/auth"
	"github.com/tuanvumaihuynh/bizsuite/internal/config"
	"github.com/tuanvumaihuynh/bizsuite/internal/event"
	"github.com/tuanvumaihuynh/bizsuite/internal/http"
	"github.com/tuanvumaihuynh/bizsuite/internal/http/metric"
	"github.com/tuanvumaihuynh/bizsuite/internal/log"
	"github.com/tuanvumaihuynh/bizsuite/internal/relay"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/cache"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/mq"
	"github.com/tuanvumaihuynh/bizsuite/internal/telemetry"
	"github.com/tuanvumaihuynh/bizsuite/pkg/cmdutil"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log       config.Log
		Postgres  config.Postgres
		HTTP      config.HTTP
		Relay     config.Relay
		Kafka     config.Kafka
		Otel      config.Otel
		Redis     config.Redis
		Auth      config.Auth
		POS       config.POS
		Dashboard config.Dashboard
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	var (
		appCache    cache.Cache       = cache.NopCache{}
		rateLimiter cache.RateLimiter = cache.NewMemoryRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateLimitWindow)
		cartRepo                      = repository.NewMemoryCartRepository(cfg.POS.CartTTL)
	)
	if cfg.Redis.Enabled() {
		var rdb *redis.Client
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("error creating redis client: %w", err)
		}
		defer rdb.Close()

		appCache = cache.NewRedisCache(rdb)
		rateLimiter = cache.NewRedisRateLimiter(rdb, "auth", cfg.Auth.RateLimit, cfg.Auth.RateLimitWindow)
		cartRepo = repository.NewRedisCartRepository(rdb, cfg.POS.CartTTL)
	} else {
		logger.WarnContext(ctx, "redis is not configured, using in-process carts and rate limits")
	}

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}
	defer kafkaConsumer.Close()

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	metrics := metric.New()
	settings := service.NewSettings(cfg.POS)

	userRepository := repository.NewUserRepository(dbClient)
	leadRepository := repository.NewLeadRepository(dbClient)
	interactionRepository := repository.NewLeadInteractionRepository(dbClient)
	categoryRepository := repository.NewCategoryRepository(dbClient)
	supplierRepository := repository.NewSupplierRepository(dbClient)
	productRepository := repository.NewProductRepository(dbClient)
	orderRepository := repository.NewOrderRepository(dbClient)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	services := http.Services{
		Auth:    service.NewAuthService(userRepository, auth.NewTokenManager(cfg.Auth)),
		User:    service.NewUserService(userRepository),
		Lead:    service.NewLeadService(logger, appCache, leadRepository, interactionRepository),
		Catalog: service.NewCatalogService(categoryRepository, supplierRepository),
		Product: service.NewProductService(logger, appCache, dbClient, productRepository, outboxMsgRepository),
		Order:   service.NewOrderService(dbClient, orderRepository, productRepository, outboxMsgRepository),
		POS: service.NewPOSService(logger, dbClient, settings, cartRepo,
			productRepository, orderRepository, outboxMsgRepository, metrics),
		Dashboard: service.NewDashboardService(logger, appCache, cfg.Dashboard.CacheTTL,
			orderRepository, leadRepository, productRepository),
		Settings: settings,
		Health:   dbClient,
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := event.New(logger, kafkaConsumer, appCache)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running event service: %w", err))
		}
		logger.InfoContext(ctx, "event service started")

		<-interruptChan

		logger.InfoContext(ctx, "event service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, metrics, v, rateLimiter, services)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		<-interruptChan

		logger.InfoContext(ctx, "relay service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Wait()

	return nil
}
