package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/cache"
	"github.com/nikolayk812/shopcore/internal/config"
	"github.com/nikolayk812/shopcore/internal/httpapi"
	"github.com/nikolayk812/shopcore/internal/logger"
	"github.com/nikolayk812/shopcore/internal/repository"
	"github.com/nikolayk812/shopcore/internal/service"
	"github.com/nikolayk812/shopcore/internal/shutdown"
	"github.com/nikolayk812/shopcore/internal/telemetry"
	amqp "github.com/rabbitmq/amqp091-go"
)

const serviceName = "shopcore"

func main() {
	if err := run(); err != nil {
		slog.Error("shopcore stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := logger.New(logger.Options{
		Service: serviceName,
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry.Init: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			log.Error("telemetry shutdown", "err", err)
		}
	}()

	pool, err := newPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis.ParseURL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	sinks := []cache.Sink{cache.NewRedisSink(rdb)}

	if cfg.AMQPURL != "" {
		conn, ch, err := dialAMQP(cfg)
		if err != nil {
			return err
		}
		defer conn.Close()
		defer ch.Close()

		sinks = append(sinks, cache.NewAMQPSink(ch, cfg.AMQPExchange))
	}

	notifier, err := cache.NewNotifier(log, cfg.InvalidationBuffer, sinks...)
	if err != nil {
		return fmt.Errorf("cache.NewNotifier: %w", err)
	}
	go notifier.Run()

	uow := repository.NewUnitOfWork(pool)
	products := repository.NewProduct(pool)
	orders := repository.NewOrder(pool)
	carts := repository.NewCart(pool)

	placement, err := service.NewPlacement(log, uow, notifier)
	if err != nil {
		return fmt.Errorf("service.NewPlacement: %w", err)
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := httpapi.NewHandler(log,
		placement,
		service.NewOrders(log, orders, uow),
		service.NewCarts(log, carts),
		service.NewInventory(log, products, notifier, cfg.StoreCurrency),
		cache.NewCatalog(log, products, rdb, cfg.CacheTTL),
		httpapi.Options{
			PlacementTimeout: cfg.PlacementTimeout,
			ExposeErrors:     cfg.IsDev(),
		},
	)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:      handler.Router(serviceName),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown", "err", err)
	}

	// after the server: in-flight requests may still publish
	if err := notifier.Close(shutdownCtx); err != nil {
		log.Error("notifier shutdown", "err", err)
	}

	return nil
}

func newPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.DBMaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}

func dialAMQP(cfg config.Config) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp.Dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("conn.Channel: %w", err)
	}

	if err := cache.DeclareExchange(ch, cfg.AMQPExchange); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}

	return conn, ch, nil
}
