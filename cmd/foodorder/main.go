package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Mainak-2006/rn-zomato/internal/catalog"
	"github.com/Mainak-2006/rn-zomato/internal/config"
	"github.com/Mainak-2006/rn-zomato/internal/db"
	"github.com/Mainak-2006/rn-zomato/internal/dedup"
	"github.com/Mainak-2006/rn-zomato/internal/events"
	httpserver "github.com/Mainak-2006/rn-zomato/internal/http"
	"github.com/Mainak-2006/rn-zomato/internal/identity"
	"github.com/Mainak-2006/rn-zomato/internal/session"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[foodorder] ", log.LstdFlags|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- catalog DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	var provider catalog.Provider = catalog.NewPostgresRepository(pool)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatalf("parse REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Printf("redis unavailable, catalog cache will fall through: %v", err)
		}
		cache := catalog.NewCachedProvider(provider, rdb, cfg.CatalogCacheTTL, logger)
		if cfg.RunMigrations {
			// seed data may have changed
			if err := cache.Invalidate(ctx); err != nil {
				logger.Printf("catalog cache invalidate: %v", err)
			}
		}
		provider = cache
		logger.Printf("catalog cache enabled (ttl=%s)", cfg.CatalogCacheTTL)
	}

	catalogSvc := catalog.NewService(provider)

	// --- events ---
	var (
		publisher session.Publisher = events.NopPublisher{}
		conn      *amqp.Connection
	)
	if cfg.PublishEvents {
		conn, err = events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("create publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	} else {
		logger.Printf("event publishing disabled; payment confirmations will not be consumed")
	}

	sessions := session.NewRegistry(publisher, logger)

	if conn != nil {
		handler := events.PaymentConfirmedHandler(sessions, dedup.NewRepository(pool), logger)
		if err := events.StartConsumer(ctx, conn, events.PaymentConfirmedRoutingKey, handler, logger); err != nil {
			logger.Fatalf("start payment consumer: %v", err)
		}
	}

	// --- HTTP ---
	var verifier *identity.Verifier
	if cfg.JWTSecret != "" {
		verifier = identity.NewVerifier(cfg.JWTSecret)
	} else {
		logger.Printf("JWT_SECRET not set; trusting %s header", identity.HeaderUserID)
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Catalog:          httpserver.NewCatalogHandler(catalogSvc, cfg.RequestTimeout, logger),
		Me:               httpserver.NewMeHandler(sessions, catalogSvc, cfg.RequestTimeout, logger),
		Verifier:         verifier,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("http listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Printf("http server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
	stop()

	logger.Printf("shutdown complete")
}
