package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/auth"
	"github.com/junaidrashid-git/shopfront-api/config"
	cartControllers "github.com/junaidrashid-git/shopfront-api/controllers/cart"
	orderControllers "github.com/junaidrashid-git/shopfront-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/shopfront-api/controllers/product"
	userControllers "github.com/junaidrashid-git/shopfront-api/controllers/user"
	"github.com/junaidrashid-git/shopfront-api/events"
	"github.com/junaidrashid-git/shopfront-api/routes"
	"github.com/junaidrashid-git/shopfront-api/store"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("✅ Starting application...")
	if err := run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// run owns every resource so its deferred closes happen on any exit path.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Init DB
	gw, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}
	defer gw.Close()

	if cfg.AutoMigrate {
		if err := gw.Migrate(); err != nil {
			return fmt.Errorf("AutoMigrate failed: %w", err)
		}
	}

	// Events: websocket feed always, Kafka when brokers are configured
	feed := orderControllers.NewFeed()
	defer feed.Close()
	publisher := events.Fanout{feed}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.KafkaBrokers, 5)
		if err != nil {
			log.Printf("⚠️ Kafka unavailable, events stay local: %v", err)
		} else {
			defer kafka.Close()
			publisher = append(publisher, kafka)
		}
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AdminTokenTTL)
	revoker := newRevoker(cfg)

	users := store.NewUserStore(gw)
	products := store.NewProductStore(gw)
	carts := store.NewCartStore(gw)
	orders := store.NewOrderStore(gw)

	r := routes.NewEngine(routes.Deps{
		Accounts:  userControllers.NewService(users, tokens, revoker, publisher),
		Catalog:   productcontroller.NewService(products, publisher),
		Carts:     cartControllers.NewService(carts, publisher),
		Orders:    orderControllers.NewService(orders, publisher),
		Feed:      feed,
		Tokens:    tokens,
		Revoker:   revoker,
		Health:    gw.Ping,
		AccessLog: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	return serve(ctx, srv, 15*time.Second)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
// A listener failure is returned instead of exiting the process.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newRevoker uses Redis when REDIS_ADDR is set and reachable, so logouts hold
// across instances; otherwise revocations live in this process only.
func newRevoker(cfg config.Config) auth.Revoker {
	if cfg.RedisAddr == "" {
		return auth.NewMemoryRevoker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable at %s, token revocation is in-memory: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return auth.NewMemoryRevoker()
	}
	log.Printf("✅ Redis connected at %s", cfg.RedisAddr)
	return auth.NewRedisRevoker(client)
}
