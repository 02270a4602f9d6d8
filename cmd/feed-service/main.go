package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/L-YS-Ayoussef/EchoPost/internal/api"
	"github.com/L-YS-Ayoussef/EchoPost/internal/assets"
	"github.com/L-YS-Ayoussef/EchoPost/internal/bus"
	"github.com/L-YS-Ayoussef/EchoPost/internal/feed"
	"github.com/L-YS-Ayoussef/EchoPost/internal/relay"
	"github.com/L-YS-Ayoussef/EchoPost/internal/store"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/config"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/postgres"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/rabbitmq"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/token"

	_ "github.com/L-YS-Ayoussef/EchoPost/docs"
)

// @title           EchoPost Feed API
// @version         1.0
// @description     A multi-user content feed: authorized post mutations, live change broadcast over WebSocket, image asset lifecycle and event relay to RabbitMQ.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[Feed] Starting feed-service...")

	cfg := config.Load()

	// Connect to PostgreSQL
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Feed] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "feed"); err != nil {
		log.Fatalf("[Feed] Failed to run migrations: %v", err)
	}

	// Image asset store
	images, err := assets.NewDiskStore(cfg.ImageDir)
	if err != nil {
		log.Fatalf("[Feed] Failed to create image store: %v", err)
	}
	lifecycle := assets.NewLifecycle(images)

	// In-process broadcast bus
	b := bus.New()
	defer b.Close()

	// Connect to RabbitMQ and relay bus events to the broker
	rmqConn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("[Feed] Failed to connect to RabbitMQ: %v", err)
	}
	defer rmqConn.Close()

	publisher, err := rabbitmq.NewPublisher(rmqConn)
	if err != nil {
		log.Fatalf("[Feed] Failed to create publisher: %v", err)
	}
	defer publisher.Close()

	rly := relay.Start(b, publisher)

	// Stores and services
	posts := store.NewPostgresPostStore(db)
	users := store.NewPostgresUserStore(db)
	feedSvc := feed.NewService(posts, images, lifecycle, b)
	tokens := token.NewManager(cfg.JWTSecret, token.DefaultTTL)

	// Handlers and router
	router := api.NewRouter(api.RouterConfig{
		Feed:     api.NewFeedHandler(feedSvc),
		Auth:     api.NewAuthHandler(users, tokens),
		Images:   api.NewImageHandler(images, lifecycle),
		WS:       api.NewWSHandler(b),
		Tokens:   tokens,
		ImageDir: cfg.ImageDir,
	})

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	go func() {
		log.Printf("[Feed] Listening on port %s", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Feed] Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Feed] Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[Feed] Server forced to shutdown: %v", err)
	}

	rly.Stop()
	lifecycle.Wait()
	log.Println("[Feed] Server exited gracefully")
}
