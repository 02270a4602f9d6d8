package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/L-YS-Ayoussef/EchoPost/internal/analytics"
	"github.com/L-YS-Ayoussef/EchoPost/internal/relay"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/config"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/postgres"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/rabbitmq"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[Analytics] Starting feed-analytics...")

	cfg := config.LoadForService("ANALYTICS")

	// Connect to PostgreSQL
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Analytics] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "analytics"); err != nil {
		log.Fatalf("[Analytics] Failed to run migrations: %v", err)
	}

	// Connect to RabbitMQ
	rmqConn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("[Analytics] Failed to connect to RabbitMQ: %v", err)
	}
	defer rmqConn.Close()

	// Create consumer
	consumer := analytics.NewConsumer(db)

	consumerCfg := rabbitmq.ConsumerConfig{
		QueueName:    "analytics.post.events",
		DLQName:      "dlq.analytics.post.events",
		RoutingKeys:  relay.RoutingKeys(),
		ConsumerName: "feed-analytics",
	}

	if err := rabbitmq.SetupConsumer(rmqConn, consumerCfg, consumer.HandleMessage); err != nil {
		log.Fatalf("[Analytics] Failed to setup consumer: %v", err)
	}

	log.Println("[Analytics] Consumer is running. Waiting for messages...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Analytics] Shutting down...")
}
