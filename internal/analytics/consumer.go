// Package analytics consumes relayed post change events and aggregates
// per-day mutation counts. Broker redelivery makes duplicates possible, so
// every event is checked against the idempotency_keys table before counting.
package analytics

import (
	"database/sql"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

// Consumer handles post change events for analytics.
type Consumer struct {
	DB *sql.DB
}

// NewConsumer creates a new analytics consumer.
func NewConsumer(db *sql.DB) *Consumer {
	return &Consumer{DB: db}
}

// HandleMessage processes a post change event.
func (c *Consumer) HandleMessage(delivery amqp.Delivery) error {
	var event models.ChangeEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		log.Printf("[Analytics] Failed to unmarshal event: %v correlation_id=%s", err, delivery.CorrelationId)
		return err
	}

	log.Printf("[Analytics] Processing event: action=%s event_id=%s correlation_id=%s",
		event.Action, event.EventID, event.CorrelationID)

	// Idempotency check
	var exists bool
	err := c.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM idempotency_keys WHERE event_id = $1)", event.EventID).Scan(&exists)
	if err != nil {
		log.Printf("[Analytics] Error checking idempotency: %v correlation_id=%s", err, event.CorrelationID)
		return err
	}
	if exists {
		log.Printf("[Analytics] Duplicate event ignored: event_id=%s correlation_id=%s", event.EventID, event.CorrelationID)
		return nil
	}

	// Upsert the per-day count for this mutation kind
	metricDate := event.Timestamp.Format("2006-01-02")
	_, err = c.DB.Exec(
		`INSERT INTO post_metrics (metric_date, action, count)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (metric_date, action)
		 DO UPDATE SET count = post_metrics.count + 1`,
		metricDate, string(event.Action),
	)
	if err != nil {
		log.Printf("[Analytics] Error upserting metrics: %v correlation_id=%s", err, event.CorrelationID)
		return err
	}

	// Record idempotency key
	_, _ = c.DB.Exec("INSERT INTO idempotency_keys (event_id) VALUES ($1) ON CONFLICT DO NOTHING", event.EventID)

	log.Printf("[Analytics] Metrics updated: date=%s action=%s correlation_id=%s",
		metricDate, event.Action, event.CorrelationID)

	return nil
}
