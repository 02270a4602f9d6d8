package postgres

import (
	"database/sql"
	"log"
)

// RunMigrations executes database migrations.
func RunMigrations(db *sql.DB, service string) error {
	migrations := getServiceMigrations(service)
	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Printf("Migrations completed for service: %s", service)
	return nil
}

func getServiceMigrations(service string) []string {
	feed := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			status VARCHAR(255) NOT NULL DEFAULT 'I am new!',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id VARCHAR(36) PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			image_url TEXT NOT NULL,
			owner_id VARCHAR(36) NOT NULL REFERENCES users(id),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_feed_order ON posts (created_at DESC, id ASC)`,
		`CREATE TABLE IF NOT EXISTS user_posts (
			user_id VARCHAR(36) NOT NULL REFERENCES users(id),
			post_id VARCHAR(36) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, post_id)
		)`,
	}

	switch service {
	case "feed":
		return feed
	case "analytics":
		return []string{
			`CREATE TABLE IF NOT EXISTS idempotency_keys (
				event_id VARCHAR(36) PRIMARY KEY,
				processed_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS post_metrics (
				id SERIAL PRIMARY KEY,
				metric_date DATE NOT NULL,
				action VARCHAR(50) NOT NULL,
				count INTEGER NOT NULL DEFAULT 0,
				UNIQUE(metric_date, action)
			)`,
		}
	default:
		return feed
	}
}
