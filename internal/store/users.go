package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

const userColumns = "id, email, password_hash, name, status, created_at, updated_at"

// PostgresUserStore implements UserStore on PostgreSQL.
type PostgresUserStore struct {
	DB *sql.DB
}

// NewPostgresUserStore creates a new PostgresUserStore.
func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{DB: db}
}

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, name, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		user.ID, user.Email, user.PasswordHash, user.Name, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.scanUser(s.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		return nil, err
	}
	user.Posts, err = s.PostIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (s *PostgresUserStore) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE users SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresUserStore) PostIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT post_id FROM user_posts WHERE user_id = $1 ORDER BY created_at ASC, post_id ASC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresUserStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
