package store

import (
	"context"
	"database/sql"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"
)

const postColumns = "id, title, content, image_url, owner_id, created_at, updated_at"

// PostgresPostStore implements PostStore on PostgreSQL.
type PostgresPostStore struct {
	DB *sql.DB
}

// NewPostgresPostStore creates a new PostgresPostStore.
func NewPostgresPostStore(db *sql.DB) *PostgresPostStore {
	return &PostgresPostStore{DB: db}
}

func (s *PostgresPostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := s.DB.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = $1", id).
		Scan(&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresPostStore) List(ctx context.Context, offset, limit int) ([]models.Post, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts ORDER BY created_at DESC, id ASC OFFSET $1 LIMIT $2",
		offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (s *PostgresPostStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PostgresPostStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Post, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE owner_id = $1 ORDER BY created_at DESC, id ASC",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// Create inserts the post row and the owner's back-reference in one transaction
// so the user's post list can never disagree with the posts table.
func (s *PostgresPostStore) Create(ctx context.Context, post *models.Post) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO posts (id, title, content, image_url, owner_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		post.ID, post.Title, post.Content, post.ImageURL, post.OwnerID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO user_posts (user_id, post_id, created_at) VALUES ($1, $2, $3)",
		post.OwnerID, post.ID, post.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresPostStore) Update(ctx context.Context, post *models.Post) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE posts SET title = $1, content = $2, image_url = $3, updated_at = $4 WHERE id = $5",
		post.Title, post.Content, post.ImageURL, post.UpdatedAt, post.ID,
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

func (s *PostgresPostStore) Delete(ctx context.Context, id, ownerID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM user_posts WHERE user_id = $1 AND post_id = $2", ownerID, id)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
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

	return tx.Commit()
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
