package store

import (
	"context"
	"testing"
	"time"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func postRows(posts ...models.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "content", "image_url", "owner_id", "created_at", "updated_at"})
	for _, p := range posts {
		rows.AddRow(p.ID, p.Title, p.Content, p.ImageURL, p.OwnerID, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func samplePost(id string) models.Post {
	now := time.Now()
	return models.Post{
		ID:        id,
		Title:     "title-" + id,
		Content:   "content-" + id,
		ImageURL:  "images/" + id + ".png",
		OwnerID:   "user-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostGetByID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	want := samplePost("post-1")
	mock.ExpectQuery("SELECT (.+) FROM posts WHERE id = \\$1").
		WithArgs("post-1").
		WillReturnRows(postRows(want))

	s := NewPostgresPostStore(db)
	got, err := s.GetByID(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != want.ID || got.Title != want.Title || got.OwnerID != want.OwnerID {
		t.Errorf("unexpected post: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestPostGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE id = \\$1").
		WithArgs("nonexistent").
		WillReturnRows(postRows())

	s := NewPostgresPostStore(db)
	if _, err := s.GetByID(context.Background(), "nonexistent"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostList_OrderAndWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	p1 := samplePost("post-1")
	p2 := samplePost("post-2")
	mock.ExpectQuery("SELECT (.+) FROM posts ORDER BY created_at DESC, id ASC OFFSET \\$1 LIMIT \\$2").
		WithArgs(2, 2).
		WillReturnRows(postRows(p1, p2))

	s := NewPostgresPostStore(db)
	posts, err := s.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestPostCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM posts").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	s := NewPostgresPostStore(db)
	count, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 7 {
		t.Errorf("expected count 7, got %d", count)
	}
}

func TestPostCreate_InsertsPostAndBackReferenceInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	p := samplePost("post-1")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO posts").
		WithArgs(p.ID, p.Title, p.Content, p.ImageURL, p.OwnerID, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO user_posts").
		WithArgs(p.OwnerID, p.ID, p.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	s := NewPostgresPostStore(db)
	if err := s.Create(context.Background(), &p); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestPostCreate_RollsBackWhenBackReferenceFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	p := samplePost("post-1")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO posts").
		WithArgs(p.ID, p.Title, p.Content, p.ImageURL, p.OwnerID, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO user_posts").
		WithArgs(p.OwnerID, p.ID, p.CreatedAt).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	s := NewPostgresPostStore(db)
	if err := s.Create(context.Background(), &p); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestPostUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	p := samplePost("ghost")
	mock.ExpectExec("UPDATE posts SET").
		WithArgs(p.Title, p.Content, p.ImageURL, p.UpdatedAt, p.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewPostgresPostStore(db)
	if err := s.Update(context.Background(), &p); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostDelete_RemovesPostAndBackReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_posts WHERE user_id = \\$1 AND post_id = \\$2").
		WithArgs("user-1", "post-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM posts WHERE id = \\$1").
		WithArgs("post-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewPostgresPostStore(db)
	if err := s.Delete(context.Background(), "post-1", "user-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestPostDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_posts WHERE user_id = \\$1 AND post_id = \\$2").
		WithArgs("user-1", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM posts WHERE id = \\$1").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	s := NewPostgresPostStore(db)
	if err := s.Delete(context.Background(), "ghost", "user-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
