package comments

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"aniflux/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps the comment log in a single SQLite file, the only
// durable state this process owns.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the comment database at path and applies
// pending migrations.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open comments db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping comments db: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate comments db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) List(ctx context.Context, contentID string) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content_id, author, body, created_at
		 FROM comments WHERE content_id = ? ORDER BY created_at ASC, id ASC`,
		contentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ContentID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Add(ctx context.Context, c models.Comment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (id, content_id, author, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.ContentID, c.Author, c.Text, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
