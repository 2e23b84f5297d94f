package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"bookshelf/internal/catalog"
	"bookshelf/internal/logger"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS books (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	title   TEXT    NOT NULL,
	author  TEXT    NOT NULL,
	year    INTEGER NOT NULL,
	genre   TEXT    NOT NULL,
	is_read INTEGER NOT NULL
)`

// SQLiteStore keeps the library in a single table. Save still rewrites the
// whole table; rows are returned in insertion order.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]catalog.Book, error) {
	defer logger.Track(ctx, "load "+s.path)()
	rows, err := s.db.QueryContext(ctx, `SELECT title, author, year, genre, is_read FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []catalog.Book{}
	for rows.Next() {
		var b catalog.Book
		var genre string
		if err := rows.Scan(&b.Title, &b.Author, &b.Year, &genre, &b.Read); err != nil {
			return nil, err
		}
		b.Genre = catalog.Genre(genre)
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, books []catalog.Book) error {
	defer logger.Track(ctx, "save "+s.path)()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO books (title, author, year, genre, is_read) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, b := range books {
		if _, err := stmt.ExecContext(ctx, b.Title, b.Author, b.Year, string(b.Genre), b.Read); err != nil {
			return fmt.Errorf("insert %q: %w", b.Title, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
