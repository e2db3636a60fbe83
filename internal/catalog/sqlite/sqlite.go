// Package sqlite stores scores in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"partituras/internal/domain"
)

// Store wraps a SQLite database connection.
type Store struct {
	db *sql.DB
}

const selectScoreFields = `id, title, author, genre, tempo, notes_json, keys_json`

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			genre TEXT NOT NULL,
			tempo TEXT NOT NULL DEFAULT '',
			notes_json TEXT NOT NULL,
			keys_json TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// List returns every score ordered by id.
func (s *Store) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectScoreFields+` FROM scores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing scores: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scores: %w", err)
	}
	return docs, nil
}

// Get returns one score by id.
func (s *Store) Get(ctx context.Context, id int64) (domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectScoreFields+` FROM scores WHERE id = ?`, id)
	doc, err := scanScore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, fmt.Errorf("score %d: %w", id, domain.ErrNotFound)
	}
	return doc, err
}

// Put inserts or replaces scores in a single transaction.
func (s *Store) Put(ctx context.Context, docs ...domain.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO scores (`+selectScoreFields+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		notesJSON, err := json.Marshal(d.Notes)
		if err != nil {
			return fmt.Errorf("marshaling notes for %d: %w", d.ID, err)
		}
		keysJSON, err := json.Marshal(d.Keys)
		if err != nil {
			return fmt.Errorf("marshaling keys for %d: %w", d.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, d.ID, d.Title, d.Author, d.Genre, d.Tempo,
			string(notesJSON), string(keysJSON)); err != nil {
			return fmt.Errorf("inserting score %d: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored scores.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting scores: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScore(row scanner) (domain.Document, error) {
	var (
		doc                 domain.Document
		notesJSON, keysJSON string
	)
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Author, &doc.Genre, &doc.Tempo, &notesJSON, &keysJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doc, err
		}
		return doc, fmt.Errorf("scanning score: %w", err)
	}
	if err := json.Unmarshal([]byte(notesJSON), &doc.Notes); err != nil {
		return doc, fmt.Errorf("parsing notes for %d: %w", doc.ID, err)
	}
	if err := json.Unmarshal([]byte(keysJSON), &doc.Keys); err != nil {
		return doc, fmt.Errorf("parsing keys for %d: %w", doc.ID, err)
	}
	return doc, nil
}
