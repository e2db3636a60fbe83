// Package jsonl stores scores in a JSON Lines file, one record per line.
package jsonl

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"partituras/internal/domain"
)

// MaxLineCapacity is the maximum buffer size for reading one line (1MB).
const MaxLineCapacity = 1024 * 1024

// Store is a file-backed catalog. File order is list order.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store for the file at path. The file is created on first Put.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// List reads every record. A missing file is an empty catalog.
func (s *Store) List(ctx context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ReadAll(s.path)
}

// Put upserts docs by id, keeping the position of existing records and
// appending new ones, then rewrites the file atomically.
func (s *Store) Put(ctx context.Context, docs ...domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := ReadAll(s.path)
	if err != nil {
		return err
	}
	pos := make(map[int64]int, len(existing))
	for i, d := range existing {
		pos[d.ID] = i
	}
	for _, d := range docs {
		if i, ok := pos[d.ID]; ok {
			existing[i] = d
			continue
		}
		pos[d.ID] = len(existing)
		existing = append(existing, d)
	}
	return WriteAll(s.path, existing)
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// ReadAll reads all records from a JSONL file.
func ReadAll(path string) ([]domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	var docs []domain.Document
	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxLineCapacity)
	scanner.Buffer(buf, MaxLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc domain.Document
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return docs, nil
}

// WriteAll replaces the file content with docs. It writes a temp file next
// to path and renames it into place.
func WriteAll(path string, docs []domain.Document) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating catalog directory: %w", err)
		}
	}
	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	w := bufio.NewWriter(f)
	for i, d := range docs {
		data, err := json.Marshal(d)
		if err != nil {
			f.Close()
			os.Remove(tempPath)
			return fmt.Errorf("encoding score %d: %w", i, err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing catalog file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
