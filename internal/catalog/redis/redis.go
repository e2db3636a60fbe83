// Package redis stores each score as a JSON value under "<prefix><id>".
package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"partituras/internal/catalog"
	"partituras/internal/domain"
)

const scanBatch = 100

// Store is a Redis-backed catalog.
type Store struct {
	client *redis.Client
	prefix string
}

// New creates a store on client. An empty prefix uses catalog.DefaultKeyPrefix.
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = catalog.DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Key returns the Redis key of a score.
func (s *Store) Key(id int64) string {
	return s.prefix + strconv.FormatInt(id, 10)
}

// List scans every key under the prefix and returns the scores ordered by id.
func (s *Store) List(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	var cursor uint64
	pattern := s.prefix + "*"

	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning keys: %w", err)
		}
		if len(keys) > 0 {
			batch, err := s.getBatch(ctx, keys)
			if err != nil {
				return nil, err
			}
			docs = append(docs, batch...)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	// SCAN may return a key more than once
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	out := docs[:0]
	for i, d := range docs {
		if i > 0 && d.ID == docs[i-1].ID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) getBatch(ctx context.Context, keys []string) ([]domain.Document, error) {
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading scores: %w", err)
	}
	docs := make([]domain.Document, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // deleted between SCAN and MGET
		}
		var doc domain.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", keys[i], err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Put stores docs in one pipeline.
func (s *Store) Put(ctx context.Context, docs ...domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for _, d := range docs {
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encoding score %d: %w", d.ID, err)
		}
		pipe.Set(ctx, s.Key(d.ID), data, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing scores: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
