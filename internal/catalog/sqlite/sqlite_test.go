package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partituras/internal/catalog"
	"partituras/internal/domain"
)

var _ catalog.Store = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestStore_PutAndList(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	scores := []domain.Document{
		{ID: 20, Title: "Asturias", Author: "Albéniz", Genre: "Spanish", Tempo: "Allegro", Notes: []string{"B", "F#", "B"}, Keys: []string{"Sol"}},
		{ID: 10, Title: "Greensleeves", Author: "Traditional", Genre: "Folk", Notes: []string{"A", "C", "D"}, Keys: []string{}},
	}
	require.NoError(t, store.Put(ctx, scores...))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// ordered by id
	assert.True(t, scores[1].Equal(got[0]))
	assert.True(t, scores[0].Equal(got[1]))
}

func TestStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.Put(ctx, domain.Document{ID: 1, Title: "old"}))
	require.NoError(t, store.Put(ctx, domain.Document{ID: 1, Title: "new", Notes: []string{"C"}}))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	doc, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", doc.Title)
	assert.Equal(t, []string{"C"}, doc.Notes)
}

func TestStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, domain.Document{ID: 5, Title: "kept"}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Title)
}
