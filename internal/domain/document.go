package domain

import "strings"

// Document is a single score in the catalog.
type Document struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Genre  string   `json:"genre"`
	Tempo  string   `json:"tempo,omitempty"`
	Notes  []string `json:"notes"`
	Keys   []string `json:"keys"`
}

// Description is the text the vectorizer sees: title, author, genre and the
// space-joined notes. Keys and tempo are not part of it.
func (d Document) Description() string {
	parts := []string{d.Title, d.Author, d.Genre, strings.Join(d.Notes, " ")}
	return strings.Join(parts, " ")
}

// Equal reports whether two documents carry the same field set.
func (d Document) Equal(o Document) bool {
	return d.ID == o.ID &&
		d.Title == o.Title &&
		d.Author == o.Author &&
		d.Genre == o.Genre &&
		d.Tempo == o.Tempo &&
		equalTokens(d.Notes, o.Notes) &&
		equalTokens(d.Keys, o.Keys)
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Scored pairs a document with its distance from a reference score.
type Scored struct {
	Document Document
	Distance float64
}

// Neighbor is a corpus row and its distance from a query vector.
type Neighbor struct {
	Row      int
	Distance float64
}

// RecommendRequest is the body callers send to ask for recommendations.
// Both fields are optional on the wire; a nil Count means the default.
type RecommendRequest struct {
	SongID *int64 `json:"id_cancion"`
	Count  *int   `json:"num_recomendaciones,omitempty"`
}

// Recommender defines the read operations exposed by the engine.
type Recommender interface {
	List() []Document
	Get(id int64) (Document, error)
	Recommend(id int64, count int) ([]Document, error)
	Similar(id int64, count int) ([]Scored, error)
}
