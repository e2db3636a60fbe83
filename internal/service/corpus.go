package service

import (
	"fmt"
	"time"

	"partituras/internal/domain"
	"partituras/internal/embedding/tfidf"
	"partituras/internal/vectorstore"
	"partituras/internal/vectorstore/memory"
)

// Corpus is an immutable snapshot of the catalog: documents in row order,
// their vectors, the vocabulary they were built against and the index that
// ranks them. Build a new one to change anything.
type Corpus struct {
	docs    []domain.Document
	rows    map[int64]int
	vocab   *tfidf.Vocabulary
	vectors []domain.Vector
	index   vectorstore.Index
	builtAt time.Time
}

// BuildCorpus vectorizes docs and indexes the result. Row order follows the
// order of docs. Two records sharing an id fail with domain.ErrDuplicateID.
func BuildCorpus(docs []domain.Document) (*Corpus, error) {
	rows := make(map[int64]int, len(docs))
	descriptions := make([]string, len(docs))
	for i, d := range docs {
		if prev, ok := rows[d.ID]; ok {
			return nil, fmt.Errorf("%w: %d at rows %d and %d", domain.ErrDuplicateID, d.ID, prev, i)
		}
		rows[d.ID] = i
		descriptions[i] = d.Description()
	}

	vocab := tfidf.BuildVocabulary(descriptions)
	vectors, err := tfidf.Vectorize(vocab, descriptions)
	if err != nil {
		return nil, fmt.Errorf("vectorizing corpus: %w", err)
	}
	index, err := memory.NewIndex(vocab.Len(), vocab.Generation(), vectors)
	if err != nil {
		return nil, fmt.Errorf("indexing corpus: %w", err)
	}

	owned := make([]domain.Document, len(docs))
	copy(owned, docs)
	return &Corpus{
		docs:    owned,
		rows:    rows,
		vocab:   vocab,
		vectors: vectors,
		index:   index,
		builtAt: time.Now(),
	}, nil
}

func emptyCorpus() *Corpus {
	vocab := tfidf.BuildVocabulary(nil)
	// zero rows cannot fail validation
	index, _ := memory.NewIndex(0, vocab.Generation(), nil)
	return &Corpus{
		rows:    map[int64]int{},
		vocab:   vocab,
		index:   index,
		builtAt: time.Now(),
	}
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }

// Generation identifies the vocabulary every vector of this corpus was built
// against. Equal corpora share a generation.
func (c *Corpus) Generation() uint64 { return c.vocab.Generation() }

// Vocabulary returns the corpus vocabulary.
func (c *Corpus) Vocabulary() *tfidf.Vocabulary { return c.vocab }

// BuiltAt returns when the corpus was built.
func (c *Corpus) BuiltAt() time.Time { return c.builtAt }

// Row returns the row of id.
func (c *Corpus) Row(id int64) (int, bool) {
	row, ok := c.rows[id]
	return row, ok
}

// Document returns the document at row.
func (c *Corpus) Document(row int) domain.Document { return c.docs[row] }

// Vector returns the vector at row.
func (c *Corpus) Vector(row int) domain.Vector { return c.vectors[row] }

// Documents returns a copy of every document in row order.
func (c *Corpus) Documents() []domain.Document {
	out := make([]domain.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Nearest ranks every other row by Manhattan distance from the row holding
// id and returns at most count of them. The reference row is removed by
// identity, so a duplicate of it still ranks first at distance zero.
func (c *Corpus) Nearest(id int64, count int) ([]domain.Scored, error) {
	row, ok := c.rows[id]
	if !ok {
		return nil, fmt.Errorf("score %d: %w", id, domain.ErrNotFound)
	}
	if count <= 0 {
		return []domain.Scored{}, nil
	}
	neighbors, err := c.index.Distances(c.vectors[row])
	if err != nil {
		return nil, fmt.Errorf("ranking score %d: %w", id, err)
	}

	if count > len(neighbors)-1 {
		count = len(neighbors) - 1
	}
	out := make([]domain.Scored, 0, count)
	for _, n := range neighbors {
		if len(out) == count {
			break
		}
		if n.Row == row {
			continue
		}
		out = append(out, domain.Scored{Document: c.docs[n.Row], Distance: n.Distance})
	}
	return out, nil
}
