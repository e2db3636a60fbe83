package tfidf

import (
	"fmt"
	"math"
	"sort"

	"partituras/internal/domain"
)

// Vectorizer computes L2-normalized TF-IDF vectors against a fixed vocabulary.
type Vectorizer struct {
	vocab *Vocabulary
	idf   []float64
}

// NewVectorizer precomputes IDF values for every term of vocab.
func NewVectorizer(vocab *Vocabulary) (*Vectorizer, error) {
	if vocab == nil {
		return nil, fmt.Errorf("%w: nil vocabulary", domain.ErrVectorization)
	}
	idf := make([]float64, vocab.Len())
	for i := range idf {
		idf[i] = vocab.IDF(i)
	}
	return &Vectorizer{vocab: vocab, idf: idf}, nil
}

// Name returns the identifier of this vectorizer.
func (z *Vectorizer) Name() string { return "tfidf" }

// Dimension returns the dimensionality of produced vectors.
func (z *Vectorizer) Dimension() int { return z.vocab.Len() }

// Embed computes the TF-IDF vector of text. Terms outside the vocabulary are
// ignored; text without known terms yields the zero vector.
func (z *Vectorizer) Embed(text string) domain.Vector {
	vec := domain.Vector{Dim: z.vocab.Len(), Generation: z.vocab.Generation()}

	tf := make(map[int]int)
	for _, tok := range Tokenize(text) {
		if idx, ok := z.vocab.Index(tok); ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return vec
	}

	vec.Indices = make([]int, 0, len(tf))
	for idx := range tf {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	vec.Values = make([]float64, len(vec.Indices))
	norm := 0.0
	for k, idx := range vec.Indices {
		w := float64(tf[idx]) * z.idf[idx]
		vec.Values[k] = w
		norm += w * w
	}
	// L2 normalize
	norm = math.Sqrt(norm)
	if norm > 0 {
		for k := range vec.Values {
			vec.Values[k] /= norm
		}
	}
	return vec
}

// Vectorize produces one vector per description. The vocabulary must have
// been built from the same descriptions; a vocabulary left over from another
// corpus generation fails with domain.ErrVectorization.
func Vectorize(vocab *Vocabulary, descriptions []string) ([]domain.Vector, error) {
	z, err := NewVectorizer(vocab)
	if err != nil {
		return nil, err
	}
	if !vocab.Matches(descriptions) {
		return nil, fmt.Errorf("%w: vocabulary built from %d documents, corpus has %d",
			domain.ErrVectorization, vocab.Docs(), len(descriptions))
	}
	vectors := make([]domain.Vector, len(descriptions))
	for i, text := range descriptions {
		vectors[i] = z.Embed(text)
	}
	return vectors, nil
}
