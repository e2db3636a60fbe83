package memory

import (
	"fmt"
	"sort"

	"partituras/internal/domain"
)

// Index is an in-memory vector index using brute-force Manhattan distance.
// It is read-only after construction and safe for concurrent use.
type Index struct {
	dimension  int
	generation uint64
	vectors    []domain.Vector
}

// NewIndex validates that every row has the given dimensionality and was
// built against the same vocabulary generation.
func NewIndex(dimension int, generation uint64, vectors []domain.Vector) (*Index, error) {
	if dimension < 0 {
		return nil, fmt.Errorf("%w: invalid dimension %d", domain.ErrDimensionMismatch, dimension)
	}
	for row, v := range vectors {
		if err := check(dimension, generation, v); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
	}
	rows := make([]domain.Vector, len(vectors))
	copy(rows, vectors)
	return &Index{dimension: dimension, generation: generation, vectors: rows}, nil
}

// Dimension returns the vocabulary size shared by all rows.
func (s *Index) Dimension() int { return s.dimension }

// Len returns the number of rows.
func (s *Index) Len() int { return len(s.vectors) }

// Vector returns the vector stored at row.
func (s *Index) Vector(row int) domain.Vector { return s.vectors[row] }

// Distances returns every row ordered by ascending Manhattan distance from
// query. Rows at equal distance keep ascending row order.
func (s *Index) Distances(query domain.Vector) ([]domain.Neighbor, error) {
	if err := check(s.dimension, s.generation, query); err != nil {
		return nil, err
	}
	out := make([]domain.Neighbor, len(s.vectors))
	for row, v := range s.vectors {
		out[row] = domain.Neighbor{Row: row, Distance: domain.Manhattan(query, v)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out, nil
}

func check(dimension int, generation uint64, v domain.Vector) error {
	if v.Dim != dimension {
		return fmt.Errorf("%w: got %d, want %d", domain.ErrDimensionMismatch, v.Dim, dimension)
	}
	if v.Generation != generation {
		return fmt.Errorf("%w: vector built against vocabulary %x, index uses %x",
			domain.ErrDimensionMismatch, v.Generation, generation)
	}
	return nil
}
