package vectorstore

import "partituras/internal/domain"

// Index holds an immutable set of corpus vectors and ranks them by distance
// from a query vector.
type Index interface {
	Dimension() int
	Len() int
	Vector(row int) domain.Vector
	Distances(query domain.Vector) ([]domain.Neighbor, error)
}
