package domain

import "math"

// Vector is a sparse term-weight vector. Indices are strictly ascending and
// Values is aligned with them. Dim is the size of the vocabulary the vector
// was built against and Generation identifies that vocabulary.
type Vector struct {
	Dim        int
	Generation uint64
	Indices    []int
	Values     []float64
}

// At returns the weight stored for vocabulary index i.
func (v Vector) At(i int) float64 {
	lo, hi := 0, len(v.Indices)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case v.Indices[mid] == i:
			return v.Values[mid]
		case v.Indices[mid] < i:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Dense expands the vector to a slice of length Dim.
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, idx := range v.Indices {
		out[idx] = v.Values[k]
	}
	return out
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Manhattan returns the L1 distance between two vectors over their shared
// dimensionality. Both index lists are walked in a single merge pass.
func Manhattan(a, b Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += math.Abs(a.Values[i] - b.Values[j])
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			sum += math.Abs(a.Values[i])
			i++
		default:
			sum += math.Abs(b.Values[j])
			j++
		}
	}
	for ; i < len(a.Indices); i++ {
		sum += math.Abs(a.Values[i])
	}
	for ; j < len(b.Indices); j++ {
		sum += math.Abs(b.Values[j])
	}
	return sum
}
