package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorAtAndDense(t *testing.T) {
	v := Vector{Dim: 5, Indices: []int{1, 3}, Values: []float64{0.6, 0.8}}

	assert.Equal(t, 0.0, v.At(0))
	assert.Equal(t, 0.6, v.At(1))
	assert.Equal(t, 0.8, v.At(3))
	assert.Equal(t, 0.0, v.At(4))
	assert.Equal(t, []float64{0, 0.6, 0, 0.8, 0}, v.Dense())
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
}

func TestManhattan(t *testing.T) {
	a := Vector{Dim: 4, Indices: []int{0, 2}, Values: []float64{0.5, -0.25}}
	b := Vector{Dim: 4, Indices: []int{2, 3}, Values: []float64{0.75, 1}}

	// |0.5-0| + |0-0| + |-0.25-0.75| + |0-1|
	assert.InDelta(t, 2.5, Manhattan(a, b), 1e-12)
	assert.InDelta(t, Manhattan(a, b), Manhattan(b, a), 1e-12)
	assert.Equal(t, 0.0, Manhattan(a, a))
}

func TestManhattan_NotEuclidean(t *testing.T) {
	a := Vector{Dim: 2, Indices: []int{0}, Values: []float64{1}}
	b := Vector{Dim: 2, Indices: []int{1}, Values: []float64{1}}

	d := Manhattan(a, b)
	assert.InDelta(t, 2.0, d, 1e-12)
	assert.NotEqual(t, math.Sqrt2, d)
}

func TestManhattan_ZeroVector(t *testing.T) {
	zero := Vector{Dim: 3}
	v := Vector{Dim: 3, Indices: []int{0, 1, 2}, Values: []float64{0.2, 0.3, 0.5}}
	assert.InDelta(t, 1.0, Manhattan(zero, v), 1e-12)
}
