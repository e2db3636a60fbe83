package tfidf

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partituras/internal/domain"
)

func TestBuildVocabulary(t *testing.T) {
	vocab := BuildVocabulary([]string{"a b", "a", "b c"})

	require.Equal(t, 3, vocab.Len())
	assert.Equal(t, 3, vocab.Docs())

	for want, term := range []string{"a", "b", "c"} {
		idx, ok := vocab.Index(term)
		require.True(t, ok, "term %q missing", term)
		assert.Equal(t, want, idx)
		assert.Equal(t, term, vocab.Term(idx))
	}

	assert.Equal(t, 2, vocab.DocFreq(0))
	assert.Equal(t, 2, vocab.DocFreq(1))
	assert.Equal(t, 1, vocab.DocFreq(2))
}

func TestBuildVocabulary_FirstSeenOrder(t *testing.T) {
	vocab := BuildVocabulary([]string{"zeta alpha", "mid zeta"})

	idx, _ := vocab.Index("zeta")
	assert.Equal(t, 0, idx)
	idx, _ = vocab.Index("alpha")
	assert.Equal(t, 1, idx)
	idx, _ = vocab.Index("mid")
	assert.Equal(t, 2, idx)
}

func TestBuildVocabulary_DuplicatesCountOncePerDocument(t *testing.T) {
	vocab := BuildVocabulary([]string{"C C C E", "C"})

	idx, ok := vocab.Index("C")
	require.True(t, ok)
	assert.Equal(t, 2, vocab.DocFreq(idx))
}

func TestBuildVocabulary_CaseSensitiveAndEmpty(t *testing.T) {
	vocab := BuildVocabulary([]string{"Do do", "", "   "})

	assert.Equal(t, 2, vocab.Len())
	assert.Equal(t, 3, vocab.Docs())
	_, ok := vocab.Index("DO")
	assert.False(t, ok)
}

func TestBuildVocabulary_Deterministic(t *testing.T) {
	corpus := []string{"x y z", "z w", "q x"}
	a := BuildVocabulary(corpus)
	b := BuildVocabulary(corpus)

	require.Equal(t, a.Len(), b.Len())
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.Term(i), b.Term(i))
		assert.Equal(t, a.DocFreq(i), b.DocFreq(i))
	}
	assert.Equal(t, a.Generation(), b.Generation())
}

func TestIDF(t *testing.T) {
	vocab := BuildVocabulary([]string{"a b", "a", "b c", "a"})
	n := 4.0

	idxA, _ := vocab.Index("a")
	idxC, _ := vocab.Index("c")
	assert.InDelta(t, math.Log((1+n)/(1+3))+1, vocab.IDF(idxA), 1e-12)
	assert.InDelta(t, math.Log((1+n)/(1+1))+1, vocab.IDF(idxC), 1e-12)
}

func TestIDF_TermInEveryDocument(t *testing.T) {
	vocab := BuildVocabulary([]string{"a", "a b", "a c"})
	idx, _ := vocab.Index("a")

	// ln((1+N)/(1+N)) + 1
	assert.InDelta(t, 1.0, vocab.IDF(idx), 1e-12)
}

func TestVectorize(t *testing.T) {
	corpus := []string{"a b", "a", "b c"}
	vocab := BuildVocabulary(corpus)

	vectors, err := Vectorize(vocab, corpus)
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	idfAB := math.Log(4.0/3.0) + 1
	idfC := math.Log(4.0/2.0) + 1

	for _, v := range vectors {
		assert.Equal(t, vocab.Len(), v.Dim)
		assert.Equal(t, vocab.Generation(), v.Generation)
		assert.InDelta(t, 1.0, v.Norm(), 1e-12)
	}

	assert.InDelta(t, 1/math.Sqrt2, vectors[0].At(0), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, vectors[0].At(1), 1e-12)
	assert.InDelta(t, 1.0, vectors[1].At(0), 1e-12)

	norm := math.Hypot(idfAB, idfC)
	assert.InDelta(t, idfAB/norm, vectors[2].At(1), 1e-12)
	assert.InDelta(t, idfC/norm, vectors[2].At(2), 1e-12)
	assert.Equal(t, 0.0, vectors[2].At(0))
}

func TestVectorize_RawTermFrequency(t *testing.T) {
	corpus := []string{"a a b", "b"}
	vocab := BuildVocabulary(corpus)

	vectors, err := Vectorize(vocab, corpus)
	require.NoError(t, err)

	idfA := vocab.IDF(0)
	idfB := vocab.IDF(1)
	wa, wb := 2*idfA, 1*idfB
	norm := math.Hypot(wa, wb)
	assert.InDelta(t, wa/norm, vectors[0].At(0), 1e-12)
	assert.InDelta(t, wb/norm, vectors[0].At(1), 1e-12)
}

func TestVectorize_EmptyDescriptionIsZeroVector(t *testing.T) {
	corpus := []string{"a b", ""}
	vocab := BuildVocabulary(corpus)

	vectors, err := Vectorize(vocab, corpus)
	require.NoError(t, err)

	assert.Equal(t, 2, vectors[1].Dim)
	assert.Empty(t, vectors[1].Indices)
	assert.Equal(t, 0.0, vectors[1].Norm())
}

func TestVectorize_StaleVocabulary(t *testing.T) {
	old := BuildVocabulary([]string{"a b", "c"})

	t.Run("different corpus", func(t *testing.T) {
		_, err := Vectorize(old, []string{"a b", "c d"})
		assert.True(t, errors.Is(err, domain.ErrVectorization))
	})

	t.Run("different size", func(t *testing.T) {
		_, err := Vectorize(old, []string{"a b", "c", "e"})
		assert.True(t, errors.Is(err, domain.ErrVectorization))
	})

	t.Run("same documents reordered", func(t *testing.T) {
		_, err := Vectorize(old, []string{"c", "a b"})
		assert.True(t, errors.Is(err, domain.ErrVectorization))
	})

	t.Run("nil vocabulary", func(t *testing.T) {
		_, err := Vectorize(nil, []string{"a"})
		assert.True(t, errors.Is(err, domain.ErrVectorization))
	})
}

func TestVectorizer_EmbedIgnoresUnknownTerms(t *testing.T) {
	vocab := BuildVocabulary([]string{"a b"})
	z, err := NewVectorizer(vocab)
	require.NoError(t, err)

	assert.Equal(t, "tfidf", z.Name())
	assert.Equal(t, 2, z.Dimension())

	v := z.Embed("a zzz")
	assert.Equal(t, []int{0}, v.Indices)
	assert.InDelta(t, 1.0, v.Values[0], 1e-12)

	empty := z.Embed("zzz")
	assert.Empty(t, empty.Indices)
}
