package tfidf

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

// Vocabulary maps every distinct term of a corpus to a dense index and keeps
// the document frequency of each term. It is immutable once built.
type Vocabulary struct {
	index       map[string]int
	terms       []string
	df          []int
	docs        int
	fingerprint [sha256.Size]byte
}

// Tokenize splits text on whitespace. Tokens are case-sensitive literals.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// BuildVocabulary scans the descriptions in order and assigns each new term
// the next unused index.
func BuildVocabulary(descriptions []string) *Vocabulary {
	v := &Vocabulary{
		index:       make(map[string]int),
		docs:        len(descriptions),
		fingerprint: fingerprint(descriptions),
	}
	for _, text := range descriptions {
		seen := make(map[int]struct{})
		for _, tok := range Tokenize(text) {
			idx, ok := v.index[tok]
			if !ok {
				idx = len(v.terms)
				v.index[tok] = idx
				v.terms = append(v.terms, tok)
				v.df = append(v.df, 0)
			}
			if _, ok := seen[idx]; ok {
				continue
			}
			seen[idx] = struct{}{}
			v.df[idx]++
		}
	}
	return v
}

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Docs returns the number of documents the vocabulary was built from.
func (v *Vocabulary) Docs() int { return v.docs }

// Index returns the index assigned to term.
func (v *Vocabulary) Index(term string) (int, bool) {
	idx, ok := v.index[term]
	return idx, ok
}

// Term returns the term stored at index i.
func (v *Vocabulary) Term(i int) string { return v.terms[i] }

// DocFreq returns how many documents contain the term at index i.
func (v *Vocabulary) DocFreq(i int) int { return v.df[i] }

// IDF returns the smoothed inverse document frequency of the term at index i:
// ln((1+N)/(1+df)) + 1.
func (v *Vocabulary) IDF(i int) float64 {
	n := float64(v.docs)
	return math.Log((1+n)/(1+float64(v.df[i]))) + 1.0
}

// Generation identifies the corpus the vocabulary was built from.
func (v *Vocabulary) Generation() uint64 {
	return binary.BigEndian.Uint64(v.fingerprint[:8])
}

// Matches reports whether the vocabulary was built from exactly these
// descriptions, in this order.
func (v *Vocabulary) Matches(descriptions []string) bool {
	return len(descriptions) == v.docs && fingerprint(descriptions) == v.fingerprint
}

// fingerprint hashes the ordered descriptions, length-prefixing each one so
// that boundaries between documents are part of the digest.
func fingerprint(descriptions []string) [sha256.Size]byte {
	h := sha256.New()
	for _, d := range descriptions {
		h.Write([]byte(strconv.Itoa(len(d))))
		h.Write([]byte{':'})
		h.Write([]byte(d))
	}
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
