package summarizer

import (
	"fmt"
	"sort"
	"strings"

	"partituras/internal/embedding/tfidf"
)

// FrequencySummarizer describes a corpus by its most widespread terms.
type FrequencySummarizer struct{}

// NewFrequencySummarizer creates a document-frequency summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{}
}

// TopTerms returns up to maxTerms terms ranked by document frequency.
// Terms with the same frequency keep vocabulary order.
func (s *FrequencySummarizer) TopTerms(vocab *tfidf.Vocabulary, maxTerms int) []string {
	if vocab == nil || vocab.Len() == 0 {
		return nil
	}
	if maxTerms <= 0 {
		maxTerms = 5
	}
	idxs := make([]int, vocab.Len())
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		return vocab.DocFreq(idxs[i]) > vocab.DocFreq(idxs[j])
	})
	if maxTerms > len(idxs) {
		maxTerms = len(idxs)
	}
	out := make([]string, maxTerms)
	for i := 0; i < maxTerms; i++ {
		out[i] = vocab.Term(idxs[i])
	}
	return out
}

// Summarize returns a one-line description of the corpus behind vocab.
func (s *FrequencySummarizer) Summarize(vocab *tfidf.Vocabulary, maxTerms int) string {
	if vocab == nil {
		return "No scores loaded."
	}
	line := fmt.Sprintf("%d scores, %d terms.", vocab.Docs(), vocab.Len())
	top := s.TopTerms(vocab, maxTerms)
	if len(top) == 0 {
		return line
	}
	return line + " Most common: " + strings.Join(top, ", ")
}
