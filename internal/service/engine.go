// Package service holds the recommendation engine: it builds a Corpus from
// the catalog and answers read-only queries against it.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"partituras/internal/catalog"
	"partituras/internal/domain"
	"partituras/internal/metrics"
	"partituras/internal/summarizer"
)

// DefaultCount is the number of recommendations returned when the caller
// does not ask for a specific amount.
const DefaultCount = 5

// Options configures an Engine. Every field is optional.
type Options struct {
	Logger     zerolog.Logger
	Metrics    *metrics.Metrics
	Store      catalog.Store
	Summarizer *summarizer.FrequencySummarizer
	// SummaryTerms caps the terms named by Summary.
	SummaryTerms int
}

// Engine serves recommendations from the installed Corpus. Reads take one
// snapshot of the corpus pointer and never block; Rebuild and Swap replace
// the snapshot as a whole.
type Engine struct {
	corpus atomic.Pointer[Corpus]
	builds atomic.Uint64

	// serializes rebuilds; readers never take it
	rebuild sync.Mutex

	log          zerolog.Logger
	metrics      *metrics.Metrics
	store        catalog.Store
	summarizer   *summarizer.FrequencySummarizer
	summaryTerms int
}

var _ domain.Recommender = (*Engine)(nil)

// NewEngine creates an engine serving corpus. A nil corpus serves an empty
// catalog until the first Load or Swap.
func NewEngine(corpus *Corpus, opts Options) *Engine {
	e := &Engine{
		log:          opts.Logger,
		metrics:      opts.Metrics,
		store:        opts.Store,
		summarizer:   opts.Summarizer,
		summaryTerms: opts.SummaryTerms,
	}
	if e.summarizer == nil {
		e.summarizer = summarizer.NewFrequencySummarizer()
	}
	if corpus == nil {
		corpus = emptyCorpus()
	}
	e.install(corpus, 0)
	return e
}

// LoadCorpus reads every score from store and builds a corpus from them.
func LoadCorpus(ctx context.Context, store catalog.Store) (*Corpus, error) {
	docs, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	return BuildCorpus(docs)
}

// Load builds a corpus from the configured store, installs it and returns a
// one-line summary of it. On failure the current corpus stays installed.
func (e *Engine) Load(ctx context.Context) (string, error) {
	if err := e.Rebuild(ctx); err != nil {
		return "", err
	}
	return e.Summary(), nil
}

// Rebuild reloads the catalog and swaps in the new corpus.
func (e *Engine) Rebuild(ctx context.Context) error {
	if e.store == nil {
		return errors.New("no catalog store configured")
	}
	e.rebuild.Lock()
	defer e.rebuild.Unlock()

	start := time.Now()
	corpus, err := LoadCorpus(ctx, e.store)
	if err != nil {
		e.metrics.ObserveBuildFailure()
		e.log.Error().Err(err).
			Uint64("generation", e.current().Generation()).
			Msg("corpus rebuild failed, keeping current corpus")
		return err
	}
	e.install(corpus, time.Since(start))
	return nil
}

// Swap installs a corpus built elsewhere.
func (e *Engine) Swap(corpus *Corpus) {
	if corpus == nil {
		return
	}
	e.install(corpus, 0)
}

func (e *Engine) install(corpus *Corpus, took time.Duration) {
	e.corpus.Store(corpus)
	build := e.builds.Add(1)
	e.metrics.ObserveCorpus(build, corpus.Len(), corpus.Vocabulary().Len(), took)
	e.log.Info().
		Uint64("build", build).
		Uint64("generation", corpus.Generation()).
		Int("documents", corpus.Len()).
		Int("terms", corpus.Vocabulary().Len()).
		Dur("took", took).
		Msg("corpus installed")
}

func (e *Engine) current() *Corpus {
	return e.corpus.Load()
}

// Corpus returns the installed corpus snapshot.
func (e *Engine) Corpus() *Corpus {
	return e.current()
}

// Summary describes the installed corpus in one line.
func (e *Engine) Summary() string {
	return e.summarizer.Summarize(e.current().Vocabulary(), e.summaryTerms)
}

// List returns every score in corpus row order.
func (e *Engine) List() []domain.Document {
	return e.current().Documents()
}

// Get returns the score with the given id.
func (e *Engine) Get(id int64) (domain.Document, error) {
	c := e.current()
	row, ok := c.Row(id)
	if !ok {
		return domain.Document{}, fmt.Errorf("score %d: %w", id, domain.ErrNotFound)
	}
	return c.Document(row), nil
}

// Recommend returns up to count scores closest to the score with the given
// id, nearest first, never including the score itself. A count of zero or
// less yields an empty result.
func (e *Engine) Recommend(id int64, count int) ([]domain.Document, error) {
	scored, err := e.Similar(id, count)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Document, len(scored))
	for i, s := range scored {
		out[i] = s.Document
	}
	return out, nil
}

// Similar is Recommend with the Manhattan distance of each result attached.
func (e *Engine) Similar(id int64, count int) ([]domain.Scored, error) {
	start := time.Now()
	reqID := uuid.NewString()

	c := e.current()
	out, err := c.Nearest(id, count)
	took := time.Since(start)

	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, domain.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
		e.log.Error().Err(err).Str("request_id", reqID).Int64("id", id).Msg("recommendation failed")
	}
	e.metrics.ObserveRecommend(outcome, took)

	e.log.Debug().
		Str("request_id", reqID).
		Int64("id", id).
		Int("count", count).
		Int("results", len(out)).
		Str("outcome", outcome).
		Uint64("generation", c.Generation()).
		Dur("took", took).
		Msg("recommend")
	return out, err
}

// Handle answers a wire request. A request without id fails with
// domain.ErrMissingID; a request without count uses DefaultCount.
func (e *Engine) Handle(req domain.RecommendRequest) ([]domain.Document, error) {
	if req.SongID == nil {
		e.metrics.ObserveRecommend(metrics.OutcomeNotFound, 0)
		return nil, domain.ErrMissingID
	}
	count := DefaultCount
	if req.Count != nil {
		count = *req.Count
	}
	return e.Recommend(*req.SongID, count)
}
