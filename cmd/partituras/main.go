// Package main provides the partituras CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"partituras/internal/catalog"
	"partituras/internal/config"
	"partituras/internal/logging"
	"partituras/internal/metrics"
	"partituras/internal/service"
	"partituras/internal/summarizer"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	cfgPath     string
)

// app holds what PersistentPreRunE sets up for the subcommands.
type app struct {
	cfg      *config.AppConfig
	log      zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	store    catalog.Store
}

var state app

func main() {
	err := rootCmd.Execute()
	if cerr := state.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Exit(outputError(os.Stdout, os.Stderr, humanOutput, err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "partituras",
	Short: "Recommend musical scores similar to one you like",
	Long: `partituras ranks the scores of a catalog by how close their title,
author, genre and notes are to a reference score (TF-IDF vectors compared
by Manhattan distance).

Scores are read from a JSON Lines file, a SQLite database or Redis,
as selected in the config file. All commands output JSON by default.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (uses ./config.yaml or ~/.config/partituras/config.yaml if not provided)")
	rootCmd.Version = Version
}

func setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	var (
		cfg *config.AppConfig
		err error
	)
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return withCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}

	state.cfg = cfg
	state.log = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	state.registry = prometheus.NewRegistry()
	state.metrics = metrics.New(state.registry)

	store, err := openStore(cfg)
	if err != nil {
		return withCode(ExitConfigError, fmt.Errorf("opening %s catalog: %w", cfg.Catalog.Type, err))
	}
	state.store = store
	return nil
}

// loadEngine builds the corpus from the configured store.
func (a *app) loadEngine(ctx context.Context) (*service.Engine, string, error) {
	engine := service.NewEngine(nil, service.Options{
		Logger:       a.log,
		Metrics:      a.metrics,
		Store:        a.store,
		Summarizer:   summarizer.NewFrequencySummarizer(),
		SummaryTerms: a.cfg.Summary.MaxTerms,
	})
	summary, err := engine.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("loading catalog: %w", err)
	}
	return engine, summary, nil
}

// close flushes metrics and releases the store.
func (a *app) close() error {
	var firstErr error
	if a.cfg != nil && a.cfg.Metrics.Textfile != "" && a.registry != nil {
		if err := metrics.WriteTextfile(a.cfg.Metrics.Textfile, a.registry); err != nil {
			a.log.Warn().Err(err).Str("path", a.cfg.Metrics.Textfile).Msg("writing metrics textfile failed")
			firstErr = err
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.store = nil
	}
	return firstErr
}
