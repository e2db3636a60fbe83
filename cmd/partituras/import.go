package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"partituras/internal/catalog/jsonl"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Copy scores from a JSON Lines file into the configured catalog",
	Long: `Copy scores from a JSON Lines file (one score object per line) into the
catalog selected in the config. Scores with an existing id are replaced.

Example:
  partituras import scores.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	docs, err := jsonl.ReadAll(args[0])
	if err != nil {
		return withCode(ExitBadRequest, fmt.Errorf("reading %s: %w", args[0], err))
	}
	if err := state.store.Put(cmd.Context(), docs...); err != nil {
		return fmt.Errorf("storing scores: %w", err)
	}
	state.log.Info().Int("scores", len(docs)).Str("from", args[0]).Msg("import complete")

	resp := ImportResponse{Imported: len(docs), Store: storeName(state.cfg)}
	if humanOutput {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d scores into %s\n", resp.Imported, resp.Store)
		return nil
	}
	return outputJSON(cmd.OutOrStdout(), resp)
}
