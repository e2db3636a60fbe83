package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single score by ID",
	Long: `Get a single score by its numeric ID.

Example:
  partituras get 42`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	engine, _, err := state.loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	doc, err := engine.Get(id)
	if err != nil {
		return err
	}

	if humanOutput {
		printScoreDetail(cmd.OutOrStdout(), doc)
		return nil
	}
	return outputJSON(cmd.OutOrStdout(), doc)
}

// parseID parses a score id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, withCode(ExitBadRequest, fmt.Errorf("invalid score id %q", s))
	}
	return id, nil
}
