package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every score in catalog order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	engine, summary, err := state.loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	scores := engine.List()

	out := cmd.OutOrStdout()
	if !humanOutput {
		return outputJSON(out, scores)
	}
	fmt.Fprintln(out, summary)
	fmt.Fprintln(out)
	for _, d := range scores {
		printScoreLine(out, d)
	}
	return nil
}
