package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"partituras/internal/tui"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse scores and their recommendations interactively",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	// keep info lines from drawing over the screen
	state.log = state.log.Level(zerolog.WarnLevel)

	engine, summary, err := state.loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	m := tui.New(engine, summary, tui.Options{
		PageSize:        state.cfg.TUI.PageSize,
		Recommendations: state.cfg.TUI.Recommendations,
	})
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
