package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yacobolo/refstyles/internal/logging"
	"github.com/yacobolo/refstyles/internal/refstyles"
	"github.com/yacobolo/refstyles/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit styles in an interactive form",
	Long: `Open the style form. Every change is saved to the settings file and the
stylesheet is re-rendered to the output file immediately.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		hc := buildHostConfig()
		log := logging.FromContext(cmd.Context())

		ui := refstyles.FuncUI(func(restore bool) error {
			log.Debug().Bool("restore_editing_cursor", restore).Msg("form closed")
			return nil
		})

		form, err := openForm(cmd.Context(), hc, refstyles.FileStyleSink{Path: hc.OutputPath}, ui)
		if err != nil {
			return err
		}

		model := tui.New(form, true)
		final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
		if err != nil {
			return fmt.Errorf("run form: %w", err)
		}

		if m, ok := final.(tui.Model); ok && m.Err() != nil {
			return m.Err()
		}
		return nil
	},
}
