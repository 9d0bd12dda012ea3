package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yacobolo/refstyles/internal/logging"
	"github.com/yacobolo/refstyles/internal/refstyles"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the stylesheet whenever the settings file changes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		hc := buildHostConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logging.WithComponent(ctx, "watch")
		log := logging.FromContext(ctx)

		form, err := openForm(ctx, hc, refstyles.FileStyleSink{Path: hc.OutputPath}, refstyles.NopUI{})
		if err != nil {
			return err
		}

		debounce, _ := cmd.Flags().GetDuration("debounce")
		if !getBoolWithFallback("quiet", "quiet", false) {
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, writing %s\n", hc.SettingsPath, hc.OutputPath)
		}

		return refstyles.Watch(ctx, hc.SettingsPath, debounce, func() {
			if err := form.Reload(); err != nil {
				log.Error().Err(err).Msg("reload failed, keeping previous stylesheet")
				return
			}
			log.Info().Int("styles", len(form.IDs())).Msg("stylesheet re-rendered")
		})
	},
}

func init() {
	watchCmd.Flags().String("output", "", "Stylesheet output file (default "+defaultOutputPath+")")
	watchCmd.Flags().Duration("debounce", refstyles.DefaultWatchDebounce, "Delay before re-rendering after a change")
}
