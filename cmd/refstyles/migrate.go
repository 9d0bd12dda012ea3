package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/refstyles/internal/refstyles"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite legacy prefix-only styles in the current shape",
	Long: `Older settings stored {prefix, character, color} without a selector.
Loading the form converts them to {value, selector: prefix, ...} and saves
the whole collection once. This command performs that load and reports
what changed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		hc := buildHostConfig()
		store := refstyles.FileSettings{Path: hc.SettingsPath, Key: hc.SettingsKey}

		blob, err := store.Load()
		if err != nil {
			return err
		}
		decoded, err := refstyles.Decode(blob)
		if err != nil {
			return err
		}

		legacy := 0
		for _, shape := range decoded.Shapes {
			if shape == refstyles.ShapeLegacy {
				legacy++
			}
		}

		if _, err := openForm(cmd.Context(), hc, discardSink{}, refstyles.NopUI{}); err != nil {
			return err
		}

		if !getBoolWithFallback("quiet", "quiet", false) {
			useColors := getBoolWithFallback("color", "color", false)
			if legacy == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), refstyles.RenderStyle(refstyles.StyleGreen, "Settings already use the current shape", useColors))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d of %d styles in %s\n", legacy, len(decoded.Styles), hc.SettingsPath)
			}
		}
		return nil
	},
}
