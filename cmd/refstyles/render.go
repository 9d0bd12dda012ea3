package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yacobolo/refstyles/internal/logging"
	"github.com/yacobolo/refstyles/internal/refstyles"
)

var renderCmd = &cobra.Command{
	Use:     "render",
	Aliases: []string{"gen", "generate"},
	Short:   "Render the stylesheet from the stored styles",
	Long: `Load the styles from the host settings file, migrating legacy prefix-only
entries, and write the aggregate stylesheet the host registers.`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.String("output", "", "Stylesheet output file (default "+defaultOutputPath+")")
	f.Bool("stdout", false, "Print the stylesheet instead of writing it")
}

// writerSink registers the stylesheet by printing it.
type writerSink struct {
	w io.Writer
}

func (s writerSink) ProvideStyle(key, css string) error {
	_, err := fmt.Fprintf(s.w, "/* %s */\n%s\n", key, css)
	return err
}

// discardSink drops registered stylesheets, for commands that only edit settings.
type discardSink struct{}

func (discardSink) ProvideStyle(string, string) error { return nil }

// openForm builds a Form over the file-backed host adapters.
func openForm(ctx context.Context, hc hostConfig, provider refstyles.StyleProvider, ui refstyles.UI) (*refstyles.Form, error) {
	log := logging.FromContext(logging.WithComponent(ctx, "form"))
	log.Debug().Str("settings", hc.SettingsPath).Str("key", hc.SettingsKey).Msg("opening settings")

	return refstyles.NewForm(
		refstyles.FileSettings{Path: hc.SettingsPath, Key: hc.SettingsKey},
		provider,
		ui,
		refstyles.WithStyleKey(hc.StyleKey),
		refstyles.WithLogger(*log),
	)
}

// mutationSink is where add/set/rm re-register the stylesheet:
// the configured output file when --write-css is set, nowhere otherwise.
func mutationSink(cmd *cobra.Command, hc hostConfig) refstyles.StyleProvider {
	if render, _ := cmd.Flags().GetBool("write-css"); render {
		return refstyles.FileStyleSink{Path: hc.OutputPath}
	}
	return discardSink{}
}

func runRender(cmd *cobra.Command, _ []string) error {
	hc := buildHostConfig()
	quiet := getBoolWithFallback("quiet", "quiet", false)
	toStdout := getBoolWithFallback("stdout", "render.stdout", false)

	var provider refstyles.StyleProvider = refstyles.FileStyleSink{Path: hc.OutputPath}
	if toStdout {
		provider = writerSink{w: cmd.OutOrStdout()}
	}

	form, err := openForm(cmd.Context(), hc, provider, refstyles.NopUI{})
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if !quiet && !toStdout {
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d styles to %s\n", len(form.IDs()), hc.OutputPath)
	}
	return nil
}
