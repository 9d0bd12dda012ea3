package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yacobolo/refstyles/internal/refstyles"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the stored styles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		form, err := openForm(cmd.Context(), buildHostConfig(), discardSink{}, refstyles.NopUI{})
		if err != nil {
			return err
		}

		useColors := getBoolWithFallback("color", "color", false)
		styles := form.Styles()
		if len(styles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No styles defined. Add one with `refstyles add`.")
			return nil
		}

		idWidth := 0
		for _, id := range styles.IDs() {
			idWidth = max(idWidth, len(id))
		}

		out := cmd.OutOrStdout()
		header := fmt.Sprintf("%-*s  %-9s  %-4s  %-9s  %s", idWidth, "ID", "SELECTOR", "CHAR", "COLOR", "VALUE")
		fmt.Fprintln(out, refstyles.RenderStyle(refstyles.StyleCyan, header, useColors))
		for _, id := range styles.IDs() {
			entry := styles[id]
			color := entry.Color
			if color == "" {
				color = "-"
			}
			fmt.Fprintf(out, "%s  %-9s  %s  %s  %q\n",
				refstyles.RenderStyle(refstyles.StyleGray, fmt.Sprintf("%-*s", idWidth, id), useColors),
				entry.Selector.Name(),
				padVisible(entry.Character, 4),
				refstyles.Swatch(entry.Color, fmt.Sprintf("%-9s", color), useColors),
				entry.Value)
		}
		return nil
	},
}

// padVisible pads s to width terminal cells; emoji glyphs are two cells wide.
func padVisible(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a style (defaults to the \"Party: \" prefix style)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		hc := buildHostConfig()
		form, err := openForm(cmd.Context(), hc, mutationSink(cmd, hc), refstyles.NopUI{})
		if err != nil {
			return err
		}

		id, err := form.Add()
		if err != nil {
			return err
		}

		entry, _ := form.Get(id)
		changed, err := applyEntryFlags(cmd, &entry)
		if err != nil {
			return err
		}
		if changed {
			if err := form.Update(id, entry); err != nil {
				return err
			}
		}

		if !getBoolWithFallback("quiet", "quiet", false) {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set ID",
	Short: "Change fields of an existing style",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hc := buildHostConfig()
		form, err := openForm(cmd.Context(), hc, mutationSink(cmd, hc), refstyles.NopUI{})
		if err != nil {
			return err
		}

		entry, ok := form.Get(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", refstyles.ErrStyleNotFound, args[0])
		}
		if _, err := applyEntryFlags(cmd, &entry); err != nil {
			return err
		}
		return form.Update(args[0], entry)
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm ID...",
	Aliases: []string{"delete"},
	Short:   "Delete styles by id",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hc := buildHostConfig()
		form, err := openForm(cmd.Context(), hc, mutationSink(cmd, hc), refstyles.NopUI{})
		if err != nil {
			return err
		}

		for _, id := range args {
			if err := form.Delete(id); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{addCmd, setCmd} {
		f := cmd.Flags()
		f.String("value", "", "Text to match in reference names")
		f.String("selector", "", "Match mode: prefix|suffix|substring")
		f.String("character", "", "Glyph shown before matched references (empty to remove)")
		f.String("text-color", "", "Color of matched references (empty to remove)")
	}
	for _, cmd := range []*cobra.Command{addCmd, setCmd, rmCmd} {
		cmd.Flags().Bool("write-css", false, "Also write the stylesheet to the output file")
		cmd.Flags().String("output", "", "Stylesheet output file (default "+defaultOutputPath+")")
	}
}

// applyEntryFlags copies explicitly set entry flags onto entry.
func applyEntryFlags(cmd *cobra.Command, entry *refstyles.StyleEntry) (bool, error) {
	f := cmd.Flags()
	changed := false

	if f.Changed("value") {
		entry.Value, _ = f.GetString("value")
		changed = true
	}
	if f.Changed("selector") {
		raw, _ := f.GetString("selector")
		sel, err := refstyles.ParseSelector(raw)
		if err != nil {
			return false, err
		}
		entry.Selector = sel
		changed = true
	}
	if f.Changed("character") {
		entry.Character, _ = f.GetString("character")
		changed = true
	}
	if f.Changed("text-color") {
		entry.Color, _ = f.GetString("text-color")
		changed = true
	}

	return changed, nil
}
