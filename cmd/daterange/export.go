// ABOUTME: Export command writing saved presets as an iCalendar file
// ABOUTME: Each preset becomes an event; --repeat adds recurrence for calendar units

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/config"
	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/ics"
	"github.com/harper/daterange/internal/logging"
	"github.com/harper/daterange/internal/models"
	"github.com/harper/daterange/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export presets as iCalendar",
	Long: `Export saved presets as an iCalendar (.ics) document, each resolved against today.

Examples:
  daterange export > presets.ics
  daterange export --builtin --repeat 12 -o periods.ics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		builtin, _ := cmd.Flags().GetBool("builtin")
		repeat, _ := cmd.Flags().GetInt("repeat")
		name, _ := cmd.Flags().GetString("name")
		output, _ := cmd.Flags().GetString("output")

		presets, err := store.ListPresets()
		if err != nil {
			return fmt.Errorf("failed to list presets: %w", err)
		}
		if builtin {
			presets = append(presets, builtinPresets()...)
		}
		if len(presets) == 0 {
			return fmt.Errorf("nothing to export: no saved presets (try --builtin)")
		}

		doc, err := ics.Export(resolver, presets, ics.Options{
			Name:      name,
			ProductID: config.ICSProductID,
			Repeat:    repeat,
			Logger:    logging.Named("ics"),
		})
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if output == "" || output == "-" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		}
		if err := storage.AtomicWrite(config.ExpandPath(output), []byte(doc)); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d events to %s\n", len(presets), output)
		return nil
	},
}

// builtinPresets wraps the menu entries as unsaved presets named by title.
func builtinPresets() []*models.Preset {
	var out []*models.Preset
	for _, r := range daterange.FlatPresets(cfg.HourShift) {
		title, _ := r.Title()
		out = append(out, models.NewPreset(title, r))
	}
	return out
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Bool("builtin", false, "include the built-in menu presets")
	exportCmd.Flags().Int("repeat", 0, "repeat calendar-unit events this many times")
	exportCmd.Flags().String("name", "daterange", "calendar name")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
}
