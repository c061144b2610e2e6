// ABOUTME: Preset commands for listing, saving, removing, and showing named ranges
// ABOUTME: The listing is built as markdown and rendered with glamour

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/config"
	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/models"
	"github.com/harper/daterange/internal/storage"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in and saved presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		saved, err := store.ListPresets()
		if err != nil {
			return fmt.Errorf("failed to list presets: %w", err)
		}
		markdown := presetsMarkdown(saved)

		out := cmd.OutOrStdout()
		if plain {
			fmt.Fprint(out, markdown)
			return nil
		}
		rendered, err := glamour.Render(markdown, "dark")
		if err != nil {
			faint := color.New(color.Faint).SprintFunc()
			fmt.Fprintf(out, "%s\n", faint("(markdown rendering unavailable, showing plain text)"))
			fmt.Fprint(out, markdown)
			return nil
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

// presetsMarkdown renders the built-in menu and saved presets as tables.
func presetsMarkdown(saved []*models.Preset) string {
	var b strings.Builder
	f := formatter()

	b.WriteString("# Built-in\n\n")
	b.WriteString("| Preset | Expression | Dates |\n|---|---|---|\n")
	for _, r := range daterange.FlatPresets(cfg.HourShift) {
		title, _ := r.Title()
		fmt.Fprintf(&b, "| %s | `%s` | %s |\n", title, daterange.FormatSpec(r), resolver.Describe(r, f, false))
	}

	b.WriteString("\n# Saved\n\n")
	if len(saved) == 0 {
		b.WriteString("No saved presets. Add one with `daterange preset add <name> <range>`.\n")
		return b.String()
	}
	b.WriteString("| ID | Name | Expression | Dates |\n|---|---|---|---|\n")
	for _, p := range saved {
		dates := "(unreadable)"
		expr := "-"
		if r, err := p.DateRange(); err == nil {
			dates = resolver.Describe(r, f, false)
			expr = "`" + daterange.FormatSpec(r) + "`"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", shortID(p.ID), p.Name, expr, dates)
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > config.DisplayIDLength {
		return id[:config.DisplayIDLength]
	}
	return id
}

var presetCmd = &cobra.Command{
	Use:     "preset",
	Aliases: []string{"p"},
	Short:   "Manage saved presets",
}

var presetAddCmd = &cobra.Command{
	Use:   "add <name> [range]",
	Short: "Save a named preset",
	Long: `Save a named preset from a range expression, or from the current
selection when no range is given. --force replaces an existing preset.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("preset name cannot be empty")
		}
		description, _ := cmd.Flags().GetString("description")
		force, _ := cmd.Flags().GetBool("force")

		var (
			r   daterange.Range
			err error
		)
		if len(args) == 2 {
			r, err = resolveArg(args[1])
		} else {
			r, err = loadSelection()
		}
		if err != nil {
			return err
		}

		existing, err := store.GetPresetByName(name)
		switch {
		case err == nil && !force:
			return fmt.Errorf("preset %q already exists; use --force to replace it", name)
		case err == nil:
			existing.SetRange(r)
			existing.SetDescription(description)
			if err := store.UpdatePreset(existing); err != nil {
				return fmt.Errorf("failed to update preset: %w", err)
			}
			color.Green("Updated preset %s (%s)", name, shortID(existing.ID))
			return nil
		case !errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("failed to look up preset: %w", err)
		}

		p := models.NewPreset(name, r)
		p.SetDescription(description)
		if err := store.CreatePreset(p); err != nil {
			return fmt.Errorf("failed to save preset: %w", err)
		}
		color.Green("Saved preset %s (%s)", name, shortID(p.ID))
		return nil
	},
}

var presetRemoveCmd = &cobra.Command{
	Use:     "rm <name-or-id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a saved preset",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := store.GetPresetByIDOrPrefix(args[0])
		if err != nil {
			return fmt.Errorf("failed to find preset: %w", err)
		}
		if err := store.DeletePreset(p.ID); err != nil {
			return fmt.Errorf("failed to remove preset: %w", err)
		}
		color.Green("Removed preset %s", p.Name)
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Resolve a saved preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := store.GetPresetByIDOrPrefix(args[0])
		if err != nil {
			return fmt.Errorf("failed to find preset: %w", err)
		}
		r, err := p.DateRange()
		if err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint).SprintFunc()
		fmt.Fprintf(out, "%s %s\n", faint(shortID(p.ID)), p.Name)
		if p.Description != nil {
			fmt.Fprintf(out, "%s\n", *p.Description)
		}
		printRange(out, r)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetAddCmd)
	presetCmd.AddCommand(presetRemoveCmd)
	presetCmd.AddCommand(presetShowCmd)

	presetsCmd.Flags().Bool("plain", false, "print markdown without rendering")
	presetAddCmd.Flags().StringP("description", "d", "", "optional description")
	presetAddCmd.Flags().BoolP("force", "f", false, "replace an existing preset with the same name")
}
