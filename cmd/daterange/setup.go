// ABOUTME: Cobra command for interactive daterange configuration.
// ABOUTME: Launches a bubbletea TUI wizard for storage and calendar preferences.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:         "setup",
	Short:       "Configure daterange",
	Long:        "Interactive wizard to configure the storage backend, data directory, time zone, week start, and day start hour.",
	Annotations: map[string]string{skipStore: "true"},
	Args:        cobra.NoArgs,
	RunE:        runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	model := tui.NewSetupModel(tui.SetupValues{
		Backend:   cfg.Backend,
		DataDir:   cfg.DataDir,
		Timezone:  cfg.Timezone,
		WeekStart: cfg.WeekStart,
		HourShift: cfg.HourShift,
	})

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Fprintln(cmd.OutOrStdout(), "Setup canceled.")
		return nil
	}

	values := final.Result()
	cfg.Backend = values.Backend
	cfg.DataDir = values.DataDir
	cfg.Timezone = values.Timezone
	cfg.WeekStart = values.WeekStart
	cfg.HourShift = values.HourShift
	if err := cfg.Normalize(); err != nil {
		return err
	}

	path := resolvedConfigPath()
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", path)
	return nil
}
