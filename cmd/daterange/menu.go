// ABOUTME: Menu command printing the built-in preset columns with resolved dates
// ABOUTME: --interactive opens a bubbletea browser and saves the chosen range

package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/config"
	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the preset menu",
	Long: `Show the built-in preset menu with each entry resolved against today.

With --interactive, browse the menu in the terminal: arrows move through
presets and step the selection, enter saves it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		if !interactive {
			printMenu(cmd.OutOrStdout())
			return nil
		}

		p, err := loadPicker()
		if err != nil {
			return err
		}
		result, err := tea.NewProgram(tui.NewBrowseModel(p, formatter())).Run()
		if err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		final := result.(tui.BrowseModel)
		if !final.Confirmed() {
			fmt.Fprintln(cmd.OutOrStdout(), "Selection unchanged.")
			return nil
		}
		if err := saveSelection(final.Range()); err != nil {
			return err
		}
		printRange(cmd.OutOrStdout(), final.Range())
		return nil
	},
}

// printMenu writes each menu column with a rule between groups.
func printMenu(w io.Writer) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	f := formatter()

	for i, column := range daterange.Presets(cfg.HourShift) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, r := range column {
			if r == nil {
				fmt.Fprintln(w, faint(strings.Repeat("─", config.SeparatorWidth/3)))
				continue
			}
			title, _ := r.Title()
			fmt.Fprintf(w, "%-16s %s\n", bold(title), faint(resolver.Describe(r, f, false)))
		}
	}
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().BoolP("interactive", "i", false, "browse the menu interactively")
}
