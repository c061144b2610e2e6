// ABOUTME: Show and select commands for reading and replacing the current selection
// ABOUTME: show resolves an expression or the saved selection; select and today persist a new one

package main

import (
	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/daterange"
)

var showCmd = &cobra.Command{
	Use:     "show [range]",
	Aliases: []string{"s"},
	Short:   "Resolve a range or show the current selection",
	Long: `Resolve a range expression or saved preset against today and print its bounds.

Without an argument, shows the current selection.

Examples:
  daterange show
  daterange show last-month
  daterange show past-30
  daterange show 2015-06-01..2015-06-03
  daterange show unit:quarter:-1`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			r   daterange.Range
			err error
		)
		if len(args) == 1 {
			r, err = resolveArg(args[0])
		} else {
			r, err = loadSelection()
		}
		if err != nil {
			return err
		}
		printRange(cmd.OutOrStdout(), r)
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <range>",
	Short: "Make a range the current selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := resolveArg(args[0])
		if err != nil {
			return err
		}
		p, err := loadPicker()
		if err != nil {
			return err
		}
		p.SetRange(r)
		if err := saveSelection(p.Range()); err != nil {
			return err
		}
		printRange(cmd.OutOrStdout(), p.Range())
		return nil
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Select today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPicker()
		if err != nil {
			return err
		}
		p.SetHourShift(cfg.HourShift)
		p.SelectToday()
		if err := saveSelection(p.Range()); err != nil {
			return err
		}
		printRange(cmd.OutOrStdout(), p.Range())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(todayCmd)
}
