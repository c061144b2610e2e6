// ABOUTME: Commands that step or restrict the current selection
// ABOUTME: next, prev, move --steps, and restrict --min/--max persist the result

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/picker"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Step the selection forward by its own length",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return stepSelection(cmd, 1)
	},
}

var prevCmd = &cobra.Command{
	Use:     "prev",
	Aliases: []string{"previous"},
	Short:   "Step the selection back by its own length",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return stepSelection(cmd, -1)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move the selection by a number of steps",
	Long: `Move the selection by --steps multiples of its own length.

A month moves by months, "past 7 days" by 7 days, a custom range by its
number of days. Negative steps move back in time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return stepSelection(cmd, steps)
	},
}

var restrictCmd = &cobra.Command{
	Use:   "restrict",
	Short: "Clamp the selection to a date window",
	Long: `Clamp the selection so it starts no earlier than --min and ends no
later than --max. Dates are YYYY-MM-DD in the configured time zone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		minFlag, _ := cmd.Flags().GetString("min")
		maxFlag, _ := cmd.Flags().GetString("max")
		if minFlag == "" && maxFlag == "" {
			return fmt.Errorf("give --min, --max, or both")
		}
		minDate, err := parseDay(minFlag)
		if err != nil {
			return err
		}
		maxDate, err := parseDay(maxFlag)
		if err != nil {
			return err
		}
		if minDate != nil && maxDate != nil && maxDate.Before(*minDate) {
			return fmt.Errorf("max %s is before min %s", maxFlag, minFlag)
		}

		p, err := loadPicker()
		if err != nil {
			return err
		}
		p.SetMinDate(minDate)
		p.SetMaxDate(maxDate)
		if err := saveSelection(p.Range()); err != nil {
			return err
		}
		printRange(cmd.OutOrStdout(), p.Range())
		return nil
	},
}

// stepSelection moves the saved selection by steps and stores the result.
func stepSelection(cmd *cobra.Command, steps int) error {
	p, err := loadPicker()
	if err != nil {
		return err
	}
	if steps == 0 {
		printRange(cmd.OutOrStdout(), p.Range())
		return nil
	}

	before := p.Range()
	if !p.SetRange(resolver.MoveBy(before, steps)) {
		warnUnchanged(cmd, p)
	}
	logger.Debug("moved selection", "from", before, "to", p.Range(), "steps", steps)

	if err := saveSelection(p.Range()); err != nil {
		return err
	}
	printRange(cmd.OutOrStdout(), p.Range())
	return nil
}

// warnUnchanged notes a step that could not move the selection.
func warnUnchanged(cmd *cobra.Command, p *picker.Picker) {
	color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "Selection unchanged:", p.Label(formatter()))
}

func init() {
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(restrictCmd)

	moveCmd.Flags().IntP("steps", "n", 1, "number of steps, negative to go back")
	restrictCmd.Flags().String("min", "", "earliest allowed day (YYYY-MM-DD)")
	restrictCmd.Flags().String("max", "", "latest allowed day (YYYY-MM-DD)")
}
