// ABOUTME: Watch command that follows the current selection across day boundaries
// ABOUTME: A cron job at the day start hour re-resolves and prints the selection until interrupted

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/logging"
	"github.com/harper/daterange/internal/picker"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the selection again whenever the day changes",
	Long: `Keep running and re-resolve the current selection each time a new day
begins, at the configured day start hour in the configured time zone.

Relative selections such as "past-7" or "this-week" move with the calendar;
the new bounds are printed and saved. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPicker()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		go func() {
			select {
			case sig := <-sigCh:
				logger.Info("signal received, shutting down", "signal", sig.String())
				cancel()
			case <-ctx.Done():
			}
		}()

		return runWatch(ctx, cmd.OutOrStdout(), p)
	},
}

// dayBoundarySpec is the cron schedule firing when a shifted day begins.
func dayBoundarySpec(hourShift int) string {
	return fmt.Sprintf("0 %d * * *", hourShift)
}

// runWatch prints the selection, then reprints and saves it at every day
// boundary until ctx is done.
func runWatch(ctx context.Context, w io.Writer, p *picker.Picker) error {
	log := logging.Named("watch")

	p.OnChange(func(r daterange.Range) {
		fmt.Fprintln(w)
		printRange(w, r)
		if err := saveSelection(r); err != nil {
			log.Error("could not save selection", "err", err)
		}
	})

	c := cron.New(cron.WithLocation(resolver.Calendar().Location()))
	spec := dayBoundarySpec(cfg.HourShift)
	if _, err := c.AddFunc(spec, p.DayChanged); err != nil {
		return fmt.Errorf("schedule day boundary %q: %w", spec, err)
	}

	printRange(w, p.Range())
	log.Info("watching for day changes", "schedule", spec, "zone", resolver.Calendar().Location().String())

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
