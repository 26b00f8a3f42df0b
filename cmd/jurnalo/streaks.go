package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/jurnalo/internal/platform"
	"github.com/aretw0/jurnalo/pkg/adapters/fs"
	"github.com/aretw0/jurnalo/pkg/streak"
)

var (
	streakDays  int
	streakWatch bool
)

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Show the streak table",
	Long: `Show which streak-enabled choices were recorded on each of the last N days
(oldest on the left). With --watch the table is redrawn whenever the database
file changes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		journal := openJournal(ctx)
		defer journal.Close()

		days := streakDays
		if !cmd.Flags().Changed("days") {
			days = journal.Config.StreakDays
		}
		if days < 1 || days > streak.MaxDays {
			journal.Close()
			fatal("Invalid --days", fmt.Errorf("must be between 1 and %d", streak.MaxDays))
		}

		if err := showStreaks(ctx, journal, days); err != nil {
			journal.Close()
			fatal("Error showing streaks", err)
		}
		if !streakWatch {
			return
		}

		path := journal.Store.Path()
		if path == "" {
			journal.Close()
			fatal("Cannot watch", errors.New("--watch needs a SQLite database file"))
		}

		done, err := fs.Watch(ctx, path, func() {
			fmt.Println()
			if err := showStreaks(ctx, journal, days); err != nil {
				slog.Error("failed to refresh streaks", "error", err)
			}
		}, fs.WithWatchLogger(slog.Default()))
		if err != nil {
			journal.Close()
			fatal("Error watching database", err)
		}
		slog.Info("watching for changes", "path", path)
		<-done
	},
}

func showStreaks(ctx context.Context, journal *platform.Journal, days int) error {
	samples, err := journal.Store.ListStreakSamples(ctx)
	if err != nil {
		return err
	}
	now := clock(journal.Config)()
	table, ok := streak.Format(streak.Aggregate(now, days, samples, slog.Default()))
	if !ok {
		fmt.Println("No choice is tracked in streaks.")
		return nil
	}
	fmt.Println(table)
	return nil
}

func init() {
	rootCmd.AddCommand(streaksCmd)
	streaksCmd.Flags().IntVarP(&streakDays, "days", "d", streak.DefaultDays, "Number of days to show")
	streaksCmd.Flags().BoolVarP(&streakWatch, "watch", "w", false, "Redraw when the database changes")
}
