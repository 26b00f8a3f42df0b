package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var entriesCmd = &cobra.Command{
	Use:     "entries",
	Aliases: []string{"entry"},
	Short:   "Inspect and fix recorded entries",
}

var entriesPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print recent entries (same as 'jurnalo print')",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runPrint()
	},
}

var entriesPushCmd = &cobra.Command{
	Use:   "push-latest-to-yesterday",
	Short: "Move the latest entry back by one day",
	Long: `Move the timestamp of the most recent entry back by 24 hours. Useful after
answering yesterday's quiz past midnight.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.PushLatestToYesterday(ctx); err != nil {
			journal.Close()
			fatal("Error moving entry", err)
		}
		fmt.Println("Latest entry moved to yesterday")
	},
}

func init() {
	rootCmd.AddCommand(entriesCmd)
	entriesCmd.AddCommand(entriesPrintCmd, entriesPushCmd)
	addPrintFlags(entriesPrintCmd)
}
