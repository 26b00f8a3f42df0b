package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note [text...]",
	Short: "Record a quick note outside of any quiz",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.AddNote(ctx, strings.Join(args, " ")); err != nil {
			journal.Close()
			fatal("Error saving note", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
