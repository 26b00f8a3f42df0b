package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/jurnalo/pkg/adapters/fs"
	"github.com/aretw0/jurnalo/pkg/core"
	"github.com/aretw0/jurnalo/pkg/report"
)

var (
	printDays     int
	printOutput   string
	printCategory string
	printJSON     bool
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print recent entries as Markdown",
	Long: `Print the entries of the last N days grouped by date and time.
Quick notes are included. Use --category to keep only entries whose category
label matches a glob pattern.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runPrint()
	},
}

func runPrint() {
	ctx := context.Background()
	journal := openJournal(ctx)
	defer journal.Close()

	now := clock(journal.Config)()
	entries, err := journal.Service.Entries(ctx, now, printDays)
	if err != nil {
		journal.Close()
		fatal("Error listing entries", err)
	}
	if printCategory != "" {
		if entries, err = report.Filter(entries, printCategory); err != nil {
			journal.Close()
			fatal("Error filtering entries", err)
		}
	}
	if len(entries) == 0 {
		journal.Close()
		fatal("Nothing to print", core.ErrNoEntries)
	}

	var out []byte
	if printJSON {
		if out, err = report.JSON(entries, now.Location()); err != nil {
			journal.Close()
			fatal("Error encoding entries", err)
		}
	} else {
		out = []byte(report.Markdown(entries, now.Location()))
	}

	if printOutput == "" {
		fmt.Println(string(out))
		return
	}
	if err := fs.WriteFileAtomic(printOutput, append(out, '\n'), 0644); err != nil {
		journal.Close()
		fatal("Error writing output", err)
	}
	slog.Info("entries written", "count", len(entries), "path", printOutput)
}

func addPrintFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&printDays, "days", "d", 7, "Number of days to include")
	cmd.Flags().StringVarP(&printOutput, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVarP(&printCategory, "category", "c", "", "Glob pattern on category labels (e.g. 'mood*')")
	cmd.Flags().BoolVar(&printJSON, "json", false, "Output JSON instead of Markdown")
}

func init() {
	rootCmd.AddCommand(printCmd)
	addPrintFlags(printCmd)
}
