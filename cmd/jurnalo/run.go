package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/jurnalo/pkg/quiz"
)

var runCmd = &cobra.Command{
	Use:   "run [quiz]",
	Short: "Answer a quiz",
	Long:  `Answer every category of a quiz and record the answers. Same as 'jurnalo [quiz]'.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runQuiz(args[0])
	},
}

func runQuiz(label string) {
	ctx := context.Background()
	journal := openJournal(ctx)
	defer journal.Close()

	session := quiz.NewSession(journal.Store,
		quiz.WithClock(clock(journal.Config)),
		quiz.WithStreakDays(journal.Config.StreakDays),
		quiz.WithLogger(slog.Default()),
	)
	if err := session.Run(ctx, label); err != nil {
		journal.Close()
		fatal("Error running quiz", err)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
