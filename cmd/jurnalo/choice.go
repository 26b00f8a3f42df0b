package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var choiceJSON bool

var choiceCmd = &cobra.Command{
	Use:     "choice",
	Aliases: []string{"choices"},
	Short:   "Manage the choices of a category",
}

var choiceAddCmd = &cobra.Command{
	Use:   "add [category] [label] [shortcut]",
	Short: "Add a choice to a category",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.AddChoice(ctx, args[0], args[1], args[2]); err != nil {
			journal.Close()
			fatal("Error adding choice", err)
		}
		fmt.Printf("Choice '%s' [%s] added to '%s'\n", args[1], args[2], args[0])
	},
}

var choiceListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List the choices of a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		choices, err := journal.Service.ListChoices(ctx, args[0])
		if err != nil {
			journal.Close()
			fatal("Error listing choices", err)
		}

		if choiceJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(choices); err != nil {
				journal.Close()
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, c := range choices {
			var flags string
			if c.Disabled {
				flags += " (disabled)"
			}
			if c.ShowInStreaks {
				flags += " (streaks)"
			}
			if c.ReminderDays != nil {
				flags += fmt.Sprintf(" (every %d days)", *c.ReminderDays)
			}
			fmt.Printf("- [%s] %s%s\n", c.Shortcut, c.Label, flags)
		}
	},
}

var choiceRenameCmd = &cobra.Command{
	Use:   "rename [category] [label] [new-label]",
	Short: "Rename a choice",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.RenameChoice(ctx, args[0], args[1], args[2]); err != nil {
			journal.Close()
			fatal("Error renaming choice", err)
		}
		fmt.Printf("Choice '%s' renamed to '%s'\n", args[1], args[2])
	},
}

var choiceDisableCmd = &cobra.Command{
	Use:   "disable [category] [label]",
	Short: "Hide a choice from quizzes",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.DisableChoice(ctx, args[0], args[1]); err != nil {
			journal.Close()
			fatal("Error disabling choice", err)
		}
		fmt.Printf("Choice '%s' disabled\n", args[1])
	},
}

var choiceStreaksCmd = &cobra.Command{
	Use:   "toggle-streaks [category] [label]",
	Short: "Show or hide a choice in the streak table",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.ToggleChoiceStreaks(ctx, args[0], args[1]); err != nil {
			journal.Close()
			fatal("Error toggling streaks", err)
		}
		fmt.Printf("Streaks toggled for '%s'\n", args[1])
	},
}

var choiceTimerCmd = &cobra.Command{
	Use:   "timer [category] [label] [days]",
	Short: "Set the reminder interval of a choice (-1 to clear)",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		days, err := strconv.Atoi(args[2])
		if err != nil {
			fatal("Invalid days", err)
		}

		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.ChangeChoiceTimer(ctx, args[0], args[1], days); err != nil {
			journal.Close()
			fatal("Error changing timer", err)
		}
		if days == -1 {
			fmt.Printf("Reminder cleared for '%s'\n", args[1])
			return
		}
		fmt.Printf("Reminder for '%s' set to %d days\n", args[1], days)
	},
}

func init() {
	rootCmd.AddCommand(choiceCmd)
	choiceCmd.AddCommand(choiceAddCmd, choiceListCmd, choiceRenameCmd, choiceDisableCmd, choiceStreaksCmd, choiceTimerCmd)

	choiceListCmd.Flags().BoolVar(&choiceJSON, "json", false, "Output in JSON format")
}
