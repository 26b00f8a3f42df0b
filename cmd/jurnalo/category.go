package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	categoryPattern string
	categoryJSON    bool
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Manage categories",
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create [label] [prompt]",
	Short: "Create a category",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.CreateCategory(ctx, args[0], args[1]); err != nil {
			journal.Close()
			fatal("Error creating category", err)
		}
		fmt.Printf("Category '%s' created\n", args[0])
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		categories, err := journal.Service.ListCategories(ctx, categoryPattern)
		if err != nil {
			journal.Close()
			fatal("Error listing categories", err)
		}

		if categoryJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(categories); err != nil {
				journal.Close()
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, c := range categories {
			state := ""
			if c.Disabled {
				state = " (disabled)"
			}
			fmt.Printf("- %s: %s%s\n", c.Label, c.Prompt, state)
		}
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename [label] [new-label]",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.RenameCategory(ctx, args[0], args[1]); err != nil {
			journal.Close()
			fatal("Error renaming category", err)
		}
		fmt.Printf("Category '%s' renamed to '%s'\n", args[0], args[1])
	},
}

var categoryDisableCmd = &cobra.Command{
	Use:   "disable [label]",
	Short: "Hide a category from quizzes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.DisableCategory(ctx, args[0]); err != nil {
			journal.Close()
			fatal("Error disabling category", err)
		}
		fmt.Printf("Category '%s' disabled\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryCreateCmd, categoryListCmd, categoryRenameCmd, categoryDisableCmd)

	categoryListCmd.Flags().StringVar(&categoryPattern, "filter", "", "Glob pattern on labels (e.g. 'mood*')")
	categoryListCmd.Flags().BoolVar(&categoryJSON, "json", false, "Output in JSON format")
}
