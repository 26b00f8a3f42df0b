package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:     "quiz",
	Aliases: []string{"quizzes"},
	Short:   "Manage quizzes and their categories",
}

var quizCreateCmd = &cobra.Command{
	Use:   "create [label]",
	Short: "Create a quiz",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.CreateQuiz(ctx, args[0]); err != nil {
			journal.Close()
			fatal("Error creating quiz", err)
		}
		fmt.Printf("Quiz '%s' created\n", args[0])
	},
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quizzes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		quizzes, err := journal.Service.ListQuizzes(ctx)
		if err != nil {
			journal.Close()
			fatal("Error listing quizzes", err)
		}
		for _, q := range quizzes {
			fmt.Printf("- %s\n", q.Label)
		}
	},
}

var quizRenameCmd = &cobra.Command{
	Use:   "rename [label] [new-label]",
	Short: "Rename a quiz",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.RenameQuiz(ctx, args[0], args[1]); err != nil {
			journal.Close()
			fatal("Error renaming quiz", err)
		}
		fmt.Printf("Quiz '%s' renamed to '%s'\n", args[0], args[1])
	},
}

var quizLinkCmd = &cobra.Command{
	Use:   "link [quiz] [category]",
	Short: "Append a category to a quiz",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.LinkCategory(ctx, args[0], args[1]); err != nil {
			journal.Close()
			fatal("Error linking category", err)
		}
		fmt.Printf("Category '%s' added to '%s'\n", args[1], args[0])
	},
}

var quizUnlinkCmd = &cobra.Command{
	Use:   "unlink [quiz] [category]",
	Short: "Remove a category from a quiz",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		if err := journal.Service.UnlinkCategory(ctx, args[0], args[1]); err != nil {
			journal.Close()
			fatal("Error unlinking category", err)
		}
		fmt.Printf("Category '%s' removed from '%s'\n", args[1], args[0])
	},
}

var quizCategoriesCmd = &cobra.Command{
	Use:   "categories [quiz]",
	Short: "List the categories of a quiz in order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		categories, err := journal.Service.ListQuizCategories(ctx, args[0])
		if err != nil {
			journal.Close()
			fatal("Error listing quiz categories", err)
		}
		for i, c := range categories {
			fmt.Printf("%d. %s\n", i+1, c.Label)
		}
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.AddCommand(quizCreateCmd, quizListCmd, quizRenameCmd, quizLinkCmd, quizUnlinkCmd, quizCategoriesCmd)
}
