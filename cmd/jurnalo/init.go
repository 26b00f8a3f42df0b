package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/jurnalo/internal/platform"
)

var seedFile string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and load a seed file",
	Long: `Create the schema if needed and, when the database holds no category yet,
load categories, choices and quizzes from a seed file (.toml, .yaml, .yml or .json).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx, platform.WithAutoSeed(false))
		defer journal.Close()

		path := seedFile
		if path == "" {
			path = journal.Config.Seed
		}
		if path == "" {
			fmt.Println("Database ready (no seed file given).")
			return
		}

		seeded, err := journal.SeedFrom(ctx, path)
		if err != nil {
			journal.Close()
			fatal("Error seeding journal", err)
		}
		if !seeded {
			slog.Warn("database already has categories, seed skipped", "seed", path)
			return
		}
		fmt.Printf("Journal seeded from %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&seedFile, "seed", "", "Seed file (env JURNALO_SEED or TEST_TOML)")
}
