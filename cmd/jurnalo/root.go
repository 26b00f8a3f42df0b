package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jurnalo/internal/platform"
)

var (
	verbose    bool
	dbFlag     string
	driverFlag string
	configFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jurnalo [quiz]",
	Short: "A personal journal driven by short daily quizzes",
	Long: `Jurnalo asks the categories of a quiz one by one. Answer with the shortcuts
shown next to each choice, add free text after a colon, or leave the line blank
to skip. Answers are stored as timestamped entries and summarized as streaks.

  jurnalo daily
  How was your mood today?
  [b] bad [g] good
  g: sunny afternoon`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Set here to avoid an initialization cycle through loadConfig.
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		runQuiz(args[0])
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Database DSN or SQLite file (env JURNALO_DSN)")
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Database driver: sqlite or postgres (env JURNALO_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default jurnalo.{toml,yaml,json} in the data directory)")
}

// loadConfig merges flags, environment and config file.
func loadConfig() *platform.Config {
	v, err := platform.NewViper(configFlag)
	if err != nil {
		fatal("Error loading configuration", err)
	}
	flags := rootCmd.PersistentFlags()
	if err := v.BindPFlag("dsn", flags.Lookup("db")); err != nil {
		fatal("Error binding flags", err)
	}
	if err := v.BindPFlag("driver", flags.Lookup("driver")); err != nil {
		fatal("Error binding flags", err)
	}

	cfg, err := platform.Load(v)
	if err != nil {
		fatal("Invalid configuration", err)
	}
	return cfg
}

// openJournal opens the configured journal, seeding it on first use.
func openJournal(ctx context.Context, opts ...platform.Option) *platform.Journal {
	cfg := loadConfig()
	opts = append([]platform.Option{platform.WithLogger(slog.Default())}, opts...)

	journal, err := platform.Open(ctx, cfg, opts...)
	if err != nil {
		fatal("Error opening journal", err)
	}
	return journal
}

// clock returns the current time in the configured time zone.
func clock(cfg *platform.Config) func() time.Time {
	loc, err := cfg.Location()
	if err != nil {
		fatal("Invalid configuration", err)
	}
	return func() time.Time { return time.Now().In(loc) }
}
