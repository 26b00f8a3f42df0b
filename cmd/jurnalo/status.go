package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/jurnalo/internal/platform"
	"github.com/aretw0/jurnalo/pkg/core"
)

var statusJSON bool

type componentStatus struct {
	Type  string `json:"type"`
	State any    `json:"state"`
}

type statusReport struct {
	Version    string            `json:"version"`
	ConfigFile string            `json:"config_file,omitempty"`
	Timezone   string            `json:"timezone"`
	Components []componentStatus `json:"components"`
	Counts     core.Counts       `json:"counts"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the database in use and what it holds",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		journal := openJournal(ctx)
		defer journal.Close()

		counts, err := journal.Store.Counts(ctx)
		if err != nil {
			journal.Close()
			fatal("Error reading counts", err)
		}

		report := statusReport{
			Version:    platform.Version(),
			ConfigFile: journal.Config.ConfigFile,
			Timezone:   journal.Config.Timezone,
			Counts:     counts,
		}
		for _, c := range []introspection.Component{journal.Store, journal.Service} {
			var state any
			if i, ok := c.(introspection.Introspectable); ok {
				state = i.State()
			}
			report.Components = append(report.Components, componentStatus{Type: c.ComponentType(), State: state})
		}

		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				journal.Close()
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Printf("jurnalo %s\n", report.Version)
		if report.ConfigFile != "" {
			fmt.Printf("Config:     %s\n", report.ConfigFile)
		}
		fmt.Printf("Timezone:   %s\n", report.Timezone)
		for _, c := range report.Components {
			fmt.Printf("%-11s %+v\n", c.Type+":", c.State)
		}
		fmt.Printf("Categories: %d\nChoices:    %d\nQuizzes:    %d\nEntries:    %d\n",
			counts.Categories, counts.Choices, counts.Quizzes, counts.Entries)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}
