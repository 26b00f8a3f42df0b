package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jurnalo/internal/platform"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jurnalo %s\n", platform.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
