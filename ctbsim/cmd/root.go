// Package cmd provides the command-line interface for ctbsim.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "ctbsim",
	Short: "ctbsim drives a turn-based simulation on a calendar clock and " +
		"prints what happens each turn.",
	Long: `ctbsim drives a turn-based simulation on a calendar clock and ` +
		`prints what happens each turn. Characters, season changes, and ` +
		`story events share one time wheel; each turn advances time to the ` +
		`next due entry and executes it.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// Flag defaults can be overridden by a .env file in the working
	// directory.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
