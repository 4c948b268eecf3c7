package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "noctlm",
	Short: "noctlm simulates Networks-on-Chip at the transaction level.",
	Long: `noctlm simulates Networks-on-Chip at the transaction level. It ` +
		`runs random traffic over a generated mesh or a topology loaded ` +
		`from a file, records packet traces into SQLite, and can serve a ` +
		`monitoring API while the simulation runs.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
