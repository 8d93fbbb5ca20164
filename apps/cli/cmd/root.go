package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "stepline",
	Short: "Dependency-aware test run reports",
	Long: `stepline works with the results documents produced by
dependency-aware suite runs: which steps ran, in what order, which were
skipped because a dependency failed, and how each priority band performed.

Use it to render reports, query statistics, validate documents, and keep
a local history of past runs.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
