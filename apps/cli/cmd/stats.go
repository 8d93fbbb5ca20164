package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stepline/stepline/packages/core/config"
	"github.com/stepline/stepline/packages/results"
)

var (
	statsInputFlag string
	statsQueryFlag string
)

var statsCmd = &cobra.Command{
	Use:   "stats [results-file]",
	Short: "Show run statistics, optionally filtered by a query",
	Long: `Show per-priority statistics for a results document.

With --query, evaluate a GJSON path expression against the raw document
and print the result instead. Useful in CI scripts:

  stepline stats --query summary.failed
  stepline stats --query 'tests.#(status=="skipped").failedDependency'
  stepline stats --query 'priorities.highest.passed'`,
	Args: cobra.MaximumNArgs(1),
	RunE: statsCommand,
}

func statsCommand(cmd *cobra.Command, args []string) error {
	path := statsInputFlag
	if len(args) == 1 {
		path = args[0]
	}

	if statsQueryFlag != "" {
		value, found, err := results.Query(path, statsQueryFlag)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("query %q matched nothing", statsQueryFlag)
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}

	doc, err := results.Load(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run:     %s\n", doc.RunID)
	if doc.Suite != "" {
		fmt.Fprintf(w, "suite:   %s\n", doc.Suite)
	}
	if doc.Environment != "" {
		fmt.Fprintf(w, "env:     %s\n", doc.Environment)
	}
	fmt.Fprintf(w, "time:    %s (%.0fms)\n\n", doc.Time, doc.Duration)

	fmt.Fprintf(w, "%-10s %6s %7s %7s %8s\n", "priority", "total", "passed", "failed", "skipped")
	for _, p := range []string{"highest", "high", "medium", "low"} {
		stats, ok := doc.Priorities[p]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-10s %6d %7d %7d %8d\n", p, stats.Total, stats.Passed, stats.Failed, stats.Skipped)
	}

	fmt.Fprintf(w, "\ntotal:             %d passed, %d failed, %d skipped of %d\n",
		doc.Summary.Passed, doc.Summary.Failed, doc.Summary.Skipped, doc.Summary.Total)
	fmt.Fprintf(w, "dependency skips:  %d\n", doc.DependencySkips)
	fmt.Fprintf(w, "dependency chains: %d\n", doc.DependencyChains)
	return nil
}

func init() {
	statsCmd.Flags().StringVarP(&statsInputFlag, "input", "i", getEnvString("STEPLINE_RESULTS_FILE", config.DefaultResultsFile), "Results file to inspect (env: STEPLINE_RESULTS_FILE)")
	statsCmd.Flags().StringVarP(&statsQueryFlag, "query", "q", "", "GJSON path to evaluate against the document")
}
