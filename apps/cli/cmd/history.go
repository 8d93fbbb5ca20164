package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stepline/stepline/packages/core/config"
	"github.com/stepline/stepline/packages/history"
	"github.com/stepline/stepline/packages/output"
	"github.com/stepline/stepline/packages/results"
)

var (
	historyDBFlag     string
	historyLimitFlag  int
	historyOutputFlag string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past runs stored in the local history database",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(historyDBFlag)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(historyLimitFlag)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded yet")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-36s  %-20s  %-10s  %-25s  %7s  %7s  %8s  %9s\n",
			"run", "suite", "env", "time", "passed", "failed", "skipped", "duration")
		for _, run := range runs {
			fmt.Fprintf(w, "%-36s  %-20s  %-10s  %-25s  %7d  %7d  %8d  %7.0fms\n",
				run.ID, run.Suite, run.Environment, run.Time,
				run.Passed, run.Failed, run.Skipped, run.DurationMs)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Render one stored run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(historyDBFlag)
		if err != nil {
			return err
		}
		defer store.Close()

		doc, err := store.GetRun(args[0])
		if err != nil {
			return err
		}

		formatter, err := output.New(historyOutputFlag, output.WithWriter(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		return formatter.Format(doc)
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <results-file...>",
	Short: "Import results documents into the history database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(historyDBFlag)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, path := range args {
			doc, err := results.Load(path)
			if err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			if err := store.SaveRun(doc); err != nil {
				return fmt.Errorf("importing %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s (run %s)\n", path, doc.RunID)
		}
		return nil
	},
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDBFlag, "db", getEnvString("STEPLINE_HISTORY_DB", config.DefaultHistoryDB), "History database path (env: STEPLINE_HISTORY_DB)")
	historyListCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", getEnvInt("STEPLINE_HISTORY_LIMIT", 20), "Maximum number of runs to list (env: STEPLINE_HISTORY_LIMIT)")
	historyShowCmd.Flags().StringVarP(&historyOutputFlag, "output", "o", "console", "Output format: console, json, junit, tap, html")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyImportCmd)
}
