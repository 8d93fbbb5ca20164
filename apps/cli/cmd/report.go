package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stepline/stepline/packages/core/config"
	"github.com/stepline/stepline/packages/output"
	"github.com/stepline/stepline/packages/results"
)

var (
	reportInputFlag      string
	reportOutputFlag     string
	reportOutputFileFlag string
	reportNoColorFlag    bool
	reportVerboseFlag    bool
	reportWatchFlag      bool
)

var reportCmd = &cobra.Command{
	Use:   "report [results-file]",
	Short: "Render a results document",
	Long: `Render a results document in one of the supported formats.

Examples:
  stepline report
  stepline report out/results.json -o html --output-file report.html
  stepline report --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: reportCommand,
}

func reportCommand(cmd *cobra.Command, args []string) error {
	path := reportInputFlag
	if len(args) == 1 {
		path = args[0]
	}

	render := func() error {
		doc, err := results.Load(path)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if reportOutputFileFlag != "" {
			file, err := os.Create(reportOutputFileFlag)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer file.Close()
			w = file
		}

		formatter, err := output.New(reportOutputFlag,
			output.WithWriter(w),
			output.WithNoColor(reportNoColorFlag),
			output.WithVerbose(reportVerboseFlag),
		)
		if err != nil {
			return err
		}
		return formatter.Format(doc)
	}

	if err := render(); err != nil {
		return err
	}

	if reportWatchFlag {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.ErrOrStderr(), "watching %s for changes (ctrl-c to stop)\n", path)
		return results.Watch(ctx, path, results.DefaultDebounce, func() {
			if err := render(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		})
	}

	return nil
}

func init() {
	reportCmd.Flags().StringVarP(&reportInputFlag, "input", "i", getEnvString("STEPLINE_RESULTS_FILE", config.DefaultResultsFile), "Results file to render (env: STEPLINE_RESULTS_FILE)")
	reportCmd.Flags().StringVarP(&reportOutputFlag, "output", "o", getEnvString("STEPLINE_OUTPUT", "console"), "Output format: console, json, junit, tap, html (env: STEPLINE_OUTPUT)")
	reportCmd.Flags().StringVar(&reportOutputFileFlag, "output-file", getEnvString("STEPLINE_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: STEPLINE_OUTPUT_FILE)")
	reportCmd.Flags().BoolVar(&reportNoColorFlag, "no-color", getEnvBool("STEPLINE_NO_COLOR", false), "Disable colored output (env: STEPLINE_NO_COLOR)")
	reportCmd.Flags().BoolVarP(&reportVerboseFlag, "verbose", "v", getEnvBool("STEPLINE_VERBOSE", false), "Include timing detail (env: STEPLINE_VERBOSE)")
	reportCmd.Flags().BoolVarP(&reportWatchFlag, "watch", "w", false, "Re-render whenever the results file changes")
}
