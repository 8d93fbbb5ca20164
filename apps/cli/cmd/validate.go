package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stepline/stepline/packages/core/config"
	"github.com/stepline/stepline/packages/results"
)

var validateInputFlag string

var validateCmd = &cobra.Command{
	Use:   "validate [results-file...]",
	Short: "Validate results documents against the schema",
	Long: `Validate results documents against the built-in JSON schema
without rendering them.

Examples:
  stepline validate
  stepline validate run-1.json run-2.json`,
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{validateInputFlag}
	}

	hasErrors := false
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}
		if err := results.Validate(data); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Invalid: %s: %v\n", path, err)
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", path)
		}
	}

	if hasErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		os.Exit(ExitInvalidDocument)
	}
	return nil
}

func init() {
	validateCmd.Flags().StringVarP(&validateInputFlag, "input", "i", getEnvString("STEPLINE_RESULTS_FILE", config.DefaultResultsFile), "Results file to validate (env: STEPLINE_RESULTS_FILE)")
}
