package cmd

// Exit codes for the stepline CLI
const (
	// ExitSuccess indicates the command completed without problems
	ExitSuccess = 0

	// ExitRunFailure indicates the rendered run contains failed tests
	ExitRunFailure = 1

	// ExitInvalidDocument indicates a results document failed validation
	ExitInvalidDocument = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
