package config

const (
	// DefaultResultsFile is where a run persists its results document.
	DefaultResultsFile = "stepline-results.json"
	// DefaultHistoryDB is the local run history database.
	DefaultHistoryDB = ".stepline/history.db"
	// DefaultTimeoutMs is the default per-step timeout.
	DefaultTimeoutMs = 30_000
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		ResultsFile: DefaultResultsFile,
		HistoryDB:   DefaultHistoryDB,
		Timeout:     DefaultTimeoutMs,
		Reporters:   []string{"console"},
	}
}
