// Package config loads the stepline tool configuration: a JSON config file
// discovered in the working directory, overlaid with STEPLINE_* environment
// variables (including ones sourced from a local .env file).
package config
