// Package cmd implements the stepline CLI commands using Cobra.
//
// Available commands:
//   - report: Render a results document (console, json, junit, tap, html)
//   - stats: Show per-priority statistics or evaluate a GJSON query
//   - validate: Check results documents against the JSON schema
//   - history: List, show, and import runs from the local history database
//   - version: Show stepline version information
//
// Commands read the results file produced by a suite run; report supports
// a watch mode that re-renders whenever the file changes.
package cmd
