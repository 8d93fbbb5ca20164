// Package output renders a results document for humans and CI systems.
// Formatters are selected by name; all of them consume the same persisted
// document, so any saved run can be re-rendered later in another format.
package output
