// Package results defines the persisted run document: the JSON file a
// finished (or in-flight) run writes so reports can be rendered, corrected,
// and compared across processes. The engine itself is unaware of this file;
// the driver and the CLI are its only producers and consumers.
package results
