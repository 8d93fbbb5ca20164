// Package runner is the execution driver: it owns an orchestration engine,
// registers suite steps with it, and walks the computed execution order
// strictly one step at a time. Steps usually share a single browser session
// through their closures, so the driver never runs two steps concurrently.
//
// The driver decides nothing about ordering or skipping on its own; it asks
// the engine before every step and records every outcome back into it.
package runner
