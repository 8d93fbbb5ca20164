// Package engine implements the step dependency and orchestration engine.
//
// The engine owns step registration, dependency graph construction, cycle
// detection, priority-aware topological ordering, skip propagation on
// failure, and result statistics. It never touches a browser, the network,
// or any reporting sink: the execution driver feeds registrations and
// results in, and reads skip decisions, the execution order, and statistics
// back out.
//
// An Engine is a plain value owned by its driver. All operations are
// synchronous and intended for use from a single goroutine; the documented
// execution model is strictly one step at a time because steps typically
// share a browser session.
package engine
