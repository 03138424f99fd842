// Package store keeps per-browser view state in memory.
//
// Registry maps an opaque browser session id to a value owning live view
// controllers. Entries not touched for the idle period are evicted and
// closed, which cancels any pending timers inside them. All methods are
// safe for concurrent use. Nothing is persisted; a restart starts empty.
package store
