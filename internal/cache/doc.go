// Package cache persists GitHub notifications in SQLite keyed by notification
// id.
//
// The Store is a thin durable key-value layer: writes are upserts that fully
// replace any record with the same id, reads hand out copies, and age-based
// pruning parses each record's updated_at client side so the timestamp format
// is validated in exactly one place. Open never destroys data; Reset drops
// and recreates the schema for destroy and test flows.
package cache
